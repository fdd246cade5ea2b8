package gap

import (
	"testing"
	"time"

	"github.com/erpforensic/reconstructor/internal/coverage"
	"github.com/erpforensic/reconstructor/internal/extraction"
	"github.com/erpforensic/reconstructor/internal/extraction/extractors"
)

func newRegistry(t *testing.T) *extraction.Registry {
	t.Helper()
	r := extraction.NewRegistry()
	if err := extractors.Register(r); err != nil {
		t.Fatalf("register: %v", err)
	}
	return r
}

func TestAnalyzeFailsPreconditionBeforeExtractionRan(t *testing.T) {
	analyzer := NewAnalyzer(newRegistry(t), nil)
	_, err := analyzer.Analyze(&extraction.Context{}, nil)
	if err == nil {
		t.Fatalf("expected a precondition error when coverage has never been populated")
	}
}

func TestExtractionGapFlagsNeverAttemptedCriticalTable(t *testing.T) {
	rc := extraction.NewContext(extraction.ModeOffline, nil, nil, nil)
	rc.DataDictionary = extraction.NewDataDictionary()
	rc.DataDictionary.Tables["GL_POSTINGS"] = extraction.TableDef{}
	// Never call rc.Coverage.Track for GL_POSTINGS.

	analyzer := NewAnalyzer(newRegistry(t), nil)
	report, err := analyzer.Analyze(rc, map[string]extraction.Result{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, g := range report.Gaps {
		if g.Category == CategoryExtraction && g.Table == "GL_POSTINGS" && g.Severity == SeverityCritical {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a critical extraction gap for the never-attempted critical table, got %+v", report.Gaps)
	}
}

func TestAuthorizationGapDetectsAuthShapedError(t *testing.T) {
	rc := extraction.NewContext(extraction.ModeOffline, nil, nil, nil)
	rc.DataDictionary = extraction.NewDataDictionary()
	rc.Coverage.Track("security", "AUTH_OBJECTS", coverage.StatusFailed, coverage.Detail{Error: "insufficient authorization to read S_TABU_DIS"}, time.Now())

	analyzer := NewAnalyzer(newRegistry(t), nil)
	report, err := analyzer.Analyze(rc, map[string]extraction.Result{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, g := range report.Gaps {
		if g.Category == CategoryAuthorization && g.ExtractorID == "security" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an authorization gap, got %+v", report.Gaps)
	}
}

func TestDataVolumeGapDetectsPartialRead(t *testing.T) {
	rc := extraction.NewContext(extraction.ModeOffline, nil, nil, nil)
	rc.DataDictionary = extraction.NewDataDictionary()
	rc.Coverage.Track("financials", "GL_POSTINGS", coverage.StatusPartial, coverage.Detail{RowCount: 100}, time.Now())

	analyzer := NewAnalyzer(newRegistry(t), nil)
	report, err := analyzer.Analyze(rc, map[string]extraction.Result{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, g := range report.Gaps {
		if g.Category == CategoryDataVolume && g.Table == "GL_POSTINGS" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a data-volume gap for the partial read, got %+v", report.Gaps)
	}
}

func TestProcessGapFlagsMissingFoundationalEvidence(t *testing.T) {
	rc := extraction.NewContext(extraction.ModeOffline, nil, nil, nil)
	rc.DataDictionary = extraction.NewDataDictionary()

	analyzer := NewAnalyzer(newRegistry(t), nil)
	report, err := analyzer.Analyze(rc, map[string]extraction.Result{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := 0
	for _, g := range report.Gaps {
		if g.Category == CategoryProcess {
			count++
		}
	}
	if count != 3 {
		t.Fatalf("expected 3 process gaps (change_documents, usage_statistics, workflows), got %d", count)
	}
}

func TestInterfaceGapFlagsAbsentExtractor(t *testing.T) {
	rc := extraction.NewContext(extraction.ModeOffline, nil, nil, nil)
	rc.DataDictionary = extraction.NewDataDictionary()

	analyzer := NewAnalyzer(newRegistry(t), nil)
	report, err := analyzer.Analyze(rc, map[string]extraction.Result{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, g := range report.Gaps {
		if g.Category == CategoryInterface && g.ExtractorID == "interfaces" && g.Severity == SeverityCritical {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a critical interface gap when the interfaces extractor never ran, got %+v", report.Gaps)
	}
}

func TestInterpretationGapFlagsResultsWithNoRule(t *testing.T) {
	rc := extraction.NewContext(extraction.ModeOffline, nil, nil, nil)
	rc.DataDictionary = extraction.NewDataDictionary()
	results := map[string]extraction.Result{
		"financials": {ExtractorID: "financials", Status: extraction.StatusSuccess, Tables: map[string][]extraction.Row{"GL_ACCOUNTS": {{}}}},
	}

	analyzer := NewAnalyzer(newRegistry(t), nil)
	report, err := analyzer.Analyze(rc, results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, g := range report.Gaps {
		if g.Category == CategoryInterpretation && g.ExtractorID == "financials" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an interpretation gap for financials with no registered rule, got %+v", report.Gaps)
	}
}

func TestInterpretationGapSuppressedWhenRuleExists(t *testing.T) {
	rc := extraction.NewContext(extraction.ModeOffline, nil, nil, nil)
	rc.DataDictionary = extraction.NewDataDictionary()
	results := map[string]extraction.Result{
		"financials": {ExtractorID: "financials", Status: extraction.StatusSuccess, Tables: map[string][]extraction.Row{"GL_ACCOUNTS": {{}}}},
	}

	analyzer := NewAnalyzer(newRegistry(t), map[string]bool{"financials": true})
	report, err := analyzer.Analyze(rc, results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, g := range report.Gaps {
		if g.Category == CategoryInterpretation && g.ExtractorID == "financials" {
			t.Fatalf("expected no interpretation gap once a rule is registered for financials")
		}
	}
}

func TestConfidenceScorePerfectCoverageIsGradeA(t *testing.T) {
	in := Inputs{
		Config:      CategoryInput{CoveragePct: 100},
		MasterData:  CategoryInput{CoveragePct: 100},
		Transaction: CategoryInput{CoveragePct: 100},
		Code:        CategoryInput{CoveragePct: 100},
		Security:    CategoryInput{CoveragePct: 100},
		Interface:   CategoryInput{CoveragePct: 100},
		Process:     CategoryInput{CoveragePct: 100},
	}
	score := ComputeScore(in)
	if score.Overall != 100 {
		t.Fatalf("expected a perfect 100 overall score, got %f", score.Overall)
	}
	if score.Grade != "A" {
		t.Fatalf("expected grade A, got %s", score.Grade)
	}
}

func TestConfidenceScorePenalizesMissingCriticalTables(t *testing.T) {
	in := Inputs{
		Config:      CategoryInput{CoveragePct: 100, MissingCriticalTables: 2},
		MasterData:  CategoryInput{CoveragePct: 100},
		Transaction: CategoryInput{CoveragePct: 100},
		Code:        CategoryInput{CoveragePct: 100},
		Security:    CategoryInput{CoveragePct: 100},
		Interface:   CategoryInput{CoveragePct: 100},
		Process:     CategoryInput{CoveragePct: 100},
	}
	score := ComputeScore(in)
	if score.Config.Score != 90 {
		t.Fatalf("expected config score of 90 after two 5-point penalties, got %f", score.Config.Score)
	}
	if score.Overall >= 100 {
		t.Fatalf("expected overall score below 100 after a category penalty, got %f", score.Overall)
	}
}

func TestConfidenceScoreClampsAtZero(t *testing.T) {
	in := Inputs{Config: CategoryInput{CoveragePct: 10, MissingCriticalTables: 10}}
	score := ComputeScore(in)
	if score.Config.Score != 0 {
		t.Fatalf("expected clamped score of 0, got %f", score.Config.Score)
	}
}

func TestGradeThresholds(t *testing.T) {
	cases := []struct {
		overall float64
		want    string
	}{
		{95, "A"}, {85, "B"}, {75, "C"}, {65, "D"}, {50, "F"},
	}
	for _, c := range cases {
		if got := grade(c.overall); got != c.want {
			t.Fatalf("grade(%f) = %s, want %s", c.overall, got, c.want)
		}
	}
}
