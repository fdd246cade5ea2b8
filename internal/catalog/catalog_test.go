package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/erpforensic/reconstructor/internal/coverage"
	"github.com/erpforensic/reconstructor/internal/extraction"
	"github.com/erpforensic/reconstructor/internal/gap"
	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
	"github.com/erpforensic/reconstructor/internal/mining/intelligence"
	"github.com/erpforensic/reconstructor/internal/mining/referencemodel"
)

func buildReport(t *testing.T) ForensicReport {
	t.Helper()
	log := eventlog.New("o2c")
	log.AddEvent("C1", eventlog.Event{Activity: "create_sales_order", Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})
	log.AddEvent("C1", eventlog.Event{Activity: "create_delivery", Timestamp: time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)})

	model := referencemodel.Builtins()[referencemodel.O2C]
	result := intelligence.Analyze(log, model, nil, nil)

	moduleResults := map[string]extraction.Result{
		"financials": {ExtractorID: "financials", Status: extraction.StatusSuccess, Tables: map[string][]extraction.Row{"GL_ACCOUNTS": {{}}}},
		"security":   {ExtractorID: "security", Status: extraction.StatusError, Error: "transport error"},
	}

	dict := extraction.NewDataDictionary()
	dict.Relationships = []extraction.Relationship{{FromTable: "CHANGE_DOCUMENT_ITEMS", FromField: "change_id", ToTable: "CHANGE_DOCUMENTS", ToField: "id"}}

	gapReport := gap.Report{Gaps: []gap.Gap{
		{Category: gap.CategoryAuthorization, Severity: gap.SeverityWarning, Message: "auth failure", ExtractorID: "security", Table: "AUTH_OBJECTS"},
	}}
	confidence := gap.ComputeScore(gap.Inputs{
		Config: gap.CategoryInput{CoveragePct: 80},
	})

	return ForensicReport{
		SystemID:    "TST",
		GeneratedAt: time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
		Coverage:    coverage.SystemReport{ExtractorReport: coverage.ExtractorReport{Extracted: 1, Failed: 1, Total: 2, CoveragePct: 50, Tables: map[string]coverage.Record{}}, ExtractorCount: 2},
		ModuleResults: moduleResults,
		Catalog:     ProcessCatalog{Processes: map[string]intelligence.Result{"O2C": result}},
		Gaps:        gapReport,
		Confidence:  confidence,
		DataDictionary: dict,
	}
}

func TestToSerializableIsTheSharedRoot(t *testing.T) {
	report := buildReport(t)
	tree := report.ToSerializable()

	if tree["system_id"] != "TST" {
		t.Fatalf("expected system_id TST, got %v", tree["system_id"])
	}
	modules, ok := tree["modules"].(map[string]interface{})
	if !ok || len(modules) != 2 {
		t.Fatalf("expected 2 modules in the serializable tree, got %+v", tree["modules"])
	}
}

func TestExecutiveSummaryDerivesFromSerializable(t *testing.T) {
	report := buildReport(t)
	summary := report.ToExecutiveSummary()
	if summary["system_id"] != "TST" {
		t.Fatalf("expected system_id in executive summary, got %+v", summary)
	}
	if summary["process_count"] != 1 {
		t.Fatalf("expected 1 process, got %v", summary["process_count"])
	}
}

func TestModuleReportReturnsNilForUnknownModule(t *testing.T) {
	report := buildReport(t)
	if report.ToModuleReport("nonexistent") != nil {
		t.Fatalf("expected nil for an unknown module")
	}
	if report.ToModuleReport("financials") == nil {
		t.Fatalf("expected a non-nil module report for financials")
	}
}

func TestProcessMapIncludesDiscoveredActivities(t *testing.T) {
	report := buildReport(t)
	pm := report.ToProcessMap()
	o2c, ok := pm["O2C"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected O2C in the process map, got %+v", pm)
	}
	if _, ok := o2c["activities"]; !ok {
		t.Fatalf("expected activities key in process map entry")
	}
}

func TestDependencyGraphReflectsDataDictionaryRelationships(t *testing.T) {
	report := buildReport(t)
	dg := report.ToDependencyGraph()
	edges := dg["edges"].([]map[string]string)
	if len(edges) != 1 || edges[0]["from_table"] != "CHANGE_DOCUMENT_ITEMS" {
		t.Fatalf("expected one relationship edge from the data dictionary, got %+v", edges)
	}
}

func TestGapReportIncludesHumanValidationChecklist(t *testing.T) {
	report := buildReport(t)
	gr := report.ToGapReport()
	checklist := gr["human_validation_checklist"].([]string)
	if len(checklist) != 1 || !strings.Contains(checklist[0], "security") {
		t.Fatalf("expected one checklist item mentioning security, got %+v", checklist)
	}
}

func TestMarkdownRendersAllRequiredSections(t *testing.T) {
	report := buildReport(t)
	md := report.ToMarkdown()
	for _, section := range []string{"Executive Summary", "Module Coverage", "Process Mining Summaries", "Gaps & Confidence", "Human validation checklist"} {
		if !strings.Contains(md, section) {
			t.Fatalf("expected markdown to contain section %q, got:\n%s", section, md)
		}
	}
}
