package coverage

import (
	"testing"
	"time"
)

func TestTrackLastWriteWins(t *testing.T) {
	tr := New()
	tr.Track("fin", "GL_ACCOUNTS", StatusFailed, Detail{Error: "timeout"}, time.Unix(1, 0))
	tr.Track("fin", "GL_ACCOUNTS", StatusExtracted, Detail{RowCount: 42}, time.Unix(2, 0))

	report := tr.Report("fin")
	if report.Total != 1 {
		t.Fatalf("expected 1 tracked table, got %d", report.Total)
	}
	if report.Extracted != 1 || report.Failed != 0 {
		t.Fatalf("expected last write (extracted) to win, got %+v", report)
	}
}

func TestReportCoveragePercent(t *testing.T) {
	tr := New()
	now := time.Unix(1, 0)
	tr.Track("fin", "A", StatusExtracted, Detail{}, now)
	tr.Track("fin", "B", StatusPartial, Detail{}, now)
	tr.Track("fin", "C", StatusFailed, Detail{}, now)
	tr.Track("fin", "D", StatusSkipped, Detail{}, now)

	report := tr.Report("fin")
	if report.Total != 4 {
		t.Fatalf("expected 4 tables, got %d", report.Total)
	}
	// (extracted + partial) / total * 100 = 2/4*100 = 50
	if report.CoveragePct != 50 {
		t.Fatalf("expected 50%% coverage, got %d", report.CoveragePct)
	}
}

func TestReportZeroTotalIsZeroPercent(t *testing.T) {
	tr := New()
	report := tr.Report("nonexistent")
	if report.CoveragePct != 0 {
		t.Fatalf("expected 0%% coverage for untracked extractor, got %d", report.CoveragePct)
	}
}

func TestSystemReportAggregatesAcrossExtractors(t *testing.T) {
	tr := New()
	now := time.Unix(1, 0)
	tr.Track("fin", "A", StatusExtracted, Detail{}, now)
	tr.Track("sec", "B", StatusExtracted, Detail{}, now)
	tr.Track("sec", "C", StatusFailed, Detail{}, now)

	sys := tr.SystemReport()
	if sys.ExtractorCount != 2 {
		t.Fatalf("expected 2 distinct extractors, got %d", sys.ExtractorCount)
	}
	if sys.Total != 3 {
		t.Fatalf("expected 3 total records, got %d", sys.Total)
	}
}

func TestGapsExcludesExtractedOnly(t *testing.T) {
	tr := New()
	now := time.Unix(1, 0)
	tr.Track("fin", "A", StatusExtracted, Detail{}, now)
	tr.Track("fin", "B", StatusFailed, Detail{Error: "boom"}, now)
	tr.Track("fin", "C", StatusSkipped, Detail{Reason: "no_rfc"}, now)

	gaps := tr.Gaps()
	if len(gaps) != 2 {
		t.Fatalf("expected 2 gap records, got %d", len(gaps))
	}
	for _, g := range gaps {
		if g.Status == StatusExtracted {
			t.Fatalf("extracted record leaked into gaps: %+v", g)
		}
	}
}

func TestConcurrentTrackIsSafe(t *testing.T) {
	tr := New()
	done := make(chan struct{})
	for i := 0; i < 20; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			tr.Track("extractor", "TABLE", StatusExtracted, Detail{RowCount: i}, time.Unix(int64(i), 0))
		}(i)
	}
	for i := 0; i < 20; i++ {
		<-done
	}
	report := tr.Report("extractor")
	if report.Total != 1 {
		t.Fatalf("expected single deduped record, got %d", report.Total)
	}
}
