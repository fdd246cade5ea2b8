package intelligence

import (
	"testing"
	"time"

	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
	"github.com/erpforensic/reconstructor/internal/mining/referencemodel"
)

func at(m int) time.Time {
	return time.Date(2026, 1, 1, 0, m, 0, 0, time.UTC)
}

func TestAnalyzeWithExplicitModelPopulatesAllAnalyses(t *testing.T) {
	log := eventlog.New("o2c")
	log.AddEvent("C1", eventlog.Event{Activity: "create_sales_order", Timestamp: at(0), Resource: "alice"})
	log.AddEvent("C1", eventlog.Event{Activity: "create_delivery", Timestamp: at(10), Resource: "bob"})

	model := referencemodel.Builtins()[referencemodel.O2C]
	result := Analyze(log, model, nil, nil)

	if result.DiscoveredModel == nil {
		t.Fatalf("expected a discovered model regardless of whether an explicit model was supplied")
	}
	if result.EventLog.CaseCount() != 1 {
		t.Fatalf("expected 1 case, got %d", result.EventLog.CaseCount())
	}
	if result.Variant.VariantCount != 1 {
		t.Fatalf("expected 1 variant, got %d", result.Variant.VariantCount)
	}
	summary := result.Summary()
	if _, ok := summary["kpi_case_count"]; !ok {
		t.Fatalf("expected kpi_case_count in the combined summary, got %+v", summary)
	}
}

func TestAnalyzeWithNilModelFallsBackToDiscoveredModel(t *testing.T) {
	log := eventlog.New("custom")
	cases := []string{"C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "C9", "C10"}
	for i, caseID := range cases {
		log.AddEvent(caseID, eventlog.Event{Activity: "x", Timestamp: at(i * 10)})
		log.AddEvent(caseID, eventlog.Event{Activity: "y", Timestamp: at(i*10 + 1)})
	}

	result := Analyze(log, nil, nil, nil)
	if result.DiscoveredModel == nil {
		t.Fatalf("expected the discovered model to stand in when no explicit model is supplied")
	}
	if result.Conformance.Fitness < 0 || result.Conformance.Fitness > 1 {
		t.Fatalf("expected fitness within [0,1], got %f", result.Conformance.Fitness)
	}
}
