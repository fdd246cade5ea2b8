package kpi

import (
	"testing"
	"time"

	"github.com/erpforensic/reconstructor/internal/mining/conformance"
	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
	"github.com/erpforensic/reconstructor/internal/mining/referencemodel"
	"github.com/erpforensic/reconstructor/internal/mining/social"
	"github.com/erpforensic/reconstructor/internal/mining/variant"
)

func at(m int) time.Time {
	return time.Date(2026, 1, 1, 0, m, 0, 0, time.UTC)
}

func buildLog() *eventlog.EventLog {
	log := eventlog.New("test")
	log.AddEvent("C1", eventlog.Event{Activity: "a", Timestamp: at(0), Resource: "alice"})
	log.AddEvent("C1", eventlog.Event{Activity: "b", Timestamp: at(10), Resource: "SYSTEM"})
	log.AddEvent("C2", eventlog.Event{Activity: "a", Timestamp: at(0), Resource: "bob"})
	log.AddEvent("C2", eventlog.Event{Activity: "a", Timestamp: at(5), Resource: "bob"})
	log.AddEvent("C2", eventlog.Event{Activity: "b", Timestamp: at(20), Resource: "RFC_DEST"})
	return log
}

func TestComputeProducesAllCategories(t *testing.T) {
	log := buildLog()
	model := referencemodel.Builtins()[referencemodel.O2C]
	conf := conformance.Replay(log, model)
	varResult := variant.Analyze(log)
	socResult := social.Analyze(log, nil)

	report := Compute(log, conf, varResult, socResult, nil)

	if _, ok := report.Time["cycle_time_hours"]; !ok {
		t.Fatalf("expected a cycle_time_hours time KPI")
	}
	if _, ok := report.Quality["rework_rate"]; !ok {
		t.Fatalf("expected a rework_rate quality KPI")
	}
	if _, ok := report.Volume["case_count"]; !ok {
		t.Fatalf("expected a case_count volume KPI")
	}
	if report.Volume["case_count"].Value != 2 {
		t.Fatalf("expected case_count of 2, got %f", report.Volume["case_count"].Value)
	}
	if _, ok := report.Conformance["fitness"]; !ok {
		t.Fatalf("expected a fitness conformance KPI")
	}
	if _, ok := report.Resource["automation_rate"]; !ok {
		t.Fatalf("expected an automation_rate resource KPI")
	}
}

func TestAutomationRateCountsSystemAndRFCResources(t *testing.T) {
	log := buildLog()
	model := referencemodel.Builtins()[referencemodel.O2C]
	conf := conformance.Replay(log, model)
	report := Compute(log, conf, variant.Analyze(log), social.Analyze(log, nil), nil)

	// Resources: alice, bob, SYSTEM, RFC_DEST -> 2 of 4 automated.
	rate := report.Resource["automation_rate"]
	if rate.Value != 0.5 {
		t.Fatalf("expected automation_rate of 0.5, got %f", rate.Value)
	}
}

func TestReworkRateDetectsRepeatedActivity(t *testing.T) {
	log := buildLog()
	model := referencemodel.Builtins()[referencemodel.O2C]
	conf := conformance.Replay(log, model)
	report := Compute(log, conf, variant.Analyze(log), social.Analyze(log, nil), nil)

	// C2 repeats activity "a" -> 1 of 2 cases has rework.
	if report.Quality["rework_rate"].Value != 0.5 {
		t.Fatalf("expected rework_rate of 0.5, got %f", report.Quality["rework_rate"].Value)
	}
}

func TestConfidenceIntervalBoundsContainValue(t *testing.T) {
	log := buildLog()
	model := referencemodel.Builtins()[referencemodel.O2C]
	conf := conformance.Replay(log, model)
	report := Compute(log, conf, variant.Analyze(log), social.Analyze(log, nil), nil)

	m := report.Time["cycle_time_hours"]
	if m.CI.Lower > m.Value || m.Value > m.CI.Upper {
		t.Fatalf("expected value within CI bounds, got value=%f lower=%f upper=%f", m.Value, m.CI.Lower, m.CI.Upper)
	}

	fitness := report.Conformance["fitness"]
	if fitness.CI.Lower > fitness.Value || fitness.Value > fitness.CI.Upper {
		t.Fatalf("expected fitness within CI bounds, got value=%f lower=%f upper=%f", fitness.Value, fitness.CI.Lower, fitness.CI.Upper)
	}

	caseCount := report.Volume["case_count"]
	if caseCount.CI.Lower > caseCount.Value || caseCount.Value > caseCount.CI.Upper {
		t.Fatalf("expected case_count within CI bounds, got value=%f lower=%f upper=%f", caseCount.Value, caseCount.CI.Lower, caseCount.CI.Upper)
	}
}

func TestCustomKPIsAreComputedFromCatalogue(t *testing.T) {
	log := buildLog()
	model := referencemodel.Builtins()[referencemodel.O2C]
	conf := conformance.Replay(log, model)

	custom := []CustomKPI{
		{
			Name: "b_activity_count",
			Unit: "count",
			MatchEvents: func(l *eventlog.EventLog) []float64 {
				var out []float64
				for _, trace := range l.Traces() {
					count := 0.0
					for _, ev := range trace.Events {
						if ev.Activity == "b" {
							count++
						}
					}
					out = append(out, count)
				}
				return out
			},
		},
	}

	report := Compute(log, conf, variant.Analyze(log), social.Analyze(log, nil), custom)
	if _, ok := report.ProcessSpecific["b_activity_count"]; !ok {
		t.Fatalf("expected process-specific KPI to be present")
	}
}
