package social

import (
	"testing"
	"time"

	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
)

func at(m int) time.Time {
	return time.Date(2026, 1, 1, 0, m, 0, 0, time.UTC)
}

func TestHandoversExcludeSameResourcePairs(t *testing.T) {
	log := eventlog.New("test")
	log.AddEvent("C1", eventlog.Event{Activity: "a", Timestamp: at(0), Resource: "alice"})
	log.AddEvent("C1", eventlog.Event{Activity: "b", Timestamp: at(1), Resource: "alice"})
	log.AddEvent("C1", eventlog.Event{Activity: "c", Timestamp: at(2), Resource: "bob"})

	result := Analyze(log, nil)
	if result.Handovers["alice"]["alice"] != 0 {
		t.Fatalf("same-resource transitions must not count as handovers")
	}
	if result.Handovers["alice"]["bob"] != 1 {
		t.Fatalf("expected one alice->bob handover, got %d", result.Handovers["alice"]["bob"])
	}
}

func TestWorkingTogetherIsSymmetric(t *testing.T) {
	log := eventlog.New("test")
	log.AddEvent("C1", eventlog.Event{Activity: "a", Timestamp: at(0), Resource: "alice"})
	log.AddEvent("C1", eventlog.Event{Activity: "b", Timestamp: at(1), Resource: "bob"})

	result := Analyze(log, nil)
	if result.WorkingTogether["alice"]["bob"] != 1 || result.WorkingTogether["bob"]["alice"] != 1 {
		t.Fatalf("expected symmetric working-together counts, got %+v", result.WorkingTogether)
	}
}

func TestUtilizationBalanceReflectsCoefficientOfVariation(t *testing.T) {
	log := eventlog.New("test")
	// Balanced: alice and bob do equal work.
	for i := 0; i < 5; i++ {
		log.AddEvent("C1", eventlog.Event{Activity: "a", Timestamp: at(i), Resource: "alice"})
		log.AddEvent("C2", eventlog.Event{Activity: "a", Timestamp: at(i), Resource: "bob"})
	}
	result := Analyze(log, nil)
	if !result.Balanced {
		t.Fatalf("expected balanced workload with equal event counts, got CV=%f", result.CoefficientOfVariation)
	}
}

func TestUtilizationUnbalancedWhenOneResourceDominates(t *testing.T) {
	log := eventlog.New("test")
	for i := 0; i < 20; i++ {
		log.AddEvent("C1", eventlog.Event{Activity: "a", Timestamp: at(i), Resource: "alice"})
	}
	log.AddEvent("C2", eventlog.Event{Activity: "a", Timestamp: at(0), Resource: "bob"})

	result := Analyze(log, nil)
	if result.Balanced {
		t.Fatalf("expected imbalance flagged when one resource dominates, got CV=%f", result.CoefficientOfVariation)
	}
}

func TestSegregationOfDutiesDetectsSameResourceCreateAndApprove(t *testing.T) {
	log := eventlog.New("test")
	log.AddEvent("C1", eventlog.Event{Activity: "create_purchase_requisition", Timestamp: at(0), Resource: "alice"})
	log.AddEvent("C1", eventlog.Event{Activity: "approve_requisition", Timestamp: at(1), Resource: "alice"})

	result := Analyze(log, nil)
	if len(result.SoDViolations) != 1 {
		t.Fatalf("expected one segregation-of-duties violation, got %d", len(result.SoDViolations))
	}
	if result.SoDViolations[0].Resource != "alice" || result.SoDViolations[0].Rule != "create_vs_approve" {
		t.Fatalf("unexpected violation: %+v", result.SoDViolations[0])
	}
}

func TestSegregationOfDutiesClearWhenDifferentResources(t *testing.T) {
	log := eventlog.New("test")
	log.AddEvent("C1", eventlog.Event{Activity: "create_purchase_requisition", Timestamp: at(0), Resource: "alice"})
	log.AddEvent("C1", eventlog.Event{Activity: "approve_requisition", Timestamp: at(1), Resource: "bob"})

	result := Analyze(log, nil)
	if len(result.SoDViolations) != 0 {
		t.Fatalf("expected no violations when duties are split across resources, got %+v", result.SoDViolations)
	}
}

func TestCallerSuppliedRulesAreAppliedAlongsideDefaults(t *testing.T) {
	log := eventlog.New("test")
	log.AddEvent("C1", eventlog.Event{Activity: "set_vendor_bank_details", Timestamp: at(0), Resource: "alice"})
	log.AddEvent("C1", eventlog.Event{Activity: "release_payment", Timestamp: at(1), Resource: "alice"})

	custom := []SoDRule{{Name: "vendor_bank_vs_payment", ActivityA: "set_vendor_bank_details", ActivityB: "release_payment"}}
	result := Analyze(log, custom)

	found := false
	for _, v := range result.SoDViolations {
		if v.Rule == "vendor_bank_vs_payment" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the caller-supplied rule to be evaluated, got %+v", result.SoDViolations)
	}
}

func TestCentralityReflectsHandoverVolume(t *testing.T) {
	log := eventlog.New("test")
	log.AddEvent("C1", eventlog.Event{Activity: "a", Timestamp: at(0), Resource: "hub"})
	log.AddEvent("C1", eventlog.Event{Activity: "b", Timestamp: at(1), Resource: "alice"})
	log.AddEvent("C2", eventlog.Event{Activity: "a", Timestamp: at(0), Resource: "bob"})
	log.AddEvent("C2", eventlog.Event{Activity: "b", Timestamp: at(1), Resource: "hub"})
	log.AddEvent("C2", eventlog.Event{Activity: "c", Timestamp: at(2), Resource: "alice"})

	result := Analyze(log, nil)
	var hubCentrality, aliceCentrality float64
	for _, u := range result.Utilization {
		if u.Resource == "hub" {
			hubCentrality = u.CentralityScore
		}
		if u.Resource == "alice" {
			aliceCentrality = u.CentralityScore
		}
	}
	if hubCentrality <= aliceCentrality {
		t.Fatalf("expected hub (both in- and out-handovers) to be more central than alice (sink only): hub=%f alice=%f", hubCentrality, aliceCentrality)
	}
}
