// Package social computes resource-centric analyses over an event log:
// handovers, collaboration, utilisation, and segregation-of-duties checks.
package social

import (
	"math"
	"sort"

	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
	"github.com/erpforensic/reconstructor/internal/mining/statutil"
)

// SoDRule is a segregation-of-duties rule: resourceA must never perform
// both activities in the same case.
type SoDRule struct {
	Name        string
	ActivityA   string
	ActivityB   string
}

// SoDViolation is one resource violating one rule in one case.
type SoDViolation struct {
	Rule     string
	Resource string
	CaseID   string
}

// ResourceUtilization is the per-resource workload summary.
type ResourceUtilization struct {
	Resource         string
	EventCount       int
	PrimaryActivity  string
	CentralityScore  float64
}

// Result is the full social-network-analysis outcome.
type Result struct {
	Handovers        map[string]map[string]int
	WorkingTogether   map[string]map[string]int
	ActivityResource map[string]map[string]int
	Utilization      []ResourceUtilization
	Balanced         bool
	CoefficientOfVariation float64
	SoDViolations    []SoDViolation
}

// Summary returns a flat scalar digest.
func (r Result) Summary() map[string]interface{} {
	return map[string]interface{}{
		"resource_count":          len(r.Utilization),
		"balanced":                r.Balanced,
		"coefficient_of_variation": r.CoefficientOfVariation,
		"sod_violation_count":     len(r.SoDViolations),
	}
}

// ToSerializable returns the full nested record.
func (r Result) ToSerializable() map[string]interface{} {
	return map[string]interface{}{
		"handovers":         r.Handovers,
		"working_together":  r.WorkingTogether,
		"activity_resource": r.ActivityResource,
		"utilization":       r.Utilization,
		"sod_violations":    r.SoDViolations,
	}
}

// DefaultSoDRules returns the baseline segregation-of-duties checks common
// to financial ERP processes: the same person must not both create and
// approve a document, nor both post and reconcile it.
func DefaultSoDRules() []SoDRule {
	return []SoDRule{
		{Name: "create_vs_approve", ActivityA: "create_purchase_requisition", ActivityB: "approve_requisition"},
		{Name: "post_vs_reconcile", ActivityA: "post_journal_entry", ActivityB: "reconcile_account"},
	}
}

// Analyze computes the full social-network result, applying rules in
// addition to DefaultSoDRules.
func Analyze(log *eventlog.EventLog, rules []SoDRule) Result {
	handovers := make(map[string]map[string]int)
	workingTogether := make(map[string]map[string]int)
	activityResource := make(map[string]map[string]int)
	eventsByResource := make(map[string]int)
	activityCountByResource := make(map[string]map[string]int)
	inVolume := make(map[string]int)
	outVolume := make(map[string]int)

	allRules := append(append([]SoDRule(nil), DefaultSoDRules()...), rules...)
	var violations []SoDViolation

	for _, trace := range log.Traces() {
		events := trace.Events
		caseResources := make(map[string]struct{})

		for i, ev := range events {
			if ev.Resource == "" {
				continue
			}
			eventsByResource[ev.Resource]++
			caseResources[ev.Resource] = struct{}{}

			if activityResource[ev.Activity] == nil {
				activityResource[ev.Activity] = make(map[string]int)
			}
			activityResource[ev.Activity][ev.Resource]++

			if activityCountByResource[ev.Resource] == nil {
				activityCountByResource[ev.Resource] = make(map[string]int)
			}
			activityCountByResource[ev.Resource][ev.Activity]++

			if i+1 < len(events) {
				next := events[i+1]
				if next.Resource != "" && next.Resource != ev.Resource {
					if handovers[ev.Resource] == nil {
						handovers[ev.Resource] = make(map[string]int)
					}
					handovers[ev.Resource][next.Resource]++
					outVolume[ev.Resource]++
					inVolume[next.Resource]++
				}
			}

			for _, rule := range allRules {
				if ev.Activity != rule.ActivityA && ev.Activity != rule.ActivityB {
					continue
				}
				other := rule.ActivityA
				if ev.Activity == rule.ActivityA {
					other = rule.ActivityB
				}
				for _, prior := range events[:i] {
					if prior.Activity == other && prior.Resource == ev.Resource && prior.Resource != "" {
						violations = append(violations, SoDViolation{Rule: rule.Name, Resource: ev.Resource, CaseID: trace.CaseID})
					}
				}
			}
		}

		resources := make([]string, 0, len(caseResources))
		for r := range caseResources {
			resources = append(resources, r)
		}
		sort.Strings(resources)
		for i := 0; i < len(resources); i++ {
			for j := i + 1; j < len(resources); j++ {
				incr(workingTogether, resources[i], resources[j])
				incr(workingTogether, resources[j], resources[i])
			}
		}
	}

	var utilization []ResourceUtilization
	var counts []float64
	resourceNames := make([]string, 0, len(eventsByResource))
	for r := range eventsByResource {
		resourceNames = append(resourceNames, r)
	}
	sort.Strings(resourceNames)

	for _, r := range resourceNames {
		count := eventsByResource[r]
		counts = append(counts, float64(count))
		utilization = append(utilization, ResourceUtilization{
			Resource:        r,
			EventCount:      count,
			PrimaryActivity: primaryActivity(activityCountByResource[r]),
			CentralityScore: math.Sqrt(float64(inVolume[r]) * float64(outVolume[r])),
		})
	}

	stats := statutil.Summarize(counts)
	cv := statutil.CoefficientOfVariation(stats.Mean, stats.Stddev)

	return Result{
		Handovers:              handovers,
		WorkingTogether:        workingTogether,
		ActivityResource:       activityResource,
		Utilization:            utilization,
		Balanced:               cv < 0.5,
		CoefficientOfVariation: cv,
		SoDViolations:          violations,
	}
}

func incr(m map[string]map[string]int, a, b string) {
	if m[a] == nil {
		m[a] = make(map[string]int)
	}
	m[a][b]++
}

func primaryActivity(counts map[string]int) string {
	best := ""
	bestCount := -1
	names := make([]string, 0, len(counts))
	for a := range counts {
		names = append(names, a)
	}
	sort.Strings(names)
	for _, a := range names {
		if counts[a] > bestCount {
			bestCount = counts[a]
			best = a
		}
	}
	return best
}
