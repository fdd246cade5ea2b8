// Package kpi computes the statistical KPI report over a mined process:
// time, quality, volume, conformance, and resource categories, plus any
// process-specific KPIs named in a configuration's KPI catalogue.
package kpi

import (
	"regexp"
	"sort"

	"github.com/erpforensic/reconstructor/internal/mining/conformance"
	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
	"github.com/erpforensic/reconstructor/internal/mining/social"
	"github.com/erpforensic/reconstructor/internal/mining/statutil"
	"github.com/erpforensic/reconstructor/internal/mining/variant"
)

// automatedResource matches technical/batch actors per the resource KPI
// category's automation-rate definition.
var automatedResource = regexp.MustCompile(`^(SYSTEM|BATCH|RFC.*|WF-BATCH.*)$`)

// Metric is one numeric KPI with its distribution and confidence interval.
type Metric struct {
	Value float64
	Unit  string
	Count int
	CI    statutil.ConfidenceInterval
	Stats statutil.Stats
}

// CustomKPI names a process-specific KPI drawn from a configuration's KPI
// catalogue: a scalar computed by counting matching activities or events.
type CustomKPI struct {
	Name        string
	Unit        string
	MatchEvents func(*eventlog.EventLog) []float64
}

// Report is the full per-category KPI set.
type Report struct {
	Time         map[string]Metric
	Quality      map[string]Metric
	Volume       map[string]Metric
	Conformance  map[string]Metric
	Resource     map[string]Metric
	ProcessSpecific map[string]Metric
}

// Summary returns a flat scalar digest (headline value per KPI name).
func (r Report) Summary() map[string]interface{} {
	out := make(map[string]interface{})
	for _, cat := range []map[string]Metric{r.Time, r.Quality, r.Volume, r.Conformance, r.Resource, r.ProcessSpecific} {
		for name, m := range cat {
			out[name] = m.Value
		}
	}
	return out
}

// ToSerializable returns the full nested record.
func (r Report) ToSerializable() map[string]interface{} {
	return map[string]interface{}{
		"time":             r.Time,
		"quality":          r.Quality,
		"volume":           r.Volume,
		"conformance":      r.Conformance,
		"resource":         r.Resource,
		"process_specific": r.ProcessSpecific,
	}
}

// defaultConfidenceLevel is the z-approximation level used for every
// interval in a report; it is fixed, not supplied by callers.
const defaultConfidenceLevel = 0.95

// Compute builds the full KPI report from a mined event log and its
// accompanying conformance, variant, and social-network results.
func Compute(log *eventlog.EventLog, conf conformance.Result, var_ variant.Result, soc social.Result, custom []CustomKPI) Report {
	return Report{
		Time:            timeKPIs(log),
		Quality:         qualityKPIs(log, var_),
		Volume:          volumeKPIs(log),
		Conformance:     conformanceKPIs(conf),
		Resource:        resourceKPIs(log, soc),
		ProcessSpecific: processSpecificKPIs(log, custom),
	}
}

func metric(values []float64, unit string) Metric {
	stats := statutil.Summarize(values)
	ci := statutil.Interval(stats.Mean, stats.Stddev, len(values), defaultConfidenceLevel)
	return Metric{Value: stats.Mean, Unit: unit, Count: len(values), CI: ci, Stats: stats}
}

func scalarMetric(value float64, unit string, n int) Metric {
	ci := statutil.ConfidenceInterval{Level: defaultConfidenceLevel, Lower: value, Upper: value}
	return Metric{Value: value, Unit: unit, Count: n, CI: ci, Stats: statutil.Stats{Mean: value, Median: value, Min: value, Max: value}}
}

func timeKPIs(log *eventlog.EventLog) map[string]Metric {
	var cycleTimes, touchTimes, activitiesPerCase []float64
	for _, trace := range log.Traces() {
		events := trace.Events
		if len(events) == 0 {
			continue
		}
		cycleTimes = append(cycleTimes, events[len(events)-1].Timestamp.Sub(events[0].Timestamp).Hours())
		activitiesPerCase = append(activitiesPerCase, float64(len(events)))

		touch := 0.0
		for i := 0; i+1 < len(events); i++ {
			touch += events[i+1].Timestamp.Sub(events[i].Timestamp).Hours()
		}
		touchTimes = append(touchTimes, touch)
	}
	return map[string]Metric{
		"cycle_time_hours":       metric(cycleTimes, "hours"),
		"touch_time_hours":       metric(touchTimes, "hours"),
		"activities_per_case":    metric(activitiesPerCase, "count"),
	}
}

func qualityKPIs(log *eventlog.EventLog, var_ variant.Result) map[string]Metric {
	totalCases := log.CaseCount()
	reworkCases := 0
	selfLoops := 0
	totalTransitions := 0
	for _, trace := range log.Traces() {
		seq := trace.ActivitySequence()
		seen := make(map[string]struct{}, len(seq))
		hasRework := false
		for i, a := range seq {
			if _, ok := seen[a]; ok {
				hasRework = true
			}
			seen[a] = struct{}{}
			if i+1 < len(seq) {
				totalTransitions++
				if seq[i+1] == a {
					selfLoops++
				}
			}
		}
		if hasRework {
			reworkCases++
		}
	}

	happyPathCases := 0
	if var_.HappyPath != nil {
		happyPathCases = len(var_.HappyPath.CaseIDs)
	}

	return map[string]Metric{
		"rework_rate":        ratioMetric(reworkCases, totalCases, "ratio"),
		"first_time_right":   ratioMetric(totalCases-reworkCases, totalCases, "ratio"),
		"self_loop_rate":     ratioMetric(selfLoops, totalTransitions, "ratio"),
		"happy_path_rate":    ratioMetric(happyPathCases, totalCases, "ratio"),
		"variant_count":      scalarMetric(float64(var_.VariantCount), "count", totalCases),
		"straight_through":   ratioMetric(happyPathCases, totalCases, "ratio"),
	}
}

func volumeKPIs(log *eventlog.EventLog) map[string]Metric {
	occupancy := make(map[string]int)
	for _, trace := range log.Traces() {
		events := trace.Events
		for i := 0; i+1 < len(events); i++ {
			occupancy[events[i].Activity]++
		}
	}
	var occupancySamples []float64
	names := make([]string, 0, len(occupancy))
	for a := range occupancy {
		names = append(names, a)
	}
	sort.Strings(names)
	for _, a := range names {
		occupancySamples = append(occupancySamples, float64(occupancy[a]))
	}

	return map[string]Metric{
		"case_count":     scalarMetric(float64(log.CaseCount()), "count", log.CaseCount()),
		"event_count":    scalarMetric(float64(log.EventCount()), "count", log.EventCount()),
		"activity_count": scalarMetric(float64(len(log.Activities())), "count", len(log.Activities())),
		"avg_wip":        metric(occupancySamples, "count"),
	}
}

func conformanceKPIs(conf conformance.Result) map[string]Metric {
	n := len(conf.Cases)
	return map[string]Metric{
		"fitness":          scalarMetric(conf.Fitness, "ratio", n),
		"precision":        scalarMetric(conf.Precision, "ratio", n),
		"conformance_rate": scalarMetric(conf.ConformanceRate, "ratio", n),
	}
}

func resourceKPIs(log *eventlog.EventLog, soc social.Result) map[string]Metric {
	resources := log.Resources()
	automated := 0
	for _, r := range resources {
		if automatedResource.MatchString(r) {
			automated++
		}
	}

	handoverTotal := 0
	for _, targets := range soc.Handovers {
		for _, n := range targets {
			handoverTotal += n
		}
	}
	caseCount := log.CaseCount()
	handoversPerCase := 0.0
	if caseCount > 0 {
		handoversPerCase = float64(handoverTotal) / float64(caseCount)
	}

	return map[string]Metric{
		"unique_resource_count": scalarMetric(float64(len(resources)), "count", len(resources)),
		"handovers_per_case":    scalarMetric(handoversPerCase, "ratio", caseCount),
		"automation_rate":       ratioMetric(automated, len(resources), "ratio"),
	}
}

func processSpecificKPIs(log *eventlog.EventLog, custom []CustomKPI) map[string]Metric {
	out := make(map[string]Metric, len(custom))
	for _, c := range custom {
		values := c.MatchEvents(log)
		out[c.Name] = metric(values, c.Unit)
	}
	return out
}

func ratioMetric(numerator, denominator int, unit string) Metric {
	value := 0.0
	if denominator > 0 {
		value = float64(numerator) / float64(denominator)
	}
	return scalarMetric(value, unit, denominator)
}
