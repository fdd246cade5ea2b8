// Package performance computes waiting-time, bottleneck, and cycle-time
// analyses over an event log.
package performance

import (
	"sort"

	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
	"github.com/erpforensic/reconstructor/internal/mining/statutil"
)

// TransitionStats is the waiting-time distribution for one observed
// transition ("from → to").
type TransitionStats struct {
	From      string
	To        string
	Frequency int
	Stats     statutil.Stats
}

// Bottleneck ranks a transition by median latency × frequency, the
// combined measure that surfaces transitions that are both slow and
// common rather than merely slow.
type Bottleneck struct {
	From  string
	To    string
	Score float64
}

// Result is the full performance-analysis outcome.
type Result struct {
	Transitions   []TransitionStats
	Bottlenecks   []Bottleneck
	CycleTime     statutil.Stats
	CaseCount     int
}

// Summary returns a flat scalar digest.
func (r Result) Summary() map[string]interface{} {
	return map[string]interface{}{
		"case_count":        r.CaseCount,
		"transition_count":  len(r.Transitions),
		"cycle_time_median": r.CycleTime.Median,
		"cycle_time_p90":    r.CycleTime.P90,
		"cycle_time_p95":    r.CycleTime.P95,
	}
}

// ToSerializable returns the full nested record.
func (r Result) ToSerializable() map[string]interface{} {
	return map[string]interface{}{
		"transitions": r.Transitions,
		"bottlenecks": r.Bottlenecks,
		"cycle_time":  r.CycleTime,
	}
}

// Analyze computes waiting times per transition, ranks bottlenecks, and
// builds the per-case cycle-time distribution.
func Analyze(log *eventlog.EventLog) Result {
	waitSamples := make(map[[2]string][]float64)
	var cycleTimes []float64

	for _, trace := range log.Traces() {
		events := trace.Events
		if len(events) == 0 {
			continue
		}
		cycleTimes = append(cycleTimes, events[len(events)-1].Timestamp.Sub(events[0].Timestamp).Hours())

		for i := 0; i+1 < len(events); i++ {
			from, to := events[i].Activity, events[i+1].Activity
			wait := events[i+1].Timestamp.Sub(events[i].Timestamp).Hours()
			key := [2]string{from, to}
			waitSamples[key] = append(waitSamples[key], wait)
		}
	}

	keys := make([][2]string, 0, len(waitSamples))
	for k := range waitSamples {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	var transitions []TransitionStats
	var bottlenecks []Bottleneck
	for _, k := range keys {
		samples := waitSamples[k]
		stats := statutil.Summarize(samples)
		transitions = append(transitions, TransitionStats{From: k[0], To: k[1], Frequency: len(samples), Stats: stats})
		bottlenecks = append(bottlenecks, Bottleneck{From: k[0], To: k[1], Score: stats.Median * float64(len(samples))})
	}

	sort.SliceStable(bottlenecks, func(i, j int) bool { return bottlenecks[i].Score > bottlenecks[j].Score })

	return Result{
		Transitions: transitions,
		Bottlenecks: bottlenecks,
		CycleTime:   statutil.Summarize(cycleTimes),
		CaseCount:   log.CaseCount(),
	}
}
