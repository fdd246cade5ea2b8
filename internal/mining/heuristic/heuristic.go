// Package heuristic discovers a process model directly from an event log,
// without a reference model, using the heuristic-miner dependency measure.
package heuristic

import (
	"sort"

	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
	"github.com/erpforensic/reconstructor/internal/mining/referencemodel"
)

// Options configures the miner. Thresholds are expressed on the [0,1]
// dependency measure; MainFlowThreshold governs the primary discovered
// edges, LoopThreshold (typically 0.0) applies to self-loops (a→a) only;
// every other pair, including both edges of a two-activity cycle, is held
// to MainFlowThreshold.
type Options struct {
	MainFlowThreshold float64
	LoopThreshold     float64
}

// DefaultOptions matches the spec's defaults: 0.9 for main flow, 0.0 for
// loops.
func DefaultOptions() Options {
	return Options{MainFlowThreshold: 0.9, LoopThreshold: 0.0}
}

// Mine builds a discovered model from log's traces. The result is shaped as
// a referencemodel.ReferenceModel — comparable to, and usable anywhere, a
// built-in reference model is — so conformance/performance analyses never
// need to distinguish "discovered" from "canonical" models.
func Mine(log *eventlog.EventLog, opts Options) *referencemodel.ReferenceModel {
	counts := make(map[[2]string]int)
	activitySet := make(map[string]struct{})

	for _, trace := range log.Traces() {
		seq := trace.ActivitySequence()
		for _, a := range seq {
			activitySet[a] = struct{}{}
		}
		for i := 0; i+1 < len(seq); i++ {
			counts[[2]string{seq[i], seq[i+1]}]++
		}
	}

	activities := make([]string, 0, len(activitySet))
	for a := range activitySet {
		activities = append(activities, a)
	}
	sort.Strings(activities)

	var edges []referencemodel.Edge
	hasIncoming := make(map[string]bool)
	hasOutgoing := make(map[string]bool)

	pairs := make([][2]string, 0, len(counts))
	for pair := range counts {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		forward := counts[[2]string{a, b}]
		backward := counts[[2]string{b, a}]
		measure := dependencyMeasure(forward, backward)

		threshold := opts.MainFlowThreshold
		if a == b {
			threshold = opts.LoopThreshold
		}
		if measure < threshold {
			continue
		}

		edges = append(edges, referencemodel.Edge{From: a, To: b, Type: referencemodel.EdgeSequence})
		hasOutgoing[a] = true
		hasIncoming[b] = true
	}

	var starts, ends []string
	for _, a := range activities {
		if !hasIncoming[a] {
			starts = append(starts, a)
		}
		if !hasOutgoing[a] {
			ends = append(ends, a)
		}
	}

	return referencemodel.New("discovered", "Heuristic-mined model", activities, edges, starts, ends, map[string]referencemodel.SLATarget{}, nil)
}

// dependencyMeasure computes |a→b| − |b→a| normalised by |a→b| + |b→a| + 1.
func dependencyMeasure(forward, backward int) float64 {
	return float64(forward-backward) / float64(forward+backward+1)
}
