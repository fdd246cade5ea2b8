// Package conformance replays an event log against a reference model using
// token-based conformance checking.
package conformance

import (
	"sort"

	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
	"github.com/erpforensic/reconstructor/internal/mining/referencemodel"
)

// DeviationType classifies one replay deviation.
type DeviationType string

const (
	DeviationInsert            DeviationType = "insert"
	DeviationSkip              DeviationType = "skip"
	DeviationInvalidTransition DeviationType = "invalid_transition"
	DeviationUnexpectedStart   DeviationType = "unexpected_start"
	DeviationPrematureEnd      DeviationType = "premature_end"
)

// Deviation records one observed deviation during replay of a single case.
type Deviation struct {
	CaseID   string
	Type     DeviationType
	Activity string
}

// CaseResult is the per-trace replay outcome.
type CaseResult struct {
	CaseID     string
	Fitness    float64
	Produced   int
	Consumed   int
	Missing    int
	Remaining  int
	Deviations []Deviation
}

// Result is the full token-replay outcome across an entire event log.
type Result struct {
	Fitness         float64
	Precision       float64
	ConformanceRate float64
	Cases           []CaseResult
	Deviations      []Deviation

	// DeviationCountsByType and DeviationCountsByActivity are precomputed
	// for Summary/ToSerializable; both are derived, never authoritative.
	DeviationCountsByType     map[DeviationType]int
	DeviationCountsByActivity map[string]int
	AverageDeviationsPerCase  float64
}

// Summary returns a flat scalar digest of the replay outcome.
func (r Result) Summary() map[string]interface{} {
	return map[string]interface{}{
		"fitness":                     r.Fitness,
		"precision":                   r.Precision,
		"conformance_rate":            r.ConformanceRate,
		"case_count":                  len(r.Cases),
		"deviation_count":             len(r.Deviations),
		"average_deviations_per_case": r.AverageDeviationsPerCase,
	}
}

// ToSerializable returns the full nested record, with deterministic
// (sorted) key ordering.
func (r Result) ToSerializable() map[string]interface{} {
	byType := make(map[string]int, len(r.DeviationCountsByType))
	for t, n := range r.DeviationCountsByType {
		byType[string(t)] = n
	}
	return map[string]interface{}{
		"fitness":                r.Fitness,
		"precision":              r.Precision,
		"conformance_rate":       r.ConformanceRate,
		"cases":                  r.Cases,
		"deviations_by_type":     byType,
		"deviations_by_activity": r.DeviationCountsByActivity,
	}
}

// maxBFSDepth bounds the successor search used to find a path between two
// activities during replay, per the spec's literal "bounded to depth 5".
const maxBFSDepth = 5

// Replay runs token-based conformance checking of every trace in log
// against model, per §4.2.3.
func Replay(log *eventlog.EventLog, model *referencemodel.ReferenceModel) Result {
	var (
		cases              []CaseResult
		allDeviations      []Deviation
		globalProduced     int
		globalConsumed     int
		globalMissing      int
		globalRemaining    int
		conformantCases    int
		observedEdges      = make(map[string]struct{})
	)

	for _, trace := range log.Traces() {
		cr := replayCase(trace, model)
		cases = append(cases, cr)
		allDeviations = append(allDeviations, cr.Deviations...)

		globalProduced += cr.Produced
		globalConsumed += cr.Consumed
		globalMissing += cr.Missing
		globalRemaining += cr.Remaining

		if cr.Fitness == 1.0 {
			conformantCases++
		}

		seq := trace.ActivitySequence()
		for i := 0; i+1 < len(seq); i++ {
			observedEdges[seq[i]+"\x00"+seq[i+1]] = struct{}{}
		}
	}

	fitness := 1.0
	if globalConsumed > 0 || globalProduced > 0 {
		missingRatio := ratio(globalMissing, globalConsumed)
		remainingRatio := ratio(globalRemaining, globalProduced)
		fitness = 0.5*(1-missingRatio) + 0.5*(1-remainingRatio)
	}

	precision := 1.0
	if len(model.Edges) > 0 {
		escaping := 0
		for _, e := range model.Edges {
			if _, ok := observedEdges[e.From+"\x00"+e.To]; !ok {
				escaping++
			}
		}
		precision = 1 - float64(escaping)/float64(len(model.Edges))
	}

	conformanceRate := 0.0
	if len(cases) > 0 {
		conformanceRate = float64(conformantCases) / float64(len(cases))
	}

	byType := make(map[DeviationType]int)
	byActivity := make(map[string]int)
	for _, d := range allDeviations {
		byType[d.Type]++
		byActivity[d.Activity]++
	}

	avg := 0.0
	if len(cases) > 0 {
		avg = float64(len(allDeviations)) / float64(len(cases))
	}

	sort.Slice(cases, func(i, j int) bool { return cases[i].CaseID < cases[j].CaseID })

	return Result{
		Fitness:                   fitness,
		Precision:                 precision,
		ConformanceRate:           conformanceRate,
		Cases:                     cases,
		Deviations:                allDeviations,
		DeviationCountsByType:     byType,
		DeviationCountsByActivity: byActivity,
		AverageDeviationsPerCase:  avg,
	}
}

func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

func replayCase(trace *eventlog.Trace, model *referencemodel.ReferenceModel) CaseResult {
	cr := CaseResult{CaseID: trace.CaseID}
	seq := trace.ActivitySequence()

	for i, activity := range seq {
		if i == 0 {
			switch {
			case model.IsStart(activity):
				cr.Produced++
				cr.Consumed++
			case model.HasActivity(activity):
				cr.Missing++
				cr.Consumed++
				cr.Produced++
				cr.Deviations = append(cr.Deviations, Deviation{CaseID: cr.CaseID, Type: DeviationUnexpectedStart, Activity: activity})
			default:
				cr.Missing++
				cr.Consumed++
				cr.Produced++
				cr.Deviations = append(cr.Deviations, Deviation{CaseID: cr.CaseID, Type: DeviationInsert, Activity: activity})
			}
			continue
		}

		prev := seq[i-1]
		switch {
		case model.HasEdge(prev, activity):
			cr.Produced++
			cr.Consumed++
		case model.HasActivity(activity):
			if path, ok := bfsPath(model, prev, activity, maxBFSDepth); ok {
				k := len(path)
				for range path {
					cr.Deviations = append(cr.Deviations, Deviation{CaseID: cr.CaseID, Type: DeviationSkip, Activity: activity})
				}
				cr.Produced += k
				cr.Remaining += k
				cr.Produced++
				cr.Consumed++
			} else {
				cr.Missing++
				cr.Consumed++
				cr.Produced++
				cr.Deviations = append(cr.Deviations, Deviation{CaseID: cr.CaseID, Type: DeviationInvalidTransition, Activity: activity})
			}
		default:
			cr.Missing++
			cr.Consumed++
			cr.Produced++
			cr.Deviations = append(cr.Deviations, Deviation{CaseID: cr.CaseID, Type: DeviationInsert, Activity: activity})
		}
	}

	if len(seq) > 0 {
		last := seq[len(seq)-1]
		if !model.IsEnd(last) && model.HasActivity(last) {
			if path, ok := bfsToAnyEnd(model, last, maxBFSDepth); ok {
				cr.Remaining += len(path) + 1
			} else {
				cr.Remaining++
			}
			cr.Deviations = append(cr.Deviations, Deviation{CaseID: cr.CaseID, Type: DeviationPrematureEnd, Activity: last})
		}
	}

	cr.Fitness = 1.0
	if cr.Consumed > 0 || cr.Produced > 0 {
		cr.Fitness = 0.5*(1-ratio(cr.Missing, cr.Consumed)) + 0.5*(1-ratio(cr.Remaining, cr.Produced))
	}

	return cr
}

// bfsPath searches for a path from -> to via model.Successors, expanding at
// most maxDepth+1 levels, and returns the intermediate activities (excluding
// from and to, so at most maxDepth of them) on the shortest such path.
func bfsPath(model *referencemodel.ReferenceModel, from, to string, maxDepth int) ([]string, bool) {
	type node struct {
		activity string
		path     []string
	}
	visited := map[string]bool{from: true}
	queue := []node{{activity: from, path: nil}}

	for depth := 0; depth <= maxDepth && len(queue) > 0; depth++ {
		var next []node
		for _, n := range queue {
			for _, succ := range model.Successors(n.activity) {
				if succ == to {
					return n.path, true
				}
				if visited[succ] {
					continue
				}
				visited[succ] = true
				next = append(next, node{activity: succ, path: append(append([]string(nil), n.path...), succ)})
			}
		}
		queue = next
	}
	return nil, false
}

// bfsToAnyEnd searches for a path from "from" to any declared end
// activity, expanding at most maxDepth+1 levels.
func bfsToAnyEnd(model *referencemodel.ReferenceModel, from string, maxDepth int) ([]string, bool) {
	type node struct {
		activity string
		path     []string
	}
	visited := map[string]bool{from: true}
	queue := []node{{activity: from, path: nil}}

	for depth := 0; depth <= maxDepth && len(queue) > 0; depth++ {
		var next []node
		for _, n := range queue {
			for _, succ := range model.Successors(n.activity) {
				if model.IsEnd(succ) {
					return n.path, true
				}
				if visited[succ] {
					continue
				}
				visited[succ] = true
				next = append(next, node{activity: succ, path: append(append([]string(nil), n.path...), succ)})
			}
		}
		queue = next
	}
	return nil, false
}
