// Package referencemodel defines the canonical directed-graph description
// of a business process against which conformance, performance, and
// critical-path analyses are run.
package referencemodel

import "sort"

// EdgeType classifies how two activities relate. Token-based conformance
// replay (internal/mining/conformance) treats parallel and choice edges
// identically — both are alternative paths during replay, per the literal
// step-by-step algorithm that drives it; only sequence edges are "the one
// way forward" in the colloquial sense.
type EdgeType string

const (
	EdgeSequence EdgeType = "sequence"
	EdgeParallel EdgeType = "parallel"
	EdgeChoice   EdgeType = "choice"
)

// Edge is one directed transition in a ReferenceModel.
type Edge struct {
	From string
	To   string
	Type EdgeType
}

// SLATarget is the expected duration for one transition.
type SLATarget struct {
	Target   float64
	Unit     string
	Severity string
}

// ReferenceModel is a canonical process description: the fixed activity
// vocabulary, its edges, start/end activities, SLA targets keyed by
// "A → B", and a caller-supplied list of critical transitions ("A → B"
// strings). CriticalTransitions is carried on the model only; no analysis
// in this module reads it.
//
// Cycles are permitted — rework loops and periodic postings are normal —
// so CriticalPath falls back to a depth-bounded search when the graph is
// not a DAG rather than assuming a topological order exists.
type ReferenceModel struct {
	ID                  string
	Name                string
	Activities          []string
	Edges               []Edge
	StartActivities     []string
	EndActivities       []string
	SLATargets          map[string]SLATarget
	CriticalTransitions []string

	activitySet   map[string]struct{}
	startSet      map[string]struct{}
	endSet        map[string]struct{}
	successors    map[string][]string
	predecessors  map[string][]string
	edgeByPair    map[string]Edge
}

// New builds a ReferenceModel and its derived O(1)-lookup indices.
func New(id, name string, activities []string, edges []Edge, start, end []string, sla map[string]SLATarget, critical []string) *ReferenceModel {
	m := &ReferenceModel{
		ID:                  id,
		Name:                name,
		Activities:          activities,
		Edges:               edges,
		StartActivities:     start,
		EndActivities:       end,
		SLATargets:          sla,
		CriticalTransitions: critical,
		activitySet:         make(map[string]struct{}, len(activities)),
		startSet:            make(map[string]struct{}, len(start)),
		endSet:              make(map[string]struct{}, len(end)),
		successors:          make(map[string][]string),
		predecessors:        make(map[string][]string),
		edgeByPair:          make(map[string]Edge, len(edges)),
	}
	for _, a := range activities {
		m.activitySet[a] = struct{}{}
	}
	for _, a := range start {
		m.startSet[a] = struct{}{}
	}
	for _, a := range end {
		m.endSet[a] = struct{}{}
	}
	for _, e := range edges {
		m.successors[e.From] = append(m.successors[e.From], e.To)
		m.predecessors[e.To] = append(m.predecessors[e.To], e.From)
		m.edgeByPair[pairKey(e.From, e.To)] = e
	}
	for k := range m.successors {
		sort.Strings(m.successors[k])
	}
	for k := range m.predecessors {
		sort.Strings(m.predecessors[k])
	}
	return m
}

func pairKey(from, to string) string { return from + "\x00" + to }

// HasActivity reports whether a is part of the model's vocabulary.
func (m *ReferenceModel) HasActivity(a string) bool {
	_, ok := m.activitySet[a]
	return ok
}

// IsStart reports whether a is a declared start activity.
func (m *ReferenceModel) IsStart(a string) bool {
	_, ok := m.startSet[a]
	return ok
}

// IsEnd reports whether a is a declared end activity.
func (m *ReferenceModel) IsEnd(a string) bool {
	_, ok := m.endSet[a]
	return ok
}

// HasEdge reports whether from→to is a direct edge in the model.
func (m *ReferenceModel) HasEdge(from, to string) bool {
	_, ok := m.edgeByPair[pairKey(from, to)]
	return ok
}

// Edge returns the edge from→to and whether it exists.
func (m *ReferenceModel) Edge(from, to string) (Edge, bool) {
	e, ok := m.edgeByPair[pairKey(from, to)]
	return e, ok
}

// Successors returns the sorted list of activities directly reachable
// from a.
func (m *ReferenceModel) Successors(a string) []string { return m.successors[a] }

// Predecessors returns the sorted list of activities with a direct edge
// into a.
func (m *ReferenceModel) Predecessors(a string) []string { return m.predecessors[a] }

// SLA looks up the SLA target for the "from → to" transition.
func (m *ReferenceModel) SLA(from, to string) (SLATarget, bool) {
	sla, ok := m.SLATargets[from+" → "+to]
	return sla, ok
}

// HasCycle reports whether the model's edge set contains a cycle, via
// three-colour DFS.
func (m *ReferenceModel) HasCycle() bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(m.Activities))
	var visit func(string) bool
	visit = func(a string) bool {
		color[a] = gray
		for _, next := range m.successors[a] {
			switch color[next] {
			case gray:
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		color[a] = black
		return false
	}
	for _, a := range m.Activities {
		if color[a] == white {
			if visit(a) {
				return true
			}
		}
	}
	return false
}
