// Package eventlog defines the case/trace/event model that every downstream
// process-mining analysis operates over, plus the builder that folds
// tabular extraction results into one.
package eventlog

import (
	"sort"
	"time"
)

// Event is a single observed activity occurrence. Attributes carries
// whatever enrichment the source row offered beyond activity/timestamp/
// resource; analyses never rely on a fixed attribute schema.
type Event struct {
	Activity   string
	Timestamp  time.Time
	Resource   string
	Attributes map[string]interface{}
}

// EpochMillis returns the event's timestamp as milliseconds since the Unix
// epoch, the canonical ordering key. The Builder emits no event for a row
// whose timestamp does not parse, so such rows appear in no trace and in no
// analysis; the analyses themselves do not filter on a zero Timestamp.
func (e Event) EpochMillis() int64 {
	return e.Timestamp.UnixMilli()
}

// Trace is the ordered event history for one case. Events are kept sorted
// by timestamp ascending, stable on ties (insertion order preserved for
// equal timestamps).
type Trace struct {
	CaseID string
	Events []Event
}

// AddEvent appends ev to the trace and re-sorts by timestamp, preserving
// insertion order among equal timestamps (sort.SliceStable).
func (t *Trace) AddEvent(ev Event) {
	t.Events = append(t.Events, ev)
	sort.SliceStable(t.Events, func(i, j int) bool {
		return t.Events[i].Timestamp.Before(t.Events[j].Timestamp)
	})
}

// ActivitySequence returns the trace's activities in order, the key used
// to group traces into variants.
func (t *Trace) ActivitySequence() []string {
	seq := make([]string, len(t.Events))
	for i, ev := range t.Events {
		seq[i] = ev.Activity
	}
	return seq
}

// EventLog is a named collection of traces keyed by case ID, with the
// activity and resource indices every analysis needs to build.
type EventLog struct {
	Name   string
	traces map[string]*Trace
}

// New returns an empty EventLog.
func New(name string) *EventLog {
	return &EventLog{Name: name, traces: make(map[string]*Trace)}
}

// Trace returns the trace for caseID, creating one if it does not already
// exist. Case-ID uniqueness is total: the same caseID always resolves to
// the same Trace within one EventLog.
func (l *EventLog) Trace(caseID string) *Trace {
	t, ok := l.traces[caseID]
	if !ok {
		t = &Trace{CaseID: caseID}
		l.traces[caseID] = t
	}
	return t
}

// AddEvent resolves caseID's trace and appends ev to it.
func (l *EventLog) AddEvent(caseID string, ev Event) {
	l.Trace(caseID).AddEvent(ev)
}

// CaseIDs returns every case ID in the log, sorted for deterministic
// iteration.
func (l *EventLog) CaseIDs() []string {
	ids := make([]string, 0, len(l.traces))
	for id := range l.traces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Traces returns every trace in the log, ordered by case ID.
func (l *EventLog) Traces() []*Trace {
	ids := l.CaseIDs()
	out := make([]*Trace, len(ids))
	for i, id := range ids {
		out[i] = l.traces[id]
	}
	return out
}

// CaseCount returns the number of distinct cases in the log.
func (l *EventLog) CaseCount() int { return len(l.traces) }

// EventCount returns the total number of events across every trace.
func (l *EventLog) EventCount() int {
	n := 0
	for _, t := range l.traces {
		n += len(t.Events)
	}
	return n
}

// Activities returns the sorted set of distinct activity names observed
// across every trace.
func (l *EventLog) Activities() []string {
	set := make(map[string]struct{})
	for _, t := range l.traces {
		for _, ev := range t.Events {
			set[ev.Activity] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// Resources returns the sorted set of distinct non-empty resource names
// observed across every trace.
func (l *EventLog) Resources() []string {
	set := make(map[string]struct{})
	for _, t := range l.traces {
		for _, ev := range t.Events {
			if ev.Resource != "" {
				set[ev.Resource] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
