package eventlog

import (
	"testing"
	"time"

	"github.com/erpforensic/reconstructor/internal/extraction"
)

func TestBuilderFoldsTransactionAndChangeTables(t *testing.T) {
	tables := map[string][]extraction.Row{
		"USAGE_STATISTICS": {
			{"case_id": "SO-1", "tcode": "VA01", "user_id": "JDOE", "timestamp": "2026-01-05T09:00:00Z"},
			{"case_id": "SO-1", "tcode": "VF01", "user_id": "JDOE", "timestamp": "2026-01-05T09:05:00Z"},
		},
		"CHANGE_DOCUMENTS": {
			{"change_id": "CD1", "object_id": "SO-1", "changed_by": "JDOE", "changed_at": "2026-01-05T09:02:00Z"},
		},
		"CHANGE_DOCUMENT_ITEMS": {
			{"change_id": "CD1", "field": "PRICE", "old_value": "10", "new_value": "12"},
		},
	}

	cfg := ProcessConfig{
		ProcessID: "o2c",
		Tables: []TableMapping{
			{
				Table:                "USAGE_STATISTICS",
				Class:                ClassTransaction,
				CaseID:               CaseIDRule{Field: "case_id"},
				TimestampField:       "timestamp",
				ResourceField:        "user_id",
				TransactionCodeField: "tcode",
				TransactionCodeMap:   map[string]string{"VA01": "create_sales_order", "VF01": "create_invoice"},
			},
			{
				Table:          "CHANGE_DOCUMENTS",
				Class:          ClassRecord,
				Activity:       "order_changed",
				CaseID:         CaseIDRule{Field: "object_id"},
				TimestampField: "changed_at",
				ResourceField:  "changed_by",
			},
			{
				Table:    "CHANGE_DOCUMENT_ITEMS",
				Class:    ClassChange,
				Activity: "field_changed",
				CaseID: CaseIDRule{Joins: []Join{
					{LocalField: "change_id", ForeignTable: "CHANGE_DOCUMENTS", ForeignKeyField: "change_id", ForeignCaseField: "object_id"},
				}},
				TimestampField: "change_id", // deliberately unresolved below
				ChangedField:   "field",
				OldValueField:  "old_value",
				NewValueField:  "new_value",
			},
		},
	}

	builder := NewBuilder(time.UTC)
	log, err := builder.Build(cfg, tables)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if log.CaseCount() != 1 {
		t.Fatalf("expected a single case (joined via change_id), got %d", log.CaseCount())
	}

	trace := log.Trace("SO-1")
	// CHANGE_DOCUMENT_ITEMS never resolves a real timestamp field above
	// (intentionally, to exercise the unparseable-timestamp exclusion) so
	// only the two transaction events and the record event should land.
	if len(trace.Events) != 3 {
		t.Fatalf("expected 3 events, got %d: %+v", len(trace.Events), trace.Events)
	}
	seq := trace.ActivitySequence()
	want := []string{"create_sales_order", "order_changed", "create_invoice"}
	for i, a := range want {
		if seq[i] != a {
			t.Fatalf("expected activity %d to be %q, got %q (full sequence %v)", i, a, seq[i], seq)
		}
	}
}

func TestStableOrderingOnTimestampTies(t *testing.T) {
	log := New("test")
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	log.AddEvent("C1", Event{Activity: "first", Timestamp: ts})
	log.AddEvent("C1", Event{Activity: "second", Timestamp: ts})
	log.AddEvent("C1", Event{Activity: "third", Timestamp: ts})

	seq := log.Trace("C1").ActivitySequence()
	if seq[0] != "first" || seq[1] != "second" || seq[2] != "third" {
		t.Fatalf("expected insertion order preserved on ties, got %v", seq)
	}
}

func TestResourcesAndActivitiesAreSorted(t *testing.T) {
	log := New("test")
	log.AddEvent("C1", Event{Activity: "b_activity", Resource: "bob", Timestamp: time.Unix(1, 0)})
	log.AddEvent("C1", Event{Activity: "a_activity", Resource: "alice", Timestamp: time.Unix(2, 0)})

	acts := log.Activities()
	if acts[0] != "a_activity" || acts[1] != "b_activity" {
		t.Fatalf("expected sorted activities, got %v", acts)
	}
	res := log.Resources()
	if res[0] != "alice" || res[1] != "bob" {
		t.Fatalf("expected sorted resources, got %v", res)
	}
}
