package wiring

import (
	"testing"

	"github.com/erpforensic/reconstructor/internal/extraction"
	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
	"github.com/erpforensic/reconstructor/internal/mining/referencemodel"
)

func TestProcessConfigsCoverEveryBuiltinModel(t *testing.T) {
	configs := ProcessConfigs()
	models := referencemodel.Builtins()

	if len(configs) != len(models) {
		t.Fatalf("expected one config per reference model, got %d configs for %d models", len(configs), len(models))
	}
	for id := range models {
		cfg, ok := configs[id]
		if !ok {
			t.Fatalf("missing process config for model %s", id)
		}
		if cfg.ProcessID != id {
			t.Fatalf("config for %s carries ProcessID %s", id, cfg.ProcessID)
		}
		if len(cfg.Tables) != 2 {
			t.Fatalf("expected 2 table mappings for %s, got %d", id, len(cfg.Tables))
		}
	}
}

func TestProcessConfigsActivitiesMatchReferenceModelVocabulary(t *testing.T) {
	configs := ProcessConfigs()
	models := referencemodel.Builtins()

	for id, cfg := range configs {
		model := models[id]
		known := make(map[string]bool, len(model.Activities))
		for _, a := range model.Activities {
			known[a] = true
		}
		for _, mapping := range cfg.Tables {
			for _, activity := range mapping.DocumentTypeMap {
				if !known[activity] {
					t.Errorf("process %s: document-type activity %q not in reference model vocabulary", id, activity)
				}
			}
			for _, activity := range mapping.StatusMap {
				if !known[activity] {
					t.Errorf("process %s: status activity %q not in reference model vocabulary", id, activity)
				}
			}
		}
	}
}

func TestBuildEventLogFromSyntheticRows(t *testing.T) {
	configs := ProcessConfigs()
	cfg := configs[referencemodel.O2C]

	tables := map[string][]extraction.Row{
		"CHANGE_DOCUMENTS": {
			{
				"object":     "SALES_ORDER",
				"object_id":  "CASE-1",
				"changed_by": "alice",
				"changed_at": "2026-01-05T09:00:00Z",
			},
			{
				"object":     "DELIVERY",
				"object_id":  "CASE-1",
				"changed_by": "bob",
				"changed_at": "2026-01-06T09:00:00Z",
			},
		},
		"WORKFLOW_ITEMS": {
			{
				"step":         "CREDIT_CHECK",
				"instance_id":  "CASE-1",
				"agent":        "carol",
				"completed_at": "2026-01-05T12:00:00Z",
			},
		},
	}

	builder := eventlog.NewBuilder(nil)
	log, err := builder.Build(cfg, tables)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if log.CaseCount() != 1 {
		t.Fatalf("expected 1 case, got %d", log.CaseCount())
	}
	if log.EventCount() != 3 {
		t.Fatalf("expected 3 events, got %d", log.EventCount())
	}

	trace := log.Trace("CASE-1")
	seq := trace.ActivitySequence()
	want := []string{"create_sales_order", "check_credit", "create_delivery"}
	if len(seq) != len(want) {
		t.Fatalf("expected sequence %v, got %v", want, seq)
	}
	for i, activity := range want {
		if seq[i] != activity {
			t.Fatalf("expected activity %d to be %q, got %q (full sequence %v)", i, activity, seq[i], seq)
		}
	}
}

func TestBuildEventLogSkipsUnmappedObjectTypes(t *testing.T) {
	configs := ProcessConfigs()
	cfg := configs[referencemodel.O2C]

	tables := map[string][]extraction.Row{
		"CHANGE_DOCUMENTS": {
			{
				"object":     "UNKNOWN_OBJECT",
				"object_id":  "CASE-1",
				"changed_by": "alice",
				"changed_at": "2026-01-05T09:00:00Z",
			},
		},
	}

	builder := eventlog.NewBuilder(nil)
	log, err := builder.Build(cfg, tables)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if log.EventCount() != 0 {
		t.Fatalf("expected no events for an unmapped object type, got %d", log.EventCount())
	}
}
