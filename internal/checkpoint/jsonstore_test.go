package checkpoint

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSaveThenReopenReportsComplete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")

	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	ctx := context.Background()
	if err := store.Save(ctx, "financials", "result", map[string]int{"rows": 3}); err != nil {
		t.Fatalf("save: %v", err)
	}

	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}

	progress, err := reopened.Progress(ctx)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if !progress["financials"] {
		t.Fatalf("expected financials marked complete, got %+v", progress)
	}

	value, ok, err := reopened.Load(ctx, "financials", "result")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatalf("expected cached value present")
	}
	m, ok := value.(map[string]interface{})
	if !ok || m["rows"].(float64) != 3 {
		t.Fatalf("unexpected loaded value: %#v", value)
	}
}

func TestLoadMissingSlotReportsNotFound(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(filepath.Join(dir, "run.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	_, ok, err := store.Load(context.Background(), "security", "result")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("expected no cached value for an unsaved slot")
	}
}

func TestProgressEmptyStoreReportsNoExtractorsComplete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(filepath.Join(dir, "run.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	progress, err := store.Progress(context.Background())
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(progress) != 0 {
		t.Fatalf("expected empty progress map, got %+v", progress)
	}
}
