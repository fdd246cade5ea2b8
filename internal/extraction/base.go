package extraction

import (
	"context"
	"time"

	"github.com/erpforensic/reconstructor/internal/coverage"
	ferrors "github.com/erpforensic/reconstructor/pkg/errors"
)

// TableExpectation is one table an extractor declares it may read. Critical
// tables that are never attempted are flagged by gap analysis as a harder
// miss than non-critical ones.
type TableExpectation struct {
	Name        string
	Description string
	Critical    bool
}

// Identity is the fixed identity of an extractor: its registry key, display
// name, owning module, and category (used to group extractors in reports
// and to let gap analysis reason about "was the interfaces extractor even
// registered").
type Identity struct {
	ExtractorID string
	Name        string
	Module      string
	Category    string
}

// Extractor is a leaf component that reads a bounded set of tables from the
// source system and returns coverage-tracked results. Implementations
// provide both a live and an offline path; BaseExtractor-equivalent
// plumbing (the package-level Run function) chooses between them based on
// Context.Mode and wraps every read with coverage tracking.
type Extractor interface {
	Identity() Identity
	Tables() []TableExpectation
	ExtractLive(ctx context.Context, rc *Context, h *Helper) (map[string][]Row, error)
	ExtractOffline(ctx context.Context, rc *Context, h *Helper) (map[string][]Row, error)
}

// Result is the tagged outcome of running a single extractor: either a
// populated table map (Status "success") or a captured error (Status
// "error"), erasing each extractor's heterogeneous payload into one
// serialisable shape while still letting the per-extractor Tables()
// declaration describe its own schema.
type Result struct {
	ExtractorID string
	Status      string
	Tables      map[string][]Row
	Error       string
}

const (
	// StatusSuccess marks a fully or partially successful extraction.
	StatusSuccess = "success"
	// StatusError marks an extractor that failed outright.
	StatusError = "error"
)

// Run executes a single extractor against rc, routing to the live or
// offline implementation per rc.Mode, and wraps the outcome as a Result.
// Run itself never panics on an extractor error: any error returned by the
// extractor is captured in the Result rather than propagated, matching the
// orchestrator's "extractor failures never abort the pipeline" contract.
func Run(ctx context.Context, rc *Context, ext Extractor) Result {
	identity := ext.Identity()
	h := &Helper{rc: rc, extractorID: identity.ExtractorID}

	var (
		data map[string][]Row
		err  error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = ferrors.NewExtractorError(identity.ExtractorID, panicError{r})
			}
		}()
		if rc.Mode == ModeLive {
			data, err = ext.ExtractLive(ctx, rc, h)
		} else {
			data, err = ext.ExtractOffline(ctx, rc, h)
		}
	}()

	if err != nil {
		return Result{ExtractorID: identity.ExtractorID, Status: StatusError, Tables: data, Error: err.Error()}
	}
	return Result{ExtractorID: identity.ExtractorID, Status: StatusSuccess, Tables: data}
}

type panicError struct{ v interface{} }

func (p panicError) Error() string { return "panic: " + toString(p.v) }

func toString(v interface{}) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "unknown panic value"
}

// Helper wraps the Transport primitives named in §6 (read_table,
// stream_table, call_fm, read_odata) plus an offline fixture reader, all
// routed through the shared CoverageTracker. Extractors never call
// rc.Transport directly; they always go through a Helper so every read is
// accounted for.
type Helper struct {
	rc          *Context
	extractorID string
}

// ReadTable performs a bounded live read and tracks the outcome.
func (h *Helper) ReadTable(ctx context.Context, name string, opts ReadOptions) (ReadResult, error) {
	ctx = background(ctx)
	res, err := h.rc.Transport.ReadTable(ctx, name, opts)
	if err != nil {
		h.track(name, coverage.StatusFailed, coverage.Detail{Error: err.Error()})
		return ReadResult{}, ferrors.NewTransportError(name, err)
	}
	status := coverage.StatusExtracted
	if opts.MaxRows > 0 && len(res.Rows) >= opts.MaxRows {
		status = coverage.StatusPartial
	}
	h.track(name, status, coverage.Detail{RowCount: len(res.Rows)})
	return res, nil
}

// StreamTable performs a live streamed read, tracking the outcome once the
// stream is fully drained (or abandoned, in which case no success record is
// written — callers that stop consuming early do not get credit for rows
// they never saw).
func (h *Helper) StreamTable(ctx context.Context, name string, opts StreamOptions) (<-chan Chunk, error) {
	ctx = background(ctx)
	in, err := h.rc.Transport.StreamTable(ctx, name, opts)
	if err != nil {
		h.track(name, coverage.StatusFailed, coverage.Detail{Error: err.Error()})
		return nil, ferrors.NewTransportError(name, err)
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)
		count := 0
		for chunk := range in {
			count += len(chunk.Rows)
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
		h.track(name, coverage.StatusExtracted, coverage.Detail{RowCount: count})
	}()
	return out, nil
}

// CallFM invokes a remote function module and tracks the outcome.
func (h *Helper) CallFM(ctx context.Context, name string, params map[string]interface{}) (map[string]interface{}, error) {
	ctx = background(ctx)
	res, err := h.rc.Transport.CallFM(ctx, name, params)
	if err != nil {
		h.track(name, coverage.StatusFailed, coverage.Detail{Error: err.Error()})
		return nil, ferrors.NewTransportError(name, err)
	}
	h.track(name, coverage.StatusExtracted, coverage.Detail{RowCount: 1})
	return res, nil
}

// ReadOData reads an OData entity set and tracks the outcome under
// "service/entity".
func (h *Helper) ReadOData(ctx context.Context, service, entity string) ([]Row, error) {
	ctx = background(ctx)
	key := service + "/" + entity
	rows, err := h.rc.Transport.ReadOData(ctx, service, entity)
	if err != nil {
		h.track(key, coverage.StatusFailed, coverage.Detail{Error: err.Error()})
		return nil, ferrors.NewTransportError(key, err)
	}
	h.track(key, coverage.StatusExtracted, coverage.Detail{RowCount: len(rows)})
	return rows, nil
}

// Offline looks up table in a fixture map declared by the extractor,
// tracking a skip when no fixture is present.
func (h *Helper) Offline(table string, fixtures map[string][]Row) []Row {
	rows, ok := fixtures[table]
	if !ok {
		h.track(table, coverage.StatusSkipped, coverage.Detail{Reason: "no offline fixture"})
		return nil
	}
	h.track(table, coverage.StatusExtracted, coverage.Detail{RowCount: len(rows)})
	return rows
}

// Skip deliberately marks table as not attempted, recording reason (e.g. an
// RFC-only table on a non-RFC system).
func (h *Helper) Skip(table, reason string) {
	h.track(table, coverage.StatusSkipped, coverage.Detail{Reason: reason})
}

func (h *Helper) track(table string, status coverage.Status, detail coverage.Detail) {
	h.rc.Coverage.Track(h.extractorID, table, status, detail, time.Now())
}
