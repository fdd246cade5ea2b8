package extraction

import (
	"context"

	"github.com/erpforensic/reconstructor/internal/coverage"
	"github.com/erpforensic/reconstructor/internal/logger"
)

// Mode selects whether extractors read from a live transport or offline
// fixtures.
type Mode string

const (
	// ModeLive routes extraction through the configured Transport.
	ModeLive Mode = "live"
	// ModeOffline routes extraction through each extractor's fixture map.
	ModeOffline Mode = "offline"
)

// Context is the process-wide container threaded through a single
// orchestration run: the mode, transport/checkpoint handles, the shared
// data dictionary, and the coverage tracker. Callers MUST NOT share a
// Context between concurrent runs — the DataDictionary field is written
// once, during phase 2, and is read-only thereafter.
type Context struct {
	Mode       Mode
	Transport  Transport
	Checkpoint Checkpoint
	Coverage   *coverage.Tracker
	Logger     *logger.Logger

	// DataDictionary is nil until phase 2 of orchestration completes, and
	// non-nil for the remainder of the run thereafter.
	DataDictionary *DataDictionary
}

// NewContext constructs a Context ready for phase 1. The coverage tracker
// is always fresh; callers supply the mode and transport/checkpoint
// collaborators (both may be nil in offline mode, where only fixtures are
// used).
func NewContext(mode Mode, transport Transport, checkpoint Checkpoint, log *logger.Logger) *Context {
	return &Context{
		Mode:       mode,
		Transport:  transport,
		Checkpoint: checkpoint,
		Coverage:   coverage.New(),
		Logger:     log,
	}
}

// background returns ctx if non-nil, else context.Background(). Extraction
// helpers accept an explicit context.Context for cancellation, distinct
// from the extraction.Context struct above which is run-scoped state.
func background(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
