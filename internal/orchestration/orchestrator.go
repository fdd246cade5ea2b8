// Package orchestration drives a single forensic-reconstruction run: the
// two singleton extraction phases, the bounded-concurrency module-extractor
// phase, and the sequential analysis phases that follow, emitting progress,
// completion, and error notifications as it goes.
package orchestration

import (
	"context"
	"sync"
	"time"

	"github.com/erpforensic/reconstructor/internal/extraction"
	"github.com/erpforensic/reconstructor/internal/logger"
	ferrors "github.com/erpforensic/reconstructor/pkg/errors"
)

// Phase identifies one of the seven pipeline stages for progress reporting.
type Phase string

const (
	PhaseSystemInfo           Phase = "system_info"
	PhaseDataDictionary        Phase = "data_dictionary"
	PhaseModuleExtractors      Phase = "module_extractors"
	PhaseProcessMining         Phase = "process_mining"
	PhaseConfigInterpretation  Phase = "config_interpretation"
	PhaseGapAnalysis           Phase = "gap_analysis"
	PhaseReportAssembly        Phase = "report_assembly"
)

// DefaultConcurrency is the default bound on in-flight phase-3 extractors.
const DefaultConcurrency = 5

// ProgressEvent reports advancement within a phase.
type ProgressEvent struct {
	Phase     Phase
	Completed int
	Total     int
	Current   string
	Timestamp time.Time
}

// CompleteEvent reports a single extractor's finished Result.
type CompleteEvent struct {
	ExtractorID string
	Result      extraction.Result
}

// ErrorEvent reports a non-fatal, contained failure during a phase.
type ErrorEvent struct {
	Phase       Phase
	ExtractorID string
	Err         error
}

// Observer is the typed replacement for the three callback lists named in
// the external-interface surface (on_progress/on_extractor_complete/
// on_error): one channel per notification kind. Sends are non-blocking —
// a slow or absent consumer never stalls the pipeline.
type Observer struct {
	Progress chan ProgressEvent
	Complete chan CompleteEvent
	Error    chan ErrorEvent
}

// NewObserver returns an Observer with reasonably buffered channels. Callers
// that want every event delivered should drain it from a dedicated
// goroutine; events are dropped, never blocked on, if the buffer fills.
func NewObserver() *Observer {
	return &Observer{
		Progress: make(chan ProgressEvent, 64),
		Complete: make(chan CompleteEvent, 64),
		Error:    make(chan ErrorEvent, 64),
	}
}

func (o *Observer) emitProgress(ev ProgressEvent) {
	if o == nil {
		return
	}
	select {
	case o.Progress <- ev:
	default:
	}
}

func (o *Observer) emitComplete(ev CompleteEvent) {
	if o == nil {
		return
	}
	select {
	case o.Complete <- ev:
	default:
	}
}

func (o *Observer) emitError(ev ErrorEvent) {
	if o == nil {
		return
	}
	select {
	case o.Error <- ev:
	default:
	}
}

// Stage is one of the sequential phases run after module extraction
// completes (process mining, configuration interpretation, gap analysis,
// report assembly). Each stage reads rc and the accumulated extractor
// results and is free to stash its own output on rc or a caller-supplied
// accumulator; an error here is surfaced to the caller rather than
// contained the way extractor errors are.
type Stage struct {
	Phase Phase
	Run   func(ctx context.Context, rc *extraction.Context, results map[string]extraction.Result) error
}

// Orchestrator runs the full pipeline against a Registry of extractors.
type Orchestrator struct {
	Registry    *extraction.Registry
	Concurrency int
	// ModuleFilter, if non-empty, restricts phase 3 to these extractor IDs.
	ModuleFilter []string
	Stages       []Stage
	Observer     *Observer
	Logger       *logger.Logger
}

// New constructs an Orchestrator with DefaultConcurrency.
func New(registry *extraction.Registry) *Orchestrator {
	return &Orchestrator{Registry: registry, Concurrency: DefaultConcurrency, Observer: NewObserver()}
}

// RunResult is the full outcome of one pipeline run: every extractor's
// Result keyed by extractor ID, plus the context it ran against (whose
// Coverage and DataDictionary fields are populated as a side effect).
type RunResult struct {
	Context *extraction.Context
	Results map[string]extraction.Result
}

// Run executes the pipeline against rc (already constructed with the
// desired Mode/Transport/Checkpoint/Logger). It always runs phases 1-3 to
// completion or cancellation, then runs o.Stages in order. A cancelled ctx
// stops new phase-3 dispatch immediately; in-flight extractors are allowed
// to finish. A failed extractor does not stop the run: Stages run over
// whatever is present in the results map. On cancellation the Stages are
// skipped; Run reports a CancelledError on the Observer and returns the
// partial results with a nil error.
func (o *Orchestrator) Run(ctx context.Context, rc *extraction.Context) (RunResult, error) {
	concurrency := o.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make(map[string]extraction.Result)
	var resultsMu sync.Mutex

	resume := o.resumeState(ctx, rc)

	// Phase 1: SystemInfo.
	if id, ext, ok := o.Registry.SystemInfo(); ok {
		o.runSingleton(ctx, rc, PhaseSystemInfo, id, ext, results, &resultsMu, resume)
	}

	// Phase 2: DataDictionary. Completes-happens-before any phase-3
	// extractor begins — this call is synchronous and rc.DataDictionary is
	// written before we return.
	if id, ext, ok := o.Registry.DataDictionaryExtractor(); ok {
		o.runSingleton(ctx, rc, PhaseDataDictionary, id, ext, results, &resultsMu, resume)
	}

	// Phase 3: module extractors, bounded concurrency.
	o.runModulePhase(ctx, rc, concurrency, results, &resultsMu, resume)

	run := RunResult{Context: rc, Results: results}

	if ctx.Err() != nil {
		o.Observer.emitError(ErrorEvent{Phase: PhaseModuleExtractors, Err: ferrors.NewCancelledError(string(PhaseModuleExtractors))})
		return run, nil
	}

	for _, stage := range o.Stages {
		if ctx.Err() != nil {
			o.Observer.emitError(ErrorEvent{Phase: stage.Phase, Err: ferrors.NewCancelledError(string(stage.Phase))})
			return run, nil
		}
		o.Observer.emitProgress(ProgressEvent{Phase: stage.Phase, Timestamp: time.Now()})
		if err := stage.Run(ctx, rc, results); err != nil {
			o.Observer.emitError(ErrorEvent{Phase: stage.Phase, Err: err})
			return run, err
		}
		o.Observer.emitProgress(ProgressEvent{Phase: stage.Phase, Completed: 1, Total: 1, Timestamp: time.Now()})
	}

	return run, nil
}

func (o *Orchestrator) runSingleton(ctx context.Context, rc *extraction.Context, phase Phase, id string, ext extraction.Extractor, results map[string]extraction.Result, mu *sync.Mutex, resume map[string]bool) {
	o.Observer.emitProgress(ProgressEvent{Phase: phase, Total: 1, Current: id, Timestamp: time.Now()})

	if resume[id] {
		mu.Lock()
		results[id] = extraction.Result{ExtractorID: id, Status: extraction.StatusSuccess}
		mu.Unlock()
		o.Observer.emitProgress(ProgressEvent{Phase: phase, Completed: 1, Total: 1, Timestamp: time.Now()})
		return
	}

	result := extraction.Run(ctx, rc, ext)
	mu.Lock()
	results[id] = result
	mu.Unlock()

	if result.Status == extraction.StatusError {
		o.Observer.emitError(ErrorEvent{Phase: phase, ExtractorID: id, Err: ferrors.NewExtractorError(id, errString(result.Error))})
	}
	o.Observer.emitComplete(CompleteEvent{ExtractorID: id, Result: result})
	o.Observer.emitProgress(ProgressEvent{Phase: phase, Completed: 1, Total: 1, Current: id, Timestamp: time.Now()})
}

// runModulePhase dispatches every phase-3 extractor onto a worker pool
// bounded by concurrency, using a buffered channel as a counting semaphore
// exactly as many bounded-worker-pool implementations do. The results map
// is written only by the supervisor goroutine receiving from the done
// channel, never by a worker directly, keeping the "results map is
// supervisor-owned" contract from the concurrency model.
func (o *Orchestrator) runModulePhase(ctx context.Context, rc *extraction.Context, concurrency int, results map[string]extraction.Result, mu *sync.Mutex, resume map[string]bool) {
	ids := o.moduleIDs()
	total := len(ids)
	if total == 0 {
		return
	}

	type outcome struct {
		id     string
		result extraction.Result
	}

	sem := make(chan struct{}, concurrency)
	done := make(chan outcome)
	var wg sync.WaitGroup
	completed := 0

	dispatched := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		if resume[id] {
			mu.Lock()
			results[id] = extraction.Result{ExtractorID: id, Status: extraction.StatusSuccess}
			mu.Unlock()
			completed++
			o.Observer.emitProgress(ProgressEvent{Phase: PhaseModuleExtractors, Completed: completed, Total: total, Current: id, Timestamp: time.Now()})
			continue
		}

		ext, err := o.Registry.New(id)
		if err != nil {
			continue
		}

		dispatched++
		wg.Add(1)
		go func(id string, ext extraction.Extractor) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			result := extraction.Run(ctx, rc, ext)
			done <- outcome{id: id, result: result}
		}(id, ext)
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	for out := range done {
		mu.Lock()
		results[out.id] = out.result
		mu.Unlock()
		completed++

		if out.result.Status == extraction.StatusError {
			o.Observer.emitError(ErrorEvent{Phase: PhaseModuleExtractors, ExtractorID: out.id, Err: ferrors.NewExtractorError(out.id, errString(out.result.Error))})
		}
		o.Observer.emitComplete(CompleteEvent{ExtractorID: out.id, Result: out.result})
		o.Observer.emitProgress(ProgressEvent{Phase: PhaseModuleExtractors, Completed: completed, Total: total, Current: out.id, Timestamp: time.Now()})
	}
}

// moduleIDs returns the phase-3 roster, optionally narrowed by
// ModuleFilter.
func (o *Orchestrator) moduleIDs() []string {
	all := o.Registry.ModuleIDs()
	if len(o.ModuleFilter) == 0 {
		return all
	}
	allowed := make(map[string]bool, len(o.ModuleFilter))
	for _, id := range o.ModuleFilter {
		allowed[id] = true
	}
	filtered := make([]string, 0, len(all))
	for _, id := range all {
		if allowed[id] {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

// resumeState asks rc.Checkpoint which extractors are already complete, so
// runSingleton/runModulePhase can skip re-running them. A nil Checkpoint or
// a Progress error means no resume information is available — every
// extractor runs.
func (o *Orchestrator) resumeState(ctx context.Context, rc *extraction.Context) map[string]bool {
	if rc.Checkpoint == nil {
		return nil
	}
	progress, err := rc.Checkpoint.Progress(ctx)
	if err != nil {
		return nil
	}
	return progress
}

func errString(msg string) error {
	if msg == "" {
		return nil
	}
	return stringError(msg)
}

type stringError string

func (e stringError) Error() string { return string(e) }
