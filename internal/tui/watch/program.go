package watch

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/erpforensic/reconstructor/internal/orchestration"
)

// Program wraps a running bubbletea program fed by a forwarding goroutine
// draining an orchestration.Observer. Sends to the underlying tea.Program
// never block the orchestrator: the observer's own channels are already
// non-blocking (internal/orchestration.Observer). The forwarder itself
// waits on each tea.Program.Send until the UI takes the message; events
// that arrive meanwhile wait in the Observer's buffers.
type Program struct {
	tea  *tea.Program
	done chan struct{}
}

// Start launches the live dashboard against obs and returns a handle to
// stop it once the run completes. obs may be nil, in which case Start
// still returns a valid, inert Program.
func Start(obs *orchestration.Observer) *Program {
	model := NewModel()
	prog := tea.NewProgram(model)
	p := &Program{tea: prog, done: make(chan struct{})}

	go func() {
		defer close(p.done)
		_, _ = prog.Run()
	}()

	if obs != nil {
		go p.forward(obs)
	}

	return p
}

func (p *Program) forward(obs *orchestration.Observer) {
	for {
		select {
		case ev, ok := <-obs.Progress:
			if !ok {
				return
			}
			p.tea.Send(ProgressMsg{Event: ev})
		case ev, ok := <-obs.Complete:
			if !ok {
				return
			}
			p.tea.Send(CompleteMsg{Event: ev})
		case ev, ok := <-obs.Error:
			if !ok {
				return
			}
			p.tea.Send(ErrorMsg{Event: ev})
		}
	}
}

// Stop signals the dashboard to exit and waits for it to finish rendering.
func (p *Program) Stop() {
	if p == nil || p.tea == nil {
		return
	}
	p.tea.Send(doneMsg{})
	<-p.done
}

// Drain is the non-interactive fallback: it prints one plain line per
// notification to w until ctx is cancelled or obs's channels are closed,
// for runs piped to a file or a non-terminal stdout.
func Drain(ctx context.Context, obs *orchestration.Observer, w io.Writer) {
	if obs == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-obs.Progress:
			if !ok {
				return
			}
			fmt.Fprintf(w, "[progress] phase=%s %d/%d current=%s\n", ev.Phase, ev.Completed, ev.Total, ev.Current)
		case ev, ok := <-obs.Complete:
			if !ok {
				return
			}
			fmt.Fprintf(w, "[complete] %s status=%s\n", ev.ExtractorID, ev.Result.Status)
		case ev, ok := <-obs.Error:
			if !ok {
				return
			}
			fmt.Fprintf(w, "[error] phase=%s extractor=%s err=%v\n", ev.Phase, ev.ExtractorID, ev.Err)
		}
	}
}
