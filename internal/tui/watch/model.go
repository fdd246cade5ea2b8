// Package watch renders the orchestrator's progress/complete/error
// notification stream live, the pattern adapted from the teacher's
// execution TUI: channel events are forwarded into a running bubbletea
// program as typed messages rather than the model reading the observer
// directly, so rendering stays purely a function of accumulated state.
package watch

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/erpforensic/reconstructor/internal/orchestration"
)

var (
	phaseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ProgressMsg, CompleteMsg, and ErrorMsg are the typed wrappers around the
// orchestration package's notification structs, forwarded into the running
// program via tea.Program.Send from Program's forwarding goroutine in
// program.go.
type ProgressMsg struct{ Event orchestration.ProgressEvent }
type CompleteMsg struct{ Event orchestration.CompleteEvent }
type ErrorMsg struct{ Event orchestration.ErrorEvent }
type doneMsg struct{}

// Model is the live-dashboard state: the current phase, its completion
// ratio, the most recently completed extractor IDs (newest first, capped),
// and every error notification seen so far.
type Model struct {
	phase      orchestration.Phase
	completed  int
	total      int
	current    string
	recent     []string
	errors     []orchestration.ErrorEvent
	bar        progress.Model
	quitting   bool
}

// NewModel constructs a fresh dashboard model.
func NewModel() Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	return Model{bar: bar}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		ev := msg.Event
		m.phase = ev.Phase
		m.completed = ev.Completed
		m.total = ev.Total
		if ev.Current != "" {
			m.current = ev.Current
		}
		return m, nil
	case CompleteMsg:
		id := msg.Event.ExtractorID
		if id == "" {
			return m, nil
		}
		m.recent = append([]string{id}, m.recent...)
		if len(m.recent) > 8 {
			m.recent = m.recent[:8]
		}
		return m, nil
	case ErrorMsg:
		m.errors = append(m.errors, msg.Event)
		return m, nil
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.completed) / float64(m.total)
	}

	header := phaseStyle.Render(fmt.Sprintf("phase: %s", m.phase))
	counter := fmt.Sprintf("%d/%d", m.completed, m.total)
	line := lipgloss.JoinHorizontal(lipgloss.Left, header, "  ", m.bar.ViewAs(ratio), "  ", counter)

	out := line + "\n"
	if m.current != "" {
		out += dimStyle.Render("current: "+m.current) + "\n"
	}
	if len(m.recent) > 0 {
		out += okStyle.Render("completed: "+joinComma(m.recent)) + "\n"
	}
	if len(m.errors) > 0 {
		names := make([]string, 0, len(m.errors))
		for _, e := range m.errors {
			names = append(names, e.ExtractorID)
		}
		sort.Strings(names)
		out += errStyle.Render(fmt.Sprintf("errors (%d): %s", len(m.errors), joinComma(names))) + "\n"
	}
	return out
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
