package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hemlock/internal/trace"
)

// taskRow tracks one spawned task's last-known status for the live view.
type taskRow struct {
	name   string
	status string
}

type inspectorModel struct {
	title      string
	events     <-chan trace.Event
	spinner    spinner.Model
	prog       progress.Model
	tasks      []taskRow
	index      map[string]int
	liveHeap   int
	freedTotal int
	width      int
	done       bool
}

type eventMsg trace.Event
type doneMsg struct{}

// NewInspectorModel returns a Bubble Tea model that renders live heap and
// task activity for a running program, fed by a channel of trace events
// (in the CLI, the inspect command's chanTracer forwards every emitted
// event onto it).
func NewInspectorModel(title string, events <-chan trace.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &inspectorModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		index:   make(map[string]int),
		width:   80,
	}
}

func (m *inspectorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		ev := trace.Event(msg)
		cmd := m.applyEvent(ev)
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progModel, cmd := m.prog.Update(msg)
		m.prog = progModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *inspectorModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  live objects: %d   freed: %d\n\n", m.liveHeap, m.freedTotal))

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, t := range m.tasks {
		name := truncate(t.name, nameWidth)
		statusStyled := styleStatus(t.status).Render(fmt.Sprintf("%12s", t.status))
		b.WriteString(fmt.Sprintf("  %s %s\n", statusStyled, name))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *inspectorModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *inspectorModel) applyEvent(ev trace.Event) tea.Cmd {
	switch {
	case ev.Scope == trace.ScopeHeap && ev.Name == "alloc":
		m.liveHeap++
	case ev.Scope == trace.ScopeHeap && ev.Name == "free":
		m.liveHeap--
		m.freedTotal++
	case ev.Scope == trace.ScopeScheduler && strings.HasPrefix(ev.Name, "task:"):
		m.applyTaskEvent(ev)
	}

	total := len(m.tasks)
	if total == 0 {
		return nil
	}
	completed := 0
	for _, t := range m.tasks {
		if t.status == "done" {
			completed++
		}
	}
	return m.prog.SetPercent(float64(completed) / float64(total))
}

func (m *inspectorModel) applyTaskEvent(ev trace.Event) {
	status := "running"
	if ev.Kind == trace.KindSpanEnd {
		status = "done"
	}
	idx, ok := m.index[ev.Name]
	if !ok {
		idx = len(m.tasks)
		m.tasks = append(m.tasks, taskRow{name: ev.Name})
		m.index[ev.Name] = idx
	}
	m.tasks[idx].status = status
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "running":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
