// ABOUTME: Bubble Tea model driving the focus timer in the terminal.
// ABOUTME: Ticks once per second and calls the reward hook when a session finishes.
package focus

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/apex/internal/ui"
)

// StepMinutes is how far +/- move the duration.
const StepMinutes = 5

// Reward is called once per finished session and returns a status line.
type Reward func() (string, error)

type tickMsg struct{ seq int }

// Model implements tea.Model for a focus session.
type Model struct {
	timer  *Timer
	reward Reward
	theme  ui.Theme
	bar    progress.Model

	// seq invalidates tick chains from earlier start/pause cycles.
	seq    int
	status string
	err    error
}

// NewModel constructs a focus model.
func NewModel(timer *Timer, reward Reward, theme ui.Theme) *Model {
	bar := progress.New(
		progress.WithScaledGradient(string(theme.Palette.Primary), string(theme.Palette.Accent)),
		progress.WithoutPercentage(),
	)
	bar.Width = 40
	return &Model{timer: timer, reward: reward, theme: theme, bar: bar}
}

// Timer exposes the underlying state machine.
func (m *Model) Timer() *Timer { return m.timer }

// Err returns the last reward error, if any.
func (m *Model) Err() error { return m.err }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) tick() tea.Cmd {
	seq := m.seq
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if w := msg.Width - 4; w > 10 && w < 60 {
			m.bar.Width = w
		}
		return m, nil
	case tickMsg:
		if msg.seq != m.seq || m.timer.Status() != Running {
			return m, nil
		}
		if m.timer.Tick() {
			m.finish()
			return m, nil
		}
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case " ", "enter":
		m.seq++
		m.timer.Toggle()
		m.status = ""
		if m.timer.Status() == Running {
			return m, m.tick()
		}
	case "r":
		m.seq++
		m.timer.Reset()
		m.status = ""
	case "+", "=":
		m.adjust(StepMinutes)
	case "-", "_":
		m.adjust(-StepMinutes)
	}
	return m, nil
}

func (m *Model) adjust(delta int) {
	minutes := m.timer.Minutes() + delta
	if minutes < MinMinutes {
		minutes = MinMinutes
	}
	if minutes > MaxMinutes {
		minutes = MaxMinutes
	}
	if err := m.timer.SetDuration(minutes); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) finish() {
	if m.reward == nil {
		return
	}
	status, err := m.reward()
	if err != nil {
		m.err = err
		m.status = err.Error()
		return
	}
	m.status = status
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Heading(ui.IconTimer, "Focus"))
	b.WriteString("\n\n")

	clock := m.theme.Title.Render(m.timer.Clock())
	fmt.Fprintf(&b, "  %s  %s\n\n", clock, m.theme.Muted.Render(m.timer.Status().String()))
	b.WriteString("  " + m.bar.ViewAs(m.timer.Percent()) + "\n\n")

	if m.timer.Status() == Finished {
		b.WriteString("  " + m.theme.Gold.Render("Session complete") + "\n")
	}
	if m.status != "" {
		b.WriteString("  " + m.status + "\n")
	}
	b.WriteString(m.theme.Muted.Render("  space start/pause · r reset · +/- duration · q quit"))
	b.WriteString("\n")
	return b.String()
}
