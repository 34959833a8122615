// Package tui is a terminal front end for the cycle engine. It drives the
// engine with bubbletea's own tick scheduling instead of a TimeKeeper.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pomodoro/internal/alert"
	"pomodoro/internal/core/cycle"
	"pomodoro/internal/ui/presenter"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultBarWidth  = 30
	alertPlayTimeout = 5 * time.Second
)

// Options configures the terminal presenter.
type Options struct {
	Player       alert.Player
	Logger       *slog.Logger
	TickInterval time.Duration
}

type tickMsg struct {
	generation int
}

type alertDoneMsg struct {
	alert cycle.PhaseAlert
	err   error
}

// Model is the bubbletea model wrapping one engine.
type Model struct {
	engine     *cycle.Engine
	player     alert.Player
	logger     *slog.Logger
	interval   time.Duration
	generation int
	bar        progress.Model
	quitting   bool
}

// New creates a terminal presenter for engine.
func New(engine *cycle.Engine, options Options) Model {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return Model{
		engine:   engine,
		player:   options.Player,
		logger:   options.Logger,
		interval: options.TickInterval,
		bar:      progress.New(progress.WithoutPercentage(), progress.WithWidth(defaultBarWidth)),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ", "enter", "s":
			return m.toggle()
		case "r":
			m.engine.Reset()
			m.generation++
			return m, m.playAlerts()
		}
	case tickMsg:
		if msg.generation != m.generation || !m.engine.Running() {
			return m, nil
		}
		m.engine.Tick()
		return m, tea.Batch(m.playAlerts(), m.scheduleTick())
	case alertDoneMsg:
		if msg.err != nil {
			m.logger.Warn("alert playback failed",
				"kind", msg.alert.Kind.String(),
				"phase", msg.alert.Phase.String(),
				"error", msg.err)
		}
	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > defaultBarWidth {
			width = defaultBarWidth
		}
		if width > 0 {
			m.bar.Width = width
		}
	}
	return m, nil
}

func (m Model) toggle() (tea.Model, tea.Cmd) {
	m.generation++
	if m.engine.Running() {
		m.engine.Pause()
		return m, nil
	}
	m.engine.Start()
	if !m.engine.Running() {
		return m, nil
	}
	return m, tea.Batch(m.playAlerts(), m.scheduleTick())
}

func (m Model) scheduleTick() tea.Cmd {
	if !m.engine.Running() {
		return nil
	}
	generation := m.generation
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}

func (m Model) playAlerts() tea.Cmd {
	alerts := m.engine.Alerts()
	if len(alerts) == 0 || m.player == nil {
		return nil
	}
	player := m.player
	cmds := make([]tea.Cmd, 0, len(alerts))
	for _, phaseAlert := range alerts {
		phaseAlert := phaseAlert
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), alertPlayTimeout)
			defer cancel()
			return alertDoneMsg{alert: phaseAlert, err: player.Play(ctx, phaseAlert)}
		})
	}
	return tea.Sequence(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	state := m.engine.Snapshot()
	view := presenter.Render(state)
	accent := lipgloss.Color(presenter.Hex(view.Accent))

	bar := m.bar
	bar.FullColor = presenter.Hex(view.Accent)

	title := lipgloss.NewStyle().Bold(true).Foreground(accent).
		Render(fmt.Sprintf("%s  ·  cycle %s/%d", view.Label, view.Cycle, cycle.MaxCycles))
	clock := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(view.Time)

	var status string
	switch state.RunState() {
	case cycle.RunRunning:
		status = "running"
	case cycle.RunPaused:
		status = "paused"
	case cycle.RunTerminal:
		status = "all cycles done, press r to reset"
	default:
		status = "ready"
	}

	body := strings.Join([]string{
		title,
		clock,
		bar.ViewAs(view.Progress),
		helpStyle.Render(status),
		helpStyle.Render("space start/pause · r reset · q quit"),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Render(body) + "\n"
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Run starts the terminal program and blocks until the user quits.
func Run(ctx context.Context, engine *cycle.Engine, options Options) error {
	program := tea.NewProgram(New(engine, options), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
