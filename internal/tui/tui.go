// Package tui provides a Bubble Tea terminal user interface for
// rym-release-tracker: kick off a run, watch its progress, then browse the
// new releases it found without leaving the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexmv/rym-release-tracker/internal/config"
	"github.com/alexmv/rym-release-tracker/internal/pipeline"
	"github.com/alexmv/rym-release-tracker/internal/report"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	artistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	ratingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	ratingHighStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#95E1A3"))
)

// State represents the current UI state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateDone
	StateError
)

// LogEntry represents a progress message in the UI.
type LogEntry struct {
	Message string
	Level   pipeline.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	spinner  spinner.Model
	results  viewport.Model
	settings *config.Settings
	logs     []LogEntry
	summary  *pipeline.Summary
	err      error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	// Progress events from the running pipeline
	events chan pipeline.ProgressEvent

	// Options
	dryRun  bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model for the given settings.
func NewModel(settings *config.Settings) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	vp := viewport.New(78, 16)

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:    StateIdle,
		spinner:  sp,
		results:  vp,
		settings: settings,
		logs:     make([]LogEntry, 0),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Message types
type (
	// ProgressMsg is sent for every pipeline progress event.
	ProgressMsg struct {
		Event pipeline.ProgressEvent
	}

	// RunDoneMsg is sent when the pipeline run finishes.
	RunDoneMsg struct {
		Summary *pipeline.Summary
		Err     error
	}
)

// startRun launches the pipeline in the background and returns the command
// that waits for its first progress event.
func (m *Model) startRun() tea.Cmd {
	events := make(chan pipeline.ProgressEvent, 64)
	m.events = events

	manager := pipeline.NewManager(m.settings, func(event pipeline.ProgressEvent) {
		events <- event
	})

	ctx, dryRun := m.ctx, m.dryRun
	run := func() tea.Msg {
		summary, err := manager.Run(ctx, dryRun)
		close(events)
		return RunDoneMsg{Summary: summary, Err: err}
	}

	return tea.Batch(run, m.waitForEvent())
}

// waitForEvent relays the next pipeline progress event into the UI.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.Width = msg.Width - 4
		m.results.Height = msg.Height - 12
		if m.results.Height < 5 {
			m.results.Height = 5
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "q":
			if m.state != StateRunning {
				return m, tea.Quit
			}

		case "esc":
			if m.state == StateIdle {
				return m, tea.Quit
			}
			if m.state == StateRunning {
				m.cancel()
			}

		case "enter":
			if m.state == StateIdle {
				m.state = StateRunning
				return m, tea.Batch(m.startRun(), m.spinner.Tick)
			}

		case "d":
			if m.state == StateIdle {
				m.dryRun = !m.dryRun
			}

		case "v":
			if m.state == StateIdle {
				m.verbose = !m.verbose
			}

		case "o":
			if m.state == StateDone && m.summary != nil && m.summary.ReportPath != "" {
				// Best effort, same as the pipeline itself.
				if err := report.Open(m.summary.ReportPath); err != nil {
					m.logs = append(m.logs, LogEntry{
						Message: fmt.Sprintf("Could not open report: %v", err),
						Level:   pipeline.LevelWarning,
					})
				}
			}

		case "r":
			if m.state == StateDone || m.state == StateError {
				m.state = StateIdle
				m.logs = nil
				m.summary = nil
				m.err = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level != pipeline.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
			// Keep only last 10 logs
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		}
		cmds = append(cmds, m.waitForEvent())

	case RunDoneMsg:
		m.summary = msg.Summary
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			if m.ctx.Err() != nil {
				m.err = fmt.Errorf("cancelled by user")
			}
		} else {
			m.state = StateDone
			m.results.SetContent(m.renderResults())
			m.results.GotoTop()
		}
	}

	// Let the viewport handle scrolling keys while showing results.
	if m.state == StateDone {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 RYM Release Tracker"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Track new album releases from saved pages"))
	b.WriteString("\n\n")

	switch m.state {
	case StateIdle:
		b.WriteString(m.viewIdle())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateDone:
		b.WriteString(m.viewDone())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewIdle() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Ready to process saved pages"))
	b.WriteString("\n\n")

	dryRunCheck := "[ ]"
	if m.dryRun {
		dryRunCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Dry run, write nothing (d)\n", dryRunCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Pages:  %s", m.settings.PagesDir)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output: %s", m.settings.OutputDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Processing saved pages..."))
	b.WriteString("\n\n")
	b.WriteString(m.viewLogs())

	return b.String()
}

func (m Model) viewDone() string {
	var b strings.Builder

	s := m.summary
	b.WriteString(successStyle.Render(fmt.Sprintf("✨ %d new releases", len(s.NewReleases))))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d pages, %d skipped, %d extracted, %d duplicates)",
		s.FilesProcessed, len(s.Skipped), s.Extracted, s.DuplicatesRemoved)))
	b.WriteString("\n\n")
	b.WriteString(m.results.View())
	b.WriteString("\n")
	if s.ReportPath != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Report: %s", s.ReportPath)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render(fmt.Sprintf("❌ Run failed: %v", m.err)))
	b.WriteString("\n\n")
	b.WriteString(m.viewLogs())

	return b.String()
}

func (m Model) viewLogs() string {
	var b strings.Builder
	for _, entry := range m.logs {
		style := infoStyle
		switch entry.Level {
		case pipeline.LevelWarning:
			style = warningStyle
		case pipeline.LevelError:
			style = errorStyle
		case pipeline.LevelSuccess:
			style = successStyle
		case pipeline.LevelVerbose:
			style = dimStyle
		}
		b.WriteString(style.Render(entry.Message))
		b.WriteString("\n")
	}
	return b.String()
}

// renderResults builds the scrollable new-release listing.
func (m Model) renderResults() string {
	if m.summary == nil || len(m.summary.NewReleases) == 0 {
		return dimStyle.Render("No new releases found today.")
	}

	var b strings.Builder
	for _, rel := range m.summary.NewReleases {
		b.WriteString(artistStyle.Render(rel.Artist))
		b.WriteString(" - ")
		b.WriteString(rel.Title)
		if rel.HasRating() {
			badge := fmt.Sprintf(" %.2f", *rel.Rating)
			if rel.Highlighted(m.settings.HighlightThreshold) {
				b.WriteString(ratingHighStyle.Render(badge))
			} else {
				b.WriteString(ratingStyle.Render(badge))
			}
		}
		if len(rel.Genres) > 0 {
			b.WriteString(dimStyle.Render("  " + strings.Join(rel.Genres, ", ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateIdle:
		return "enter: run • d: dry run • v: verbose • q: quit"
	case StateRunning:
		return "esc: cancel • ctrl+c: quit"
	case StateDone:
		return "↑/↓: scroll • o: open report • r: run again • q: quit"
	default:
		return "r: try again • q: quit"
	}
}
