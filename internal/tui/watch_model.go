package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WatchModel is the live view behind 'redm timer-status --watch'. It
// redraws the elapsed time every second until the user exits; the timer
// itself keeps running either way.
type WatchModel struct {
	issueID   int
	subject   string
	startedAt time.Time

	width   int
	height  int
	elapsed time.Duration
	frame   int
}

type watchTickMsg struct{}

// NewWatchModel builds the watch view for a running timer.
func NewWatchModel(issueID int, subject string, startedAt time.Time) WatchModel {
	return WatchModel{
		issueID:   issueID,
		subject:   subject,
		startedAt: startedAt,
		elapsed:   time.Since(startedAt),
	}
}

func (m WatchModel) Init() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return watchTickMsg{}
	})
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchTickMsg:
		m.elapsed = time.Since(m.startedAt)
		if m.elapsed < 0 {
			m.elapsed = 0
		}
		m.frame = (m.frame + 1) % 2
		return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
			return watchTickMsg{}
		})

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m WatchModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var components []string

	animChars := []string{"⏱", "⏲"}
	header := fmt.Sprintf("%s  TIMER RUNNING  %s", animChars[m.frame], animChars[m.frame])
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, headerStyle.Render(header))

	idStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, idStyle.Render(fmt.Sprintf("Issue #%d", m.issueID)))

	if m.subject != "" {
		subject := m.subject
		if len(subject) > m.width-4 && m.width > 7 {
			subject = subject[:m.width-7] + "..."
		}
		subjectStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Bold(true).
			Align(lipgloss.Center).
			Width(m.width)
		components = append(components, subjectStyle.Render(subject))
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, clockStyle.Render(formatClock(m.elapsed)))

	startedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)
	started := fmt.Sprintf("Started at %s · %.2f hours",
		m.startedAt.Local().Format("2006-01-02 15:04:05"), m.elapsed.Hours())
	components = append(components, startedStyle.Render(started))

	content := strings.Join(components, "\n\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)
	helpBar := helpStyle.Render("q/esc exit (timer keeps running) · redm stop to log time")

	panelStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 2).
		Align(lipgloss.Center, lipgloss.Center)

	return lipgloss.JoinVertical(lipgloss.Left, panelStyle.Render(content), helpBar)
}

func formatClock(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// RunWatch runs the live timer view until the user exits.
func RunWatch(issueID int, subject string, startedAt time.Time) error {
	p := tea.NewProgram(NewWatchModel(issueID, subject, startedAt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
