package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled")

var (
	promptLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorAccentBright)).
				Bold(true)
	promptHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText))
)

// inputModel is a single-line inline text prompt.
type inputModel struct {
	label     string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newInputModel(label, placeholder, initial string) inputModel {
	input := textinput.New()
	input.Placeholder = placeholder
	input.SetValue(initial)
	input.CharLimit = 200
	input.Width = 60
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	input.Focus()
	return inputModel{label: label, input: input}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return fmt.Sprintf("%s %s\n", promptLabelStyle.Render(m.label+":"), m.input.View())
}

// Input asks for a single line of text inline (no alternate screen).
func Input(label, placeholder, initial string) (string, error) {
	p := tea.NewProgram(newInputModel(label, placeholder, initial))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.input.Value(), nil
}

// confirmModel is an inline yes/no prompt; enter takes the default.
type confirmModel struct {
	question  string
	def       bool
	answer    bool
	done      bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			m.answer = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.answer = false
			m.done = true
			return m, tea.Quit
		case "enter":
			m.answer = m.def
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	hint := "[Y/n]"
	if !m.def {
		hint = "[y/N]"
	}
	return fmt.Sprintf("%s %s ", promptLabelStyle.Render(m.question), promptHintStyle.Render(hint))
}

// Confirm asks a yes/no question inline. Enter accepts the default.
func Confirm(question string, def bool) (bool, error) {
	p := tea.NewProgram(confirmModel{question: question, def: def})
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.answer, nil
}
