// internal/confirm/confirm.go
// Package confirm provides the interactive yes/no gate shown before a swap
// is signed.
package confirm

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type model struct {
	summary  string
	input    textinput.Model
	answered bool
	accepted bool
}

func newModel(summary string) model {
	ti := textinput.New()
	ti.Placeholder = "y/n"
	ti.CharLimit = 3
	ti.Width = 5
	ti.Focus()

	return model{summary: summary, input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.answered = true
			m.accepted = false
			return m, tea.Quit
		case tea.KeyEnter:
			switch strings.ToLower(strings.TrimSpace(m.input.Value())) {
			case "y", "yes":
				m.answered = true
				m.accepted = true
				return m, tea.Quit
			case "n", "no", "":
				m.answered = true
				m.accepted = false
				return m, tea.Quit
			default:
				m.input.SetValue("")
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.answered {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n\nGo for it? %s\n%s\n",
		titleStyle.Render("Review swap"),
		summaryStyle.Render(m.summary),
		m.input.View(),
		hintStyle.Render("enter y to sign and send, n to cancel"))
}

// Ask renders the summary and blocks until the user answers. Anything but
// an explicit yes cancels.
func Ask(ctx context.Context, summary string) (bool, error) {
	p := tea.NewProgram(newModel(summary), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}

	m, ok := final.(model)
	if !ok || !m.answered {
		return false, nil
	}
	return m.accepted, nil
}
