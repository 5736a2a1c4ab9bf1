package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#7D56F4"))

	previewStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	pickerHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))
)

type phase int

const (
	phaseCount phase = iota
	phaseSelect
	phaseDone
)

type pickerModel struct {
	conversations []models.ConversationRecord
	input         textinput.Model
	phase         phase
	limit         int
	cursor        int
	selected      []models.ConversationRecord
	inputErr      string
	aborted       bool
}

func newPickerModel(convs []models.ConversationRecord) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "10"
	ti.CharLimit = 6
	ti.Width = 8
	ti.Focus()

	return pickerModel{
		conversations: SortNewestFirst(convs),
		input:         ti,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch m.phase {
	case phaseCount:
		return m.updateCount(keyMsg)
	case phaseSelect:
		return m.updateSelect(keyMsg)
	}
	return m, tea.Quit
}

func (m pickerModel) updateCount(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyEnter:
		limit, err := m.parseLimit()
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.limit = limit
		m.phase = phaseSelect
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.inputErr = ""
	return m, cmd
}

func (m pickerModel) parseLimit() (int, error) {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		raw = "10"
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("enter a number of at least 1")
	}
	if n > len(m.conversations) {
		n = len(m.conversations)
	}
	return n, nil
}

func (m pickerModel) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.aborted = true
		return m, tea.Quit
	case "y":
		m.selected = append(m.selected, m.conversations[m.cursor])
		return m.advance()
	case "n":
		return m.advance()
	}
	return m, nil
}

func (m pickerModel) advance() (tea.Model, tea.Cmd) {
	m.cursor++
	if m.cursor >= m.limit {
		m.phase = phaseDone
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	switch m.phase {
	case phaseCount:
		b.WriteString(pickerTitleStyle.Render("Export conversations"))
		b.WriteString(fmt.Sprintf("\n\n%d conversations found.\n", len(m.conversations)))
		b.WriteString("How many recent conversations to preview? ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.inputErr != "" {
			b.WriteString(errStyle.Render(m.inputErr))
			b.WriteString("\n")
		}
		b.WriteString(pickerHelpStyle.Render("enter to confirm, esc to cancel"))
	case phaseSelect:
		b.WriteString(pickerTitleStyle.Render(
			fmt.Sprintf("Conversation %d of %d (%d selected)", m.cursor+1, m.limit, len(m.selected))))
		b.WriteString("\n\n")
		b.WriteString(previewStyle.Render(Preview(m.conversations[m.cursor], m.cursor+1)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("Include this conversation?"))
		b.WriteString("\n")
		b.WriteString(pickerHelpStyle.Render("y include, n skip, q quit"))
	case phaseDone:
		b.WriteString(fmt.Sprintf("Selected %d conversations.\n", len(m.selected)))
	}
	return b.String()
}

// Pick runs the interactive selection over the most recent conversations
// and returns the chosen ones. A nil slice with nil error means the user
// cancelled.
func Pick(convs []models.ConversationRecord) ([]models.ConversationRecord, error) {
	if len(convs) == 0 {
		return nil, nil
	}
	p := tea.NewProgram(newPickerModel(convs))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(pickerModel)
	if !ok || m.aborted {
		return nil, nil
	}
	return m.selected, nil
}
