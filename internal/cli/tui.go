package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Theme holds the styles of the selection prompt.
type Theme struct {
	Badge    lipgloss.Style // field label
	Question lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Dim      lipgloss.Style
	Border   lipgloss.Style
}

// DefaultTheme returns the prompt styles built from the CLI palette.
func DefaultTheme() Theme {
	return Theme{
		Badge:    lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(colorPurple).Padding(0, 1),
		Question: StyleTitle,
		Selected: lipgloss.NewStyle().Bold(true).Foreground(colorYellow),
		Normal:   lipgloss.NewStyle().Foreground(colorWhite),
		Dim:      lipgloss.NewStyle().Foreground(colorDim),
		Border:   lipgloss.NewStyle().Foreground(colorDim),
	}
}

const selectQuestion = "Which of these do you want in your awesome README?"

// =============================================================================
// SelectModel - Interactive conflict resolution
// =============================================================================

// SelectModel is the bubbletea model that asks the user to pick one of
// several candidate values for a metadata field. q and esc settle on the
// first candidate; only ctrl+c sets Aborted.
type SelectModel struct {
	Theme   Theme
	Label   string
	Items   []string
	Cursor  int
	Chosen  int
	Aborted bool
}

// NewSelectModel creates a selection prompt for the field label.
func NewSelectModel(theme Theme, label string, items []string) SelectModel {
	return SelectModel{Theme: theme, Label: label, Items: items, Chosen: -1}
}

func (m SelectModel) Init() tea.Cmd {
	return nil
}

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c":
		m.Aborted = true
		return m, tea.Quit
	case "q", "esc":
		// Skipping a conflict keeps the first candidate.
		m.Chosen = 0
		m.Cursor = 0
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j", "tab":
		if m.Cursor < len(m.Items)-1 {
			m.Cursor++
		}
	case "enter":
		m.Chosen = m.Cursor
		return m, tea.Quit
	default:
		// Digits jump straight to a candidate.
		if s := key.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.Items) {
				m.Chosen = i
				m.Cursor = i
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m SelectModel) View() string {
	var b strings.Builder
	th := m.Theme

	b.WriteString(th.Badge.Render(m.Label))
	b.WriteString(" ")
	b.WriteString(th.Question.Render(selectQuestion))
	b.WriteString("\n")

	if m.Chosen >= 0 {
		b.WriteString(th.Dim.Render(iconArrow + " "))
		b.WriteString(th.Selected.Render(m.Items[m.Chosen]))
		b.WriteString("\n\n")
		return b.String()
	}

	b.WriteString(th.Dim.Render("↑/↓ navigate  ⏎ select  1-9 pick  esc skip  ctrl+c abort"))
	b.WriteString("\n")

	rows := make([][]string, len(m.Items))
	for i, item := range m.Items {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows[i] = []string{cursor, fmt.Sprintf("%d", i+1), item}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(th.Border).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row < 0:
				return lipgloss.NewStyle()
			case col == 1:
				return th.Dim
			case row == m.Cursor:
				return th.Selected
			default:
				return th.Normal
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}
