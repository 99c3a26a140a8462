package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tagcloud/pkg/words"
)

// List styles
var (
	listMarkedStyle = lipgloss.NewStyle().Foreground(colorRed).Strikethrough(true)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ExcludeListModel - Interactive stop-word selection
// =============================================================================

// ExcludeListModel is the bubbletea model for picking words to exclude.
type ExcludeListModel struct {
	Entries   []words.Entry
	Marked    map[string]bool
	Cursor    int
	Height    int
	Offset    int
	Confirmed bool
}

// NewExcludeListModel creates a list over the ranked entries.
func NewExcludeListModel(entries []words.Entry) ExcludeListModel {
	return ExcludeListModel{
		Entries: entries,
		Marked:  make(map[string]bool),
		Height:  15,
	}
}

// MarkedWords returns the selected words in rank order.
func (m ExcludeListModel) MarkedWords() []string {
	var out []string
	for _, e := range m.Entries {
		if m.Marked[e.Word] {
			out = append(out, e.Word)
		}
	}
	return out
}

func (m ExcludeListModel) Init() tea.Cmd {
	return nil
}

func (m ExcludeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Entries) == 0 {
				return m, nil
			}
			w := m.Entries[m.Cursor].Word
			if m.Marked[w] {
				delete(m.Marked, w)
			} else {
				m.Marked[w] = true
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ExcludeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Exclude Words"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ save  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if m.Marked[e.Word] {
			mark = iconError
		}
		rows = append(rows, []string{cursor, mark, e.Word, strconv.Itoa(e.Count)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Word", "Count").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			marked := m.Marked[m.Entries[idx].Word]
			current := idx == m.Cursor

			base := lipgloss.NewStyle()
			switch {
			case marked && col == 2:
				base = listMarkedStyle
			case marked:
				base = base.Foreground(colorRed)
			case col == 3:
				base = base.Foreground(colorDim)
			case current:
				base = base.Foreground(colorCyan)
			default:
				base = base.Foreground(colorWhite)
			}
			if current {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d selected", m.Cursor+1, len(m.Entries), len(m.Marked))))

	return b.String()
}
