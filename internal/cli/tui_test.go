package cli

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/sizing"
	"github.com/matzehuels/tagcloud/pkg/words"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m ExcludeListModel, keys ...string) (ExcludeListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(ExcludeListModel)
	}
	return m, cmd
}

var sampleEntries = []words.Entry{
	{Word: "cloud", Count: 9},
	{Word: "tag", Count: 5},
	{Word: "word", Count: 3},
	{Word: "layout", Count: 1},
}

func TestExcludeListNavigation(t *testing.T) {
	m := NewExcludeListModel(sampleEntries)

	m, _ = press(m, "k")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor)
	}
	m, _ = press(m, "j", "j", "j", "j", "j")
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want last row 3", m.Cursor)
	}
}

func TestExcludeListScrolls(t *testing.T) {
	m := NewExcludeListModel(sampleEntries)
	m.Height = 2

	m, _ = press(m, "j", "j", "j")
	if m.Offset != 2 {
		t.Errorf("offset = %d, want 2", m.Offset)
	}
	m, _ = press(m, "k", "k", "k")
	if m.Offset != 0 {
		t.Errorf("offset = %d, want 0", m.Offset)
	}
}

func TestExcludeListToggleAndConfirm(t *testing.T) {
	m := NewExcludeListModel(sampleEntries)

	m, _ = press(m, "x", "j", "j", "x", "j", "x", "x")
	if got := m.MarkedWords(); !slices.Equal(got, []string{"cloud", "word"}) {
		t.Errorf("marked = %v, want [cloud word]", got)
	}
	if !strings.Contains(m.View(), "2 selected") {
		t.Error("view should show the selection count")
	}

	m, cmd := press(m, "enter")
	if !m.Confirmed {
		t.Error("enter should confirm")
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestExcludeListQuitDoesNotConfirm(t *testing.T) {
	m := NewExcludeListModel(sampleEntries)
	m, cmd := press(m, "x", "q")
	if m.Confirmed || cmd == nil {
		t.Errorf("q should quit without confirming (confirmed=%v)", m.Confirmed)
	}
}

func TestExcludeListEmpty(t *testing.T) {
	m := NewExcludeListModel(nil)
	m, _ = press(m, "x", "j")
	if len(m.MarkedWords()) != 0 || m.Cursor != 0 {
		t.Error("empty list should ignore toggles and moves")
	}
	_ = m.View()
}

func TestExcludeListWindowSize(t *testing.T) {
	m := NewExcludeListModel(sampleEntries)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	if h := next.(ExcludeListModel).Height; h != 5 {
		t.Errorf("height = %d, want minimum 5", h)
	}
}

func TestWordTable(t *testing.T) {
	res := &pipeline.CountResult{Top: sampleEntries[:2], Distinct: 4, Total: 18}
	out := wordTable(res, &sizing.Mapper{MaxFontSize: 40, Ratio: 5})

	for _, want := range []string{"Word", "cloud", "tag", "50.0%", "40.0", "25.8"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
