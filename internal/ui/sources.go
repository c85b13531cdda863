package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"papersearch/internal/search"
)

// SourceList is the checkbox group for source categories. It only tracks
// the cursor; the selection itself lives in the panel state.
type SourceList struct {
	Cursor int
}

// HandleKey moves the cursor or reports a category to toggle.
// Returns (category, toggle, handled).
func (l *SourceList) HandleKey(msg tea.KeyMsg) (search.Category, bool, bool) {
	n := len(search.AllCategories)
	switch s := msg.String(); s {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
		return "", false, true
	case "down", "j":
		if l.Cursor < n-1 {
			l.Cursor++
		}
		return "", false, true
	case " ", "x":
		return search.AllCategories[l.Cursor], true, true
	case "1", "2", "3":
		idx := int(s[0] - '1')
		if idx < n {
			l.Cursor = idx
			return search.AllCategories[idx], true, true
		}
	}
	return "", false, false
}

// View renders one checkbox row per category.
func (l *SourceList) View(sources search.Sources, focused bool) string {
	var b strings.Builder
	b.WriteString(Styles.Section.Render("Sources") + "\n")
	for i, c := range search.AllCategories {
		box := "[ ]"
		if sources.Enabled(c) {
			box = "[x]"
		}
		row := box + " " + c.Label()
		switch {
		case focused && i == l.Cursor:
			row = Styles.Selected.Render("› " + row)
		default:
			row = Styles.Normal.Render("  " + row)
		}
		b.WriteString(row)
		if i < len(search.AllCategories)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
