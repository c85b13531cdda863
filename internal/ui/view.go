package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the unit of composition; it mirrors Bubble Tea's Init/Update/View
// but returns a View from Update so hosts keep their concrete types.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
