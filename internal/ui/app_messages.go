package ui

import (
	"papersearch/internal/panel"
	"papersearch/internal/search"
)

// SubmitMsg asks the query panel to submit the current form (ctrl+s).
type SubmitMsg struct{}

// ToggleHelpMsg switches between short and full key help (?).
type ToggleHelpMsg struct{}

// FocusNextMsg and FocusPrevMsg rotate focus (tab / shift+tab).
type (
	FocusNextMsg struct{}
	FocusPrevMsg struct{}
)

// searchResultMsg carries the settlement of one submission back to Update.
// Token identifies the submission it belongs to.
type searchResultMsg struct {
	Token   panel.Token
	Results []search.Paper
	Err     error
}
