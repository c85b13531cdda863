package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"papersearch/internal/panel"
	"papersearch/internal/search"
)

// searchCmd returns a command that runs q against s and reports the
// outcome tagged with tok. Bubble Tea runs it on its own goroutine, so
// several may be in flight; Update decides which one is current.
func searchCmd(ctx context.Context, s search.Searcher, tok panel.Token, q search.Query) tea.Cmd {
	return func() tea.Msg {
		results, err := s.Search(ctx, q)
		return searchResultMsg{Token: tok, Results: results, Err: err}
	}
}
