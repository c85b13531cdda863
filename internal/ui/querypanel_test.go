package ui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papersearch/internal/panel"
	"papersearch/internal/search"
)

// fakeSearcher answers by query text and records every query it sees.
type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]search.Paper
	errs    map[string]error
	queries []search.Query
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		results: make(map[string][]search.Paper),
		errs:    make(map[string]error),
	}
}

func (f *fakeSearcher) Search(_ context.Context, q search.Query) ([]search.Paper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if err := f.errs[q.Text]; err != nil {
		return nil, err
	}
	return f.results[q.Text], nil
}

// keyMsg creates a tea.KeyMsg for testing. Bubble Tea uses KeyType and Runes.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// runCmd executes cmd and any batched commands, returning the search
// results they produce. Other messages (spinner ticks) are dropped.
func runCmd(t *testing.T, cmd tea.Cmd) []searchResultMsg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case searchResultMsg:
		return []searchResultMsg{msg}
	case tea.BatchMsg:
		var out []searchResultMsg
		for _, c := range msg {
			out = append(out, runCmd(t, c)...)
		}
		return out
	default:
		return nil
	}
}

// submit sets the query text, submits, and returns the pending response
// without delivering it.
func submit(t *testing.T, v *QueryPanelView, text string) searchResultMsg {
	t.Helper()
	v.input.SetValue(text)
	_, cmd := v.Update(SubmitMsg{})
	msgs := runCmd(t, cmd)
	require.Len(t, msgs, 1, "expected exactly one search per submission")
	return msgs[0]
}

func deliver(v *QueryPanelView, msg searchResultMsg) {
	v.Update(msg)
}

func newTestPanel(s search.Searcher) *QueryPanelView {
	return NewQueryPanelView(QueryPanelOptions{
		Searcher: s,
		Sources:  search.AllSources(),
	})
}

func testPapers(ids ...string) []search.Paper {
	out := make([]search.Paper, len(ids))
	for i, id := range ids {
		out[i] = search.Paper{PaperID: id, Title: "Paper " + strings.ToUpper(id), Abstract: "abstract " + id}
	}
	return out
}

func TestQueryPanel_SubmitLifecycle(t *testing.T) {
	fake := newFakeSearcher()
	fake.results["scaling"] = testPapers("p1", "p2")
	v := newTestPanel(fake)

	assert.Contains(t, v.View(), EmptyStateText)

	pending := submit(t, v, "scaling")
	assert.True(t, v.State().Loading())
	assert.Contains(t, v.View(), "Searching…")
	assert.NotContains(t, v.View(), EmptyStateText, "empty state is hidden while loading")

	deliver(v, pending)
	assert.False(t, v.State().Loading())
	assert.Equal(t, panel.StateCommitted, v.State().State())
	view := v.View()
	assert.Contains(t, view, "Paper P1")
	assert.Contains(t, view, "Paper P2")
	assert.NotContains(t, view, "Searching…")
}

func TestQueryPanel_SlowEarlierResponseDoesNotOverwrite(t *testing.T) {
	fake := newFakeSearcher()
	fake.results["first"] = testPapers("a1")
	fake.results["second"] = testPapers("b1")
	v := newTestPanel(fake)

	a := submit(t, v, "first")
	b := submit(t, v, "second")
	require.NotEqual(t, a.Token, b.Token)

	deliver(v, b)
	assert.False(t, v.State().Loading())
	deliver(v, a)

	assert.False(t, v.State().Loading())
	assert.Equal(t, testPapers("b1"), v.State().Results())
	assert.Contains(t, v.View(), "Paper B1")
	assert.NotContains(t, v.View(), "Paper A1")
}

func TestQueryPanel_EarlierResponseFirstIsDiscarded(t *testing.T) {
	fake := newFakeSearcher()
	fake.results["first"] = testPapers("a1")
	v := newTestPanel(fake)

	a := submit(t, v, "first")
	b := submit(t, v, "second")

	deliver(v, a)
	assert.True(t, v.State().Loading(), "second request is still outstanding")
	assert.Empty(t, v.State().Results())

	deliver(v, b)
	assert.False(t, v.State().Loading())
	assert.True(t, v.State().Empty())
	assert.Contains(t, v.View(), EmptyStateText)
}

func TestQueryPanel_EmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	v := newTestPanel(search.NewClient(srv.URL))
	deliver(v, submit(t, v, "anything"))

	assert.Empty(t, v.State().Err())
	assert.Contains(t, v.View(), EmptyStateText)
}

func TestQueryPanel_BackendErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"db unavailable"}`, "db unavailable"},
		{"unparseable", `Internal Server Error`, "Request failed: 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			v := newTestPanel(search.NewClient(srv.URL))
			deliver(v, submit(t, v, "anything"))

			assert.Equal(t, tt.want, v.State().Err())
			assert.Empty(t, v.State().Results())
			assert.False(t, v.State().Loading())
			assert.Contains(t, v.View(), tt.want)
		})
	}
}

func TestQueryPanel_RetryAfterError(t *testing.T) {
	fake := newFakeSearcher()
	fake.errs["q"] = errors.New("connection refused")
	v := newTestPanel(fake)

	deliver(v, submit(t, v, "q"))
	require.Equal(t, "connection refused", v.State().Err())

	delete(fake.errs, "q")
	fake.results["q"] = testPapers("p1")
	pending := submit(t, v, "q")
	assert.Empty(t, v.State().Err(), "a new submission clears the error")
	deliver(v, pending)
	assert.Len(t, v.State().Results(), 1)
}

func TestQueryPanel_BlankQueryIsRejectedLocally(t *testing.T) {
	fake := newFakeSearcher()
	v := newTestPanel(fake)
	v.input.SetValue("   \n ")

	_, cmd := v.Update(SubmitMsg{})
	assert.Nil(t, cmd)
	assert.False(t, v.State().Loading())
	assert.Empty(t, fake.queries)
	assert.Contains(t, v.View(), "Enter a query to search.")
}

func TestQueryPanel_QueryCarriesFormState(t *testing.T) {
	fake := newFakeSearcher()
	v := NewQueryPanelView(QueryPanelOptions{
		Searcher:   fake,
		WindowDays: 1825,
		Sources:    search.AllSources(),
	})

	// Focus the sources group and turn systems conferences off.
	v.Update(FocusNextMsg{})
	v.Update(FocusNextMsg{})
	require.Equal(t, FocusSources, v.Focus())
	v.Update(keyMsg("3"))

	v.input.SetValue("neural scaling laws")
	_, cmd := v.Update(SubmitMsg{})
	runCmd(t, cmd)

	require.Len(t, fake.queries, 1)
	assert.Equal(t, search.Query{
		Text:           "neural scaling laws",
		TimeWindowDays: 1825,
		Sources:        search.Sources{Arxiv: true, AI: true, Systems: false},
	}, fake.queries[0])
}

func TestQueryPanel_SourceDoubleToggle(t *testing.T) {
	v := newTestPanel(newFakeSearcher())
	v.focus.SetFocus(FocusSources)
	before := v.State().Sources()

	v.Update(keyMsg("down"))
	v.Update(keyMsg(" "))
	assert.False(t, v.State().Sources().AI)
	v.Update(keyMsg(" "))
	assert.Equal(t, before, v.State().Sources())
	assert.False(t, v.State().Loading(), "toggling never sends a request")
}

func TestQueryPanel_SliderKeys(t *testing.T) {
	v := NewQueryPanelView(QueryPanelOptions{Searcher: newFakeSearcher(), WindowDays: 365})
	v.Update(FocusNextMsg{})
	require.Equal(t, FocusWindow, v.Focus())

	v.Update(keyMsg("right"))
	assert.Equal(t, 366, v.slider.Days)
	v.Update(keyMsg("pgdown"))
	assert.Equal(t, 336, v.slider.Days)
	v.Update(keyMsg("end"))
	assert.Equal(t, search.MaxWindowDays, v.slider.Days)
	v.Update(keyMsg("right"))
	assert.Equal(t, search.MaxWindowDays, v.slider.Days, "clamped at max")
	v.Update(keyMsg("home"))
	assert.Equal(t, search.MinWindowDays, v.slider.Days)
	assert.Contains(t, v.View(), "7 days")
}

func TestQueryPanel_EnterSubmitsOutsideTextInput(t *testing.T) {
	fake := newFakeSearcher()
	v := newTestPanel(fake)
	v.input.SetValue("attention")
	v.Update(FocusNextMsg{})

	_, cmd := v.Update(keyMsg("enter"))
	msgs := runCmd(t, cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, "attention", fake.queries[0].Text)
}

func TestQueryPanel_FocusMovesTextarea(t *testing.T) {
	v := newTestPanel(newFakeSearcher())
	assert.True(t, v.Typing())
	assert.True(t, v.input.Focused())

	v.Update(FocusPrevMsg{})
	assert.Equal(t, FocusResults, v.Focus())
	assert.False(t, v.input.Focused())

	v.Update(FocusNextMsg{})
	assert.True(t, v.input.Focused())
}

func TestQueryPanel_ResizeKeepsScrollPosition(t *testing.T) {
	fake := newFakeSearcher()
	ids := make([]string, 20)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}
	fake.results["many"] = testPapers(ids...)
	v := newTestPanel(fake)

	deliver(v, submit(t, v, "many"))
	require.Greater(t, v.results.TotalLineCount(), v.results.Height)

	v.results.SetYOffset(5)
	v.SetSize(110, 30)
	assert.Equal(t, 5, v.results.YOffset, "resize keeps the scroll offset")

	submit(t, v, "many")
	assert.Equal(t, 0, v.results.YOffset, "a new submission scrolls to the top")
}
