package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"papersearch/internal/panel"
	"papersearch/internal/search"
)

// Layout constants for the query panel.
const (
	sidebarWidth = 36 // outer width of the filters card
	inputRows    = 5  // textarea height
	minMainWidth = 30
)

// QueryPanelOptions configures a QueryPanelView.
type QueryPanelOptions struct {
	Searcher   search.Searcher
	Context    context.Context // parent of every search request; nil means Background
	Logger     *slog.Logger    // nil discards
	WindowDays int             // initial lookback; 0 means search.DefaultWindowDays
	Sources    search.Sources  // initial source selection
}

// QueryPanelView collects a query, submits it and shows the latest
// response. Responses from superseded submissions are dropped by the
// underlying panel state.
type QueryPanelView struct {
	state    *panel.Panel
	searcher search.Searcher
	ctx      context.Context
	logger   *slog.Logger

	input   textarea.Model
	slider  *WindowSlider
	sources SourceList
	results viewport.Model
	spinner spinner.Model
	focus   *FocusManager

	validation string // local hint, e.g. blank query
	width      int
	height     int
}

// Ensure QueryPanelView implements View.
var _ View = (*QueryPanelView)(nil)

// NewQueryPanelView creates the panel with focus on the query input.
func NewQueryPanelView(opts QueryPanelOptions) *QueryPanelView {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	days := opts.WindowDays
	if days == 0 {
		days = search.DefaultWindowDays
	}

	ta := textarea.New()
	ta.Placeholder = "Paste related abstract(s) here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(inputRows)
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	v := &QueryPanelView{
		state:    panel.New(opts.Sources),
		searcher: opts.Searcher,
		ctx:      ctx,
		logger:   logger,
		input:    ta,
		slider:   NewWindowSlider(days),
		results:  viewport.New(0, 0),
		spinner:  s,
		focus:    NewFocusManager(DefaultFocusOrder),
	}
	v.SetSize(100, 30)
	return v
}

// Init implements View.
func (v *QueryPanelView) Init() tea.Cmd {
	return textarea.Blink
}

// SetSize lays out the panel for the given area.
func (v *QueryPanelView) SetSize(width, height int) {
	v.width = width
	v.height = height

	mainWidth := max(width-sidebarWidth-1, minMainWidth)
	v.slider.Width = sidebarWidth - 4
	// Bubble border (2) and padding (2).
	v.input.SetWidth(mainWidth - 4)

	// Input bubble: rows + footer line + border.
	bubbleHeight := inputRows + 1 + 2
	v.results.Width = mainWidth
	v.results.Height = max(height-bubbleHeight-1, 3)
	v.renderResults()
}

// Typing reports whether keys are going to the text input.
func (v *QueryPanelView) Typing() bool {
	return v.focus.Is(FocusQuery)
}

// Focus returns the focused region.
func (v *QueryPanelView) Focus() FocusTarget {
	return v.focus.Current
}

// State exposes the submission state.
func (v *QueryPanelView) State() *panel.Panel {
	return v.state
}

// Update implements View.
func (v *QueryPanelView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		return v, nil
	case SubmitMsg:
		return v, v.submit()
	case FocusNextMsg:
		v.focus.Next()
		return v, v.syncFocus()
	case FocusPrevMsg:
		v.focus.Prev()
		return v, v.syncFocus()
	case searchResultMsg:
		v.resolve(msg)
		return v, nil
	case spinner.TickMsg:
		if !v.state.Loading() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}

	// Cursor blink and anything else the textarea consumes.
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *QueryPanelView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch v.focus.Current {
	case FocusQuery:
		if v.validation != "" {
			v.validation = ""
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return cmd
	case FocusWindow:
		if msg.String() == "enter" {
			return v.submit()
		}
		v.slider.HandleKey(msg)
		return nil
	case FocusSources:
		if msg.String() == "enter" {
			return v.submit()
		}
		if c, toggle, _ := v.sources.HandleKey(msg); toggle {
			v.state.ToggleSource(c)
			v.logger.Debug("source toggled", "category", string(c), "enabled", v.state.Sources().Enabled(c))
		}
		return nil
	case FocusResults:
		switch msg.String() {
		case "g", "home":
			v.results.GotoTop()
			return nil
		case "G", "end":
			v.results.GotoBottom()
			return nil
		}
		var cmd tea.Cmd
		v.results, cmd = v.results.Update(msg)
		return cmd
	}
	return nil
}

// syncFocus moves keyboard focus into or out of the textarea.
func (v *QueryPanelView) syncFocus() tea.Cmd {
	if v.focus.Is(FocusQuery) {
		return v.input.Focus()
	}
	v.input.Blur()
	return nil
}

// submit builds a fresh Query from the form and starts a request. Blank
// text is rejected locally without contacting the backend.
func (v *QueryPanelView) submit() tea.Cmd {
	q := search.Query{
		Text:           v.input.Value(),
		TimeWindowDays: v.slider.Days,
		Sources:        v.state.Sources(),
	}
	if err := q.Validate(); err != nil {
		v.validation = validationMessage(err)
		return nil
	}
	v.validation = ""

	wasLoading := v.state.Loading()
	tok := v.state.Submit(q)
	v.logger.Info("search submitted",
		"token", uint64(tok),
		"window_days", q.TimeWindowDays,
		"sources", q.Sources.Names(),
		"in_flight", v.state.Outstanding())
	v.refreshResults()

	cmds := []tea.Cmd{searchCmd(v.ctx, v.searcher, tok, q)}
	if !wasLoading {
		cmds = append(cmds, v.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (v *QueryPanelView) resolve(msg searchResultMsg) {
	outcome := v.state.Resolve(msg.Token, msg.Results, msg.Err)
	switch outcome {
	case panel.OutcomeStale:
		v.logger.Debug("stale response discarded", "token", uint64(msg.Token), "current", uint64(v.state.Current()))
		return
	case panel.OutcomeErrored:
		v.logger.Warn("search failed", "token", uint64(msg.Token), "error", msg.Err)
	case panel.OutcomeCommitted:
		q := v.state.Query()
		v.logger.Info("search committed",
			"token", uint64(msg.Token),
			"results", len(msg.Results),
			"window_days", q.TimeWindowDays,
			"sources", q.Sources.Names())
	}
	v.refreshResults()
}

// refreshResults re-renders the results and scrolls back to the top. Used
// when the displayed results change.
func (v *QueryPanelView) refreshResults() {
	v.renderResults()
	v.results.GotoTop()
}

// renderResults re-renders the results, keeping the scroll position.
func (v *QueryPanelView) renderResults() {
	v.results.SetContent(renderResults(v.state.Results(), v.results.Width, v.state.Empty()))
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, search.ErrEmptyText):
		return "Enter a query to search."
	default:
		return err.Error()
	}
}

// View implements View.
func (v *QueryPanelView) View() string {
	sidebar := v.sidebarView()
	main := lipgloss.JoinVertical(lipgloss.Left, v.inputView(), v.results.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)
}

func (v *QueryPanelView) sidebarView() string {
	inner := sidebarWidth - 4

	var b strings.Builder
	b.WriteString(Styles.Title.Render("Filters") + "\n\n")
	b.WriteString(v.slider.View(v.focus.Is(FocusWindow)) + "\n\n")
	b.WriteString(v.sources.View(v.state.Sources(), v.focus.Is(FocusSources)) + "\n\n")

	if v.state.Loading() {
		b.WriteString(Styles.ButtonOn.Render(v.spinner.View() + " Searching…"))
	} else {
		b.WriteString(Styles.Button.Render("Search") + " " + Styles.Hint.Render("ctrl+s"))
	}

	if v.validation != "" {
		b.WriteString("\n\n" + Styles.Warning.Width(inner).Render(v.validation))
	}
	if msg := v.state.Err(); msg != "" {
		b.WriteString("\n\n" + Styles.Error.Width(inner-2).Render(msg))
	}

	style := Styles.Sidebar
	if v.focus.Is(FocusWindow) || v.focus.Is(FocusSources) {
		style = Styles.SidebarFoc
	}
	return style.Width(sidebarWidth - 2).Render(b.String())
}

func (v *QueryPanelView) inputView() string {
	style := Styles.UserBubble
	if v.focus.Is(FocusQuery) {
		style = Styles.UserBubbleFoc
	}
	footer := Styles.Hint.Render("The backend embeds this text and searches papers by similarity.")
	return style.Width(v.results.Width - 2).Render(v.input.View() + "\n" + footer)
}
