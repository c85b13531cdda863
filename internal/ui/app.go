package ui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"papersearch/internal/ui/textutil"
)

// headerHeight is the top bar plus its bottom border.
const headerHeight = 2

// AppOptions configures the root model.
type AppOptions struct {
	QueryPanelOptions
	BackendURL string // shown in the header
}

// AppModel is the root model: a header, the query panel and a help bar.
type AppModel struct {
	Panel      *QueryPanelView
	Keys       *KeybindRegistry
	Help       help.Model
	BackendURL string

	width  int
	height int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Panel.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.Help.Width = msg.Width
		a.layout()
		return a, nil
	case ToggleHelpMsg:
		a.Help.ShowAll = !a.Help.ShowAll
		a.layout()
		return a, nil
	case tea.KeyMsg:
		if a.Keys != nil {
			if consumed, cmd := a.Keys.Handle(msg, a.Panel.Typing()); consumed {
				return a, cmd
			}
		}
	}

	v, cmd := a.Panel.Update(msg)
	if p, ok := v.(*QueryPanelView); ok {
		a.Panel = p
	}
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.headerView(),
		a.Panel.View(),
		a.helpView(),
	)
}

func (a *AppModel) layout() {
	if a.width == 0 || a.height == 0 {
		return
	}
	a.Panel.SetSize(a.width, a.height-headerHeight-a.helpHeight())
}

func (a *AppModel) helpHeight() int {
	return lipgloss.Height(a.helpView())
}

func (a *AppModel) helpView() string {
	return a.Help.View(NewKeyMap(a.Keys, focusHints(a.Panel.Focus())))
}

func (a *AppModel) headerView() string {
	width := max(a.width, 40)
	left := Styles.Logo.Render("PS") + " " + Styles.Title.Render("Paper Search")
	right := "Embeddings-backed search"
	if a.BackendURL != "" {
		right += " · " + a.BackendURL
	}
	// Header padding takes two columns.
	inner := width - 2
	right = textutil.Truncate(right, max(inner-textutil.VisualWidthStyled(left)-1, 0))
	return Styles.Header.Width(width).Render(textutil.JoinEnds(left, Styles.Muted.Render(right), inner))
}

// NewAppModel creates the root application model with the default global
// key bindings.
func NewAppModel(opts AppOptions) *AppModel {
	reg := NewKeybindRegistry()
	reg.Bind([]string{"ctrl+s"}, func() tea.Msg { return SubmitMsg{} }, "search")
	reg.Bind([]string{"tab"}, func() tea.Msg { return FocusNextMsg{} }, "next field")
	reg.Bind([]string{"shift+tab"}, func() tea.Msg { return FocusPrevMsg{} }, "prev field")
	reg.BindOutsideInput([]string{"?"}, func() tea.Msg { return ToggleHelpMsg{} }, "more help")
	reg.Bind([]string{"ctrl+c"}, tea.Quit, "quit")
	reg.BindOutsideInput([]string{"q"}, tea.Quit, "")

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHighlight)).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.FullDesc = h.Styles.ShortDesc
	h.Styles.FullSeparator = h.Styles.ShortSeparator

	return &AppModel{
		Panel:      NewQueryPanelView(opts.QueryPanelOptions),
		Keys:       reg,
		Help:       h,
		BackendURL: opts.BackendURL,
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}
