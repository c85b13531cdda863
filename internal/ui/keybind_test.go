package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind([]string{"ctrl+c"}, tea.Quit, "quit")
	reg.Bind([]string{"ctrl+s"}, func() tea.Msg { return SubmitMsg{} }, "search")

	assert.NotNil(t, reg.Lookup("ctrl+c"))
	assert.NotNil(t, reg.Lookup("ctrl+s"))
	assert.Nil(t, reg.Lookup("unknown"))
}

func TestKeybindRegistry_HandleGuarded(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindOutsideInput([]string{"?"}, func() tea.Msg { return ToggleHelpMsg{} }, "help")
	reg.Bind([]string{"ctrl+s"}, func() tea.Msg { return SubmitMsg{} }, "search")

	consumed, cmd := reg.Handle(keyMsg("?"), true)
	assert.False(t, consumed, "guarded key passes through while typing")
	assert.Nil(t, cmd)

	consumed, cmd = reg.Handle(keyMsg("?"), false)
	require.True(t, consumed)
	assert.IsType(t, ToggleHelpMsg{}, cmd())

	consumed, cmd = reg.Handle(keyMsg("ctrl+s"), true)
	require.True(t, consumed, "unguarded key fires while typing")
	assert.IsType(t, SubmitMsg{}, cmd())

	consumed, _ = reg.Handle(keyMsg("x"), false)
	assert.False(t, consumed)
}

func TestKeybindRegistry_BindingsOrder(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind([]string{"ctrl+s"}, tea.Quit, "search")
	reg.Bind([]string{"tab"}, tea.Quit, "next field")
	reg.Bind([]string{"q"}, tea.Quit, "") // no help entry

	b := reg.Bindings()
	require.Len(t, b, 2)
	assert.Equal(t, "search", b[0].Help().Desc)
	assert.Equal(t, "next field", b[1].Help().Desc)
}

func TestKeyMap_CombinesLocalAndGlobal(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind([]string{"ctrl+c"}, tea.Quit, "quit")

	km := NewKeyMap(reg, focusHints(FocusWindow))
	short := km.ShortHelp()
	require.Len(t, short, 4)
	assert.Equal(t, "quit", short[len(short)-1].Help().Desc)
	assert.Len(t, km.FullHelp(), 2)

	assert.Empty(t, NewKeyMap(nil, nil).ShortHelp())
}
