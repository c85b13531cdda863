package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeybindRegistry maps global keys to commands. Keys use tea.KeyMsg.String()
// notation: "ctrl+c", "ctrl+s", "tab", "?".
//
// Global bindings are checked before the focused region sees the key, so
// only bind keys that never mean text input.
type KeybindRegistry struct {
	bindings map[string]tea.Cmd
	help     []key.Binding // registration order, for the help bar
	guarded  map[string]bool
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings: make(map[string]tea.Cmd),
		guarded:  make(map[string]bool),
	}
}

// Bind registers keys to a command with a description for the help bar.
// Rebinding a key replaces its command.
func (r *KeybindRegistry) Bind(keys []string, cmd tea.Cmd, desc string) {
	r.bind(keys, cmd, desc, false)
}

// BindOutsideInput registers keys that only fire when no text input has
// focus (e.g. "?" must still be typeable into the query).
func (r *KeybindRegistry) BindOutsideInput(keys []string, cmd tea.Cmd, desc string) {
	r.bind(keys, cmd, desc, true)
}

func (r *KeybindRegistry) bind(keys []string, cmd tea.Cmd, desc string, guarded bool) {
	for _, k := range keys {
		r.bindings[k] = cmd
		r.guarded[k] = guarded
	}
	if desc != "" && len(keys) > 0 {
		r.help = append(r.help, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], desc),
		))
	}
}

// Lookup returns the command for a key, or nil if not bound.
func (r *KeybindRegistry) Lookup(k string) tea.Cmd {
	return r.bindings[k]
}

// Handle dispatches a key. typing reports whether a text input has focus.
// Returns (consumed, cmd).
func (r *KeybindRegistry) Handle(msg tea.KeyMsg, typing bool) (bool, tea.Cmd) {
	s := msg.String()
	cmd, ok := r.bindings[s]
	if !ok || cmd == nil {
		return false, nil
	}
	if typing && r.guarded[s] {
		return false, nil
	}
	return true, cmd
}

// Bindings returns the help entries in registration order.
func (r *KeybindRegistry) Bindings() []key.Binding {
	return r.help
}

// KeyMap implements help.KeyMap: global bindings plus the hints of the
// currently focused region.
type KeyMap struct {
	global []key.Binding
	local  []key.Binding
}

var _ help.KeyMap = KeyMap{}

// NewKeyMap combines registry bindings with region hints.
func NewKeyMap(reg *KeybindRegistry, local []key.Binding) KeyMap {
	var global []key.Binding
	if reg != nil {
		global = reg.Bindings()
	}
	return KeyMap{global: global, local: local}
}

// ShortHelp returns the focused region's hints followed by global bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, len(k.local)+len(k.global))
	out = append(out, k.local...)
	return append(out, k.global...)
}

// FullHelp groups region hints and global bindings into two columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.local, k.global}
}

// focusHints returns the key hints shown for a focused region.
func focusHints(target FocusTarget) []key.Binding {
	switch target {
	case FocusQuery:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),
		}
	case FocusWindow:
		return []key.Binding{
			key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "±1 day")),
			key.NewBinding(key.WithKeys("pgdown", "pgup"), key.WithHelp("pgdn/pgup", "±30 days")),
			key.NewBinding(key.WithKeys("home", "end"), key.WithHelp("home/end", "min/max")),
		}
	case FocusSources:
		return []key.Binding{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
			key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
			key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "toggle source")),
		}
	case FocusResults:
		return []key.Binding{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
			key.NewBinding(key.WithKeys("g", "G"), key.WithHelp("g/G", "top/bottom")),
		}
	}
	return nil
}
