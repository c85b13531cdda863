// Package ui implements the papersearch terminal interface with Bubble Tea.
//
// Pieces:
//   - AppModel: root model with header, query panel and help bar
//   - QueryPanelView: the form (query text, lookback slider, sources) and
//     the result bubbles
//   - FocusManager: tab order across the panel's regions
//   - KeybindRegistry: global keys, rendered through bubbles/help
//
// Searches run as tea.Cmds. Each carries the token minted at submission and
// reports back as a message; the panel state decides whether the response
// is still current.
package ui
