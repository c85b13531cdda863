package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for focus, user bubble
	ColorDanger    = "196" // Red - for errors
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorBubble    = "238" // Dark gray - result bubble background
	ColorWarning   = "208" // Orange - for validation hints
)

// Styles contains shared style definitions used across the query panel.
var Styles = struct {
	// Chrome
	Header     lipgloss.Style // Top bar
	Logo       lipgloss.Style // "PS" badge
	Title      lipgloss.Style // Bold accent color - for main titles
	Section    lipgloss.Style // Sidebar section headings
	Sidebar    lipgloss.Style // Filters card
	SidebarFoc lipgloss.Style // Filters card while one of its controls has focus

	// Bubbles
	UserBubble    lipgloss.Style // Query input bubble
	UserBubbleFoc lipgloss.Style // Query input bubble with focus
	ResultBubble  lipgloss.Style // One paper
	EmptyBubble   lipgloss.Style // "No results yet" bubble
	PaperTitle    lipgloss.Style
	PaperMeta     lipgloss.Style
	PaperAbstract lipgloss.Style
	PaperLink     lipgloss.Style

	// Text
	Selected lipgloss.Style // Cursor row in the sources list
	Muted    lipgloss.Style // Dimmed text
	Normal   lipgloss.Style
	Hint     lipgloss.Style // Help/hint text
	Value    lipgloss.Style // Slider value label
	Error    lipgloss.Style // Backend error alert
	Warning  lipgloss.Style // Local validation hint
	Button   lipgloss.Style // Search button
	ButtonOn lipgloss.Style // Search button while loading
}{
	Header: lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	Logo: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Section: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorText)),
	Sidebar: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	SidebarFoc: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	UserBubble: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	UserBubbleFoc: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	ResultBubble: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBubble)).
		Padding(0, 1).
		MarginBottom(1),
	EmptyBubble: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBubble)).
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true).
		Padding(0, 1),
	PaperTitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorText)),
	PaperMeta: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	PaperAbstract: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	PaperLink: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)).
		Underline(true),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Value: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(0, 1),
	Warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	Button: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(ColorHighlight)).
		Padding(0, 2),
	ButtonOn: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)).
		Background(lipgloss.Color(ColorMuted)).
		Padding(0, 2),
}
