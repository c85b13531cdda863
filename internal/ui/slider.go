package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"papersearch/internal/search"
	"papersearch/internal/ui/textutil"
)

// sliderTicks are the labels under the lookback bar.
var sliderTicks = []string{"1w", "1m", "1y", "10y"}

// WindowSlider selects the lookback window in days.
type WindowSlider struct {
	Days  int
	Width int
}

// NewWindowSlider creates a slider at days, clamped to the valid range.
func NewWindowSlider(days int) *WindowSlider {
	return &WindowSlider{Days: search.ClampWindow(days), Width: 30}
}

// HandleKey adjusts the window. Returns true if the key was a slider key.
func (s *WindowSlider) HandleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "left", "h":
		s.set(s.Days - 1)
	case "right", "l":
		s.set(s.Days + 1)
	case "shift+left", "pgdown", "H":
		s.set(s.Days - 30)
	case "shift+right", "pgup", "L":
		s.set(s.Days + 30)
	case "home":
		s.set(search.MinWindowDays)
	case "end":
		s.set(search.MaxWindowDays)
	default:
		return false
	}
	return true
}

func (s *WindowSlider) set(days int) {
	s.Days = search.ClampWindow(days)
}

// Label returns the human-readable window.
func (s *WindowSlider) Label() string {
	return search.WindowLabel(s.Days)
}

// View renders the heading, bar and tick labels.
func (s *WindowSlider) View(focused bool) string {
	width := max(s.Width, 12)

	var b strings.Builder
	heading := Styles.Section.Render("Lookback window")
	value := Styles.Value.Render(s.Label())
	gap := width - textutil.VisualWidthStyled(heading) - textutil.VisualWidthStyled(value)
	b.WriteString(heading + strings.Repeat(" ", max(gap, 1)) + value + "\n")

	span := search.MaxWindowDays - search.MinWindowDays
	pos := (s.Days - search.MinWindowDays) * (width - 1) / span
	bar := strings.Repeat("━", pos) + "●" + strings.Repeat("─", width-1-pos)
	if focused {
		b.WriteString(Styles.Selected.Render(bar) + "\n")
	} else {
		b.WriteString(Styles.Muted.Render(bar) + "\n")
	}

	b.WriteString(Styles.Hint.Render(spreadLabels(sliderTicks, width)))
	return b.String()
}

// spreadLabels distributes labels across width with the first flush left
// and the last flush right.
func spreadLabels(labels []string, width int) string {
	if len(labels) == 0 {
		return ""
	}
	if len(labels) == 1 {
		return labels[0]
	}
	total := 0
	for _, l := range labels {
		total += textutil.VisualWidth(l)
	}
	free := max(width-total, len(labels)-1)
	gaps := len(labels) - 1

	var b strings.Builder
	for i, l := range labels {
		b.WriteString(l)
		if i < gaps {
			n := free / gaps
			if i < free%gaps {
				n++
			}
			b.WriteString(strings.Repeat(" ", n))
		}
	}
	return b.String()
}
