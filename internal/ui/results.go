package ui

import (
	"strings"

	"papersearch/internal/search"
	"papersearch/internal/ui/textutil"
)

// EmptyStateText is shown when there is nothing to display and no request
// is outstanding.
const EmptyStateText = "No results yet. Submit a query above."

// renderResults renders papers as a column of chat bubbles of the given
// outer width. When empty is true the empty-state bubble is rendered
// instead.
func renderResults(papers []search.Paper, width int, empty bool) string {
	width = max(width, 20)
	if empty {
		return Styles.EmptyBubble.Width(width - 2).Render(EmptyStateText)
	}

	bubbles := make([]string, 0, len(papers))
	for _, p := range papers {
		bubbles = append(bubbles, renderPaper(p, width))
	}
	return strings.Join(bubbles, "\n")
}

// renderPaper renders one result bubble: title and meta on the first line,
// the abstract below, and a link line when the paper has one.
func renderPaper(p search.Paper, width int) string {
	// Border (2) plus horizontal padding (2).
	inner := max(width-4, 10)

	meta := paperMeta(p)
	metaWidth := textutil.VisualWidth(meta)
	titleWidth := inner
	if metaWidth > 0 && metaWidth < inner/2 {
		titleWidth = inner - metaWidth - 1
	}

	var b strings.Builder
	title := Styles.PaperTitle.Render(textutil.Truncate(textutil.OneLine(p.Title), titleWidth))
	if metaWidth > 0 && metaWidth < inner/2 {
		b.WriteString(textutil.JoinEnds(title, Styles.PaperMeta.Render(meta), inner))
	} else {
		b.WriteString(title)
		if meta != "" {
			b.WriteString("\n" + Styles.PaperMeta.Render(textutil.Truncate(meta, inner)))
		}
	}

	if abstract := strings.TrimSpace(p.Abstract); abstract != "" {
		b.WriteString("\n\n" + Styles.PaperAbstract.Width(inner).Render(abstract))
	}
	if link := p.URL(); link != "" {
		b.WriteString("\n\n" + Styles.Muted.Render("View paper: ") + Styles.PaperLink.Render(link))
	}

	return Styles.ResultBubble.Width(width - 2).Render(b.String())
}

// paperMeta formats "source • date", omitting absent parts.
func paperMeta(p search.Paper) string {
	parts := make([]string, 0, 2)
	if s := p.SourceName(); s != "" {
		parts = append(parts, s)
	}
	if d, ok := p.Date(); ok {
		parts = append(parts, d.Format("Jan 2, 2006"))
	} else if p.PaperDate != nil && *p.PaperDate != "" {
		parts = append(parts, *p.PaperDate)
	}
	return strings.Join(parts, " • ")
}
