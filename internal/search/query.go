// Package search defines the request and result types exchanged with the
// paper search backend and an HTTP client for its /api endpoints.
package search

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Lookback window bounds, in days.
const (
	MinWindowDays     = 7
	MaxWindowDays     = 3650
	DefaultWindowDays = 365 * 5
)

var (
	ErrEmptyText        = errors.New("query text is required")
	ErrWindowOutOfRange = fmt.Errorf("time window must be between %d and %d days", MinWindowDays, MaxWindowDays)
	ErrUnknownCategory  = errors.New("unknown source category")
)

// Category is a group of paper sources the backend can filter on.
type Category string

const (
	CategoryArxiv   Category = "arxiv"
	CategoryAI      Category = "ai-conferences"
	CategorySystems Category = "systems-conferences"
)

// AllCategories lists categories in display order.
var AllCategories = []Category{CategoryArxiv, CategoryAI, CategorySystems}

// Label returns the human-readable name shown next to the checkbox.
func (c Category) Label() string {
	switch c {
	case CategoryArxiv:
		return "arXiv"
	case CategoryAI:
		return "AI conferences"
	case CategorySystems:
		return "Systems conferences"
	default:
		return string(c)
	}
}

// WireKey returns the key used for this category in the request body.
func (c Category) WireKey() string {
	switch c {
	case CategoryArxiv:
		return "arxiv"
	case CategoryAI:
		return "ai"
	case CategorySystems:
		return "systems"
	default:
		return ""
	}
}

// ParseCategory accepts either the category name or its wire key.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range AllCategories {
		if s == string(c) || s == c.WireKey() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Sources is the set of enabled categories. The backend expects all three
// flags on every request.
type Sources struct {
	Arxiv   bool `json:"arxiv"`
	AI      bool `json:"ai"`
	Systems bool `json:"systems"`
}

// AllSources returns a set with every category enabled.
func AllSources() Sources {
	return Sources{Arxiv: true, AI: true, Systems: true}
}

// ParseSources builds a set from category names or wire keys. An empty
// list yields an empty set.
func ParseSources(names []string) (Sources, error) {
	var s Sources
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		c, err := ParseCategory(n)
		if err != nil {
			return Sources{}, err
		}
		s = s.With(c, true)
	}
	return s, nil
}

// Enabled reports whether c is in the set.
func (s Sources) Enabled(c Category) bool {
	switch c {
	case CategoryArxiv:
		return s.Arxiv
	case CategoryAI:
		return s.AI
	case CategorySystems:
		return s.Systems
	default:
		return false
	}
}

// With returns a copy of s with c set to on.
func (s Sources) With(c Category, on bool) Sources {
	switch c {
	case CategoryArxiv:
		s.Arxiv = on
	case CategoryAI:
		s.AI = on
	case CategorySystems:
		s.Systems = on
	}
	return s
}

// Toggle returns a copy of s with c flipped.
func (s Sources) Toggle(c Category) Sources {
	return s.With(c, !s.Enabled(c))
}

// Names returns the enabled wire keys in display order.
func (s Sources) Names() []string {
	var out []string
	for _, c := range AllCategories {
		if s.Enabled(c) {
			out = append(out, c.WireKey())
		}
	}
	return out
}

// Query is one submission to the backend. It is a value type; a new Query is
// built for every submission.
type Query struct {
	Text           string  `json:"text"`
	TimeWindowDays int     `json:"time_window_days"`
	Sources        Sources `json:"sources"`
}

// Validate checks the text and window bounds.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyText
	}
	if q.TimeWindowDays < MinWindowDays || q.TimeWindowDays > MaxWindowDays {
		return fmt.Errorf("%w: got %d", ErrWindowOutOfRange, q.TimeWindowDays)
	}
	return nil
}

// ClampWindow forces days into [MinWindowDays, MaxWindowDays].
func ClampWindow(days int) int {
	return max(MinWindowDays, min(MaxWindowDays, days))
}

// WindowLabel renders a window length the way the slider shows it:
// whole years from 365 days, whole months from 30 days, days below that.
func WindowLabel(days int) string {
	switch {
	case days >= 365:
		return plural(int(math.Round(float64(days)/365)), "year")
	case days >= 30:
		return plural(int(math.Round(float64(days)/30)), "month")
	default:
		return plural(days, "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Paper is a search result as returned by the backend.
type Paper struct {
	PaperID   string  `json:"paper_id"`
	Title     string  `json:"title"`
	Abstract  string  `json:"abstract"`
	Source    *string `json:"source,omitempty"`
	Link      *string `json:"link,omitempty"`
	PaperDate *string `json:"paper_date,omitempty"`
}

var paperDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date parses PaperDate. ok is false when the field is absent or in a
// format none of the known layouts accept.
func (p Paper) Date() (t time.Time, ok bool) {
	if p.PaperDate == nil || *p.PaperDate == "" {
		return time.Time{}, false
	}
	for _, layout := range paperDateLayouts {
		if t, err := time.Parse(layout, *p.PaperDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SourceName returns Source or "" when unset.
func (p Paper) SourceName() string {
	if p.Source == nil {
		return ""
	}
	return *p.Source
}

// URL returns Link or "" when unset.
func (p Paper) URL() string {
	if p.Link == nil {
		return ""
	}
	return *p.Link
}
