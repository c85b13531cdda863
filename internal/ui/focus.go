package ui

// FocusTarget names a focusable region of the query panel.
type FocusTarget string

const (
	FocusQuery   FocusTarget = "query"
	FocusWindow  FocusTarget = "window"
	FocusSources FocusTarget = "sources"
	FocusResults FocusTarget = "results"
)

// DefaultFocusOrder is the tab order of the query panel.
var DefaultFocusOrder = []FocusTarget{FocusQuery, FocusWindow, FocusSources, FocusResults}

// FocusManager tracks and rotates focus across regions.
type FocusManager struct {
	Current  FocusTarget   // currently focused region
	Order    []FocusTarget // tab order for focus rotation
	OnChange func(from, to FocusTarget)
}

// NewFocusManager starts with focus on the first entry of order.
func NewFocusManager(order []FocusTarget) *FocusManager {
	f := &FocusManager{Order: order}
	if len(order) > 0 {
		f.Current = order[0]
	}
	return f
}

// Next advances focus to the next region in order.
func (f *FocusManager) Next() FocusTarget {
	return f.step(1)
}

// Prev moves focus to the previous region in order.
func (f *FocusManager) Prev() FocusTarget {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) FocusTarget {
	n := len(f.Order)
	if n == 0 {
		return ""
	}
	idx := f.index(f.Current)
	if idx < 0 {
		// Unknown current: forward lands on the first entry, backward on the last.
		if delta > 0 {
			idx = n - 1
		} else {
			idx = 0
		}
	}
	f.set(f.Order[((idx+delta)%n+n)%n])
	return f.Current
}

// SetFocus sets focus to target. Returns false if target is not in order.
func (f *FocusManager) SetFocus(target FocusTarget) bool {
	if f.index(target) < 0 {
		return false
	}
	f.set(target)
	return true
}

// Is reports whether target has focus.
func (f *FocusManager) Is(target FocusTarget) bool {
	return f.Current == target
}

func (f *FocusManager) set(to FocusTarget) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}

func (f *FocusManager) index(target FocusTarget) int {
	for i, t := range f.Order {
		if t == target {
			return i
		}
	}
	return -1
}
