// Package panel holds the query panel's submission state: which request is
// current, whether any request is still outstanding, and what is on screen.
//
// A Panel is not safe for concurrent use. It is meant to be owned by a
// single event loop (the Bubble Tea Update function) that calls Submit when
// a request starts and Resolve when its response arrives.
package panel

import (
	"papersearch/internal/search"
)

// Token identifies one submission. Tokens increase monotonically per Panel.
type Token uint64

// State is the lifecycle position of the most recent submission.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateCommitted
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateCommitted:
		return "Committed"
	case StateErrored:
		return "Errored"
	default:
		return "Unknown"
	}
}

// Outcome reports what Resolve did with a response.
type Outcome int

const (
	OutcomeCommitted Outcome = iota
	OutcomeErrored
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeErrored:
		return "errored"
	case OutcomeStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Panel is the query panel's component-local state.
type Panel struct {
	last        Token
	outstanding map[Token]struct{}
	state       State
	query       search.Query
	results     []search.Paper
	errMsg      string
	sources     search.Sources
}

// New creates a panel with the given initial source selection.
func New(sources search.Sources) *Panel {
	return &Panel{
		outstanding: make(map[Token]struct{}),
		sources:     sources,
	}
}

// Submit starts a submission: it mints a new token, marks the panel as
// loading and clears the previous results and error. The caller attaches
// the returned token to the request and hands it back to Resolve.
func (p *Panel) Submit(q search.Query) Token {
	p.last++
	tok := p.last
	p.outstanding[tok] = struct{}{}
	p.query = q
	p.state = StateLoading
	p.results = nil
	p.errMsg = ""
	return tok
}

// Resolve settles the submission identified by tok. The loading hold for
// tok is always released. Only the latest token may change results or
// error; any other token is discarded and OutcomeStale is returned.
func (p *Panel) Resolve(tok Token, results []search.Paper, err error) Outcome {
	if _, ok := p.outstanding[tok]; !ok {
		return OutcomeStale
	}
	delete(p.outstanding, tok)

	if tok != p.last {
		return OutcomeStale
	}
	if err != nil {
		p.results = nil
		p.errMsg = errorMessage(err)
		p.state = StateErrored
		return OutcomeErrored
	}
	if results == nil {
		results = []search.Paper{}
	}
	p.results = results
	p.errMsg = ""
	p.state = StateCommitted
	return OutcomeCommitted
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Request failed"
}

// ToggleSource flips c in the source selection.
func (p *Panel) ToggleSource(c search.Category) {
	p.sources = p.sources.Toggle(c)
}

// Sources returns the current source selection.
func (p *Panel) Sources() search.Sources { return p.sources }

// Loading reports whether any submission is still outstanding. Settling a
// superseded request does not clear it while the current one is pending;
// the web client this replaces dropped its loading flag on every
// settlement, stale or not.
func (p *Panel) Loading() bool { return len(p.outstanding) > 0 }

// Outstanding returns the number of unresolved submissions.
func (p *Panel) Outstanding() int { return len(p.outstanding) }

// Current returns the latest minted token, or zero before the first Submit.
func (p *Panel) Current() Token { return p.last }

// State returns the lifecycle state of the latest submission. Stale
// responses never change it.
func (p *Panel) State() State { return p.state }

// Query returns the most recently submitted query.
func (p *Panel) Query() search.Query { return p.query }

// Results returns the committed results.
func (p *Panel) Results() []search.Paper { return p.results }

// Err returns the error message of the latest submission, or "".
func (p *Panel) Err() string { return p.errMsg }

// Empty reports whether the empty-state message should be shown: nothing
// to display and nothing outstanding.
func (p *Panel) Empty() bool {
	return len(p.results) == 0 && !p.Loading()
}
