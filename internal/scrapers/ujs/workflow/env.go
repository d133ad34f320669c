// Package workflow runs the multi-step postback sequences of the portal,
// threading the tokens of every response into the next request.
package workflow

import (
	"docketsearch/internal/scrapers/ujs/portal"
	"docketsearch/lib/timezone"
	"time"
)

// TODO: confirm with the portal owners whether the filed date range fields are
// month first like the date of birth field, older revisions posted day first.
const DefaultDateLayout = "01/02/2006"

// NameQuery is a participant name search, a zero DOB means no date of birth.
type NameQuery struct {
	First string
	Last  string
	DOB   time.Time
}

// Env is what every search needs to open its own session.
type Env struct {
	Session portal.Options
	// 0 means pagination is never cut short
	TimeBudget time.Duration
	// layout of the dates posted to the portal, defaults to DefaultDateLayout
	DateLayout string
	// defaults to the current time in the portal's timezone
	Now func() time.Time
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return timezone.Now()
}

func (e Env) layout() string {
	if e.DateLayout == "" {
		return DefaultDateLayout
	}
	return e.DateLayout
}

// Date formats a calendar date the way the portal's date fields expect it.
func (e Env) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(e.layout())
}

// Today is the current date in the portal's timezone.
func (e Env) Today() string {
	return timezone.Date(e.now(), e.layout())
}

// Budget starts the time budget of one search.
func (e Env) Budget() Budget {
	return NewBudget(e.now(), e.TimeBudget)
}

// Expired reports whether the budget has run out as of now.
func (e Env) Expired(b Budget) bool {
	return b.Exhausted(e.now())
}

// NewSession opens a fresh session, searches never share sessions.
func (e Env) NewSession(endpoint string, prefix string) (*portal.Session, error) {
	opts := e.Session
	opts.DumpPrefix = prefix
	return portal.NewSession(endpoint, opts)
}

// Budget bounds the wall time a search may spend paginating.
type Budget struct {
	deadline time.Time
}

func NewBudget(start time.Time, limit time.Duration) Budget {
	if limit <= 0 {
		return Budget{}
	}
	return Budget{deadline: start.Add(limit)}
}

func (b Budget) Exhausted(now time.Time) bool {
	return !b.deadline.IsZero() && !now.Before(b.deadline)
}
