package reconcile

import (
	"github.com/fortuna/ratingsync/internal/fide"
	"github.com/fortuna/ratingsync/internal/ratingviewer"
)

// Matcher resolves roster players against the two federation
// snapshots via the FIDE ID embedded in their profile link.
type Matcher struct {
	current  *fide.Snapshot
	previous *fide.Snapshot
}

// NewMatcher creates a matcher over the two rating periods. Both
// snapshots are read-only; an empty snapshot just never matches.
func NewMatcher(current, previous *fide.Snapshot) *Matcher {
	return &Matcher{
		current:  current,
		previous: previous,
	}
}

// Match is the outcome of one identity lookup. Presence in the
// current and previous snapshots are independent: a player can be in
// either, both, or neither.
type Match struct {
	FideID string

	Current    fide.Record
	InCurrent  bool
	Previous   fide.Record
	InPrevious bool
}

// MatchLink extracts the FIDE ID from a federation profile link and
// looks it up in both snapshots. Reports false when the link carries
// no identifier; such players stay roster-only.
func (m *Matcher) MatchLink(link string) (Match, bool) {
	id, ok := ratingviewer.ExtractFideID(link)
	if !ok {
		return Match{}, false
	}
	return m.MatchID(id), true
}

// MatchID looks a FIDE ID up in both snapshots.
func (m *Matcher) MatchID(id string) Match {
	match := Match{FideID: id}
	match.Current, match.InCurrent = m.current.Lookup(id)
	match.Previous, match.InPrevious = m.previous.Lookup(id)
	return match
}
