// Package reconcile merges roster players with the two federation
// rating snapshots: identity matching, rating delta computation and
// identity-field backfill.
package reconcile

import (
	"log"
	"strconv"
	"time"

	"github.com/fortuna/ratingsync/internal/fide"
	"github.com/fortuna/ratingsync/internal/report"
)

// Engine enriches roster players with federation data.
type Engine struct {
	matcher *Matcher
	metrics *Metrics
}

// Metrics tracks reconciliation statistics for one run.
type Metrics struct {
	Players        int       `json:"players"`
	Matched        int       `json:"matched"`
	NotInList      int       `json:"not_in_list"`
	WithoutID      int       `json:"without_id"`
	NoPriorData    int       `json:"no_prior_data"`
	Backfills      int       `json:"backfills"`
	LastReconciled time.Time `json:"last_reconciled"`
}

// NewEngine creates an engine over the two rating periods.
func NewEngine(current, previous *fide.Snapshot) *Engine {
	return &Engine{
		matcher: NewMatcher(current, previous),
		metrics: &Metrics{},
	}
}

// Enrich applies federation data to one player, given the FIDE
// profile link scraped from their detail page (possibly empty).
//
// Roster-sourced fields always win: federation values only backfill
// title, country and birthday when the roster left them empty.
func (e *Engine) Enrich(p *report.Player, fideLink string) {
	e.metrics.Players++
	e.metrics.LastReconciled = time.Now()

	match, ok := e.matcher.MatchLink(fideLink)
	if !ok {
		// No identifier: the record keeps only roster fields.
		e.metrics.WithoutID++
		return
	}

	p.FideID = match.FideID

	if !match.InCurrent {
		// Known ID but absent from the list: inactive or unrated.
		e.metrics.NotInList++
		log.Printf("  -> FIDE ID %s found but not in list (inactive/unrated?)", match.FideID)
		return
	}

	e.metrics.Matched++
	p.FideRating = strconv.Itoa(match.Current.Rating)
	p.FideGames = strconv.Itoa(match.Current.Games)
	p.FideChange = e.ratingChange(match)

	e.backfill(p, match.Current)

	log.Printf("  -> FIDE %s: Rating %d, Change %s, Games %d",
		match.FideID, match.Current.Rating, p.FideChange, match.Current.Games)
}

// ratingChange computes the period-over-period delta. Positive deltas
// render as "+N", negative and zero as the plain signed decimal. A
// player missing from the previous list, or listed there with a zero
// rating, gets the "0" sentinel: no prior data is indistinguishable
// from a true zero delta in the output.
func (e *Engine) ratingChange(match Match) string {
	if !match.InPrevious || match.Previous.Rating <= 0 {
		e.metrics.NoPriorData++
		return "0"
	}
	return FormatDelta(match.Current.Rating - match.Previous.Rating)
}

// backfill copies title, country and birthday from the federation
// record into fields the roster left empty. Non-empty roster values
// are never overwritten.
func (e *Engine) backfill(p *report.Player, rec fide.Record) {
	if p.Title == "" && rec.Title != "" {
		p.Title = rec.Title
		e.metrics.Backfills++
	}
	if p.Country == "" && rec.Country != "" {
		p.Country = rec.Country
		e.metrics.Backfills++
	}
	if p.Birthday == "" && rec.Birthday != "" {
		p.Birthday = rec.Birthday
		e.metrics.Backfills++
	}
}

// FormatDelta renders a rating delta: "+15", "-5" or "0".
func FormatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}

// Metrics returns the engine's counters for the current run.
func (e *Engine) Metrics() Metrics {
	return *e.metrics
}
