// Package pipeline orchestrates one reconciliation run: fetch both
// federation snapshots, scrape the club roster, enrich each player from
// their profile page, reconcile, and assemble the output report.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fortuna/ratingsync/internal/cache"
	"github.com/fortuna/ratingsync/internal/fide"
	"github.com/fortuna/ratingsync/internal/ratingviewer"
	"github.com/fortuna/ratingsync/internal/reconcile"
	"github.com/fortuna/ratingsync/internal/report"
)

// Scraper is the rating viewer collaborator: rendered roster and
// profile pages as HTML.
type Scraper interface {
	FetchRoster(ctx context.Context, clubURL string) (string, error)
	FetchProfile(ctx context.Context, profileURL string) (string, error)
}

// ListFetcher is the federation feed collaborator.
type ListFetcher interface {
	FetchSnapshot(ctx context.Context, url, period string) (*fide.Snapshot, error)
}

// Event is one progress notification emitted during a run.
type Event struct {
	Type    string    `json:"type"` // run_started, snapshot_loaded, roster_loaded, player, run_complete
	Player  string    `json:"player,omitempty"`
	Index   int       `json:"index,omitempty"`
	Total   int       `json:"total,omitempty"`
	Message string    `json:"message,omitempty"`
	Time    time.Time `json:"time"`
}

// Result is the outcome of one completed run.
type Result struct {
	Report   *report.Report
	Metrics  reconcile.Metrics
	Duration time.Duration
}

// Config holds the run parameters.
type Config struct {
	ClubURL  string
	ClubName string
	BaseURL  string // site base for absolutizing profile links
}

// Runner executes reconciliation runs.
type Runner struct {
	cfg       Config
	scraper   Scraper
	lists     ListFetcher
	snapshots *cache.SnapshotCache // optional, may be nil

	// OnEvent, when set, receives progress events during a run.
	OnEvent func(Event)
}

// NewRunner creates a runner. The snapshot cache is optional; pass
// nil to always download the rating lists.
func NewRunner(cfg Config, scraper Scraper, lists ListFetcher, snapshots *cache.SnapshotCache) *Runner {
	if cfg.BaseURL == "" {
		cfg.BaseURL = ratingviewer.BaseURL
	}
	return &Runner{
		cfg:       cfg,
		scraper:   scraper,
		lists:     lists,
		snapshots: snapshots,
	}
}

// Run performs one full reconciliation. Both snapshots are loaded
// before any roster work so every lookup sees complete data; players
// are then processed serially, each behind its own error boundary.
// The only fatal condition is failing to obtain the roster itself.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	started := time.Now()
	r.emit(Event{Type: "run_started"})

	log.Println("--- FIDE Data Preparation ---")
	now := time.Now()
	current := r.loadSnapshot(ctx, fide.CurrentListURL, currentPeriod(now))
	previous := r.loadSnapshot(ctx, fide.PreviousPeriodURL(now), fide.PreviousPeriod(now))
	log.Println("-----------------------------")

	log.Printf("Navigating to %s...", r.cfg.ClubURL)
	html, err := r.scraper.FetchRoster(ctx, r.cfg.ClubURL)
	if err != nil {
		return nil, fmt.Errorf("fetching roster: %w", err)
	}

	doc, err := ratingviewer.ParseHTML(html)
	if err != nil {
		return nil, fmt.Errorf("parsing roster page: %w", err)
	}

	players := ratingviewer.ParseRoster(doc, r.cfg.BaseURL)
	r.emit(Event{Type: "roster_loaded", Total: len(players)})

	engine := reconcile.NewEngine(current, previous)

	log.Printf("Basic data extracted for %d players. Fetching details...", len(players))
	for i, p := range players {
		log.Printf("[%d/%d] Processing %s...", i+1, len(players), p.Name)
		if err := r.enrichPlayer(ctx, p, engine); err != nil {
			// A bad profile page never aborts the run: the record is
			// emitted with whatever was already populated.
			log.Printf("Error processing %s: %v", p.Name, err)
		}
		r.emit(Event{Type: "player", Player: p.Name, Index: i + 1, Total: len(players)})
	}

	rep := report.New(r.cfg.ClubName, players)
	result := &Result{
		Report:   rep,
		Metrics:  engine.Metrics(),
		Duration: time.Since(started),
	}

	r.emit(Event{Type: "run_complete", Total: len(players)})
	log.Printf("✓ Reconciled %d players in %v", len(players), result.Duration.Round(time.Second))

	return result, nil
}

// enrichPlayer fetches one profile page and applies games-played,
// rating-change and federation enrichment to the player.
func (r *Runner) enrichPlayer(ctx context.Context, p *report.Player, engine *reconcile.Engine) error {
	html, err := r.scraper.FetchProfile(ctx, p.ProfileURL)
	if err != nil {
		return fmt.Errorf("fetching profile: %w", err)
	}

	doc, err := ratingviewer.ParseHTML(html)
	if err != nil {
		return fmt.Errorf("parsing profile page: %w", err)
	}

	profile := ratingviewer.ParseProfilePage(doc)

	// Clean no-matches keep the "0" defaults and are not errors.
	if games, ok := ratingviewer.ParseGamesPlayed(profile.GamesText); ok {
		p.GamesPlayed = games
	}
	if change, ok := ratingviewer.ParseRatingChange(profile.CalcText); ok {
		p.RatingChange = change
	}

	engine.Enrich(p, profile.FideLink)
	return nil
}

// loadSnapshot obtains one period's snapshot, consulting the cache
// first. Any failure degrades to an empty snapshot: matching for that
// period simply never succeeds.
func (r *Runner) loadSnapshot(ctx context.Context, url, period string) *fide.Snapshot {
	if r.snapshots != nil {
		if snap, ok := r.snapshots.Get(ctx, period); ok {
			log.Printf("  ✓ Using cached snapshot for %s (%d records)", period, snap.Len())
			r.emit(Event{Type: "snapshot_loaded", Message: period})
			return snap
		}
	}

	snap, err := r.lists.FetchSnapshot(ctx, url, period)
	if err != nil {
		log.Printf("  ⚠️  FIDE list %s unavailable: %v (continuing with empty snapshot)", period, err)
		return fide.EmptySnapshot(period)
	}

	if r.snapshots != nil {
		if err := r.snapshots.Set(ctx, snap); err != nil {
			log.Printf("  ⚠️  Failed to cache snapshot %s: %v", period, err)
		}
	}

	r.emit(Event{Type: "snapshot_loaded", Message: period})
	return snap
}

// emit delivers an event to the configured handler, if any.
func (r *Runner) emit(ev Event) {
	if r.OnEvent == nil {
		return
	}
	ev.Time = time.Now()
	r.OnEvent(ev)
}

// currentPeriod labels the period of the latest list, e.g. "aug26".
func currentPeriod(t time.Time) string {
	return strings.ToLower(t.Format("Jan06"))
}
