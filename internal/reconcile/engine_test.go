package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/ratingsync/internal/fide"
	"github.com/fortuna/ratingsync/internal/report"
)

func snapshotWith(period string, recs ...fide.Record) *fide.Snapshot {
	snap := fide.EmptySnapshot(period)
	for _, rec := range recs {
		snap.Records[rec.ID] = rec
	}
	return snap
}

func profileLink(id string) string {
	return "https://ratings.fide.com/profile/" + id
}

func TestEnrichComputesPositiveDelta(t *testing.T) {
	current := snapshotWith("cur", fide.Record{ID: "123", Rating: 2000, Games: 8})
	previous := snapshotWith("prev", fide.Record{ID: "123", Rating: 1980})
	engine := NewEngine(current, previous)

	p := report.NewPlayer("Test", "url", "2100")
	engine.Enrich(p, profileLink("123"))

	assert.Equal(t, "123", p.FideID)
	assert.Equal(t, "2000", p.FideRating)
	assert.Equal(t, "8", p.FideGames)
	assert.Equal(t, "+20", p.FideChange)
}

func TestEnrichNegativeAndZeroDelta(t *testing.T) {
	current := snapshotWith("cur",
		fide.Record{ID: "1", Rating: 1990},
		fide.Record{ID: "2", Rating: 2000},
	)
	previous := snapshotWith("prev",
		fide.Record{ID: "1", Rating: 2000},
		fide.Record{ID: "2", Rating: 2000},
	)
	engine := NewEngine(current, previous)

	down := report.NewPlayer("Down", "url", "")
	engine.Enrich(down, profileLink("1"))
	assert.Equal(t, "-10", down.FideChange)

	flat := report.NewPlayer("Flat", "url", "")
	engine.Enrich(flat, profileLink("2"))
	assert.Equal(t, "0", flat.FideChange, "zero delta renders without a plus sign")
}

func TestEnrichNoPriorData(t *testing.T) {
	current := snapshotWith("cur", fide.Record{ID: "123", Rating: 2000, Games: 4})

	t.Run("absent from previous list", func(t *testing.T) {
		engine := NewEngine(current, fide.EmptySnapshot("prev"))
		p := report.NewPlayer("Test", "url", "")
		engine.Enrich(p, profileLink("123"))

		assert.Equal(t, "2000", p.FideRating)
		assert.Equal(t, "0", p.FideChange)
	})

	t.Run("previous rating is zero", func(t *testing.T) {
		previous := snapshotWith("prev", fide.Record{ID: "123", Rating: 0})
		engine := NewEngine(current, previous)
		p := report.NewPlayer("Test", "url", "")
		engine.Enrich(p, profileLink("123"))

		assert.Equal(t, "0", p.FideChange)
	})
}

func TestEnrichNoIdentifier(t *testing.T) {
	engine := NewEngine(fide.EmptySnapshot("cur"), fide.EmptySnapshot("prev"))

	p := report.NewPlayer("Test", "url", "1900")
	engine.Enrich(p, "")

	assert.Empty(t, p.FideID)
	assert.Empty(t, p.FideRating)
	assert.Empty(t, p.FideChange)
	assert.Equal(t, 1, engine.Metrics().WithoutID)
}

func TestEnrichIDNotInCurrentList(t *testing.T) {
	engine := NewEngine(fide.EmptySnapshot("cur"), fide.EmptySnapshot("prev"))

	p := report.NewPlayer("Test", "url", "1900")
	engine.Enrich(p, profileLink("999"))

	// The identifier is kept but no list data is attached.
	assert.Equal(t, "999", p.FideID)
	assert.Empty(t, p.FideRating)
	assert.Empty(t, p.FideGames)
	assert.Empty(t, p.FideChange)
	assert.Equal(t, 1, engine.Metrics().NotInList)
}

func TestEnrichBackfillsOnlyEmptyFields(t *testing.T) {
	current := snapshotWith("cur", fide.Record{
		ID: "123", Rating: 2300,
		Title: "IM", Country: "NED", Birthday: "1990",
	})
	engine := NewEngine(current, fide.EmptySnapshot("prev"))

	p := report.NewPlayer("Test", "url", "2250")
	p.Title = "FM" // roster value must survive
	engine.Enrich(p, profileLink("123"))

	assert.Equal(t, "FM", p.Title, "roster title is never overwritten")
	assert.Equal(t, "NED", p.Country, "empty country is backfilled")
	assert.Equal(t, "1990", p.Birthday, "empty birthday is backfilled")
	assert.Equal(t, 2, engine.Metrics().Backfills)
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "+15", FormatDelta(15))
	assert.Equal(t, "-5", FormatDelta(-5))
	assert.Equal(t, "0", FormatDelta(0))
}

func TestMatcherIndependentLookups(t *testing.T) {
	current := snapshotWith("cur", fide.Record{ID: "1", Rating: 2000})
	previous := snapshotWith("prev", fide.Record{ID: "2", Rating: 1900})
	m := NewMatcher(current, previous)

	match := m.MatchID("1")
	assert.True(t, match.InCurrent)
	assert.False(t, match.InPrevious)

	match = m.MatchID("2")
	assert.False(t, match.InCurrent)
	assert.True(t, match.InPrevious)

	_, ok := m.MatchLink("not a profile link")
	require.False(t, ok)
}
