package ratingviewer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterRow(name, href, rating string) string {
	nameCell := ""
	if name != "" {
		nameCell = fmt.Sprintf(`<div data-column-id="Name"><a href="%s">%s</a></div>`, href, name)
	}
	ratingCell := ""
	if rating != "" {
		ratingCell = fmt.Sprintf(`<div data-column-id="Rating">%s</div>`, rating)
	}
	return fmt.Sprintf(`<div class="rdt_TableRow">%s%s</div>`, nameCell, ratingCell)
}

func TestParseRoster(t *testing.T) {
	html := `<html><body>` +
		rosterRow("Jan Jansen", "/players/1", " 2100 ") +
		`<div class="rdt_TableRow">
			<div data-column-id="Name"><a href="/players/2">Piet Peters</a></div>
			<div data-column-id="Rating">1950</div>
			<div data-column-id="3">FM</div>
			<div data-column-id="4">NED</div>
			<div data-column-id="6">1985</div>
			<div data-column-id="7">M</div>
		</div>` +
		`</body></html>`

	doc, err := ParseHTML(html)
	require.NoError(t, err)

	players := ParseRoster(doc, "https://ratingviewer.nl")
	require.Len(t, players, 2)

	first := players[0]
	assert.Equal(t, "Jan Jansen", first.Name)
	assert.Equal(t, "https://ratingviewer.nl/players/1", first.ProfileURL)
	assert.Equal(t, "2100", first.CurrentRating, "rating is trimmed")
	assert.Equal(t, "0", first.RatingChange, "defaults until the profile is parsed")
	assert.Equal(t, "0", first.GamesPlayed)
	assert.Equal(t, "", first.Title, "absent columns default to empty")

	second := players[1]
	assert.Equal(t, "FM", second.Title)
	assert.Equal(t, "NED", second.Country)
	assert.Equal(t, "1985", second.Birthday)
	assert.Equal(t, "M", second.Gender)
}

func TestParseRosterDropsIncompleteRows(t *testing.T) {
	html := `<html><body>` +
		rosterRow("", "", "2000") + // no name
		rosterRow("No Rating", "/players/3", "") + // no rating
		rosterRow("Keep Me", "/players/4", "1800") +
		`</body></html>`

	doc, err := ParseHTML(html)
	require.NoError(t, err)

	players := ParseRoster(doc, "https://ratingviewer.nl")
	require.Len(t, players, 1)
	assert.Equal(t, "Keep Me", players[0].Name)
}

func TestParseRosterEmptyPage(t *testing.T) {
	doc, err := ParseHTML(`<html><body></body></html>`)
	require.NoError(t, err)

	players := ParseRoster(doc, "https://ratingviewer.nl")
	assert.Empty(t, players)
}
