package ratingviewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGamesPlayed(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"label and value", "#Gespeeld\n5", "5", true},
		{"extra whitespace", "#Gespeeld\n  12  ", "12", true},
		{"multiple breaks take the last", "#Gespeeld\n\n7", "7", true},
		{"no line break", "#Gespeeld 5", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseGamesPlayed(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRatingChange(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"positive stores bare digits", "Berekening\n\n2702=2692 + 10", "10", true},
		{"negative keeps sign", "Berekening\n\n2687=2692 - 5", "-5", true},
		{"no space after sign", "2702=2692 +10", "10", true},
		{"equals without trailing delta is tolerated", "Berekening\n\n2692=", "", false},
		{"no rating history", "Berekening", "", false},
		{"trailing whitespace", "2702=2692 + 10  ", "10", true},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRatingChange(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractFideID(t *testing.T) {
	id, ok := ExtractFideID("https://ratings.fide.com/profile/1014980")
	require.True(t, ok)
	assert.Equal(t, "1014980", id)

	_, ok = ExtractFideID("https://ratings.fide.com/")
	assert.False(t, ok)

	_, ok = ExtractFideID("")
	assert.False(t, ok)
}

func TestParseProfilePage(t *testing.T) {
	html := `<html><body>
		<table><tr>
			<td>#Gespeeld
5</td>
			<td>Berekening

2702=2692 + 10</td>
		</tr></table>
		<a href="https://ratings.fide.com/profile/1014980">FIDE</a>
	</body></html>`

	doc, err := ParseHTML(html)
	require.NoError(t, err)

	p := ParseProfilePage(doc)
	assert.Contains(t, p.GamesText, "#Gespeeld")
	assert.Contains(t, p.CalcText, "Berekening")
	assert.Equal(t, "https://ratings.fide.com/profile/1014980", p.FideLink)

	games, ok := ParseGamesPlayed(p.GamesText)
	require.True(t, ok)
	assert.Equal(t, "5", games)

	change, ok := ParseRatingChange(p.CalcText)
	require.True(t, ok)
	assert.Equal(t, "10", change)
}

func TestParseProfilePageMissingFragments(t *testing.T) {
	doc, err := ParseHTML(`<html><body><table><tr><td>Periode</td></tr></table></body></html>`)
	require.NoError(t, err)

	p := ParseProfilePage(doc)
	assert.Empty(t, p.GamesText)
	assert.Empty(t, p.CalcText)
	assert.Empty(t, p.FideLink)
}
