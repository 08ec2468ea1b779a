package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerJSONKeys(t *testing.T) {
	p := NewPlayer("Jan Jansen", "https://ratingviewer.nl/players/1", "2100")
	p.Title = "FM"
	p.FideID = "1014980"
	p.FideRating = "2050"
	p.FideGames = "9"
	p.FideChange = "+12"

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var keys map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &keys))

	for _, key := range []string{
		"name", "profile_url", "current_rating", "rating_change",
		"games_played", "title", "country", "birthday", "gender",
		"fide_id", "fide_rating", "fide_games", "fide_change",
	} {
		assert.Contains(t, keys, key)
	}
}

func TestPlayerOmitsUnsetFideFields(t *testing.T) {
	p := NewPlayer("Roster Only", "url", "1800")

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var keys map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &keys))

	assert.NotContains(t, keys, "fide_id")
	assert.NotContains(t, keys, "fide_rating")
	assert.NotContains(t, keys, "fide_games")
	assert.NotContains(t, keys, "fide_change")

	// Roster columns are always present, even when empty.
	assert.Contains(t, keys, "title")
	assert.Equal(t, "0", keys["rating_change"])
	assert.Equal(t, "0", keys["games_played"])
}

func TestWriteFile(t *testing.T) {
	rep := New("JSV SISSA", []*Player{
		NewPlayer("Jan Jansen", "url", "2100"),
	})

	path := filepath.Join(t.TempDir(), "ratings.json")
	require.NoError(t, rep.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Club      string            `json:"club"`
		Timestamp string            `json:"timestamp"`
		Players   []json.RawMessage `json:"players"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "JSV SISSA", doc.Club)
	assert.NotEmpty(t, doc.Timestamp)
	assert.Len(t, doc.Players, 1)
}
