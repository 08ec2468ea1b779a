package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Player is one reconciled roster entry in the output document.
// The roster columns are always present (empty string when the site
// doesn't show them); the FIDE fields are only set when a FIDE ID was
// extracted from the player's profile page and matched against the
// downloaded rating lists.
type Player struct {
	Name          string `json:"name"`
	ProfileURL    string `json:"profile_url"`
	CurrentRating string `json:"current_rating"`
	RatingChange  string `json:"rating_change"`
	GamesPlayed   string `json:"games_played"`
	Title         string `json:"title"`
	Country       string `json:"country"`
	Birthday      string `json:"birthday"`
	Gender        string `json:"gender"`

	FideID     string `json:"fide_id,omitempty"`
	FideRating string `json:"fide_rating,omitempty"`
	FideGames  string `json:"fide_games,omitempty"`
	FideChange string `json:"fide_change,omitempty"`
}

// NewPlayer returns a player with the documented field defaults:
// rating_change and games_played start at "0" and are only replaced
// when the profile page yields a parseable value.
func NewPlayer(name, profileURL, rating string) *Player {
	return &Player{
		Name:          name,
		ProfileURL:    profileURL,
		CurrentRating: rating,
		RatingChange:  "0",
		GamesPlayed:   "0",
	}
}

// Report is the single output document of a run.
type Report struct {
	Club      string    `json:"club"`
	Timestamp time.Time `json:"timestamp"`
	Players   []*Player `json:"players"`
}

// New creates a report stamped with the current time.
func New(club string, players []*Player) *Report {
	return &Report{
		Club:      club,
		Timestamp: time.Now(),
		Players:   players,
	}
}

// WriteFile serializes the report as one indented JSON document.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}

	return nil
}
