package ratingviewer

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// gamesLabel marks the summary cell holding the games-played
	// count, rendered as "#Gespeeld\n5".
	gamesLabel = "#Gespeeld"

	// calcLabel marks the calculation cell describing how the new
	// rating was derived, rendered as "Berekening\n\n2702=2692 + 10".
	calcLabel = "Berekening"
)

var (
	// ratingChangeRe matches the signed delta a calculation text ends
	// with: "+ 10", "-5". Anchored at end of string.
	ratingChangeRe = regexp.MustCompile(`([+-])\s?(\d+)$`)

	// fideProfileRe extracts the numeric FIDE ID from a profile link.
	fideProfileRe = regexp.MustCompile(`profile/(\d+)`)
)

// Profile holds the raw fragments of interest scraped from one
// player's detail page. Any field may be empty when the page doesn't
// show it.
type Profile struct {
	GamesText string
	CalcText  string
	FideLink  string
}

// ParseProfilePage pulls the games, calculation and FIDE-link
// fragments out of a rendered profile page.
func ParseProfilePage(doc *goquery.Document) Profile {
	var p Profile

	doc.Find("td").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := s.Text()
		if p.GamesText == "" && strings.Contains(text, gamesLabel) {
			p.GamesText = text
		}
		if p.CalcText == "" && strings.Contains(text, calcLabel) {
			p.CalcText = text
		}
		return p.GamesText == "" || p.CalcText == ""
	})

	doc.Find("a[href*='ratings.fide.com/profile/']").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if href, ok := s.Attr("href"); ok {
			p.FideLink = href
			return false
		}
		return true
	})

	return p
}

// ParseGamesPlayed extracts the games-played count from its summary
// cell: the value is whatever follows the last line break, trimmed.
// Reports false when the text has no line break, so the caller keeps
// its default.
func ParseGamesPlayed(text string) (string, bool) {
	if !strings.Contains(text, "\n") {
		return "", false
	}
	parts := strings.Split(text, "\n")
	return strings.TrimSpace(parts[len(parts)-1]), true
}

// ParseRatingChange extracts the signed delta a calculation text ends
// with. A "+" delta is stored as bare digits ("10"), matching the
// viewer's display convention; a "-" delta keeps its sign ("-5").
// Reports false on no match — a calculation containing "=" without a
// trailing signed number is a normal profile with no rating change,
// not a parse error.
func ParseRatingChange(text string) (string, bool) {
	m := ratingChangeRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", false
	}
	if m[1] == "-" {
		return "-" + m[2], true
	}
	return m[2], true
}

// ExtractFideID pulls the numeric FIDE identifier out of a federation
// profile link. Reports false when the link is empty or carries no
// profile segment; such players are simply excluded from federation
// matching.
func ExtractFideID(link string) (string, bool) {
	m := fideProfileRe.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	return m[1], true
}
