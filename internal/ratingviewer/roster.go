package ratingviewer

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/ratingsync/internal/report"
)

// Roster table column selectors. The viewer renders a react-data-table
// whose columns carry data-column-id attributes; the identity columns
// are numbered rather than named.
const (
	selRow      = ".rdt_TableRow"
	selNameLink = "div[data-column-id='Name'] a"
	selRating   = "div[data-column-id='Rating']"
	selTitle    = "div[data-column-id='3']"
	selCountry  = "div[data-column-id='4']"
	selBirth    = "div[data-column-id='6']"
	selGender   = "div[data-column-id='7']"
)

// ParseRoster extracts the club roster from a rendered roster page.
// A row yields a player only when both its name link and rating cell
// are present; incomplete rows are dropped, not errors. Profile links
// are absolutized against baseURL so later profile fetches resolve.
func ParseRoster(doc *goquery.Document, baseURL string) []*report.Player {
	var players []*report.Player

	doc.Find(selRow).Each(func(i int, row *goquery.Selection) {
		p := parseRosterRow(row, baseURL)
		if p != nil {
			players = append(players, p)
		}
	})

	log.Printf("Found %d players in the list.", len(players))
	return players
}

// parseRosterRow converts one table row into a player, or nil when
// the row lacks the required name or rating slot.
func parseRosterRow(row *goquery.Selection, baseURL string) *report.Player {
	nameLink := row.Find(selNameLink)
	ratingCell := row.Find(selRating)

	if nameLink.Length() == 0 || ratingCell.Length() == 0 {
		return nil
	}

	href, _ := nameLink.Attr("href")
	p := report.NewPlayer(
		strings.TrimSpace(nameLink.Text()),
		baseURL+href,
		strings.TrimSpace(ratingCell.Text()),
	)

	p.Title = cellText(row, selTitle)
	p.Country = cellText(row, selCountry)
	p.Birthday = cellText(row, selBirth)
	p.Gender = cellText(row, selGender)

	return p
}

// cellText returns the trimmed text of an optional column cell, ""
// when the column is absent.
func cellText(row *goquery.Selection, selector string) string {
	return strings.TrimSpace(row.Find(selector).Text())
}
