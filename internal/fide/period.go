package fide

import (
	"fmt"
	"strings"
	"time"
)

const (
	// CurrentListURL always points at the latest standard rating list.
	CurrentListURL = "https://ratings.fide.com/download/standard_rating_list_xml.zip"

	// periodListURL is the template for a specific period's list,
	// e.g. standard_jan26frl_xml.zip.
	periodListURL = "https://ratings.fide.com/download/standard_%sfrl_xml.zip"
)

// PreviousPeriod returns the label of the rating period preceding the
// one in effect at t: the first day of t's month minus one day,
// formatted as lowercase month abbreviation plus two-digit year
// ("jan26"). The subtraction handles the January→December year
// rollover.
func PreviousPeriod(t time.Time) string {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	prev := firstOfMonth.AddDate(0, 0, -1)
	return strings.ToLower(prev.Format("Jan06"))
}

// PreviousPeriodURL returns the download URL for the previous
// period's standard rating list.
func PreviousPeriodURL(t time.Time) string {
	return fmt.Sprintf(periodListURL, PreviousPeriod(t))
}
