// Package fide downloads and parses the FIDE rating lists published
// as zipped XML, one list per month, and exposes them as in-memory
// snapshots keyed by FIDE ID.
package fide

// Record holds one player's entry in a rating list. Records are
// immutable once parsed.
type Record struct {
	ID       string `json:"id"`
	Rating   int    `json:"rating"`
	Games    int    `json:"games"`
	Title    string `json:"title"`
	Country  string `json:"country"`
	Birthday string `json:"birthday"`
}

// Snapshot is one rating period's list, keyed by FIDE ID. Snapshots
// are read-only after construction and safe to share across
// goroutines.
type Snapshot struct {
	Period  string            `json:"period"`
	Records map[string]Record `json:"records"`
}

// EmptySnapshot is the degraded result when a list cannot be fetched
// or parsed: lookups simply never succeed for that period.
func EmptySnapshot(period string) *Snapshot {
	return &Snapshot{
		Period:  period,
		Records: map[string]Record{},
	}
}

// Lookup returns the record for a FIDE ID, if present.
func (s *Snapshot) Lookup(id string) (Record, bool) {
	rec, ok := s.Records[id]
	return rec, ok
}

// Len returns the number of records in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.Records)
}
