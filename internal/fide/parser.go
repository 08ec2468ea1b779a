package fide

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

// xmlPlayer mirrors one <player> element of the FIDE list. Every
// field is optional in the feed; absent elements decode to "".
type xmlPlayer struct {
	FideID   string `xml:"fideid"`
	Rating   string `xml:"rating"`
	Games    string `xml:"games"`
	Title    string `xml:"title"`
	Country  string `xml:"country"`
	Birthday string `xml:"birthday"`
}

// ParseArchive unpacks a zipped rating list and parses the first XML
// member into a snapshot.
func ParseArchive(data []byte, period string) (*Snapshot, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening rating list archive: %w", err)
	}

	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ".xml") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.Name, err)
		}
		defer rc.Close()

		return ParseList(rc, period)
	}

	return nil, fmt.Errorf("no XML member in rating list archive")
}

// ParseList streams a rating list XML document into a snapshot. The
// standard list carries several hundred thousand players, so players
// are decoded one element at a time rather than as one document.
//
// Records without a FIDE ID are skipped. If the feed ever repeats an
// ID, the last record wins.
func ParseList(r io.Reader, period string) (*Snapshot, error) {
	snap := EmptySnapshot(period)
	dec := xml.NewDecoder(r)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading rating list XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "player" {
			continue
		}

		var p xmlPlayer
		if err := dec.DecodeElement(&p, &start); err != nil {
			return nil, fmt.Errorf("decoding player element: %w", err)
		}

		id := strings.TrimSpace(p.FideID)
		if id == "" {
			continue
		}

		snap.Records[id] = Record{
			ID:       id,
			Rating:   coerceInt(p.Rating),
			Games:    coerceInt(p.Games),
			Title:    strings.TrimSpace(p.Title),
			Country:  strings.TrimSpace(p.Country),
			Birthday: strings.TrimSpace(p.Birthday),
		}
	}

	log.Printf("  ✓ Loaded %d records for period %s", snap.Len(), period)
	return snap, nil
}

// coerceInt parses a feed value as a non-negative integer; anything
// non-numeric or absent coerces to 0.
func coerceInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
