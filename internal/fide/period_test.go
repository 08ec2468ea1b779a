package fide

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreviousPeriod(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"mid month", time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC), "jul26"},
		{"first of month", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), "feb26"},
		{"january rolls back a year", time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), "dec25"},
		{"december", time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC), "nov25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreviousPeriod(tt.now))
		})
	}
}

func TestPreviousPeriodURL(t *testing.T) {
	now := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t,
		"https://ratings.fide.com/download/standard_dec25frl_xml.zip",
		PreviousPeriodURL(now))
}
