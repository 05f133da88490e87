package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMidnightTruncatesToDayStart(t *testing.T) {
	ts := time.Date(2025, 6, 15, 17, 42, 3, 999, time.UTC)
	got := Midnight(ts)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name string
		b    time.Time
		want int
	}{
		{"same day ignores clock time", time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC), 0},
		{"next day", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), 1},
		{"two weeks ahead", time.Date(2025, 6, 29, 8, 0, 0, 0, time.UTC), 14},
		{"past is negative", time.Date(2025, 6, 13, 12, 0, 0, 0, time.UTC), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(base, tt.b))
		})
	}
}

func TestDaysBetween_SpringForwardStillCountsFullDays(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// The night of 2025-03-08 to 2025-03-09 is only 23 hours long in
	// this zone; the gap must still count as one calendar day.
	before := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)
	after := time.Date(2025, 3, 9, 12, 0, 0, 0, loc)

	assert.Equal(t, 1, DaysBetween(before, after))
	assert.Equal(t, 8, DaysBetween(before, time.Date(2025, 3, 16, 0, 0, 0, 0, loc)))
}

func TestFixedClock(t *testing.T) {
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := Fixed(ts)

	assert.Equal(t, ts, c.Now())
	assert.Equal(t, ts, c.Now())
}
