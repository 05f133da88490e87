// Package clock provides an injectable time source so day-boundary rule
// evaluation is deterministic under test.
package clock

import "time"

// Clock is a source of "now"
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by time.Now
func System() Clock { return systemClock{} }

// Fixed returns a Clock that always reports t
func Fixed(t time.Time) Clock { return fixedClock{t: t} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// Midnight truncates t to the start of its calendar day in t's location.
// Rule evaluation takes one Midnight snapshot per pass so every rule in
// the pass agrees on "today".
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns calendar days from a to b. Negative when b is
// before a. Both days are rebuilt in UTC before differencing so a DST
// transition between them cannot shave the gap below a whole day.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}
