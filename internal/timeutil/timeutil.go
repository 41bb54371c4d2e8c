// Package timeutil centralizes business-date handling. All dates the business
// reasons about (today's sales, debt cutoffs) are in the company's local
// timezone, not UTC.
package timeutil

import "time"

// Clock resolves "now" and day boundaries in a fixed business timezone.
type Clock struct {
	loc *time.Location
}

// NewClock loads the IANA timezone (e.g. "America/Lima").
func NewClock(tz string) (*Clock, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	return &Clock{loc: loc}, nil
}

func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// DayBounds returns [start, end) of the local day containing t.
func (c *Clock) DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(c.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
	return start, start.AddDate(0, 0, 1)
}

// SameDay reports whether two instants fall on the same local day.
func (c *Clock) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(c.loc).Date()
	by, bm, bd := b.In(c.loc).Date()
	return ay == by && am == bm && ad == bd
}
