package store

import "time"

// Clock abstracts the current time so day-rollover logic can be tested
// without waiting for midnight.
type Clock interface {
	Now() time.Time
	// Today returns the current calendar date as YYYY-MM-DD.
	Today() string
}

// SystemClock is the wall clock, in local time. Dates are local on
// purpose: "today" means the user's day, not UTC's.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Today() string { return time.Now().Format(DateLayout) }

// FixedClock always reports the same instant. Test use only.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time { return c.Time }

func (c FixedClock) Today() string { return c.Time.Format(DateLayout) }
