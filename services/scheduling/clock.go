package scheduling

import "time"

// Clock supplies the current instant. Time-dependent logic never reads the
// wall clock directly so slot generation stays deterministic under test.
type Clock interface {
	Now() time.Time
}

// RealClock is the production clock.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}
