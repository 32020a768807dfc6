package models

import (
	"fmt"
	"time"
)

// WorkingHours is a recurring weekly availability window. The same
// (dayOfWeek, start, end) triple is stored once and referenced by every
// provider that works that window; the record may only be removed once
// ProviderIDs is empty.
type WorkingHours struct {
	ID          string       `bson:"id" json:"id"`
	DayOfWeek   time.Weekday `bson:"dayOfWeek" json:"dayOfWeek"`
	Start       int          `bson:"start" json:"start"` // minutes from midnight (e.g., 540 for 9:00 AM)
	End         int          `bson:"end" json:"end"`     // minutes from midnight (e.g., 1020 for 5:00 PM)
	ProviderIDs []string     `bson:"providerIds" json:"providerIds"`
}

// WorkingHoursWindow is the registration-form shape of a window, before
// dedup against the shared store.
type WorkingHoursWindow struct {
	DayOfWeek time.Weekday `json:"dayOfWeek"`
	Start     int          `json:"start"`
	End       int          `json:"end"`
}

const minutesPerDay = 24 * 60

// Validate checks the start < end invariant and day bounds.
func (w WorkingHoursWindow) Validate() error {
	if w.DayOfWeek < time.Sunday || w.DayOfWeek > time.Saturday {
		return fmt.Errorf("invalid day of week: %d", w.DayOfWeek)
	}
	if w.Start < 0 || w.End > minutesPerDay {
		return fmt.Errorf("window [%d, %d] out of day bounds", w.Start, w.End)
	}
	if w.Start >= w.End {
		return fmt.Errorf("window start %d must be before end %d", w.Start, w.End)
	}
	return nil
}

// Window returns the registration-form view of a stored record, used as the
// dedup key.
func (w WorkingHours) Window() WorkingHoursWindow {
	return WorkingHoursWindow{DayOfWeek: w.DayOfWeek, Start: w.Start, End: w.End}
}
