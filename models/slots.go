package models

import "time"

// TimeSlot is an ephemeral bookable interval derived from a provider's
// working hours. Slots are produced on demand and never persisted.
type TimeSlot struct {
	Start       time.Time    `json:"start"`
	End         time.Time    `json:"end"`
	Appointment *Appointment `json:"appointment,omitempty"` // the booking occupying this slot, if any
}

// Booked reports whether the slot is already occupied by a non-completed
// appointment.
func (s TimeSlot) Booked() bool {
	return s.Appointment != nil && !s.Appointment.Completed
}
