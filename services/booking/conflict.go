package booking

import (
	"time"

	"salonflow/models"
)

// BookingCandidate is the tuple checked for admissibility before an
// appointment is created or moved.
type BookingCandidate struct {
	// AppointmentID excludes the candidate's own record from the conflict
	// set during an update. Exclusion is by identity, never by time.
	AppointmentID string
	ProviderID    string
	ClientID      string
	Time          time.Time
}

// CheckConflicts decides admissibility of the candidate against the
// provider's and client's existing appointments. Equality is exact-instant:
// the calendar does not model appointment duration, only slot alignment at
// generation time. Completed appointments never block their slot.
func CheckConflicts(c BookingCandidate, providerAppts, clientAppts []models.Appointment) error {
	if a := findAtInstant(providerAppts, c); a != nil {
		return ErrProviderUnavailable
	}
	if a := findAtInstant(clientAppts, c); a != nil {
		return ErrClientDoubleBooked
	}
	return nil
}

func findAtInstant(appts []models.Appointment, c BookingCandidate) *models.Appointment {
	for i := range appts {
		a := &appts[i]
		if a.Completed || a.ID == c.AppointmentID {
			continue
		}
		if a.Time.Equal(c.Time) {
			return a
		}
	}
	return nil
}
