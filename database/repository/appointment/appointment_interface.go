package appointmentRepo

import (
	"errors"
	"time"

	"salonflow/models"
)

var (
	// ErrNotFound is returned when no appointment matches the lookup.
	ErrNotFound = errors.New("appointment not found")
	// ErrTimeSlotTaken is returned by the exclusive write paths when another
	// non-completed appointment already occupies the (provider, instant) or
	// (client, instant) pair.
	ErrTimeSlotTaken = errors.New("appointment time already taken")
)

// AppointmentRepository defines the persistence operations for appointments.
// CreateExclusive and UpdateTimeExclusive re-check the mutual-exclusion
// invariant inside a storage transaction so concurrent bookings cannot both
// land on the same instant.
type AppointmentRepository interface {
	GetByID(id string) (*models.Appointment, error)
	FindByProvider(providerID string, excludeCompleted bool) ([]models.Appointment, error)
	FindByClient(clientID string, excludeCompleted bool) ([]models.Appointment, error)
	FindByProviderBetween(providerID string, from, to time.Time) ([]models.Appointment, error)
	CreateExclusive(appt *models.Appointment) error
	UpdateTimeExclusive(id string, clientID, providerID string, newTime, updatedAt time.Time) error
	Update(appt *models.Appointment) error
	Delete(id string) error
}
