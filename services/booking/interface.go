package booking

import (
	"context"
	"time"

	appointmentRepo "salonflow/database/repository/appointment"
	clientRepo "salonflow/database/repository/client"
	providerRepo "salonflow/database/repository/provider"
	"salonflow/models"
	"salonflow/services/notification"
	"salonflow/services/scheduling"
)

// BookingEngine orchestrates the appointment lifecycle: creation,
// reschedule, cancellation, completion, and payment-status transitions.
type BookingEngine interface {
	CreateAppointment(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error)
	RescheduleAppointment(ctx context.Context, id string, newTime time.Time) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id string, actingRole string) error
	MarkCompleted(ctx context.Context, id string, providerID string) (*models.Appointment, error)
	SetPaymentStatus(ctx context.Context, id string, requested string, fallback models.PaymentStatus) (*models.Appointment, error)

	GetAppointment(id string) (*models.Appointment, error)
	ListProviderAppointments(providerID string, excludeCompleted bool) ([]models.Appointment, error)
	ListClientAppointments(clientID string, excludeCompleted bool) ([]models.Appointment, error)
}

// DefaultBookingEngine is the production implementation.
type DefaultBookingEngine struct {
	Appointments appointmentRepo.AppointmentRepository
	Providers    providerRepo.ProviderRepository
	Clients      clientRepo.ClientRepository
	Slots        scheduling.SlotService
	Notification notification.NotificationService
	Payments     PaymentProcessor
	Clock        scheduling.Clock

	// CancellationNotice is the minimum advance notice a non-admin actor
	// must give when cancelling.
	CancellationNotice time.Duration
}
