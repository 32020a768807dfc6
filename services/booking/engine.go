package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "salonflow/database/repository/appointment"
	"salonflow/models"
	"salonflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateAppointment books a provider for a client at a single future
// instant. The conflict check runs once here for a user-facing rejection and
// once more inside the storage transaction as the race guard.
func (e *DefaultBookingEngine) CreateAppointment(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()
	now := e.Clock.Now()

	if !req.Time.After(now) {
		return nil, ErrInvalidTime
	}

	provider, err := e.Providers.GetByID(req.ProviderID)
	if err != nil {
		return nil, err
	}
	if !provider.Approved {
		return nil, ErrProviderNotApproved
	}
	if _, err := e.Clients.GetByID(req.ClientID); err != nil {
		return nil, err
	}

	candidate := BookingCandidate{
		ProviderID: req.ProviderID,
		ClientID:   req.ClientID,
		Time:       req.Time,
	}
	if err := e.checkCandidate(candidate); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:            uuid.New().String(),
		ClientID:      req.ClientID,
		ProviderID:    req.ProviderID,
		ServiceType:   req.ServiceType,
		Time:          req.Time,
		Completed:     false,
		PaymentStatus: models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := e.Appointments.CreateExclusive(appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrTimeSlotTaken) {
			return nil, ErrSchedulingConflict
		}
		return nil, fmt.Errorf("failed to persist appointment: %w", err)
	}

	e.Slots.InvalidateSlots(ctx, appt.ProviderID)
	e.notify(ctx, appt.ClientID, appt.ProviderID,
		"Appointment confirmed",
		fmt.Sprintf("Your %s appointment is booked for %s.", appt.ServiceType, appt.Time.Format(time.RFC1123)),
	)

	logger.Info("appointment created",
		zap.String("appointmentID", appt.ID),
		zap.String("providerID", appt.ProviderID),
		zap.Time("time", appt.Time))
	return appt, nil
}

// RescheduleAppointment moves an existing appointment to a new future
// instant, excluding the appointment's own prior slot from the conflict set.
func (e *DefaultBookingEngine) RescheduleAppointment(ctx context.Context, id string, newTime time.Time) (*models.Appointment, error) {
	appt, err := e.Appointments.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := e.Clock.Now()
	if !newTime.After(now) {
		return nil, ErrInvalidTime
	}

	candidate := BookingCandidate{
		AppointmentID: appt.ID,
		ProviderID:    appt.ProviderID,
		ClientID:      appt.ClientID,
		Time:          newTime,
	}
	if err := e.checkCandidate(candidate); err != nil {
		return nil, err
	}

	if err := e.Appointments.UpdateTimeExclusive(appt.ID, appt.ClientID, appt.ProviderID, newTime, now); err != nil {
		if errors.Is(err, appointmentRepo.ErrTimeSlotTaken) {
			return nil, ErrSchedulingConflict
		}
		return nil, fmt.Errorf("failed to reschedule appointment %s: %w", id, err)
	}

	appt.Time = newTime
	appt.UpdatedAt = now
	e.Slots.InvalidateSlots(ctx, appt.ProviderID)
	e.notify(ctx, appt.ClientID, appt.ProviderID,
		"Appointment rescheduled",
		fmt.Sprintf("Your %s appointment was moved to %s.", appt.ServiceType, newTime.Format(time.RFC1123)),
	)
	return appt, nil
}

// CancelAppointment removes the appointment. Administrators cancel
// unconditionally; any other actor must give at least CancellationNotice
// before the scheduled time, and the notice boundary itself is a violation.
// Cancellation is a hard delete, matching current platform behavior.
func (e *DefaultBookingEngine) CancelAppointment(ctx context.Context, id string, actingRole string) error {
	appt, err := e.Appointments.GetByID(id)
	if err != nil {
		return err
	}

	if actingRole != models.RoleAdmin {
		now := e.Clock.Now()
		if !appt.Time.After(now.Add(e.CancellationNotice)) {
			return ErrCancellationWindow
		}
	}

	if err := e.Appointments.Delete(id); err != nil {
		return fmt.Errorf("failed to cancel appointment %s: %w", id, err)
	}

	e.Slots.InvalidateSlots(ctx, appt.ProviderID)
	e.notify(ctx, appt.ClientID, appt.ProviderID,
		"Appointment cancelled",
		fmt.Sprintf("The %s appointment scheduled for %s was cancelled.", appt.ServiceType, appt.Time.Format(time.RFC1123)),
	)
	return nil
}

// MarkCompleted transitions a scheduled appointment to completed. Only the
// owning provider may do this.
func (e *DefaultBookingEngine) MarkCompleted(ctx context.Context, id string, providerID string) (*models.Appointment, error) {
	appt, err := e.Appointments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appt.ProviderID != providerID {
		return nil, ErrUnauthorized
	}

	appt.Completed = true
	appt.UpdatedAt = e.Clock.Now()
	if err := e.Appointments.Update(appt); err != nil {
		return nil, fmt.Errorf("failed to mark appointment %s completed: %w", id, err)
	}

	e.Slots.InvalidateSlots(ctx, appt.ProviderID)
	return appt, nil
}

func (e *DefaultBookingEngine) GetAppointment(id string) (*models.Appointment, error) {
	return e.Appointments.GetByID(id)
}

func (e *DefaultBookingEngine) ListProviderAppointments(providerID string, excludeCompleted bool) ([]models.Appointment, error) {
	return e.Appointments.FindByProvider(providerID, excludeCompleted)
}

func (e *DefaultBookingEngine) ListClientAppointments(clientID string, excludeCompleted bool) ([]models.Appointment, error) {
	return e.Appointments.FindByClient(clientID, excludeCompleted)
}

// checkCandidate loads both conflict sets and runs the admissibility check.
func (e *DefaultBookingEngine) checkCandidate(c BookingCandidate) error {
	providerAppts, err := e.Appointments.FindByProvider(c.ProviderID, true)
	if err != nil {
		return fmt.Errorf("failed to load provider appointments: %w", err)
	}
	clientAppts, err := e.Appointments.FindByClient(c.ClientID, true)
	if err != nil {
		return fmt.Errorf("failed to load client appointments: %w", err)
	}
	return CheckConflicts(c, providerAppts, clientAppts)
}

// notify pushes to both parties, fire-and-forget. Delivery failure is logged
// and never fails the booking operation.
func (e *DefaultBookingEngine) notify(ctx context.Context, clientID, providerID, title, body string) {
	if e.Notification == nil {
		return
	}
	logger := utils.GetLogger()
	if err := e.Notification.NotifyClient(ctx, clientID, title, body, map[string]string{"type": "booking"}); err != nil {
		logger.Warn("client notification failed", zap.String("clientID", clientID), zap.Error(err))
	}
	if err := e.Notification.NotifyProvider(ctx, providerID, title, body, map[string]string{"type": "booking"}); err != nil {
		logger.Warn("provider notification failed", zap.String("providerID", providerID), zap.Error(err))
	}
}
