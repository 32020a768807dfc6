package booking

import (
	"context"
	"fmt"

	"salonflow/models"
	"salonflow/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// PaymentProcessor initiates money movement for an appointment. The status
// machine itself stays liberal; the processor only fires on the PAID to
// REFUNDED edge.
type PaymentProcessor interface {
	Refund(ctx context.Context, appt *models.Appointment) error
}

// StripeRefundHandler refunds the PaymentIntent recorded on the appointment.
type StripeRefundHandler struct {
	Logger *zap.Logger
}

func NewStripeRefundHandler(logger *zap.Logger) *StripeRefundHandler {
	return &StripeRefundHandler{Logger: logger}
}

func (h *StripeRefundHandler) Refund(ctx context.Context, appt *models.Appointment) error {
	if appt.PaymentRef == "" {
		return fmt.Errorf("appointment %s has no payment reference to refund", appt.ID)
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(appt.PaymentRef),
	}
	params.Context = ctx

	result, err := refund.New(params)
	if err != nil {
		return fmt.Errorf("stripe refund failed for appointment %s: %w", appt.ID, err)
	}

	h.Logger.Info("stripe refund created",
		zap.String("appointmentID", appt.ID),
		zap.String("refundID", result.ID))
	return nil
}

// SetPaymentStatus resolves the requested status name case-insensitively and
// applies it. Unrecognized input coerces to the caller-supplied fallback;
// the lenient path is logged, not rejected. Any status may follow any other;
// stricter business meaning belongs to downstream reporting.
func (e *DefaultBookingEngine) SetPaymentStatus(ctx context.Context, id string, requested string, fallback models.PaymentStatus) (*models.Appointment, error) {
	logger := utils.GetLogger()

	appt, err := e.Appointments.GetByID(id)
	if err != nil {
		return nil, err
	}

	status, ok := models.ParsePaymentStatus(requested, fallback)
	if !ok {
		logger.Warn("unrecognized payment status coerced to fallback",
			zap.String("appointmentID", id),
			zap.String("requested", requested),
			zap.String("fallback", string(fallback)))
	}

	if status == models.PaymentRefunded && appt.PaymentStatus == models.PaymentPaid && e.Payments != nil {
		if err := e.Payments.Refund(ctx, appt); err != nil {
			logger.Error("refund initiation failed", zap.String("appointmentID", id), zap.Error(err))
		}
	}

	appt.PaymentStatus = status
	appt.UpdatedAt = e.Clock.Now()
	if err := e.Appointments.Update(appt); err != nil {
		return nil, fmt.Errorf("failed to update payment status for appointment %s: %w", id, err)
	}
	return appt, nil
}
