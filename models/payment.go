package models

import "strings"

// PaymentStatus is the monetary status attached 1:1 to an appointment.
type PaymentStatus string

const (
	PaymentNone      PaymentStatus = "NONE"
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentRefunded  PaymentStatus = "REFUNDED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// ParsePaymentStatus resolves raw against the enumeration case-insensitively.
// Unrecognized input yields the supplied fallback with ok=false so the caller
// can log the coercion; this is deliberately lenient towards form input.
func ParsePaymentStatus(raw string, fallback PaymentStatus) (status PaymentStatus, ok bool) {
	switch PaymentStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case PaymentNone:
		return PaymentNone, true
	case PaymentPending:
		return PaymentPending, true
	case PaymentPaid:
		return PaymentPaid, true
	case PaymentRefunded:
		return PaymentRefunded, true
	case PaymentCancelled:
		return PaymentCancelled, true
	default:
		return fallback, false
	}
}
