package models

import "time"

// Appointment is a confirmed booking of a provider by a client at a single
// instant. Duration is not modelled on the calendar; slot alignment happens
// at generation time.
type Appointment struct {
	ID            string        `bson:"id" json:"id"`
	ClientID      string        `bson:"clientId" json:"clientId"`
	ProviderID    string        `bson:"providerId" json:"providerId"`
	ServiceType   string        `bson:"serviceType" json:"serviceType"`
	Time          time.Time     `bson:"appointmentTime" json:"appointmentTime"`
	Completed     bool          `bson:"completed" json:"completed"`
	PaymentStatus PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	PaymentRef    string        `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"` // e.g., a Stripe PaymentIntent id
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// AppointmentRequest is the payload for creating a new appointment.
type AppointmentRequest struct {
	ClientID    string    `json:"clientId" binding:"required"`
	ProviderID  string    `json:"providerId" binding:"required"`
	ServiceType string    `json:"serviceType" binding:"required"`
	Time        time.Time `json:"appointmentTime" binding:"required"`
}
