package models

import (
	"time"
)

// Profile holds the public-facing details of a provider.
type Profile struct {
	ProviderName string  `bson:"providerName" json:"providerName,omitempty"`
	Email        string  `bson:"email" json:"email,omitempty"`
	PhoneNumber  string  `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	ProfileImage string  `bson:"profileImage" json:"profileImage,omitempty"`
	Rating       float64 `bson:"rating" json:"rating,omitempty"` // Expected value between 1 and 5.
}

type Security struct {
	Password     string `bson:"-" json:"password,omitempty"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	FCMToken     string `bson:"fcmToken,omitempty" json:"-"`
}

type Provider struct {
	ID             string    `bson:"id" json:"id,omitempty"`
	Profile        Profile   `bson:"profile" json:"profile"`
	Security       Security  `bson:"security" json:"security,omitzero"`
	Roles          []string  `bson:"roles" json:"roles,omitempty"`
	Approved       bool      `bson:"approved" json:"approved"`
	ServiceTypes   []string  `bson:"serviceTypes" json:"serviceTypes,omitempty"`
	WorkingHourIDs []string  `bson:"workingHourIds" json:"workingHourIds,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// HasRole reports whether the provider carries the given role marker.
func (p *Provider) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ProviderRegistrationData is the payload accepted at registration time.
// Providers start out unapproved, carrying only the applicant role.
type ProviderRegistrationData struct {
	ProviderName string               `json:"providerName" binding:"required"`
	Email        string               `json:"email" binding:"required,email"`
	PhoneNumber  string               `json:"phoneNumber"`
	Password     string               `json:"password" binding:"required,min=8"`
	ServiceTypes []string             `json:"serviceTypes" binding:"required"`
	WorkingHours []WorkingHoursWindow `json:"workingHours" binding:"required"`
	FCMToken     string               `json:"fcmToken"`
}
