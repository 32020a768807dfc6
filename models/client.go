package models

import "time"

// Client is an end customer booking appointments against providers. The
// appointment record holds only a lookup reference to the client; deleting
// either side never cascades to the other.
type Client struct {
	ID          string    `bson:"id" json:"id,omitempty"`
	Name        string    `bson:"name" json:"name,omitempty"`
	Email       string    `bson:"email" json:"email,omitempty"`
	PhoneNumber string    `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	FCMToken    string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}
