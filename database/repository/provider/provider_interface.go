package providerRepo

import (
	"errors"

	"salonflow/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when no provider matches the lookup.
var ErrNotFound = errors.New("provider not found")

// ProviderRepository defines the persistence operations the services need
// for provider records.
type ProviderRepository interface {
	GetByID(id string) (*models.Provider, error)
	GetByEmail(email string) (*models.Provider, error)
	// GetAll lists providers, optionally restricted to approved ones and
	// ordered by the given sort document (nil means storage order).
	GetAll(approvedOnly bool, sort bson.D) ([]models.Provider, error)
	Create(provider *models.Provider) error
	Update(provider *models.Provider) error
	UpdateWithDocument(id string, updateDoc bson.M) error
	Delete(id string) error
}
