package clientRepo

import (
	"errors"

	"salonflow/models"
)

// ErrNotFound is returned when no client matches the lookup.
var ErrNotFound = errors.New("client not found")

// ClientRepository defines the persistence operations for client records.
type ClientRepository interface {
	GetByID(id string) (*models.Client, error)
	GetByEmail(email string) (*models.Client, error)
	Create(client *models.Client) error
	Update(client *models.Client) error
	Delete(id string) error
}
