package workinghoursRepo

import (
	"errors"
	"time"

	"salonflow/models"
)

// ErrNotFound is returned when no working-hours record matches the lookup.
var ErrNotFound = errors.New("working hours not found")

// WorkingHoursRepository manages the shared, reference-counted weekly
// availability windows. A record is deduplicated by its (dayOfWeek, start,
// end) triple and deleted only once its referencing-provider set is empty.
type WorkingHoursRepository interface {
	GetByID(id string) (*models.WorkingHours, error)
	// FindByProviderAndDay returns the provider's window for the given day,
	// or ErrNotFound. The data model holds at most one window per provider
	// per day of week.
	FindByProviderAndDay(providerID string, day time.Weekday) (*models.WorkingHours, error)
	FindByWindow(window models.WorkingHoursWindow) (*models.WorkingHours, error)
	ListByProvider(providerID string) ([]models.WorkingHours, error)
	Create(wh *models.WorkingHours) error
	AddProviderRef(id, providerID string) error
	RemoveProviderRef(id, providerID string) error
	// DeleteIfUnreferenced removes the record in a single atomic
	// check-and-delete, and reports whether a deletion happened. A record
	// still referenced by any provider is left intact.
	DeleteIfUnreferenced(id string) (bool, error)
	// ReleaseProviderRefs pulls the provider out of every listed record and
	// sweeps the ones left unreferenced, all inside one transaction.
	ReleaseProviderRefs(providerID string, ids []string) error
}
