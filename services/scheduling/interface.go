package scheduling

import (
	"context"
	"time"

	appointmentRepo "salonflow/database/repository/appointment"
	workinghoursRepo "salonflow/database/repository/workinghours"
	"salonflow/models"

	"github.com/go-redis/redis/v8"
)

// SlotService exposes a provider's bookable slots over the rolling horizon.
type SlotService interface {
	GetAvailableSlots(ctx context.Context, providerID string) ([]models.TimeSlot, error)
	InvalidateSlots(ctx context.Context, providerID string)
}

// DefaultSlotService is the production implementation. Generated slots are
// cached briefly in Redis and busted whenever a booking mutates.
type DefaultSlotService struct {
	WorkingHours workinghoursRepo.WorkingHoursRepository
	Appointments appointmentRepo.AppointmentRepository
	Cache        *redis.Client
	Clock        Clock

	// SlotDuration is the fixed service duration D; HorizonDays is the
	// rolling horizon H.
	SlotDuration time.Duration
	HorizonDays  int
	CacheTTL     time.Duration
}
