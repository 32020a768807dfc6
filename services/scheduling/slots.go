package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	workinghoursRepo "salonflow/database/repository/workinghours"
	"salonflow/models"
	"salonflow/utils"

	"go.uber.org/zap"
)

// GenerateDaySlots walks one availability window in fixed increments of d,
// emitting [cursor, cursor+d) for every cursor whose end still fits inside
// the window. No partial slots: a window shorter than d yields nothing, a
// window of exactly k*d yields k contiguous slots.
func GenerateDaySlots(window models.WorkingHoursWindow, day time.Time, d time.Duration) []models.TimeSlot {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	windowStart := midnight.Add(time.Duration(window.Start) * time.Minute)
	windowEnd := midnight.Add(time.Duration(window.End) * time.Minute)

	var slots []models.TimeSlot
	for cursor := windowStart; !cursor.Add(d).After(windowEnd); cursor = cursor.Add(d) {
		slots = append(slots, models.TimeSlot{Start: cursor, End: cursor.Add(d)})
	}
	return slots
}

// GenerateSlots produces the ordered slot sequence for the horizon of
// horizonDays calendar days starting at now's day. It is a pure function of
// (now, availability): same inputs, same output.
func GenerateSlots(
	lookup workinghoursRepo.WorkingHoursRepository,
	providerID string,
	now time.Time,
	d time.Duration,
	horizonDays int,
) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	for i := 0; i < horizonDays; i++ {
		day := now.AddDate(0, 0, i)
		window, err := lookup.FindByProviderAndDay(providerID, day.Weekday())
		if err != nil {
			if errors.Is(err, workinghoursRepo.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("availability lookup failed for provider %s: %w", providerID, err)
		}
		slots = append(slots, GenerateDaySlots(window.Window(), day, d)...)
	}
	return slots, nil
}

// GetAvailableSlots returns the provider's slots over the horizon, annotated
// with the appointments occupying them. Results are cached per provider per
// horizon start day.
func (s *DefaultSlotService) GetAvailableSlots(ctx context.Context, providerID string) ([]models.TimeSlot, error) {
	logger := utils.GetLogger()
	now := s.Clock.Now()
	cacheKey := s.cacheKey(providerID, now)

	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var slots []models.TimeSlot
			if err := json.Unmarshal([]byte(cached), &slots); err == nil {
				return slots, nil
			}
			logger.Warn("discarding undecodable slot cache entry", zap.String("key", cacheKey))
		}
	}

	slots, err := GenerateSlots(s.WorkingHours, providerID, now, s.SlotDuration, s.HorizonDays)
	if err != nil {
		return nil, err
	}

	if len(slots) > 0 {
		horizonEnd := now.AddDate(0, 0, s.HorizonDays)
		appts, err := s.Appointments.FindByProviderBetween(providerID, slots[0].Start, horizonEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to load appointments for slot annotation: %w", err)
		}
		annotateSlots(slots, appts)
	}

	if s.Cache != nil {
		if data, err := json.Marshal(slots); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, data, s.CacheTTL).Err(); err != nil {
				logger.Warn("failed to cache generated slots",
					zap.String("providerID", providerID), zap.Error(err))
			}
		}
	}

	return slots, nil
}

// InvalidateSlots drops the cached slot view for the provider. Called by the
// booking engine after every create, reschedule, or cancel.
func (s *DefaultSlotService) InvalidateSlots(ctx context.Context, providerID string) {
	if s.Cache == nil {
		return
	}
	cacheKey := s.cacheKey(providerID, s.Clock.Now())
	if err := s.Cache.Del(ctx, cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate slot cache",
			zap.String("providerID", providerID), zap.Error(err))
	}
}

func (s *DefaultSlotService) cacheKey(providerID string, now time.Time) string {
	return fmt.Sprintf("slots:%s:%s", providerID, now.Format("2006-01-02"))
}

// annotateSlots attaches each appointment to the slot whose start matches
// its instant exactly. time.Time values are compared with Equal, not ==,
// since stored instants round-trip through the database in UTC.
func annotateSlots(slots []models.TimeSlot, appts []models.Appointment) {
	for i := range slots {
		for j := range appts {
			if appts[j].Time.Equal(slots[i].Start) {
				slots[i].Appointment = &appts[j]
				break
			}
		}
	}
}
