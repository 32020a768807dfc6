package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	providerRepo "salonflow/database/repository/provider"
	workinghoursRepo "salonflow/database/repository/workinghours"
	"salonflow/models"
	"salonflow/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an unapproved provider carrying the applicant role and
// attaches it to the shared working-hours records. Each submitted window is
// deduplicated by its (day, start, end) triple: an existing record gains a
// provider reference, a new triple gets its own record.
func (s *DefaultProviderService) Register(ctx context.Context, req models.ProviderRegistrationData) (*models.Provider, error) {
	logger := utils.GetLogger()

	if len(req.WorkingHours) == 0 {
		return nil, fmt.Errorf("%w: at least one window is required", ErrInvalidWorkingHours)
	}
	seenDays := make(map[time.Weekday]bool)
	for _, w := range req.WorkingHours {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
		}
		if seenDays[w.DayOfWeek] {
			return nil, fmt.Errorf("%w: multiple windows for day %s", ErrInvalidWorkingHours, w.DayOfWeek)
		}
		seenDays[w.DayOfWeek] = true
	}

	if _, err := s.Repo.GetByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, providerRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Clock.Now()
	prov := &models.Provider{
		ID: uuid.New().String(),
		Profile: models.Profile{
			ProviderName: req.ProviderName,
			Email:        req.Email,
			PhoneNumber:  req.PhoneNumber,
		},
		Security: models.Security{
			PasswordHash: string(hash),
			FCMToken:     req.FCMToken,
		},
		Roles:        []string{models.RoleApplicant},
		Approved:     false,
		ServiceTypes: req.ServiceTypes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for _, window := range req.WorkingHours {
		whID, err := s.attachWindow(prov.ID, window)
		if err != nil {
			s.releaseWindows(prov.ID, prov.WorkingHourIDs)
			return nil, err
		}
		prov.WorkingHourIDs = append(prov.WorkingHourIDs, whID)
	}

	if err := s.Repo.Create(prov); err != nil {
		s.releaseWindows(prov.ID, prov.WorkingHourIDs)
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	logger.Info("provider registered as applicant",
		zap.String("providerID", prov.ID),
		zap.Int("workingHourWindows", len(prov.WorkingHourIDs)))
	return prov, nil
}

// attachWindow resolves the shared record for the window, creating it on
// first use and incrementing its reference set otherwise. The unique index
// on the (dayOfWeek, start, end) triple turns a lost create race into a
// duplicate-key error, after which the winner's record is referenced.
func (s *DefaultProviderService) attachWindow(providerID string, window models.WorkingHoursWindow) (string, error) {
	existing, err := s.WorkingHours.FindByWindow(window)
	if err == nil {
		if err := s.WorkingHours.AddProviderRef(existing.ID, providerID); err != nil {
			return "", fmt.Errorf("failed to reference working hours %s: %w", existing.ID, err)
		}
		return existing.ID, nil
	}
	if !errors.Is(err, workinghoursRepo.ErrNotFound) {
		return "", fmt.Errorf("failed to look up working hours window: %w", err)
	}

	wh := &models.WorkingHours{
		ID:          uuid.New().String(),
		DayOfWeek:   window.DayOfWeek,
		Start:       window.Start,
		End:         window.End,
		ProviderIDs: []string{providerID},
	}
	if err := s.WorkingHours.Create(wh); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			winner, findErr := s.WorkingHours.FindByWindow(window)
			if findErr != nil {
				return "", fmt.Errorf("failed to resolve concurrently created window: %w", findErr)
			}
			if refErr := s.WorkingHours.AddProviderRef(winner.ID, providerID); refErr != nil {
				return "", fmt.Errorf("failed to reference working hours %s: %w", winner.ID, refErr)
			}
			return winner.ID, nil
		}
		return "", fmt.Errorf("failed to create working hours record: %w", err)
	}
	return wh.ID, nil
}

// releaseWindows undoes the window references added by a registration that
// could not complete, so no record is left pointing at a provider id that
// was never stored.
func (s *DefaultProviderService) releaseWindows(providerID string, ids []string) {
	if len(ids) == 0 {
		return
	}
	if err := s.WorkingHours.ReleaseProviderRefs(providerID, ids); err != nil {
		utils.GetLogger().Error("failed to release window refs for aborted registration",
			zap.String("providerID", providerID), zap.Error(err))
	}
}
