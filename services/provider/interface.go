package provider

import (
	"context"
	"fmt"

	providerRepo "salonflow/database/repository/provider"
	workinghoursRepo "salonflow/database/repository/workinghours"
	"salonflow/models"
	"salonflow/services/notification"
	"salonflow/services/scheduling"
)

// ProviderService covers the provider lifecycle: registration as an
// applicant, the approve/reject workflow, and account reads.
type ProviderService interface {
	Register(ctx context.Context, req models.ProviderRegistrationData) (*models.Provider, error)
	Approve(ctx context.Context, providerID string) error
	Reject(ctx context.Context, providerID string) error

	GetProviderByID(id string) (*models.Provider, error)
	GetAllProviders(approvedOnly bool, sortBy string) ([]models.Provider, error)
	GetWorkingHours(providerID string) ([]models.WorkingHours, error)
	RateProvider(id string, rating float64) (*models.Provider, error)
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo         providerRepo.ProviderRepository
	WorkingHours workinghoursRepo.WorkingHoursRepository
	Notification notification.NotificationService
	Clock        scheduling.Clock
}

func NewDefaultProviderService(
	repo providerRepo.ProviderRepository,
	workingHours workinghoursRepo.WorkingHoursRepository,
	notificationSvc notification.NotificationService,
	clock scheduling.Clock,
) (*DefaultProviderService, error) {
	if repo == nil || workingHours == nil || clock == nil {
		return nil, fmt.Errorf("provider service initialization error: one or more dependencies are nil")
	}
	return &DefaultProviderService{
		Repo:         repo,
		WorkingHours: workingHours,
		Notification: notificationSvc,
		Clock:        clock,
	}, nil
}
