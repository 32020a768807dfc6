package notification

import (
	"context"
	"fmt"

	clientRepo "salonflow/database/repository/client"
	providerRepo "salonflow/database/repository/provider"
)

// NotificationService defines methods for sending FCM pushes. Delivery is
// fire-and-forget from the callers' perspective: they log failures and move
// on.
type NotificationService interface {
	NotifyClient(ctx context.Context, clientID, title, body string, data map[string]string) error
	NotifyProvider(ctx context.Context, providerID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Providers providerRepo.ProviderRepository
	Clients   clientRepo.ClientRepository
}

func NewDefaultNotificationService(
	providers providerRepo.ProviderRepository,
	clients clientRepo.ClientRepository,
) (*DefaultNotificationService, error) {
	if providers == nil || clients == nil {
		return nil, fmt.Errorf("notification service initialization error: provider or client repository is nil")
	}
	return &DefaultNotificationService{
		Providers: providers,
		Clients:   clients,
	}, nil
}
