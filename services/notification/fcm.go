package notification

import (
	"context"
	"fmt"

	"salonflow/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotifyClient looks up a client's FCM token and sends a push.
func (s *DefaultNotificationService) NotifyClient(
	ctx context.Context,
	clientID, title, body string,
	data map[string]string,
) error {
	c, err := s.Clients.GetByID(clientID)
	if err != nil {
		return fmt.Errorf("NotifyClient: could not find client %s: %w", clientID, err)
	}
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "client"
	}
	return send(ctx, c.FCMToken, title, body, data)
}

// NotifyProvider looks up a provider's FCM token and sends a push.
func (s *DefaultNotificationService) NotifyProvider(
	ctx context.Context,
	providerID, title, body string,
	data map[string]string,
) error {
	p, err := s.Providers.GetByID(providerID)
	if err != nil {
		return fmt.Errorf("NotifyProvider: could not find provider %s: %w", providerID, err)
	}
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "provider"
	}
	return send(ctx, p.Security.FCMToken, title, body, data)
}

func send(ctx context.Context, token, title, body string, data map[string]string) error {
	logger := utils.GetLogger()

	if utils.FCMClient == nil {
		logger.Info("push delivery disabled, logging notification instead",
			zap.String("title", title), zap.String("body", body))
		return nil
	}
	if token == "" {
		return fmt.Errorf("recipient has no FCM token")
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
