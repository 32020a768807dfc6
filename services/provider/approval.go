package provider

import (
	"context"
	"fmt"

	"salonflow/models"
	"salonflow/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Approve moves an applicant into the approved state: the applicant role
// marker is swapped for the provider role and the approved flag is set.
// Approving an already-approved provider is not an error but does send a
// duplicate notification, so callers should guard against double-invocation.
func (s *DefaultProviderService) Approve(ctx context.Context, providerID string) error {
	logger := utils.GetLogger()

	prov, err := s.Repo.GetByID(providerID)
	if err != nil {
		return err
	}

	roles := make([]string, 0, len(prov.Roles)+1)
	for _, r := range prov.Roles {
		if r != models.RoleApplicant {
			roles = append(roles, r)
		}
	}
	if !prov.HasRole(models.RoleProvider) {
		roles = append(roles, models.RoleProvider)
	}

	updateDoc := bson.M{"$set": bson.M{
		"roles":     roles,
		"approved":  true,
		"updatedAt": s.Clock.Now(),
	}}
	if err := s.Repo.UpdateWithDocument(providerID, updateDoc); err != nil {
		return fmt.Errorf("failed to approve provider %s: %w", providerID, err)
	}

	s.notifyProvider(ctx, providerID,
		"Application approved",
		fmt.Sprintf("Congratulations %s, your application has been approved. Clients can now book your services.", prov.Profile.ProviderName),
	)

	logger.Info("provider approved", zap.String("providerID", providerID))
	return nil
}

// Reject terminates an application: the provider record is removed and every
// shared working-hours record it referenced is re-checked after the removal
// is visible to storage: records left with an empty reference set are swept,
// records still referenced by other providers stay intact.
func (s *DefaultProviderService) Reject(ctx context.Context, providerID string) error {
	logger := utils.GetLogger()

	prov, err := s.Repo.GetByID(providerID)
	if err != nil {
		return err
	}

	// Capture the reference set before the provider disappears.
	whIDs := make([]string, len(prov.WorkingHourIDs))
	copy(whIDs, prov.WorkingHourIDs)

	s.notifyProvider(ctx, providerID,
		"Application rejected",
		fmt.Sprintf("We are sorry %s, your application was not approved at this time.", prov.Profile.ProviderName),
	)

	if err := s.Repo.Delete(providerID); err != nil {
		return fmt.Errorf("failed to delete rejected provider %s: %w", providerID, err)
	}

	if err := s.WorkingHours.ReleaseProviderRefs(providerID, whIDs); err != nil {
		return fmt.Errorf("failed to clean up working hours for provider %s: %w", providerID, err)
	}

	logger.Info("provider rejected",
		zap.String("providerID", providerID),
		zap.Int("workingHourRefsReleased", len(whIDs)))
	return nil
}

// notifyProvider is fire-and-forget: delivery failure is logged, never fatal
// to the workflow.
func (s *DefaultProviderService) notifyProvider(ctx context.Context, providerID, title, body string) {
	if s.Notification == nil {
		return
	}
	if err := s.Notification.NotifyProvider(ctx, providerID, title, body, map[string]string{"type": "approval"}); err != nil {
		utils.GetLogger().Warn("approval notification failed",
			zap.String("providerID", providerID), zap.Error(err))
	}
}
