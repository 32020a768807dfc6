package provider

import (
	"fmt"

	"salonflow/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (s *DefaultProviderService) GetProviderByID(id string) (*models.Provider, error) {
	return s.Repo.GetByID(id)
}

// providerSortKeys maps the listing sort keys callers may supply onto their
// storage sort documents. Rating and recency sort descending, names ascend.
var providerSortKeys = map[string]bson.D{
	"rating":  {{Key: "profile.rating", Value: -1}},
	"name":    {{Key: "profile.providerName", Value: 1}},
	"newest":  {{Key: "createdAt", Value: -1}},
	"oldest":  {{Key: "createdAt", Value: 1}},
}

func (s *DefaultProviderService) GetAllProviders(approvedOnly bool, sortBy string) ([]models.Provider, error) {
	var sort bson.D
	if sortBy != "" {
		var ok bool
		if sort, ok = providerSortKeys[sortBy]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSortKey, sortBy)
		}
	}
	return s.Repo.GetAll(approvedOnly, sort)
}

// GetWorkingHours returns every shared availability window the provider
// references.
func (s *DefaultProviderService) GetWorkingHours(providerID string) ([]models.WorkingHours, error) {
	if _, err := s.Repo.GetByID(providerID); err != nil {
		return nil, err
	}
	return s.WorkingHours.ListByProvider(providerID)
}

// RateProvider sets the provider's rating. The rating is owned exclusively
// by the provider record.
func (s *DefaultProviderService) RateProvider(id string, rating float64) (*models.Provider, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	prov, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	updateDoc := bson.M{"$set": bson.M{
		"profile.rating": rating,
		"updatedAt":      s.Clock.Now(),
	}}
	if err := s.Repo.UpdateWithDocument(id, updateDoc); err != nil {
		return nil, fmt.Errorf("failed to update rating for provider %s: %w", id, err)
	}

	prov.Profile.Rating = rating
	return prov, nil
}
