package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	providerRepo "salonflow/database/repository/provider"
	workinghoursRepo "salonflow/database/repository/workinghours"
	"salonflow/models"
	"salonflow/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MockProviderRepo is a mock implementation of ProviderRepository.
type MockProviderRepo struct {
	mock.Mock
}

func (m *MockProviderRepo) GetByID(id string) (*models.Provider, error) {
	args := m.Called(id)
	return args.Get(0).(*models.Provider), args.Error(1)
}

func (m *MockProviderRepo) GetByEmail(email string) (*models.Provider, error) {
	args := m.Called(email)
	return args.Get(0).(*models.Provider), args.Error(1)
}

func (m *MockProviderRepo) GetAll(approvedOnly bool, sort bson.D) ([]models.Provider, error) {
	args := m.Called(approvedOnly, sort)
	return args.Get(0).([]models.Provider), args.Error(1)
}

func (m *MockProviderRepo) Create(provider *models.Provider) error {
	args := m.Called(provider)
	return args.Error(0)
}

func (m *MockProviderRepo) Update(provider *models.Provider) error {
	args := m.Called(provider)
	return args.Error(0)
}

func (m *MockProviderRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	args := m.Called(id, updateDoc)
	return args.Error(0)
}

func (m *MockProviderRepo) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockWorkingHoursRepo is a mock implementation of WorkingHoursRepository.
type MockWorkingHoursRepo struct {
	mock.Mock
}

func (m *MockWorkingHoursRepo) GetByID(id string) (*models.WorkingHours, error) {
	args := m.Called(id)
	return args.Get(0).(*models.WorkingHours), args.Error(1)
}

func (m *MockWorkingHoursRepo) FindByProviderAndDay(providerID string, day time.Weekday) (*models.WorkingHours, error) {
	args := m.Called(providerID, day)
	return args.Get(0).(*models.WorkingHours), args.Error(1)
}

func (m *MockWorkingHoursRepo) FindByWindow(window models.WorkingHoursWindow) (*models.WorkingHours, error) {
	args := m.Called(window)
	return args.Get(0).(*models.WorkingHours), args.Error(1)
}

func (m *MockWorkingHoursRepo) ListByProvider(providerID string) ([]models.WorkingHours, error) {
	args := m.Called(providerID)
	return args.Get(0).([]models.WorkingHours), args.Error(1)
}

func (m *MockWorkingHoursRepo) Create(wh *models.WorkingHours) error {
	args := m.Called(wh)
	return args.Error(0)
}

func (m *MockWorkingHoursRepo) AddProviderRef(id, providerID string) error {
	args := m.Called(id, providerID)
	return args.Error(0)
}

func (m *MockWorkingHoursRepo) RemoveProviderRef(id, providerID string) error {
	args := m.Called(id, providerID)
	return args.Error(0)
}

func (m *MockWorkingHoursRepo) DeleteIfUnreferenced(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkingHoursRepo) ReleaseProviderRefs(providerID string, ids []string) error {
	args := m.Called(providerID, ids)
	return args.Error(0)
}

var registrationNow = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func setupTestProviderService() (*DefaultProviderService, *MockProviderRepo, *MockWorkingHoursRepo) {
	repo := &MockProviderRepo{}
	wh := &MockWorkingHoursRepo{}
	svc := &DefaultProviderService{
		Repo:         repo,
		WorkingHours: wh,
		Clock:        scheduling.FixedClock{Instant: registrationNow},
	}
	return svc, repo, wh
}

func validRegistration() models.ProviderRegistrationData {
	return models.ProviderRegistrationData{
		ProviderName: "Shear Genius",
		Email:        "owner@sheargenius.example",
		Password:     "correct-horse",
		ServiceTypes: []string{"haircut"},
		WorkingHours: []models.WorkingHoursWindow{
			{DayOfWeek: time.Monday, Start: 540, End: 1020},
		},
	}
}

func TestRegister_NewWindowCreatesSharedRecord(t *testing.T) {
	svc, repo, wh := setupTestProviderService()
	req := validRegistration()

	repo.On("GetByEmail", req.Email).Return((*models.Provider)(nil), providerRepo.ErrNotFound)
	wh.On("FindByWindow", req.WorkingHours[0]).Return((*models.WorkingHours)(nil), workinghoursRepo.ErrNotFound)
	wh.On("Create", mock.AnythingOfType("*models.WorkingHours")).Return(nil)
	repo.On("Create", mock.AnythingOfType("*models.Provider")).Return(nil)

	prov, err := svc.Register(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, prov.Approved)
	assert.Equal(t, []string{models.RoleApplicant}, prov.Roles)
	require.Len(t, prov.WorkingHourIDs, 1)
	wh.AssertCalled(t, "Create", mock.MatchedBy(func(rec *models.WorkingHours) bool {
		return rec.DayOfWeek == time.Monday &&
			rec.Start == 540 && rec.End == 1020 &&
			len(rec.ProviderIDs) == 1 && rec.ProviderIDs[0] == prov.ID
	}))
	wh.AssertNotCalled(t, "AddProviderRef", mock.Anything, mock.Anything)
}

func TestRegister_ExistingWindowGainsReference(t *testing.T) {
	// A second provider submitting the same (day, start, end) triple shares
	// the stored record instead of creating a duplicate.
	svc, repo, wh := setupTestProviderService()
	req := validRegistration()

	shared := &models.WorkingHours{
		ID: "wh-shared", DayOfWeek: time.Monday, Start: 540, End: 1020,
		ProviderIDs: []string{"prov-existing"},
	}
	repo.On("GetByEmail", req.Email).Return((*models.Provider)(nil), providerRepo.ErrNotFound)
	wh.On("FindByWindow", req.WorkingHours[0]).Return(shared, nil)
	wh.On("AddProviderRef", "wh-shared", mock.AnythingOfType("string")).Return(nil)
	repo.On("Create", mock.AnythingOfType("*models.Provider")).Return(nil)

	prov, err := svc.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []string{"wh-shared"}, prov.WorkingHourIDs)
	wh.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_ProviderInsertFailureReleasesWindowRefs(t *testing.T) {
	// A window record written before the provider insert fails must not be
	// left holding a reference to a provider id that never made it to
	// storage; that phantom ref would keep the record unsweepable forever.
	svc, repo, wh := setupTestProviderService()
	req := validRegistration()

	repo.On("GetByEmail", req.Email).Return((*models.Provider)(nil), providerRepo.ErrNotFound)
	wh.On("FindByWindow", req.WorkingHours[0]).Return((*models.WorkingHours)(nil), workinghoursRepo.ErrNotFound)
	wh.On("Create", mock.AnythingOfType("*models.WorkingHours")).Return(nil)
	repo.On("Create", mock.AnythingOfType("*models.Provider")).Return(errors.New("write failed"))
	wh.On("ReleaseProviderRefs", mock.AnythingOfType("string"), mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 1
	})).Return(nil)

	_, err := svc.Register(context.Background(), req)

	require.Error(t, err)
	wh.AssertExpectations(t)
}

func TestRegister_MidLoopAttachFailureReleasesEarlierRefs(t *testing.T) {
	svc, repo, wh := setupTestProviderService()
	req := validRegistration()
	second := models.WorkingHoursWindow{DayOfWeek: time.Tuesday, Start: 540, End: 1020}
	req.WorkingHours = append(req.WorkingHours, second)

	repo.On("GetByEmail", req.Email).Return((*models.Provider)(nil), providerRepo.ErrNotFound)
	wh.On("FindByWindow", req.WorkingHours[0]).Return((*models.WorkingHours)(nil), workinghoursRepo.ErrNotFound)
	wh.On("FindByWindow", second).Return((*models.WorkingHours)(nil), workinghoursRepo.ErrNotFound)
	wh.On("Create", mock.AnythingOfType("*models.WorkingHours")).Return(nil).Once()
	wh.On("Create", mock.AnythingOfType("*models.WorkingHours")).Return(errors.New("write failed")).Once()
	wh.On("ReleaseProviderRefs", mock.AnythingOfType("string"), mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 1
	})).Return(nil)

	_, err := svc.Register(context.Background(), req)

	require.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything)
	wh.AssertExpectations(t)
}

func TestRegister_LostCreateRaceReferencesWinner(t *testing.T) {
	// The unique triple index turns a concurrent create of the same window
	// into a duplicate-key error; the loser joins the winner's record.
	svc, repo, wh := setupTestProviderService()
	req := validRegistration()

	dupErr := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	winner := &models.WorkingHours{
		ID: "wh-winner", DayOfWeek: time.Monday, Start: 540, End: 1020,
		ProviderIDs: []string{"prov-racer"},
	}

	repo.On("GetByEmail", req.Email).Return((*models.Provider)(nil), providerRepo.ErrNotFound)
	wh.On("FindByWindow", req.WorkingHours[0]).Return((*models.WorkingHours)(nil), workinghoursRepo.ErrNotFound).Once()
	wh.On("Create", mock.AnythingOfType("*models.WorkingHours")).Return(dupErr)
	wh.On("FindByWindow", req.WorkingHours[0]).Return(winner, nil).Once()
	wh.On("AddProviderRef", "wh-winner", mock.AnythingOfType("string")).Return(nil)
	repo.On("Create", mock.AnythingOfType("*models.Provider")).Return(nil)

	prov, err := svc.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []string{"wh-winner"}, prov.WorkingHourIDs)
	wh.AssertExpectations(t)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	svc, repo, _ := setupTestProviderService()
	req := validRegistration()

	repo.On("GetByEmail", req.Email).Return(&models.Provider{ID: "prov-existing"}, nil)

	_, err := svc.Register(context.Background(), req)

	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_InvalidWindowRejected(t *testing.T) {
	svc, _, _ := setupTestProviderService()
	req := validRegistration()
	req.WorkingHours = []models.WorkingHoursWindow{
		{DayOfWeek: time.Monday, Start: 1020, End: 540}, // inverted
	}

	_, err := svc.Register(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidWorkingHours)
}

func TestRegister_TwoWindowsSameDayRejected(t *testing.T) {
	svc, _, _ := setupTestProviderService()
	req := validRegistration()
	req.WorkingHours = append(req.WorkingHours,
		models.WorkingHoursWindow{DayOfWeek: time.Monday, Start: 60, End: 300})

	_, err := svc.Register(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidWorkingHours)
}

func TestRegister_NoWindowsRejected(t *testing.T) {
	svc, _, _ := setupTestProviderService()
	req := validRegistration()
	req.WorkingHours = nil

	_, err := svc.Register(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidWorkingHours)
}

func TestRateProvider_Bounds(t *testing.T) {
	svc, repo, _ := setupTestProviderService()

	for _, bad := range []float64{0, 0.99, 5.01, -1} {
		_, err := svc.RateProvider("prov-1", bad)
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %v", bad)
	}
	repo.AssertNotCalled(t, "UpdateWithDocument", mock.Anything, mock.Anything)

	repo.On("GetByID", "prov-1").Return(&models.Provider{ID: "prov-1"}, nil)
	repo.On("UpdateWithDocument", "prov-1", mock.AnythingOfType("primitive.M")).Return(nil)

	prov, err := svc.RateProvider("prov-1", 4.5)
	require.NoError(t, err)
	assert.Equal(t, 4.5, prov.Profile.Rating)
}
