package booking

import (
	"context"
	"testing"
	"time"

	appointmentRepo "salonflow/database/repository/appointment"
	"salonflow/models"
	"salonflow/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// MockAppointmentRepo is a mock implementation of AppointmentRepository.
type MockAppointmentRepo struct {
	mock.Mock
}

func (m *MockAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	args := m.Called(id)
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) FindByProvider(providerID string, excludeCompleted bool) ([]models.Appointment, error) {
	args := m.Called(providerID, excludeCompleted)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) FindByClient(clientID string, excludeCompleted bool) ([]models.Appointment, error) {
	args := m.Called(clientID, excludeCompleted)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) FindByProviderBetween(providerID string, from, to time.Time) ([]models.Appointment, error) {
	args := m.Called(providerID, from, to)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) CreateExclusive(appt *models.Appointment) error {
	args := m.Called(appt)
	return args.Error(0)
}

func (m *MockAppointmentRepo) UpdateTimeExclusive(id string, clientID, providerID string, newTime, updatedAt time.Time) error {
	args := m.Called(id, clientID, providerID, newTime, updatedAt)
	return args.Error(0)
}

func (m *MockAppointmentRepo) Update(appt *models.Appointment) error {
	args := m.Called(appt)
	return args.Error(0)
}

func (m *MockAppointmentRepo) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockProviderRepo is a mock implementation of ProviderRepository. Only the
// methods the engine touches carry expectations; the rest satisfy the
// interface.
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

// MockClientRepo is a mock implementation of ClientRepository.
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) GetByID(id string) (*models.Client, error) {
	args := m.Called(id)
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepo) GetByEmail(email string) (*models.Client, error) {
	args := m.Called(email)
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepo) Create(client *models.Client) error {
	args := m.Called(client)
	return args.Error(0)
}

func (m *MockClientRepo) Update(client *models.Client) error {
	args := m.Called(client)
	return args.Error(0)
}

func (m *MockClientRepo) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// noopSlots satisfies SlotService without caching behavior.
type noopSlots struct{}

func (noopSlots) GetAvailableSlots(ctx context.Context, providerID string) ([]models.TimeSlot, error) {
	return nil, nil
}
func (noopSlots) InvalidateSlots(ctx context.Context, providerID string) {}

var testNow = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func setupTestEngine() (*DefaultBookingEngine, *MockAppointmentRepo, *MockProviderRepo, *MockClientRepo) {
	appts := &MockAppointmentRepo{}
	provs := &MockProviderRepo{}
	clients := &MockClientRepo{}
	engine := &DefaultBookingEngine{
		Appointments:       appts,
		Providers:          provs,
		Clients:            clients,
		Slots:              noopSlots{},
		Clock:              scheduling.FixedClock{Instant: testNow},
		CancellationNotice: 24 * time.Hour,
	}
	return engine, appts, provs, clients
}

func approvedProvider(id string) *models.Provider {
	return &models.Provider{
		ID:       id,
		Roles:    []string{models.RoleProvider},
		Approved: true,
	}
}

func validRequest(at time.Time) models.AppointmentRequest {
	return models.AppointmentRequest{
		ClientID:    "cli-1",
		ProviderID:  "prov-1",
		ServiceType: "haircut",
		Time:        at,
	}
}

func TestCreateAppointment_Success(t *testing.T) {
	engine, appts, provs, clients := setupTestEngine()

	provs.On("GetByID", "prov-1").Return(approvedProvider("prov-1"), nil)
	clients.On("GetByID", "cli-1").Return(&models.Client{ID: "cli-1"}, nil)
	appts.On("FindByProvider", "prov-1", true).Return([]models.Appointment{}, nil)
	appts.On("FindByClient", "cli-1", true).Return([]models.Appointment{}, nil)
	appts.On("CreateExclusive", mock.AnythingOfType("*models.Appointment")).Return(nil)

	appt, err := engine.CreateAppointment(context.Background(), validRequest(testNow.Add(48*time.Hour)))

	require.NoError(t, err)
	require.NotNil(t, appt)
	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, models.PaymentPending, appt.PaymentStatus)
	assert.False(t, appt.Completed)
	appts.AssertExpectations(t)
}

func TestCreateAppointment_RejectsPresentInstant(t *testing.T) {
	// Strictly future means "now" itself is already too late.
	engine, appts, _, _ := setupTestEngine()

	_, err := engine.CreateAppointment(context.Background(), validRequest(testNow))

	assert.ErrorIs(t, err, ErrInvalidTime)
	appts.AssertNotCalled(t, "CreateExclusive", mock.Anything)
}

func TestCreateAppointment_RejectsPast(t *testing.T) {
	engine, _, _, _ := setupTestEngine()

	_, err := engine.CreateAppointment(context.Background(), validRequest(testNow.Add(-time.Hour)))

	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestCreateAppointment_AcceptsOneSecondAhead(t *testing.T) {
	engine, appts, provs, clients := setupTestEngine()

	provs.On("GetByID", "prov-1").Return(approvedProvider("prov-1"), nil)
	clients.On("GetByID", "cli-1").Return(&models.Client{ID: "cli-1"}, nil)
	appts.On("FindByProvider", "prov-1", true).Return([]models.Appointment{}, nil)
	appts.On("FindByClient", "cli-1", true).Return([]models.Appointment{}, nil)
	appts.On("CreateExclusive", mock.AnythingOfType("*models.Appointment")).Return(nil)

	_, err := engine.CreateAppointment(context.Background(), validRequest(testNow.Add(time.Second)))

	assert.NoError(t, err)
}

func TestCreateAppointment_UnapprovedProvider(t *testing.T) {
	engine, appts, provs, _ := setupTestEngine()

	applicant := &models.Provider{ID: "prov-1", Roles: []string{models.RoleApplicant}, Approved: false}
	provs.On("GetByID", "prov-1").Return(applicant, nil)

	_, err := engine.CreateAppointment(context.Background(), validRequest(testNow.Add(48*time.Hour)))

	assert.ErrorIs(t, err, ErrProviderNotApproved)
	appts.AssertNotCalled(t, "CreateExclusive", mock.Anything)
}

func TestCreateAppointment_ProviderConflict(t *testing.T) {
	engine, appts, provs, clients := setupTestEngine()
	at := testNow.Add(48 * time.Hour)

	provs.On("GetByID", "prov-1").Return(approvedProvider("prov-1"), nil)
	clients.On("GetByID", "cli-1").Return(&models.Client{ID: "cli-1"}, nil)
	appts.On("FindByProvider", "prov-1", true).Return([]models.Appointment{
		{ID: "other", ProviderID: "prov-1", ClientID: "cli-9", Time: at},
	}, nil)
	appts.On("FindByClient", "cli-1", true).Return([]models.Appointment{}, nil)

	_, err := engine.CreateAppointment(context.Background(), validRequest(at))

	assert.ErrorIs(t, err, ErrSchedulingConflict)
	appts.AssertNotCalled(t, "CreateExclusive", mock.Anything)
}

func TestCreateAppointment_RaceLostInStorage(t *testing.T) {
	// The pre-check passes but the transactional write detects a concurrent
	// booking; the engine surfaces it as a scheduling conflict.
	engine, appts, provs, clients := setupTestEngine()

	provs.On("GetByID", "prov-1").Return(approvedProvider("prov-1"), nil)
	clients.On("GetByID", "cli-1").Return(&models.Client{ID: "cli-1"}, nil)
	appts.On("FindByProvider", "prov-1", true).Return([]models.Appointment{}, nil)
	appts.On("FindByClient", "cli-1", true).Return([]models.Appointment{}, nil)
	appts.On("CreateExclusive", mock.AnythingOfType("*models.Appointment")).Return(appointmentRepo.ErrTimeSlotTaken)

	_, err := engine.CreateAppointment(context.Background(), validRequest(testNow.Add(48*time.Hour)))

	assert.ErrorIs(t, err, ErrSchedulingConflict)
}

func TestRescheduleAppointment_ExcludesSelf(t *testing.T) {
	engine, appts, _, _ := setupTestEngine()
	oldTime := testNow.Add(48 * time.Hour)
	newTime := testNow.Add(72 * time.Hour)
	existing := &models.Appointment{ID: "appt-1", ClientID: "cli-1", ProviderID: "prov-1", Time: oldTime}

	appts.On("GetByID", "appt-1").Return(existing, nil)
	appts.On("FindByProvider", "prov-1", true).Return([]models.Appointment{*existing}, nil)
	appts.On("FindByClient", "cli-1", true).Return([]models.Appointment{*existing}, nil)
	appts.On("UpdateTimeExclusive", "appt-1", "cli-1", "prov-1", newTime, testNow).Return(nil)

	appt, err := engine.RescheduleAppointment(context.Background(), "appt-1", newTime)

	require.NoError(t, err)
	assert.True(t, appt.Time.Equal(newTime))
	appts.AssertExpectations(t)
}

func TestRescheduleAppointment_RejectsPast(t *testing.T) {
	engine, appts, _, _ := setupTestEngine()
	existing := &models.Appointment{ID: "appt-1", ClientID: "cli-1", ProviderID: "prov-1", Time: testNow.Add(48 * time.Hour)}
	appts.On("GetByID", "appt-1").Return(existing, nil)

	_, err := engine.RescheduleAppointment(context.Background(), "appt-1", testNow)

	assert.ErrorIs(t, err, ErrInvalidTime)
	appts.AssertNotCalled(t, "UpdateTimeExclusive", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelAppointment_ExactlyAtNoticeBoundaryRejected(t *testing.T) {
	// An appointment exactly 24 hours out does not satisfy "more than 24
	// hours of notice".
	engine, appts, _, _ := setupTestEngine()
	appt := &models.Appointment{ID: "appt-1", ProviderID: "prov-1", ClientID: "cli-1", Time: testNow.Add(24 * time.Hour)}
	appts.On("GetByID", "appt-1").Return(appt, nil)

	err := engine.CancelAppointment(context.Background(), "appt-1", models.RoleClient)

	assert.ErrorIs(t, err, ErrCancellationWindow)
	appts.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestCancelAppointment_JustPastNoticeBoundaryAccepted(t *testing.T) {
	engine, appts, _, _ := setupTestEngine()
	appt := &models.Appointment{ID: "appt-1", ProviderID: "prov-1", ClientID: "cli-1", Time: testNow.Add(24*time.Hour + time.Second)}
	appts.On("GetByID", "appt-1").Return(appt, nil)
	appts.On("Delete", "appt-1").Return(nil)

	err := engine.CancelAppointment(context.Background(), "appt-1", models.RoleClient)

	assert.NoError(t, err)
	appts.AssertExpectations(t)
}

func TestCancelAppointment_AdminBypassesNotice(t *testing.T) {
	engine, appts, _, _ := setupTestEngine()
	appt := &models.Appointment{ID: "appt-1", ProviderID: "prov-1", ClientID: "cli-1", Time: testNow.Add(time.Hour)}
	appts.On("GetByID", "appt-1").Return(appt, nil)
	appts.On("Delete", "appt-1").Return(nil)

	err := engine.CancelAppointment(context.Background(), "appt-1", models.RoleAdmin)

	assert.NoError(t, err)
	appts.AssertExpectations(t)
}

func TestMarkCompleted_OwnerOnly(t *testing.T) {
	engine, appts, _, _ := setupTestEngine()
	appt := &models.Appointment{ID: "appt-1", ProviderID: "prov-1", ClientID: "cli-1", Time: testNow.Add(-time.Hour)}
	appts.On("GetByID", "appt-1").Return(appt, nil)

	_, err := engine.MarkCompleted(context.Background(), "appt-1", "prov-2")

	assert.ErrorIs(t, err, ErrUnauthorized)
	appts.AssertNotCalled(t, "Update", mock.Anything)
}

func TestMarkCompleted_Success(t *testing.T) {
	engine, appts, _, _ := setupTestEngine()
	appt := &models.Appointment{ID: "appt-1", ProviderID: "prov-1", ClientID: "cli-1", Time: testNow.Add(-time.Hour)}
	appts.On("GetByID", "appt-1").Return(appt, nil)
	appts.On("Update", mock.AnythingOfType("*models.Appointment")).Return(nil)

	done, err := engine.MarkCompleted(context.Background(), "appt-1", "prov-1")

	require.NoError(t, err)
	assert.True(t, done.Completed)
}
