package contacts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/properties"
	"gharmitra/platform-backend/pkg/pagination"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, lead *Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Lead), args.Error(1)
}

func (m *MockRepository) GetByPropertyAndSeeker(ctx context.Context, propertyID, seekerID uuid.UUID) (*Lead, error) {
	args := m.Called(ctx, propertyID, seekerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Lead), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, lead *Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID, page pagination.Page) ([]Lead, error) {
	args := m.Called(ctx, propertyID, page)
	return args.Get(0).([]Lead), args.Error(1)
}

// MockPropertyRepository is a mock implementation of properties.Repository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *properties.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*properties.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*properties.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *properties.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) List(ctx context.Context, filter properties.Filter) ([]properties.Property, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]properties.Property), args.Get(1).(int64), args.Error(2)
}

func (m *MockPropertyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page pagination.Page) ([]properties.Property, error) {
	args := m.Called(ctx, ownerID, page)
	return args.Get(0).([]properties.Property), args.Error(1)
}

func (m *MockPropertyRepository) AddImage(ctx context.Context, image *properties.PropertyImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockPropertyRepository) ListImages(ctx context.Context, propertyID uuid.UUID) ([]properties.PropertyImage, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]properties.PropertyImage), args.Error(1)
}

func TestContactCreatesLead(t *testing.T) {
	mockRepo := new(MockRepository)
	mockProps := new(MockPropertyRepository)
	service := NewService(mockRepo, mockProps, nil, zap.NewNop())

	ctx := context.Background()
	seekerID := uuid.New()
	ownerID := uuid.New()
	propertyID := uuid.New()

	mockProps.On("GetByID", ctx, propertyID).Return(&properties.Property{
		ID: propertyID, OwnerID: ownerID, Title: "2BHK",
	}, nil)
	mockRepo.On("GetByPropertyAndSeeker", ctx, propertyID, seekerID).Return(nil, nil)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*contacts.Lead")).Return(nil)

	lead, err := service.Contact(ctx, seekerID, propertyID, "Is this still available?")

	require.NoError(t, err)
	assert.Equal(t, LeadNew, lead.Status)
	assert.Equal(t, ownerID, lead.OwnerID)
	mockRepo.AssertExpectations(t)
}

func TestContactCollapsesDuplicate(t *testing.T) {
	mockRepo := new(MockRepository)
	mockProps := new(MockPropertyRepository)
	service := NewService(mockRepo, mockProps, nil, zap.NewNop())

	ctx := context.Background()
	seekerID := uuid.New()
	propertyID := uuid.New()
	existing := &Lead{ID: uuid.New(), PropertyID: propertyID, SeekerID: seekerID, Status: LeadContacted}

	mockProps.On("GetByID", ctx, propertyID).Return(&properties.Property{
		ID: propertyID, OwnerID: uuid.New(),
	}, nil)
	mockRepo.On("GetByPropertyAndSeeker", ctx, propertyID, seekerID).Return(existing, nil)
	mockRepo.On("Update", ctx, existing).Return(nil)

	lead, err := service.Contact(ctx, seekerID, propertyID, "Following up")

	require.NoError(t, err)
	assert.Equal(t, existing.ID, lead.ID)
	assert.Equal(t, "Following up", lead.Message)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestContactRejectsOwnListing(t *testing.T) {
	mockRepo := new(MockRepository)
	mockProps := new(MockPropertyRepository)
	service := NewService(mockRepo, mockProps, nil, zap.NewNop())

	ctx := context.Background()
	ownerID := uuid.New()
	propertyID := uuid.New()

	mockProps.On("GetByID", ctx, propertyID).Return(&properties.Property{
		ID: propertyID, OwnerID: ownerID,
	}, nil)

	_, err := service.Contact(ctx, ownerID, propertyID, "hi")

	assert.ErrorIs(t, err, ErrOwnContact)
}

func TestUpdateStatusChecksOwnership(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockPropertyRepository), nil, zap.NewNop())

	ctx := context.Background()
	leadID := uuid.New()

	mockRepo.On("GetByID", ctx, leadID).Return(&Lead{ID: leadID, OwnerID: uuid.New()}, nil)

	_, err := service.UpdateStatus(ctx, uuid.New(), leadID, LeadContacted)

	assert.ErrorIs(t, err, ErrNotOwner)
}
