package verification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/properties"
)

// MockQueueRepository is a mock implementation of the QueueRepository interface
type MockQueueRepository struct {
	mock.Mock
}

func (m *MockQueueRepository) List(ctx context.Context, filter QueueFilter) ([]RequestSummary, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]RequestSummary), args.Get(1).(int64), args.Error(2)
}

// mockNotifier records decision notices
type mockNotifier struct {
	notices []string
	userIDs []uuid.UUID
}

func (n *mockNotifier) Notify(ctx context.Context, userID uuid.UUID, subject, body string) error {
	n.notices = append(n.notices, subject)
	n.userIDs = append(n.userIDs, userID)
	return nil
}

func newAdminFixture() (*AdminService, *MockRepository, *MockQueueRepository, *MockPropertyRepository, *mockNotifier) {
	mockRepo := new(MockRepository)
	mockQueue := new(MockQueueRepository)
	mockProps := new(MockPropertyRepository)
	notifier := &mockNotifier{}
	service := NewAdminService(mockRepo, mockQueue, mockProps, notifier, testVerificationConfig(), zap.NewNop())
	return service, mockRepo, mockQueue, mockProps, notifier
}

func TestApproveSetsExpiryFromConfig(t *testing.T) {
	service, mockRepo, _, mockProps, notifier := newAdminFixture()

	ctx := context.Background()
	requestID := uuid.New()
	propertyID := uuid.New()
	ownerID := uuid.New()
	reviewerID := uuid.New()

	pending := &VerificationRequest{ID: requestID, PropertyID: propertyID, Status: StatusUnderReview}
	mockRepo.On("GetByID", ctx, requestID).Return(pending, nil)
	mockRepo.On("Approve", ctx, requestID, reviewerID, "looks good", mock.AnythingOfType("time.Time")).Return(nil)
	mockProps.On("GetByID", ctx, propertyID).Return(&properties.Property{ID: propertyID, OwnerID: ownerID}, nil)

	_, err := service.Approve(ctx, reviewerID, requestID, "looks good")
	require.NoError(t, err)

	// Expiry lands one validity window out.
	expiry := mockRepo.Calls[1].Arguments.Get(4).(time.Time)
	assert.WithinDuration(t, time.Now().Add(365*24*time.Hour), expiry, time.Minute)

	// Owner got the approval notice.
	require.Len(t, notifier.notices, 1)
	assert.Equal(t, "Property verified", notifier.notices[0])
	assert.Equal(t, ownerID, notifier.userIDs[0])
}

func TestApproveAlreadyDecided(t *testing.T) {
	service, mockRepo, _, _, _ := newAdminFixture()

	ctx := context.Background()
	requestID := uuid.New()

	mockRepo.On("GetByID", ctx, requestID).Return(&VerificationRequest{
		ID: requestID, Status: StatusApproved,
	}, nil)

	_, err := service.Approve(ctx, uuid.New(), requestID, "")

	assert.ErrorIs(t, err, ErrAlreadyDecided)
	mockRepo.AssertNotCalled(t, "Approve")
}

func TestApproveMissingRequest(t *testing.T) {
	service, mockRepo, _, _, _ := newAdminFixture()

	ctx := context.Background()
	requestID := uuid.New()

	mockRepo.On("GetByID", ctx, requestID).Return(nil, ErrRequestNotFound)

	_, err := service.Approve(ctx, uuid.New(), requestID, "")

	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRejectBeforeReviewIsInvalid(t *testing.T) {
	service, mockRepo, _, _, notifier := newAdminFixture()

	ctx := context.Background()
	requestID := uuid.New()
	reviewerID := uuid.New()

	// Request never reached review; the state machine refuses before any write.
	mockRepo.On("GetByID", ctx, requestID).Return(&VerificationRequest{
		ID: requestID, PropertyID: uuid.New(), Status: StatusPendingPayment,
	}, nil)

	_, err := service.Reject(ctx, reviewerID, requestID, "duplicate listing")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	mockRepo.AssertNotCalled(t, "Reject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, notifier.notices)
}

func TestApproveRaceFallsBackToRepositoryGuard(t *testing.T) {
	service, mockRepo, _, _, notifier := newAdminFixture()

	ctx := context.Background()
	requestID := uuid.New()
	reviewerID := uuid.New()

	// Loaded as UNDER_REVIEW, but another admin decided in between; the
	// conditional update reports the lost race.
	mockRepo.On("GetByID", ctx, requestID).Return(&VerificationRequest{
		ID: requestID, PropertyID: uuid.New(), Status: StatusUnderReview,
	}, nil)
	mockRepo.On("Approve", ctx, requestID, reviewerID, "", mock.AnythingOfType("time.Time")).
		Return(ErrInvalidTransition)

	_, err := service.Approve(ctx, reviewerID, requestID, "")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, notifier.notices)
}

func TestRejectNotifiesOwnerWithNotes(t *testing.T) {
	service, mockRepo, _, mockProps, notifier := newAdminFixture()

	ctx := context.Background()
	requestID := uuid.New()
	propertyID := uuid.New()
	ownerID := uuid.New()
	reviewerID := uuid.New()

	underReview := &VerificationRequest{ID: requestID, PropertyID: propertyID, Status: StatusUnderReview}
	mockRepo.On("GetByID", ctx, requestID).Return(underReview, nil)
	mockRepo.On("Reject", ctx, requestID, reviewerID, "photos do not match").Return(nil)
	mockProps.On("GetByID", ctx, propertyID).Return(&properties.Property{ID: propertyID, OwnerID: ownerID}, nil)

	_, err := service.Reject(ctx, reviewerID, requestID, "photos do not match")

	require.NoError(t, err)
	require.Len(t, notifier.notices, 1)
	assert.Equal(t, "Verification rejected", notifier.notices[0])
}

func TestListPassesFilter(t *testing.T) {
	service, _, mockQueue, _, _ := newAdminFixture()

	ctx := context.Background()
	filter := QueueFilter{Status: StatusUnderReview}
	mockQueue.On("List", ctx, filter).Return([]RequestSummary{{Status: StatusUnderReview}}, int64(1), nil)

	rows, total, err := service.List(ctx, filter)

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, rows, 1)
	mockQueue.AssertExpectations(t)
}

func TestExpireApprovedDelegates(t *testing.T) {
	service, mockRepo, _, _, _ := newAdminFixture()

	ctx := context.Background()
	now := time.Now()
	mockRepo.On("ExpireApproved", ctx, now).Return(int64(3), nil)

	expired, err := service.ExpireApproved(ctx, now)

	require.NoError(t, err)
	assert.EqualValues(t, 3, expired)
}
