package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/config"
)

// MockUserRepository is a mock implementation of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// memOTPStore keeps codes in a map so tests run without redis
type memOTPStore struct {
	codes      map[string]string
	attempts   map[string]int64
	attemptTTL map[string]time.Duration
}

func newMemOTPStore() *memOTPStore {
	return &memOTPStore{
		codes:      map[string]string{},
		attempts:   map[string]int64{},
		attemptTTL: map[string]time.Duration{},
	}
}

func (s *memOTPStore) Save(ctx context.Context, phone, code string, ttl time.Duration) error {
	s.codes[phone] = code
	delete(s.attempts, phone)
	return nil
}

func (s *memOTPStore) Get(ctx context.Context, phone string) (string, error) {
	code, ok := s.codes[phone]
	if !ok {
		return "", ErrOTPExpired
	}
	return code, nil
}

func (s *memOTPStore) IncrAttempts(ctx context.Context, phone string, ttl time.Duration) (int64, error) {
	s.attempts[phone]++
	s.attemptTTL[phone] = ttl
	return s.attempts[phone], nil
}

func (s *memOTPStore) Delete(ctx context.Context, phone string) error {
	delete(s.codes, phone)
	delete(s.attempts, phone)
	return nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		OTPTTL:         5 * time.Minute,
		OTPLength:      6,
		OTPMaxAttempts: 3,
	}
}

func TestRequestOTP(t *testing.T) {
	store := newMemOTPStore()
	service := NewService(new(MockUserRepository), store, testAuthConfig(), zap.NewNop())

	code, err := service.RequestOTP(context.Background(), "9876543210", RoleOwner)

	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, code, store.codes["9876543210"])
}

func TestRequestOTPInvalidPhone(t *testing.T) {
	service := NewService(new(MockUserRepository), newMemOTPStore(), testAuthConfig(), zap.NewNop())

	_, err := service.RequestOTP(context.Background(), "123", RoleSeeker)

	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestVerifyOTPCreatesAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	store := newMemOTPStore()
	service := NewService(mockRepo, store, testAuthConfig(), zap.NewNop())

	ctx := context.Background()
	code, err := service.RequestOTP(ctx, "9876543210", RoleOwner)
	require.NoError(t, err)

	mockRepo.On("GetByPhone", ctx, "9876543210").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*auth.User")).Return(nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*auth.User")).Return(nil)

	token, user, err := service.VerifyOTP(ctx, "9876543210", code, RoleOwner)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, RoleOwner, user.Role)
	assert.NotNil(t, user.LastLogin)
	mockRepo.AssertExpectations(t)

	// Token carries the account identity.
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "OWNER", claims["role"])
}

func TestVerifyOTPMismatch(t *testing.T) {
	mockRepo := new(MockUserRepository)
	store := newMemOTPStore()
	service := NewService(mockRepo, store, testAuthConfig(), zap.NewNop())

	ctx := context.Background()
	_, err := service.RequestOTP(ctx, "9876543210", RoleSeeker)
	require.NoError(t, err)

	_, _, err = service.VerifyOTP(ctx, "9876543210", "000000", RoleSeeker)

	assert.ErrorIs(t, err, ErrOTPMismatch)
}

func TestVerifyOTPAttemptCap(t *testing.T) {
	mockRepo := new(MockUserRepository)
	store := newMemOTPStore()
	service := NewService(mockRepo, store, testAuthConfig(), zap.NewNop())

	ctx := context.Background()
	code, err := service.RequestOTP(ctx, "9876543210", RoleSeeker)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _, err = service.VerifyOTP(ctx, "9876543210", "000000", RoleSeeker)
		assert.ErrorIs(t, err, ErrOTPMismatch)
	}

	// Fourth try exceeds the cap and invalidates the code entirely.
	_, _, err = service.VerifyOTP(ctx, "9876543210", code, RoleSeeker)
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	_, _, err = service.VerifyOTP(ctx, "9876543210", code, RoleSeeker)
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestRequestOTPRejectsAdminRole(t *testing.T) {
	store := newMemOTPStore()
	service := NewService(new(MockUserRepository), store, testAuthConfig(), zap.NewNop())

	_, err := service.RequestOTP(context.Background(), "9876543210", RoleAdmin)

	assert.ErrorIs(t, err, ErrRoleNotAllowed)
	assert.Empty(t, store.codes)
}

func TestVerifyOTPCannotMintAdminAccount(t *testing.T) {
	// Requesting a code as SEEKER and then verifying with role ADMIN must not
	// create an admin account or issue an admin token.
	mockRepo := new(MockUserRepository)
	store := newMemOTPStore()
	service := NewService(mockRepo, store, testAuthConfig(), zap.NewNop())

	ctx := context.Background()
	code, err := service.RequestOTP(ctx, "9876543210", RoleSeeker)
	require.NoError(t, err)

	_, _, err = service.VerifyOTP(ctx, "9876543210", code, RoleAdmin)

	assert.ErrorIs(t, err, ErrRoleNotAllowed)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	// The rejected attempt does not burn the code; a proper verify still works.
	mockRepo.On("GetByPhone", ctx, "9876543210").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*auth.User")).Return(nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*auth.User")).Return(nil)

	_, user, err := service.VerifyOTP(ctx, "9876543210", code, RoleSeeker)
	require.NoError(t, err)
	assert.Equal(t, RoleSeeker, user.Role)
}

func TestVerifyOTPDefaultsEmptyRoleToSeeker(t *testing.T) {
	mockRepo := new(MockUserRepository)
	store := newMemOTPStore()
	service := NewService(mockRepo, store, testAuthConfig(), zap.NewNop())

	ctx := context.Background()
	code, err := service.RequestOTP(ctx, "9876543210", "")
	require.NoError(t, err)

	mockRepo.On("GetByPhone", ctx, "9876543210").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*auth.User")).Return(nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*auth.User")).Return(nil)

	_, user, err := service.VerifyOTP(ctx, "9876543210", code, "")
	require.NoError(t, err)
	assert.Equal(t, RoleSeeker, user.Role)
}

func TestVerifyOTPAttemptsExpireWithCode(t *testing.T) {
	store := newMemOTPStore()
	service := NewService(new(MockUserRepository), store, testAuthConfig(), zap.NewNop())

	ctx := context.Background()
	_, err := service.RequestOTP(ctx, "9876543210", RoleSeeker)
	require.NoError(t, err)

	_, _, err = service.VerifyOTP(ctx, "9876543210", "000000", RoleSeeker)
	assert.ErrorIs(t, err, ErrOTPMismatch)

	// The attempt counter lives exactly as long as the code it guards.
	assert.Equal(t, testAuthConfig().OTPTTL, store.attemptTTL["9876543210"])
}

func TestVerifyOTPExpired(t *testing.T) {
	service := NewService(new(MockUserRepository), newMemOTPStore(), testAuthConfig(), zap.NewNop())

	_, _, err := service.VerifyOTP(context.Background(), "9876543210", "123456", RoleSeeker)

	assert.ErrorIs(t, err, ErrOTPExpired)
}
