package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/config"
	"gharmitra/platform-backend/internal/telemetry"
)

var (
	ErrOTPExpired      = errors.New("otp expired or not requested")
	ErrOTPMismatch     = errors.New("otp does not match")
	ErrTooManyAttempts = errors.New("too many otp attempts")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrRoleNotAllowed  = errors.New("role not available for signup")
)

// signupRole validates the role a caller may sign up with. Admin accounts are
// provisioned out of band, never through public OTP signup, so anything beyond
// SEEKER and OWNER is rejected on both the request and verify paths.
func signupRole(role Role) (Role, error) {
	switch role {
	case "", RoleSeeker:
		return RoleSeeker, nil
	case RoleOwner:
		return RoleOwner, nil
	default:
		return "", ErrRoleNotAllowed
	}
}

// Service drives OTP signup/login and token issuance
type Service struct {
	users  UserRepository
	otp    OTPStore
	cfg    config.AuthConfig
	logger *zap.Logger
}

func NewService(users UserRepository, otp OTPStore, cfg config.AuthConfig, logger *zap.Logger) *Service {
	return &Service{users: users, otp: otp, cfg: cfg, logger: logger}
}

// RequestOTP issues a fresh code for the phone. The code is returned so the
// caller can hand it to an SMS dispatcher; there is no gateway wired here.
func (s *Service) RequestOTP(ctx context.Context, phone string, role Role) (string, error) {
	if len(phone) < 10 {
		return "", ErrInvalidPhone
	}
	role, err := signupRole(role)
	if err != nil {
		return "", err
	}
	code, err := GenerateCode(s.cfg.OTPLength)
	if err != nil {
		return "", err
	}
	if err := s.otp.Save(ctx, phone, code, s.cfg.OTPTTL); err != nil {
		return "", err
	}
	telemetry.OTPRequests.WithLabelValues(string(role)).Inc()
	s.logger.Info("otp issued", zap.String("phone", phone), zap.String("role", string(role)))
	return code, nil
}

// VerifyOTP checks the code and returns a signed token. First-time callers
// get an account created with the requested role.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string, role Role) (string, *User, error) {
	role, err := signupRole(role)
	if err != nil {
		return "", nil, err
	}

	stored, err := s.otp.Get(ctx, phone)
	if err != nil {
		return "", nil, err
	}

	attempts, err := s.otp.IncrAttempts(ctx, phone, s.cfg.OTPTTL)
	if err != nil {
		return "", nil, err
	}
	if attempts > int64(s.cfg.OTPMaxAttempts) {
		_ = s.otp.Delete(ctx, phone)
		return "", nil, ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return "", nil, ErrOTPMismatch
	}
	_ = s.otp.Delete(ctx, phone)

	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		user = &User{Phone: phone, Role: role}
		if user.ID == uuid.Nil {
			user.ID = uuid.New()
		}
		if err := s.users.Create(ctx, user); err != nil {
			return "", nil, err
		}
		s.logger.Info("account created", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUser looks up the account behind an identity
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) signToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"phone": user.Phone,
		"role":  string(user.Role),
		"exp":   time.Now().Add(s.cfg.TokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
