package verification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/config"
	"gharmitra/platform-backend/internal/properties"
	"gharmitra/platform-backend/internal/telemetry"
	"gharmitra/platform-backend/pkg/geo"
	"gharmitra/platform-backend/pkg/workflows"
)

// OwnerService walks an owner through payment and location capture until the
// request reaches admin review. Every transition is checked against the state
// machine on the loaded request, then re-checked by the repository's
// conditional update so a concurrent writer cannot slip through.
type OwnerService struct {
	repo     Repository
	propRepo properties.Repository
	sm       *workflows.StateMachine
	cfg      config.VerificationConfig
	logger   *zap.Logger
}

func NewOwnerService(repo Repository, propRepo properties.Repository, cfg config.VerificationConfig, logger *zap.Logger) *OwnerService {
	return &OwnerService{repo: repo, propRepo: propRepo, sm: NewStateMachine(), cfg: cfg, logger: logger}
}

// Initiate creates a new verification request for an owned property. A
// property with an active request cannot start another one.
func (s *OwnerService) Initiate(ctx context.Context, ownerID, propertyID uuid.UUID) (*VerificationRequest, error) {
	property, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	latest, err := s.repo.LatestByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.IsActive() {
		return nil, ErrActiveRequestExists
	}

	req := &VerificationRequest{
		ID:            uuid.New(),
		PropertyID:    propertyID,
		Amount:        s.cfg.FeeAmount,
		Currency:      s.cfg.FeeCurrency,
		PaymentStatus: PaymentPending,
		Status:        StatusPendingPayment,
	}
	if err := s.repo.CreateWithProperty(ctx, req); err != nil {
		return nil, err
	}

	telemetry.VerificationTransitions.WithLabelValues("", string(StatusPendingPayment)).Inc()
	s.logger.Info("verification initiated",
		zap.String("request_id", req.ID.String()),
		zap.String("property_id", propertyID.String()))
	return req, nil
}

// CompletePayment records the payment reference and advances the request.
// The reference is taken at face value; gateway reconciliation is a separate
// concern.
func (s *OwnerService) CompletePayment(ctx context.Context, ownerID, requestID uuid.UUID, paymentID string) (*VerificationRequest, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("%w: payment_id is required", ErrValidation)
	}

	req, err := s.authorize(ctx, ownerID, requestID)
	if err != nil {
		return nil, err
	}
	if !s.sm.CanTransition(string(req.Status), string(StatusPaymentCompleted)) {
		return nil, fmt.Errorf("%w: request is %s", ErrInvalidTransition, req.Status)
	}

	if err := s.repo.MarkPaymentCompleted(ctx, requestID, paymentID); err != nil {
		return nil, err
	}

	telemetry.VerificationTransitions.WithLabelValues(string(StatusPendingPayment), string(StatusPaymentCompleted)).Inc()
	s.logger.Info("verification payment completed",
		zap.String("request_id", requestID.String()),
		zap.String("payment_id", paymentID))
	return s.repo.GetByID(ctx, requestID)
}

// CaptureLocation attaches the GPS proof and submits the request for review.
// Only a paid request can capture location, and it can do so once.
func (s *OwnerService) CaptureLocation(ctx context.Context, ownerID, requestID uuid.UUID, lat, lon float64, address string) (*VerificationRequest, error) {
	if err := geo.ValidateCoordinates(lat, lon); err != nil {
		return nil, fmt.Errorf("invalid location: %w", err)
	}
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", ErrValidation)
	}

	req, err := s.authorize(ctx, ownerID, requestID)
	if err != nil {
		return nil, err
	}
	if !s.sm.CanTransition(string(req.Status), string(StatusUnderReview)) {
		return nil, fmt.Errorf("%w: request is %s", ErrInvalidTransition, req.Status)
	}

	if err := s.repo.SetLocation(ctx, requestID, lat, lon, address); err != nil {
		return nil, err
	}

	telemetry.VerificationTransitions.WithLabelValues(string(StatusPaymentCompleted), string(StatusUnderReview)).Inc()
	s.logger.Info("verification location captured",
		zap.String("request_id", requestID.String()),
		zap.String("point", geo.FormatPoint(geo.Point{Latitude: lat, Longitude: lon})))
	return s.repo.GetByID(ctx, requestID)
}

// LatestForProperty returns the request that drives the property's current
// verification state.
func (s *OwnerService) LatestForProperty(ctx context.Context, ownerID, propertyID uuid.UUID) (*VerificationRequest, error) {
	property, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	latest, err := s.repo.LatestByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, ErrRequestNotFound
	}
	return latest, nil
}

// authorize resolves the request and checks the caller owns the property
// behind it.
func (s *OwnerService) authorize(ctx context.Context, ownerID, requestID uuid.UUID) (*VerificationRequest, error) {
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	property, err := s.propRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return req, nil
}
