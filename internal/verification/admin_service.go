package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/config"
	"gharmitra/platform-backend/internal/properties"
	"gharmitra/platform-backend/internal/telemetry"
	"gharmitra/platform-backend/pkg/workflows"
)

// Notifier delivers a decision notice to the property owner. Implemented by
// the notifications service; kept as a local interface to avoid the import
// cycle.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, subject, body string) error
}

// AdminService lists the review queue and applies terminal decisions. A
// request is decidable only while UNDER_REVIEW; approving or rejecting
// anything else, including an already-decided request, is a conflict.
type AdminService struct {
	repo     Repository
	queue    QueueRepository
	propRepo properties.Repository
	notifier Notifier
	sm       *workflows.StateMachine
	cfg      config.VerificationConfig
	logger   *zap.Logger
}

func NewAdminService(repo Repository, queue QueueRepository, propRepo properties.Repository, notifier Notifier, cfg config.VerificationConfig, logger *zap.Logger) *AdminService {
	return &AdminService{repo: repo, queue: queue, propRepo: propRepo, notifier: notifier, sm: NewStateMachine(), cfg: cfg, logger: logger}
}

// decidable checks that a terminal decision can be applied to the request in
// its loaded status. The repository's conditional update remains the backstop
// for the race where the status moves between the read and the write.
func (s *AdminService) decidable(req *VerificationRequest, to RequestStatus) error {
	if req.Status == StatusApproved || req.Status == StatusRejected {
		return ErrAlreadyDecided
	}
	if !s.sm.CanTransition(string(req.Status), string(to)) {
		return fmt.Errorf("%w: request is %s", ErrInvalidTransition, req.Status)
	}
	return nil
}

// List returns the review queue, newest first
func (s *AdminService) List(ctx context.Context, filter QueueFilter) ([]RequestSummary, int64, error) {
	return s.queue.List(ctx, filter)
}

// Approve marks the request approved and the property verified, with expiry
// set to now plus the configured validity window. Both writes land in one
// transaction.
func (s *AdminService) Approve(ctx context.Context, reviewerID, requestID uuid.UUID, notes string) (*VerificationRequest, error) {
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.decidable(req, StatusApproved); err != nil {
		return nil, err
	}

	expiry := time.Now().Add(s.cfg.ValidityPeriod)
	if err := s.repo.Approve(ctx, requestID, reviewerID, notes, expiry); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			// Lost the race or the request never reached review.
			return nil, fmt.Errorf("%w: request is %s", ErrInvalidTransition, req.Status)
		}
		return nil, err
	}

	telemetry.VerificationTransitions.WithLabelValues(string(StatusUnderReview), string(StatusApproved)).Inc()
	telemetry.AdminDecisions.WithLabelValues("approve").Inc()
	s.logger.Info("verification approved",
		zap.String("request_id", requestID.String()),
		zap.String("reviewer_id", reviewerID.String()),
		zap.Time("expiry", expiry))

	s.notifyOwner(ctx, req.PropertyID, "Property verified",
		"Your property verification was approved. The verified badge is now live on your listing.")

	return s.repo.GetByID(ctx, requestID)
}

// Reject marks the request rejected. The property keeps its previous status;
// the owner can re-initiate after fixing the issue.
func (s *AdminService) Reject(ctx context.Context, reviewerID, requestID uuid.UUID, notes string) (*VerificationRequest, error) {
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.decidable(req, StatusRejected); err != nil {
		return nil, err
	}

	if err := s.repo.Reject(ctx, requestID, reviewerID, notes); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return nil, fmt.Errorf("%w: request is %s", ErrInvalidTransition, req.Status)
		}
		return nil, err
	}

	telemetry.VerificationTransitions.WithLabelValues(string(StatusUnderReview), string(StatusRejected)).Inc()
	telemetry.AdminDecisions.WithLabelValues("reject").Inc()
	s.logger.Info("verification rejected",
		zap.String("request_id", requestID.String()),
		zap.String("reviewer_id", reviewerID.String()))

	body := "Your property verification was rejected."
	if notes != "" {
		body = fmt.Sprintf("Your property verification was rejected: %s", notes)
	}
	s.notifyOwner(ctx, req.PropertyID, "Verification rejected", body)

	return s.repo.GetByID(ctx, requestID)
}

// ExpireApproved is the sweep entry point used by the worker
func (s *AdminService) ExpireApproved(ctx context.Context, now time.Time) (int64, error) {
	expired, err := s.repo.ExpireApproved(ctx, now)
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		telemetry.ExpirySweeps.Add(float64(expired))
		s.logger.Info("verification requests expired", zap.Int64("count", expired))
	}
	return expired, nil
}

// notifyOwner is best effort; a failed notice never fails the decision
func (s *AdminService) notifyOwner(ctx context.Context, propertyID uuid.UUID, subject, body string) {
	if s.notifier == nil {
		return
	}
	property, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		s.logger.Warn("notify owner: property lookup failed", zap.Error(err))
		return
	}
	if err := s.notifier.Notify(ctx, property.OwnerID, subject, body); err != nil {
		s.logger.Warn("notify owner failed", zap.Error(err))
	}
}
