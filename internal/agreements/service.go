package agreements

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/auth"
	"gharmitra/platform-backend/internal/properties"
	"gharmitra/platform-backend/pkg/pagination"
)

// CreateAgreementRequest carries the owner-supplied terms
type CreateAgreementRequest struct {
	PropertyID      uuid.UUID `json:"property_id" binding:"required"`
	TenantName      string    `json:"tenant_name" binding:"required"`
	TenantPhone     string    `json:"tenant_phone" binding:"required"`
	TenantAddress   string    `json:"tenant_address"`
	MonthlyRent     float64   `json:"monthly_rent" binding:"required"`
	SecurityDeposit float64   `json:"security_deposit"`
	StartDate       time.Time `json:"start_date" binding:"required"`
	TermMonths      int       `json:"term_months" binding:"required"`
	NoticePeriod    int       `json:"notice_period_days"`
}

// Service drafts rent agreements and renders them as PDFs
type Service struct {
	repo     Repository
	propRepo properties.Repository
	userRepo auth.UserRepository
	logger   *zap.Logger
}

func NewService(repo Repository, propRepo properties.Repository, userRepo auth.UserRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, propRepo: propRepo, userRepo: userRepo, logger: logger}
}

// Create drafts an agreement for a property the caller owns
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req CreateAgreementRequest) (*Agreement, error) {
	if req.MonthlyRent <= 0 {
		return nil, fmt.Errorf("%w: monthly_rent must be positive", ErrValidation)
	}
	if req.TermMonths <= 0 {
		return nil, fmt.Errorf("%w: term_months must be positive", ErrValidation)
	}
	if req.SecurityDeposit < 0 {
		return nil, fmt.Errorf("%w: security_deposit cannot be negative", ErrValidation)
	}

	property, err := s.propRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	agreement := &Agreement{
		ID:              uuid.New(),
		PropertyID:      property.ID,
		OwnerID:         ownerID,
		TenantName:      req.TenantName,
		TenantPhone:     req.TenantPhone,
		TenantAddress:   req.TenantAddress,
		MonthlyRent:     req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		StartDate:       req.StartDate,
		TermMonths:      req.TermMonths,
		NoticePeriod:    req.NoticePeriod,
	}
	if agreement.NoticePeriod <= 0 {
		agreement.NoticePeriod = 30
	}
	if err := s.repo.Create(ctx, agreement); err != nil {
		return nil, err
	}

	s.logger.Info("agreement drafted",
		zap.String("agreement_id", agreement.ID.String()),
		zap.String("property_id", property.ID.String()),
		zap.String("owner_id", ownerID.String()))
	return agreement, nil
}

// Get returns an agreement, restricted to its owner
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Agreement, error) {
	agreement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if agreement.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return agreement, nil
}

// ListByOwner returns the caller's agreements, newest first
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID, page pagination.Page) ([]Agreement, error) {
	return s.repo.ListByOwner(ctx, ownerID, page)
}

// RenderPDF renders the agreement document for download
func (s *Service) RenderPDF(ctx context.Context, ownerID, id uuid.UUID) ([]byte, error) {
	agreement, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if agreement.Property.ID == uuid.Nil {
		property, err := s.propRepo.GetByID(ctx, agreement.PropertyID)
		if err != nil {
			return nil, err
		}
		agreement.Property = *property
	}

	ownerName := "The Owner"
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err == nil && owner != nil && owner.Name != "" {
		ownerName = owner.Name
	}
	return renderAgreementPDF(agreement, ownerName)
}
