package contacts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/properties"
	"gharmitra/platform-backend/pkg/pagination"
)

var (
	ErrLeadNotFound = errors.New("lead not found")
	ErrNotOwner     = errors.New("caller does not own this property")
	ErrOwnContact   = errors.New("owners cannot contact their own listing")
)

// Notifier tells the owner about a new lead
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, subject, body string) error
}

// Service records seeker interest and lets owners work their leads
type Service struct {
	repo     Repository
	propRepo properties.Repository
	notifier Notifier
	logger   *zap.Logger
}

func NewService(repo Repository, propRepo properties.Repository, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{repo: repo, propRepo: propRepo, notifier: notifier, logger: logger}
}

// Contact registers interest. Repeat contacts from the same seeker update the
// message on the existing lead instead of creating a duplicate.
func (s *Service) Contact(ctx context.Context, seekerID, propertyID uuid.UUID, message string) (*Lead, error) {
	property, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID == seekerID {
		return nil, ErrOwnContact
	}

	existing, err := s.repo.GetByPropertyAndSeeker(ctx, propertyID, seekerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if message != "" {
			existing.Message = message
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	lead := &Lead{
		ID:         uuid.New(),
		PropertyID: propertyID,
		SeekerID:   seekerID,
		OwnerID:    property.OwnerID,
		Message:    message,
		Status:     LeadNew,
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, property.OwnerID, "New lead",
			"A seeker is interested in "+property.Title); err != nil {
			s.logger.Warn("lead notification failed", zap.Error(err))
		}
	}

	s.logger.Info("lead created",
		zap.String("lead_id", lead.ID.String()),
		zap.String("property_id", propertyID.String()))
	return lead, nil
}

// ListForProperty returns the leads on an owned property
func (s *Service) ListForProperty(ctx context.Context, ownerID, propertyID uuid.UUID, page pagination.Page) ([]Lead, error) {
	property, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return s.repo.ListByProperty(ctx, propertyID, page)
}

// UpdateStatus moves a lead along NEW -> CONTACTED -> CLOSED
func (s *Service) UpdateStatus(ctx context.Context, ownerID, leadID uuid.UUID, status LeadStatus) (*Lead, error) {
	if status != LeadNew && status != LeadContacted && status != LeadClosed {
		return nil, errors.New("invalid lead status")
	}

	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	lead.Status = status
	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}
