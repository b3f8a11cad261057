package wishlists

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gharmitra/platform-backend/internal/properties"
	"gharmitra/platform-backend/pkg/pagination"
)

var ErrNotInWishlist = errors.New("property not in wishlist")

// Service manages a seeker's saved properties
type Service struct {
	repo     Repository
	propRepo properties.Repository
	logger   *zap.Logger
}

func NewService(repo Repository, propRepo properties.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, propRepo: propRepo, logger: logger}
}

// Add saves a property. Adding an already saved property is a no-op.
func (s *Service) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	if _, err := s.propRepo.GetByID(ctx, propertyID); err != nil {
		return err
	}

	exists, err := s.repo.Exists(ctx, userID, propertyID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.repo.Add(ctx, &WishlistItem{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: propertyID,
	})
}

// Remove deletes a saved property
func (s *Service) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	removed, err := s.repo.Remove(ctx, userID, propertyID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotInWishlist
	}
	return nil
}

// List returns the user's saved properties, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, page pagination.Page) ([]WishlistItem, error) {
	return s.repo.ListByUser(ctx, userID, page)
}
