package wishlists

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gharmitra/platform-backend/pkg/pagination"
)

// Repository handles wishlist persistence
type Repository interface {
	Add(ctx context.Context, item *WishlistItem) error
	Remove(ctx context.Context, userID, propertyID uuid.UUID) (int64, error)
	Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Page) ([]WishlistItem, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed wishlist repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Add(ctx context.Context, item *WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *gormRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&WishlistItem{})
	return result.RowsAffected, result.Error
}

func (r *gormRepository) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&WishlistItem{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return count > 0, nil
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Page) ([]WishlistItem, error) {
	var items []WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Property").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&items).Error
	return items, err
}
