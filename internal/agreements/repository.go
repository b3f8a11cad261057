package agreements

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gharmitra/platform-backend/pkg/pagination"
)

type Repository interface {
	Create(ctx context.Context, agreement *Agreement) error
	GetByID(ctx context.Context, id uuid.UUID) (*Agreement, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page pagination.Page) ([]Agreement, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, agreement *Agreement) error {
	return r.db.WithContext(ctx).Create(agreement).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Agreement, error) {
	var agreement Agreement
	err := r.db.WithContext(ctx).Preload("Property").First(&agreement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAgreementNotFound
	}
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}

func (r *gormRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page pagination.Page) ([]Agreement, error) {
	var list []Agreement
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&list).Error
	return list, err
}
