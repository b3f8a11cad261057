package contacts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gharmitra/platform-backend/pkg/pagination"
)

// Repository handles lead persistence
type Repository interface {
	Create(ctx context.Context, lead *Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*Lead, error)
	GetByPropertyAndSeeker(ctx context.Context, propertyID, seekerID uuid.UUID) (*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID, page pagination.Page) ([]Lead, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed lead repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, lead *Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Lead, error) {
	var lead Lead
	err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *gormRepository) GetByPropertyAndSeeker(ctx context.Context, propertyID, seekerID uuid.UUID) (*Lead, error) {
	var lead Lead
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND seeker_id = ?", propertyID, seekerID).
		First(&lead).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *gormRepository) Update(ctx context.Context, lead *Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *gormRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID, page pagination.Page) ([]Lead, error) {
	var leads []Lead
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&leads).Error
	return leads, err
}
