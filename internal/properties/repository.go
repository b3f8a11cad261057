package properties

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gharmitra/platform-backend/pkg/pagination"
)

// Filter narrows public listing queries
type Filter struct {
	City         string
	PropertyType string
	ListingType  ListingType
	MinPrice     float64
	MaxPrice     float64
	VerifiedOnly bool
	Page         pagination.Page
}

// Repository handles property persistence
type Repository interface {
	Create(ctx context.Context, property *Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)
	Update(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter Filter) ([]Property, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page pagination.Page) ([]Property, error)

	AddImage(ctx context.Context, image *PropertyImage) error
	ListImages(ctx context.Context, propertyID uuid.UUID) ([]PropertyImage, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed property repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, property *Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	var property Property
	err := r.db.WithContext(ctx).First(&property, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *gormRepository) Update(ctx context.Context, property *Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Property{}, "id = ?", id).Error
}

func (r *gormRepository) List(ctx context.Context, filter Filter) ([]Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&Property{}).Where("status = ?", "ACTIVE")

	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.PropertyType != "" {
		query = query.Where("property_type = ?", filter.PropertyType)
	}
	if filter.ListingType != "" {
		query = query.Where("listing_type = ?", filter.ListingType)
	}
	if filter.MinPrice > 0 {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.VerifiedOnly {
		query = query.Where("verification_status = ?", VerificationVerified)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []Property
	err := query.
		Order("created_at DESC").
		Limit(filter.Page.Limit).
		Offset(filter.Page.Offset()).
		Find(&list).Error
	return list, total, err
}

func (r *gormRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page pagination.Page) ([]Property, error) {
	var list []Property
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&list).Error
	return list, err
}

func (r *gormRepository) AddImage(ctx context.Context, image *PropertyImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *gormRepository) ListImages(ctx context.Context, propertyID uuid.UUID) ([]PropertyImage, error) {
	var images []PropertyImage
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("is_primary DESC, created_at ASC").
		Find(&images).Error
	return images, err
}
