package properties

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"gharmitra/platform-backend/pkg/pagination"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotOwner         = errors.New("caller does not own this property")
	ErrValidation       = errors.New("validation failed")
)

// Requests

type CreatePropertyRequest struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	PropertyType string         `json:"property_type"`
	ListingType  ListingType    `json:"listing_type"`
	Price        float64        `json:"price"`
	City         string         `json:"city"`
	Locality     string         `json:"locality"`
	Address      string         `json:"address"`
	Bedrooms     int            `json:"bedrooms"`
	Bathrooms    int            `json:"bathrooms"`
	AreaSqFt     float64        `json:"area_sqft"`
	Amenities    datatypes.JSON `json:"amenities"`
	ImageURLs    []string       `json:"image_urls"`
}

type UpdatePropertyRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Price       *float64        `json:"price"`
	Locality    *string         `json:"locality"`
	Address     *string         `json:"address"`
	Bedrooms    *int            `json:"bedrooms"`
	Bathrooms   *int            `json:"bathrooms"`
	AreaSqFt    *float64        `json:"area_sqft"`
	Amenities   *datatypes.JSON `json:"amenities"`
	Status      *string         `json:"status"`
}

// Service interface
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req CreatePropertyRequest) (*Property, error)
	Get(ctx context.Context, id uuid.UUID) (*Property, []PropertyImage, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, req UpdatePropertyRequest) (*Property, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	List(ctx context.Context, filter Filter) ([]Property, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page pagination.Page) ([]Property, error)
}

type propertyService struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &propertyService{repo: repo, logger: logger}
}

func (s *propertyService) Create(ctx context.Context, ownerID uuid.UUID, req CreatePropertyRequest) (*Property, error) {
	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.City == "" {
		return nil, errors.New("city is required")
	}
	if req.Price <= 0 {
		return nil, errors.New("price must be positive")
	}
	if req.ListingType != ListingRent && req.ListingType != ListingSale {
		return nil, errors.New("listing_type must be RENT or SALE")
	}

	property := &Property{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		Title:              req.Title,
		Description:        req.Description,
		PropertyType:       req.PropertyType,
		ListingType:        req.ListingType,
		Price:              req.Price,
		City:               req.City,
		Locality:           req.Locality,
		Address:            req.Address,
		Bedrooms:           req.Bedrooms,
		Bathrooms:          req.Bathrooms,
		AreaSqFt:           req.AreaSqFt,
		Amenities:          req.Amenities,
		Status:             "ACTIVE",
		VerificationStatus: VerificationNotVerified,
	}

	if err := s.repo.Create(ctx, property); err != nil {
		return nil, err
	}

	for i, url := range req.ImageURLs {
		image := &PropertyImage{
			ID:         uuid.New(),
			PropertyID: property.ID,
			URL:        url,
			IsPrimary:  i == 0,
		}
		if err := s.repo.AddImage(ctx, image); err != nil {
			s.logger.Warn("failed to attach image", zap.String("property_id", property.ID.String()), zap.Error(err))
		}
	}

	s.logger.Info("property created",
		zap.String("property_id", property.ID.String()),
		zap.String("owner_id", ownerID.String()))
	return property, nil
}

func (s *propertyService) Get(ctx context.Context, id uuid.UUID) (*Property, []PropertyImage, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	images, err := s.repo.ListImages(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return property, images, nil
}

func (s *propertyService) Update(ctx context.Context, id, ownerID uuid.UUID, req UpdatePropertyRequest) (*Property, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		property.Title = *req.Title
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, errors.New("price must be positive")
		}
		property.Price = *req.Price
	}
	if req.Locality != nil {
		property.Locality = *req.Locality
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.Bedrooms != nil {
		property.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		property.Bathrooms = *req.Bathrooms
	}
	if req.AreaSqFt != nil {
		property.AreaSqFt = *req.AreaSqFt
	}
	if req.Amenities != nil {
		property.Amenities = *req.Amenities
	}
	if req.Status != nil {
		if *req.Status != "ACTIVE" && *req.Status != "INACTIVE" {
			return nil, errors.New("status must be ACTIVE or INACTIVE")
		}
		property.Status = *req.Status
	}

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if property.OwnerID != ownerID {
		return ErrNotOwner
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("property deleted", zap.String("property_id", id.String()))
	return nil
}

func (s *propertyService) List(ctx context.Context, filter Filter) ([]Property, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *propertyService) ListByOwner(ctx context.Context, ownerID uuid.UUID, page pagination.Page) ([]Property, error) {
	return s.repo.ListByOwner(ctx, ownerID, page)
}
