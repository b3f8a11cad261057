package properties

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VerificationStatus is the property-level verification state shown on
// listings. It is mutated only by the verification workflow and the expiry
// sweep, never by property CRUD.
type VerificationStatus string

const (
	VerificationNotVerified         VerificationStatus = "NOT_VERIFIED"
	VerificationPendingPayment      VerificationStatus = "PENDING_PAYMENT"
	VerificationPendingVerification VerificationStatus = "PENDING_VERIFICATION"
	VerificationVerified            VerificationStatus = "VERIFIED"
	VerificationExpired             VerificationStatus = "EXPIRED"
)

// ListingType separates rental and sale listings
type ListingType string

const (
	ListingRent ListingType = "RENT"
	ListingSale ListingType = "SALE"
)

// Property represents a listed property
type Property struct {
	ID                 uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID            uuid.UUID          `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title              string             `gorm:"not null" json:"title"`
	Description        string             `json:"description"`
	PropertyType       string             `gorm:"not null" json:"property_type"` // APARTMENT, HOUSE, PLOT, COMMERCIAL
	ListingType        ListingType        `gorm:"not null" json:"listing_type"`
	Price              float64            `gorm:"not null" json:"price"`
	City               string             `gorm:"not null;index" json:"city"`
	Locality           string             `json:"locality"`
	Address            string             `json:"address"`
	Bedrooms           int                `json:"bedrooms"`
	Bathrooms          int                `json:"bathrooms"`
	AreaSqFt           float64            `json:"area_sqft"`
	Amenities          datatypes.JSON     `json:"amenities"`
	Status             string             `gorm:"not null;default:'ACTIVE'" json:"status"` // ACTIVE, INACTIVE
	VerificationStatus VerificationStatus `gorm:"not null;default:'NOT_VERIFIED';index" json:"verification_status"`
	VerificationExpiry *time.Time         `json:"verification_expiry,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	DeletedAt          gorm.DeletedAt     `gorm:"index" json:"-"`
}

// PropertyImage stores image URLs for a property. Upload and compression
// happen in the media pipeline; this table only records the result.
type PropertyImage struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index" json:"property_id"`
	URL        string    `gorm:"not null" json:"url"`
	IsPrimary  bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
	Property   Property  `gorm:"foreignKey:PropertyID" json:"-"`
}
