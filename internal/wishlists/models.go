package wishlists

import (
	"time"

	"github.com/google/uuid"

	"gharmitra/platform-backend/internal/properties"
)

// WishlistItem is a saved property on a seeker's wishlist
type WishlistItem struct {
	ID         uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID           `gorm:"type:uuid;not null;index:idx_wishlist_user_property,unique" json:"user_id"`
	PropertyID uuid.UUID           `gorm:"type:uuid;not null;index:idx_wishlist_user_property,unique" json:"property_id"`
	CreatedAt  time.Time           `json:"created_at"`
	Property   properties.Property `gorm:"foreignKey:PropertyID" json:"property"`
}
