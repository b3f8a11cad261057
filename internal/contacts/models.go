package contacts

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus tracks how far the owner has taken a lead
type LeadStatus string

const (
	LeadNew       LeadStatus = "NEW"
	LeadContacted LeadStatus = "CONTACTED"
	LeadClosed    LeadStatus = "CLOSED"
)

// Lead is a seeker's expression of interest in a property. One row per
// (property, seeker); repeat contacts update the existing lead.
type Lead struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PropertyID uuid.UUID  `gorm:"type:uuid;not null;index:idx_leads_property_seeker,unique" json:"property_id"`
	SeekerID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_leads_property_seeker,unique" json:"seeker_id"`
	OwnerID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Message    string     `json:"message"`
	Status     LeadStatus `gorm:"not null;default:'NEW'" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
