package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role separates the three caller populations
type Role string

const (
	RoleSeeker Role = "SEEKER"
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
)

// User is an account keyed by phone number. Seekers and owners both live
// here; admins are provisioned out of band.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Phone     string         `gorm:"not null;uniqueIndex" json:"phone"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      Role           `gorm:"not null;default:'SEEKER'" json:"role"`
	LastLogin *time.Time     `json:"last_login,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Identity is the authenticated caller attached to the request context by the
// middleware. Handlers read this instead of reparsing the token.
type Identity struct {
	UserID uuid.UUID
	Phone  string
	Role   Role
}
