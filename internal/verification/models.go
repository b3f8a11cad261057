package verification

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"gharmitra/platform-backend/pkg/workflows"
)

// RequestStatus tracks a verification request through its lifecycle
type RequestStatus string

const (
	StatusPendingPayment   RequestStatus = "PENDING_PAYMENT"
	StatusPaymentCompleted RequestStatus = "PAYMENT_COMPLETED"
	StatusUnderReview      RequestStatus = "UNDER_REVIEW"
	StatusApproved         RequestStatus = "APPROVED"
	StatusRejected         RequestStatus = "REJECTED"
	StatusExpired          RequestStatus = "EXPIRED"
)

// PaymentStatus is the payment sub-state of a request
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
)

var (
	ErrRequestNotFound     = errors.New("verification request not found")
	ErrNotOwner            = errors.New("caller does not own this property")
	ErrActiveRequestExists = errors.New("property already has an active verification request")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrAlreadyDecided      = errors.New("request already decided")
	ErrValidation          = errors.New("validation failed")
)

// VerificationRequest is one verification attempt for a property. Requests are
// never deleted; a rejected or expired attempt stays as history and a new
// Initiate creates a fresh row.
type VerificationRequest struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PropertyID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"property_id"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Currency      string        `gorm:"not null;default:'INR'" json:"currency"`
	PaymentStatus PaymentStatus `gorm:"not null;default:'PENDING'" json:"payment_status"`
	PaymentID     *string       `json:"payment_id,omitempty"`
	Status        RequestStatus `gorm:"not null;default:'PENDING_PAYMENT';index" json:"status"`

	// Location proof, set exactly once on the PAYMENT_COMPLETED -> UNDER_REVIEW
	// transition.
	VerificationLatitude  *float64 `json:"verification_latitude,omitempty"`
	VerificationLongitude *float64 `json:"verification_longitude,omitempty"`
	VerificationAddress   *string  `json:"verification_address,omitempty"`

	ReviewedBy  *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes *string    `json:"review_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the request still occupies the property's
// verification slot. Only terminal requests free the property for a new
// Initiate.
func (r *VerificationRequest) IsActive() bool {
	switch r.Status {
	case StatusPendingPayment, StatusPaymentCompleted, StatusUnderReview:
		return true
	}
	return false
}

// NewStateMachine returns the canonical request state machine: forward-only,
// with EXPIRED reachable only from APPROVED via the sweep worker.
func NewStateMachine() *workflows.StateMachine {
	return workflows.NewStateMachine(map[string][]string{
		string(StatusPendingPayment):   {string(StatusPaymentCompleted)},
		string(StatusPaymentCompleted): {string(StatusUnderReview)},
		string(StatusUnderReview):      {string(StatusApproved), string(StatusRejected)},
		string(StatusApproved):         {string(StatusExpired)},
		string(StatusRejected):         {},
		string(StatusExpired):          {},
	})
}
