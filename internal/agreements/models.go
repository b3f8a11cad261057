package agreements

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"gharmitra/platform-backend/internal/properties"
)

var (
	ErrAgreementNotFound = errors.New("agreement not found")
	ErrNotOwner          = errors.New("caller does not own this agreement")
	ErrValidation        = errors.New("invalid agreement input")
)

// Agreement is a rent agreement drafted by a property owner. The record is
// the source of truth; the PDF is rendered on demand and never stored.
type Agreement struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PropertyID      uuid.UUID `gorm:"type:uuid;not null;index" json:"property_id"`
	OwnerID         uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	TenantName      string    `gorm:"not null" json:"tenant_name"`
	TenantPhone     string    `gorm:"not null" json:"tenant_phone"`
	TenantAddress   string    `json:"tenant_address"`
	MonthlyRent     float64   `gorm:"not null" json:"monthly_rent"`
	SecurityDeposit float64   `json:"security_deposit"`
	StartDate       time.Time `gorm:"not null" json:"start_date"`
	TermMonths      int       `gorm:"not null" json:"term_months"`
	NoticePeriod    int       `gorm:"not null;default:30" json:"notice_period_days"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Property properties.Property `gorm:"foreignKey:PropertyID" json:"-"`
}

// EndDate is the last day of the agreed term
func (a *Agreement) EndDate() time.Time {
	return a.StartDate.AddDate(0, a.TermMonths, -1)
}
