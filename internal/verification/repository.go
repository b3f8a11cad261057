package verification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gharmitra/platform-backend/internal/properties"
)

// Repository persists verification requests and the linked property state.
// Transitions are compare-and-set updates keyed on the current status so two
// concurrent callers cannot both win an edge; multi-table steps run in one
// transaction.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VerificationRequest, error)
	LatestByProperty(ctx context.Context, propertyID uuid.UUID) (*VerificationRequest, error)

	// CreateWithProperty inserts the request and moves the property to
	// PENDING_PAYMENT in one transaction.
	CreateWithProperty(ctx context.Context, req *VerificationRequest) error

	// MarkPaymentCompleted applies PENDING_PAYMENT -> PAYMENT_COMPLETED.
	// Returns ErrInvalidTransition when the request is not awaiting payment.
	MarkPaymentCompleted(ctx context.Context, id uuid.UUID, paymentID string) error

	// SetLocation applies PAYMENT_COMPLETED -> UNDER_REVIEW, writing the
	// location exactly once, and moves the property to PENDING_VERIFICATION.
	SetLocation(ctx context.Context, id uuid.UUID, lat, lon float64, address string) error

	// Approve applies UNDER_REVIEW -> APPROVED and marks the property VERIFIED
	// with the given expiry, atomically.
	Approve(ctx context.Context, id, reviewerID uuid.UUID, notes string, expiry time.Time) error

	// Reject applies UNDER_REVIEW -> REJECTED. The property is left unchanged.
	Reject(ctx context.Context, id, reviewerID uuid.UUID, notes string) error

	// ExpireApproved downgrades APPROVED requests whose property expiry has
	// passed. Returns the number of requests expired.
	ExpireApproved(ctx context.Context, now time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed verification repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*VerificationRequest, error) {
	var req VerificationRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *gormRepository) LatestByProperty(ctx context.Context, propertyID uuid.UUID) (*VerificationRequest, error) {
	var req VerificationRequest
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *gormRepository) CreateWithProperty(ctx context.Context, req *VerificationRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		return tx.Model(&properties.Property{}).
			Where("id = ?", req.PropertyID).
			Update("verification_status", properties.VerificationPendingPayment).Error
	})
}

func (r *gormRepository) MarkPaymentCompleted(ctx context.Context, id uuid.UUID, paymentID string) error {
	result := r.db.WithContext(ctx).
		Model(&VerificationRequest{}).
		Where("id = ? AND status = ?", id, StatusPendingPayment).
		Updates(map[string]interface{}{
			"status":         StatusPaymentCompleted,
			"payment_status": PaymentCompleted,
			"payment_id":     paymentID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *gormRepository) SetLocation(ctx context.Context, id uuid.UUID, lat, lon float64, address string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&VerificationRequest{}).
			Where("id = ? AND status = ?", id, StatusPaymentCompleted).
			Updates(map[string]interface{}{
				"status":                 StatusUnderReview,
				"verification_latitude":  lat,
				"verification_longitude": lon,
				"verification_address":   address,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		var req VerificationRequest
		if err := tx.Select("property_id").First(&req, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&properties.Property{}).
			Where("id = ?", req.PropertyID).
			Update("verification_status", properties.VerificationPendingVerification).Error
	})
}

func (r *gormRepository) Approve(ctx context.Context, id, reviewerID uuid.UUID, notes string, expiry time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&VerificationRequest{}).
			Where("id = ? AND status = ?", id, StatusUnderReview).
			Updates(map[string]interface{}{
				"status":       StatusApproved,
				"reviewed_by":  reviewerID,
				"reviewed_at":  now,
				"review_notes": notes,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		var req VerificationRequest
		if err := tx.Select("property_id").First(&req, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&properties.Property{}).
			Where("id = ?", req.PropertyID).
			Updates(map[string]interface{}{
				"verification_status": properties.VerificationVerified,
				"verification_expiry": expiry,
			}).Error
	})
}

func (r *gormRepository) Reject(ctx context.Context, id, reviewerID uuid.UUID, notes string) error {
	result := r.db.WithContext(ctx).
		Model(&VerificationRequest{}).
		Where("id = ? AND status = ?", id, StatusUnderReview).
		Updates(map[string]interface{}{
			"status":       StatusRejected,
			"reviewed_by":  reviewerID,
			"reviewed_at":  time.Now(),
			"review_notes": notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *gormRepository) ExpireApproved(ctx context.Context, now time.Time) (int64, error) {
	var expired int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var propertyIDs []uuid.UUID
		if err := tx.Model(&properties.Property{}).
			Where("verification_status = ? AND verification_expiry < ?", properties.VerificationVerified, now).
			Pluck("id", &propertyIDs).Error; err != nil {
			return err
		}
		if len(propertyIDs) == 0 {
			return nil
		}

		result := tx.Model(&VerificationRequest{}).
			Where("property_id IN ? AND status = ?", propertyIDs, StatusApproved).
			Update("status", StatusExpired)
		if result.Error != nil {
			return result.Error
		}
		expired = result.RowsAffected

		return tx.Model(&properties.Property{}).
			Where("id IN ?", propertyIDs).
			Update("verification_status", properties.VerificationExpired).Error
	})
	return expired, err
}
