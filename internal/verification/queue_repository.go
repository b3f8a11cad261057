package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gharmitra/platform-backend/pkg/pagination"
)

// RequestSummary is a review-queue row: the request joined with the property
// and owner fields an admin needs to decide without extra lookups.
type RequestSummary struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	PropertyID    uuid.UUID     `db:"property_id" json:"property_id"`
	Status        RequestStatus `db:"status" json:"status"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	Amount        float64       `db:"amount" json:"amount"`
	Currency      string        `db:"currency" json:"currency"`
	Address       *string       `db:"verification_address" json:"verification_address,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`

	PropertyTitle string    `db:"property_title" json:"property_title"`
	PropertyCity  string    `db:"property_city" json:"property_city"`
	OwnerID       uuid.UUID `db:"owner_id" json:"owner_id"`
	OwnerName     string    `db:"owner_name" json:"owner_name"`
	OwnerPhone    string    `db:"owner_phone" json:"owner_phone"`
}

// QueueFilter narrows the admin review queue
type QueueFilter struct {
	Status RequestStatus
	Page   pagination.Page
}

// QueueRepository serves the join-heavy admin listing
type QueueRepository interface {
	List(ctx context.Context, filter QueueFilter) ([]RequestSummary, int64, error)
}

type sqlxQueueRepository struct {
	db *sqlx.DB
}

// NewQueueRepository creates the sqlx-backed review queue repository
func NewQueueRepository(db *sqlx.DB) QueueRepository {
	return &sqlxQueueRepository{db: db}
}

func (r *sqlxQueueRepository) List(ctx context.Context, filter QueueFilter) ([]RequestSummary, int64, error) {
	where := "WHERE p.deleted_at IS NULL"
	var args []interface{}
	argCount := 1

	if filter.Status != "" {
		where += fmt.Sprintf(" AND vr.status = $%d", argCount)
		args = append(args, filter.Status)
		argCount++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM verification_requests vr
		JOIN properties p ON p.id = vr.property_id ` + where
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT
			vr.id, vr.property_id, vr.status, vr.payment_status, vr.amount,
			vr.currency, vr.verification_address, vr.created_at,
			p.title AS property_title, p.city AS property_city,
			u.id AS owner_id, u.name AS owner_name, u.phone AS owner_phone
		FROM verification_requests vr
		JOIN properties p ON p.id = vr.property_id
		JOIN users u ON u.id = p.owner_id
		%s
		ORDER BY vr.created_at DESC
		LIMIT $%d OFFSET $%d`, where, argCount, argCount+1)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	var rows []RequestSummary
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
