package notifications

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gharmitra/platform-backend/pkg/pagination"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Service creates and serves in-app notifications. It satisfies the Notifier
// interfaces declared by the verification and contacts packages.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Notify records an in-app notice for the user
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, subject, body string) error {
	n := &Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Subject: subject,
		Body:    body,
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return err
	}
	s.logger.Debug("notification created",
		zap.String("user_id", userID.String()),
		zap.String("subject", subject))
	return nil
}

// List returns a user's notifications, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, page pagination.Page) ([]Notification, error) {
	var list []Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&list).Error
	return list, err
}

// MarkRead stamps a notification as read. Only the recipient can mark it.
func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Update("read_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
