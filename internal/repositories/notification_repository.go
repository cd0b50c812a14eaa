package repositories

import (
	"gorm.io/gorm"

	"github.com/opencircle/social-datastore/internal/apperror"
	"github.com/opencircle/social-datastore/internal/models"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Create(recipientID uint, actorID, postID, commentID *uint, kind, content string) (*models.Notification, error)
	GetByRecipient(recipientID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(notificationID uint) error
	MarkAllAsRead(recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository backed by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// Create inserts one notification row. Actor and related content are
// optional and independently nullable; an absent actor is never an error.
func (r *postgresNotificationRepository) Create(recipientID uint, actorID, postID, commentID *uint, kind, content string) (*models.Notification, error) {
	if kind == "" {
		return nil, apperror.ValidationFailed("kind", "notification kind is required")
	}

	n := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		PostID:      postID,
		CommentID:   commentID,
		Kind:        kind,
		Content:     content,
	}
	if err := r.db.Create(n).Error; err != nil {
		return nil, apperror.FromDB(err, "notification")
	}
	return n, nil
}

// GetByRecipient retrieves a page of a user's notifications, newest first,
// along with the total count
func (r *postgresNotificationRepository) GetByRecipient(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "notification")
	}

	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(pageOffset(page, limit)).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, apperror.FromDB(err, "notification")
	}
	return notifications, total, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperror.FromDB(err, "notification")
	}
	return count, nil
}

func (r *postgresNotificationRepository) MarkAsRead(notificationID uint) error {
	res := r.db.Model(&models.Notification{}).Where("id = ?", notificationID).Update("is_read", true)
	if res.Error != nil {
		return apperror.FromDB(res.Error, "notification")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("notification", notificationID)
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return apperror.FromDB(
		r.db.Model(&models.Notification{}).
			Where("recipient_id = ? AND is_read = ?", recipientID, false).
			Update("is_read", true).Error,
		"notification")
}
