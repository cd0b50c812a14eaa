package models

import "time"

// Notification represents a user-targeted event record. The actor and the
// related post/comment are optional: deleting the actor nulls ActorID
// rather than removing the row, so notification history outlives the users
// that caused it.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"not null;index:idx_notifications_recipient_created,priority:1;index:idx_notifications_recipient_read,priority:1"`
	ActorID     *uint     `json:"actor_id,omitempty" gorm:"index"`
	PostID      *uint     `json:"post_id,omitempty" gorm:"index"`
	CommentID   *uint     `json:"comment_id,omitempty"`
	Kind        string    `json:"kind" gorm:"column:notification_type;size:50;not null"` // like, comment, follow, mention
	Content     string    `json:"content" gorm:"type:text"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index:idx_notifications_recipient_read,priority:2"`
	CreatedAt   time.Time `json:"created_at" gorm:"index:idx_notifications_recipient_created,priority:2,sort:desc"`
}
