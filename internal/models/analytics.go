package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnalyticsEvent is an append-only observation. Metadata is an opaque
// document stored and returned whole; the store never inspects it.
type AnalyticsEvent struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    *uint          `json:"user_id,omitempty" gorm:"index"`
	PostID    *uint          `json:"post_id,omitempty" gorm:"index"`
	EventType string         `json:"event_type" gorm:"size:50;not null;index"` // view, like, share, comment
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}
