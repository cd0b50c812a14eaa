package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. Threading is a parent pointer to
// another comment on the same post; the repository enforces the same-post
// rule since it cannot be expressed as a table constraint.
type Comment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	PostID    uint           `json:"post_id" gorm:"index;not null"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	ParentID  *uint          `json:"parent_id,omitempty" gorm:"index"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	MediaURL  string         `json:"media_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	MediaURL string `json:"media_url,omitempty" validate:"omitempty,url"`
	ParentID *uint  `json:"parent_id,omitempty"`
}
