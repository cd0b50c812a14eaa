package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Post privacy levels. Stored verbatim; the read path of the application
// layer decides what they mean.
const (
	PrivacyPublic  = "public"
	PrivacyFriends = "friends"
	PrivacyPrivate = "private"
)

// Post represents a piece of published content owned by one user
type Post struct {
	ID              uint                         `json:"id" gorm:"primaryKey"`
	UserID          uint                         `json:"user_id" gorm:"index;not null"`
	Content         string                       `json:"content" gorm:"type:text"`
	MediaURLs       datatypes.JSONSlice[string]  `json:"media_urls,omitempty"`
	MediaType       string                       `json:"media_type" gorm:"size:20"` // image, video, document
	BackgroundColor string                       `json:"background_color" gorm:"size:7"`
	Privacy         string                       `json:"privacy" gorm:"size:20;default:'public';index"`
	Section         string                       `json:"section" gorm:"size:50;index"`
	Location        string                       `json:"location" gorm:"size:200"`
	IsAIGenerated   bool                         `json:"is_ai_generated" gorm:"default:false"`
	AIPrompt        string                       `json:"ai_prompt,omitempty" gorm:"type:text"`
	CreatedAt       time.Time                    `json:"created_at" gorm:"index:idx_posts_created_at,sort:desc"`
	UpdatedAt       time.Time                    `json:"updated_at"`
	DeletedAt       gorm.DeletedAt               `json:"-" gorm:"index"`
}

// CreatePostRequest defines the request body for publishing a new post
type CreatePostRequest struct {
	Content   string   `json:"content" validate:"required_without=MediaURLs,max=10000"`
	MediaURLs []string `json:"media_urls,omitempty" validate:"omitempty,dive,url"`
	MediaType string   `json:"media_type,omitempty" validate:"omitempty,oneof=image video document"`
	Privacy   string   `json:"privacy,omitempty" validate:"omitempty,oneof=public friends private"`
	Section   string   `json:"section,omitempty" validate:"omitempty,max=50"`
	AIPrompt  string   `json:"ai_prompt,omitempty"`
}

// UpdatePostRequest defines the mutable fields of an existing post
type UpdatePostRequest struct {
	Content   string   `json:"content,omitempty" validate:"omitempty,max=10000"`
	MediaURLs []string `json:"media_urls,omitempty" validate:"omitempty,dive,url"`
	Privacy   string   `json:"privacy,omitempty" validate:"omitempty,oneof=public friends private"`
	Section   string   `json:"section,omitempty" validate:"omitempty,max=50"`
}
