package models

import (
	"time"

	"gorm.io/gorm"
)

// Message types
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeVideo = "video"
	MessageTypeFile  = "file"
)

// Message represents a chat message. ReplyToID threads messages inside the
// same chat; the repository rejects replies that point into another chat.
type Message struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	ChatID      uint           `json:"chat_id" gorm:"index;not null"`
	SenderID    uint           `json:"sender_id" gorm:"index;not null"`
	Content     string         `json:"content" gorm:"type:text"`
	MediaURL    string         `json:"media_url,omitempty"`
	MessageType string         `json:"message_type" gorm:"size:20;default:'text'"`
	IsAIMessage bool           `json:"is_ai_message" gorm:"default:false"`
	ReplyToID   *uint          `json:"reply_to_id,omitempty" gorm:"index"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index:idx_messages_created_at,sort:desc"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	Content     string `json:"content" validate:"required_without=MediaURL,max=10000"`
	MediaURL    string `json:"media_url,omitempty" validate:"omitempty,url"`
	MessageType string `json:"message_type,omitempty" validate:"omitempty,oneof=text image video file"`
	ReplyToID   *uint  `json:"reply_to_id,omitempty"`
}
