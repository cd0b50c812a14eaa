package models

import "time"

// Chat participant roles
const (
	ChatRoleMember = "member"
	ChatRoleAdmin  = "admin"
)

// Chat represents a conversation. Direct chats leave Name empty; group
// chats carry a display name.
type Chat struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name,omitempty" gorm:"size:100"`
	IsGroup   bool      `json:"is_group" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatParticipant is a membership row. At most one per (chat, user) pair.
type ChatParticipant struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	ChatID   uint      `json:"chat_id" gorm:"index;not null;uniqueIndex:idx_chat_participants_pair"`
	UserID   uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_chat_participants_pair"`
	Role     string    `json:"role" gorm:"size:20;default:'member'"`
	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`
}
