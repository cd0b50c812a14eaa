package models

import (
	"time"

	"gorm.io/datatypes"
)

// GamificationRecord holds a user's points, level, badges and achievement
// data. One row per user; the unique index doubles as the conflict target
// for the atomic upsert-increment in AwardPoints.
type GamificationRecord struct {
	ID           uint                        `json:"id" gorm:"primaryKey"`
	UserID       uint                        `json:"user_id" gorm:"uniqueIndex;not null"`
	Points       int                         `json:"points" gorm:"default:0"`
	Level        int                         `json:"level" gorm:"default:1"`
	Badges       datatypes.JSONSlice[string] `json:"badges,omitempty"`
	Achievements datatypes.JSON              `json:"achievements,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}
