package models

import "time"

// UserSetting is a per-user key/value preference row. At most one row per
// (user, key); SetSetting replaces the value in place.
type UserSetting struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_settings_pair"`
	Key       string    `json:"setting_key" gorm:"column:setting_key;size:50;not null;uniqueIndex:idx_user_settings_pair"`
	Value     string    `json:"setting_value" gorm:"column:setting_value;type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
