package models

import "time"

// User represents a registered account. Nearly every other table references
// it through a user id column. Users are never soft-deleted; removal goes
// through the cascading delete in the user repository.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"size:255"`
	FirstName    string     `json:"first_name" gorm:"size:50;not null"`
	LastName     string     `json:"last_name" gorm:"size:50;not null"`
	AvatarURL    string     `json:"avatar_url"`
	Bio          string     `json:"bio"`
	Location     string     `json:"location" gorm:"size:100"`
	Website      string     `json:"website" gorm:"size:200"`
	Phone        string     `json:"phone" gorm:"size:20"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Gender       string     `json:"gender" gorm:"size:10"`
	IsVerified   bool       `json:"is_verified" gorm:"default:false"`
	IsPrivate    bool       `json:"is_private" gorm:"default:false"`
	LastLogin    *time.Time `json:"last_login,omitempty"`

	// OAuth linkage. The pair is unique only when both columns are set;
	// locally registered users leave both NULL.
	OauthProvider *string `json:"oauth_provider,omitempty" gorm:"size:20;uniqueIndex:idx_users_oauth"`
	OauthID       *string `json:"oauth_id,omitempty" gorm:"size:100;uniqueIndex:idx_users_oauth"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserRequest defines the fields required to register a new user
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`

	OauthProvider string `json:"oauth_provider,omitempty" validate:"omitempty,max=20"`
	OauthID       string `json:"oauth_id,omitempty" validate:"required_with=OauthProvider,max=100"`
}

// UpdateUserRequest defines the mutable profile fields
type UpdateUserRequest struct {
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=50"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Location  string `json:"location,omitempty" validate:"omitempty,max=100"`
	Website   string `json:"website,omitempty" validate:"omitempty,url"`
	IsPrivate *bool  `json:"is_private,omitempty"`
}
