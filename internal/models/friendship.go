package models

import "time"

// Friendship statuses. A closed set with guarded transitions: pending may
// become accepted or blocked, accepted may become blocked, and blocked is
// terminal.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipBlocked  = "blocked"
)

// Friendship represents a directed follow edge between two users. A mutual
// relationship is two independent rows, one per direction; nothing mirrors
// an accepted edge automatically.
type Friendship struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;not null;uniqueIndex:idx_friendships_pair"`
	FollowingID uint      `json:"following_id" gorm:"index;not null;uniqueIndex:idx_friendships_pair"`
	Status      string    `json:"status" gorm:"size:20;default:'pending';index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidFriendshipTransition reports whether a status change is allowed
func ValidFriendshipTransition(from, to string) bool {
	switch from {
	case FriendshipPending:
		return to == FriendshipAccepted || to == FriendshipBlocked
	case FriendshipAccepted:
		return to == FriendshipBlocked
	default:
		return false
	}
}
