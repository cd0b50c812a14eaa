package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/opencircle/social-datastore/internal/apperror"
	"github.com/opencircle/social-datastore/internal/models"
)

// FriendshipRepository defines the interface for the directed follow graph
type FriendshipRepository interface {
	Follow(followerID, followingID uint) (*models.Friendship, error)
	SetStatus(followerID, followingID uint, status string) error
	Unfollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetFollowers(userID uint) ([]models.User, error)
	GetFollowingIDs(userID uint) ([]uint, error)
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// Follow creates a pending directed edge. Following yourself is rejected,
// and the unique (follower, following) index turns a concurrent duplicate
// into ErrDuplicateKey for the loser.
func (r *PostgresFriendshipRepository) Follow(followerID, followingID uint) (*models.Friendship, error) {
	if followerID == followingID {
		return nil, apperror.SelfFollow(followerID)
	}

	edge := &models.Friendship{
		FollowerID:  followerID,
		FollowingID: followingID,
		Status:      models.FriendshipPending,
	}
	if err := r.db.Create(edge).Error; err != nil {
		return nil, apperror.FromDB(err, "friendship")
	}
	return edge, nil
}

// SetStatus transitions the edge's status. Transitions are guarded:
// pending may become accepted or blocked, accepted may become blocked,
// and nothing leaves blocked. The edge is read under a FOR UPDATE lock so
// the guard never fires against a stale status under concurrent updates.
func (r *PostgresFriendshipRepository) SetStatus(followerID, followingID uint, status string) error {
	if status != models.FriendshipPending && status != models.FriendshipAccepted && status != models.FriendshipBlocked {
		return apperror.ValidationFailed("status", fmt.Sprintf("unknown friendship status %q", status))
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var edge models.Friendship
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).First(&edge).Error
		if err != nil {
			return apperror.FromDB(err, "friendship")
		}
		if edge.Status == status {
			return nil
		}
		if !models.ValidFriendshipTransition(edge.Status, status) {
			return apperror.ConstraintViolation(
				fmt.Sprintf("friendship cannot move from %q to %q", edge.Status, status))
		}
		return tx.Model(&edge).Update("status", status).Error
	})
}

// Unfollow removes the directed edge
func (r *PostgresFriendshipRepository) Unfollow(followerID, followingID uint) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Friendship{})
	if res.Error != nil {
		return apperror.FromDB(res.Error, "friendship")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundKey("friendship", fmt.Sprintf("%d -> %d", followerID, followingID))
	}
	return nil
}

// IsFollowing reports whether an accepted edge exists from follower to following
func (r *PostgresFriendshipRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var edge models.Friendship
	err := r.db.Where("follower_id = ? AND following_id = ? AND status = ?",
		followerID, followingID, models.FriendshipAccepted).First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperror.FromDB(err, "friendship")
	}
	return true, nil
}

// GetFollowing retrieves the users an accepted edge points at from userID
func (r *PostgresFriendshipRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Friendship{}).Select("following_id").
			Where("follower_id = ? AND status = ?", userID, models.FriendshipAccepted),
	).Find(&users).Error
	if err != nil {
		return nil, apperror.FromDB(err, "friendship")
	}
	return users, nil
}

// GetFollowers retrieves the users with an accepted edge pointing at userID
func (r *PostgresFriendshipRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Friendship{}).Select("follower_id").
			Where("following_id = ? AND status = ?", userID, models.FriendshipAccepted),
	).Find(&users).Error
	if err != nil {
		return nil, apperror.FromDB(err, "friendship")
	}
	return users, nil
}

// GetFollowingIDs retrieves just the ids userID follows, for feed fan-out
func (r *PostgresFriendshipRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Friendship{}).
		Where("follower_id = ? AND status = ?", userID, models.FriendshipAccepted).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, apperror.FromDB(err, "friendship")
	}
	return ids, nil
}
