package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/opencircle/social-datastore/internal/apperror"
	"github.com/opencircle/social-datastore/internal/models"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	AddReaction(userID uint, target models.ReactionTarget, kind, emoji string) (*models.Reaction, error)
	RemoveReaction(userID uint, target models.ReactionTarget, kind string) error
	GetReactionsForPost(postID uint) ([]models.Reaction, error)
	GetReactionsForComment(commentID uint) ([]models.Reaction, error)
	CountForPost(postID uint) (int64, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// AddReaction attaches a reaction of the given kind to the target. The
// target must reference exactly one of a post or a comment; anything else
// is ErrConstraintViolation before the insert is attempted. A repeat of the
// same kind by the same user on the same target is ErrConflictingReaction —
// the composite unique indexes decide races, so two concurrent identical
// adds yield exactly one winner.
func (r *PostgresReactionRepository) AddReaction(userID uint, target models.ReactionTarget, kind, emoji string) (*models.Reaction, error) {
	if !target.Valid() {
		return nil, apperror.ConstraintViolation("reaction must target exactly one of a post or a comment")
	}
	if kind == "" {
		return nil, apperror.ValidationFailed("kind", "reaction kind is required")
	}

	reaction := &models.Reaction{
		UserID:    userID,
		PostID:    target.PostID,
		CommentID: target.CommentID,
		Kind:      kind,
		Emoji:     emoji,
	}
	if err := r.db.Create(reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ConflictingReaction(kind)
		}
		return nil, apperror.FromDB(err, "reaction")
	}
	return reaction, nil
}

// RemoveReaction deletes a user's reaction of the given kind from a target
func (r *PostgresReactionRepository) RemoveReaction(userID uint, target models.ReactionTarget, kind string) error {
	if !target.Valid() {
		return apperror.ConstraintViolation("reaction must target exactly one of a post or a comment")
	}

	q := r.db.Where("user_id = ? AND reaction_type = ?", userID, kind)
	if target.PostID != nil {
		q = q.Where("post_id = ?", *target.PostID)
	} else {
		q = q.Where("comment_id = ?", *target.CommentID)
	}

	res := q.Delete(&models.Reaction{})
	if res.Error != nil {
		return apperror.FromDB(res.Error, "reaction")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundKey("reaction", kind)
	}
	return nil
}

// GetReactionsForPost retrieves all reactions on a post
func (r *PostgresReactionRepository) GetReactionsForPost(postID uint) ([]models.Reaction, error) {
	var reactions []models.Reaction
	if err := r.db.Where("post_id = ?", postID).Find(&reactions).Error; err != nil {
		return nil, apperror.FromDB(err, "reaction")
	}
	return reactions, nil
}

// GetReactionsForComment retrieves all reactions on a comment
func (r *PostgresReactionRepository) GetReactionsForComment(commentID uint) ([]models.Reaction, error) {
	var reactions []models.Reaction
	if err := r.db.Where("comment_id = ?", commentID).Find(&reactions).Error; err != nil {
		return nil, apperror.FromDB(err, "reaction")
	}
	return reactions, nil
}

// CountForPost retrieves the number of reactions on a post
func (r *PostgresReactionRepository) CountForPost(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Reaction{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, apperror.FromDB(err, "reaction")
	}
	return count, nil
}
