package repositories

import (
	"gorm.io/gorm"

	"github.com/opencircle/social-datastore/internal/apperror"
	"github.com/opencircle/social-datastore/internal/models"
	"github.com/opencircle/social-datastore/internal/validators"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(postID, userID uint, req *models.CreateCommentRequest) (*models.Comment, error)
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByPostID(postID uint) ([]models.Comment, error)
	GetReplies(parentID uint) ([]models.Comment, error)
	SoftDeleteComment(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment attaches a comment to a post. A parent comment, if given,
// must belong to the same post; the table cannot express that rule, so it
// is checked here inside the insert transaction.
func (r *PostgresCommentRepository) CreateComment(postID, userID uint, req *models.CreateCommentRequest) (*models.Comment, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   userID,
		ParentID: req.ParentID,
		Content:  req.Content,
		MediaURL: req.MediaURL,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Unscoped().First(&post, postID).Error; err != nil {
			return apperror.FromDB(err, "post")
		}

		if req.ParentID != nil {
			var parent models.Comment
			if err := tx.Unscoped().First(&parent, *req.ParentID).Error; err != nil {
				return apperror.InvalidParent("parent comment does not exist")
			}
			if parent.PostID != postID {
				return apperror.InvalidParent("parent comment belongs to a different post")
			}
		}

		return tx.Create(comment).Error
	})
	if err != nil {
		return nil, apperror.FromDB(err, "comment")
	}
	return comment, nil
}

// GetCommentByID retrieves a comment by ID, excluding soft-deleted rows
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, apperror.FromDB(err, "comment")
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all live comments on a post, oldest first
func (r *PostgresCommentRepository) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, apperror.FromDB(err, "comment")
	}
	return comments, nil
}

// GetReplies retrieves the direct children of a comment. Deeper threads are
// walked by repeated keyed lookup, one level per call.
func (r *PostgresCommentRepository) GetReplies(parentID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("parent_id = ?", parentID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, apperror.FromDB(err, "comment")
	}
	return comments, nil
}

// SoftDeleteComment marks a comment deleted without touching its replies
func (r *PostgresCommentRepository) SoftDeleteComment(id uint) error {
	res := r.db.Delete(&models.Comment{}, id)
	if res.Error != nil {
		return apperror.FromDB(res.Error, "comment")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("comment", id)
	}
	return nil
}
