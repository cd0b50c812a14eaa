package repositories

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/opencircle/social-datastore/internal/apperror"
	"github.com/opencircle/social-datastore/internal/models"
	"github.com/opencircle/social-datastore/internal/validators"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(userID uint, req *models.CreatePostRequest) (*models.Post, error)
	GetPostByID(id uint) (*models.Post, error)
	GetPostIncludingDeleted(id uint) (*models.Post, error)
	GetPostsByUserID(userID uint, page, limit int) ([]models.Post, error)
	GetFeed(page, limit int) ([]models.Post, error)
	UpdatePost(id uint, req *models.UpdatePostRequest) (*models.Post, error)
	SoftDeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost publishes a new post owned by userID
func (r *PostgresPostRepository) CreatePost(userID uint, req *models.CreatePostRequest) (*models.Post, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	privacy := req.Privacy
	if privacy == "" {
		privacy = models.PrivacyPublic
	}
	post := &models.Post{
		UserID:        userID,
		Content:       req.Content,
		MediaURLs:     datatypes.NewJSONSlice(req.MediaURLs),
		MediaType:     req.MediaType,
		Privacy:       privacy,
		Section:       req.Section,
		IsAIGenerated: req.AIPrompt != "",
		AIPrompt:      req.AIPrompt,
	}
	if err := r.db.Create(post).Error; err != nil {
		return nil, apperror.FromDB(err, "post")
	}
	return post, nil
}

// GetPostByID retrieves a post by ID, excluding soft-deleted rows
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, apperror.FromDB(err, "post")
	}
	return &post, nil
}

// GetPostIncludingDeleted retrieves a post regardless of soft deletion,
// for audit and cascade purposes
func (r *PostgresPostRepository) GetPostIncludingDeleted(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Unscoped().First(&post, id).Error; err != nil {
		return nil, apperror.FromDB(err, "post")
	}
	return &post, nil
}

// GetPostsByUserID retrieves a user's posts, newest first
func (r *PostgresPostRepository) GetPostsByUserID(userID uint, page, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(pageOffset(page, limit)).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, apperror.FromDB(err, "post")
	}
	return posts, nil
}

// GetFeed retrieves all live posts with pagination, newest first
func (r *PostgresPostRepository) GetFeed(page, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Order("created_at DESC").
		Offset(pageOffset(page, limit)).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, apperror.FromDB(err, "post")
	}
	return posts, nil
}

// UpdatePost applies the mutable fields of an existing post
func (r *PostgresPostRepository) UpdatePost(id uint, req *models.UpdatePostRequest) (*models.Post, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	post, err := r.GetPostByID(id)
	if err != nil {
		return nil, err
	}

	if req.Content != "" {
		post.Content = req.Content
	}
	if req.MediaURLs != nil {
		post.MediaURLs = datatypes.NewJSONSlice(req.MediaURLs)
	}
	if req.Privacy != "" {
		post.Privacy = req.Privacy
	}
	if req.Section != "" {
		post.Section = req.Section
	}

	if err := r.db.Save(post).Error; err != nil {
		return nil, apperror.FromDB(err, "post")
	}
	return post, nil
}

// SoftDeletePost marks a post deleted. Children (comments, reactions) are
// left in place; they disappear only with the owner's cascading delete.
func (r *PostgresPostRepository) SoftDeletePost(id uint) error {
	res := r.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return apperror.FromDB(res.Error, "post")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("post", id)
	}
	return nil
}

// pageOffset converts 1-based page numbers to row offsets
func pageOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
