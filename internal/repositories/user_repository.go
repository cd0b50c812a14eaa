package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/opencircle/social-datastore/internal/apperror"
	"github.com/opencircle/social-datastore/internal/models"
	"github.com/opencircle/social-datastore/internal/validators"
)

// UserRepository defines the interface for identity data operations
type UserRepository interface {
	CreateUser(req *models.CreateUserRequest) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByOauth(provider, oauthID string) (*models.User, error)
	GetUserByHandleOrEmail(s string) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(id uint, req *models.UpdateUserRequest) (*models.User, error)
	SearchUsers(query string) ([]models.User, error)
	TouchLastLogin(id uint) error
	DeleteUser(id uint) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser registers a new user. Handle, email and the OAuth pair are
// unique; a clash on any of them fails with ErrDuplicateKey.
func (r *PostgresUserRepository) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	}
	if req.OauthProvider != "" && req.OauthID != "" {
		user.OauthProvider = &req.OauthProvider
		user.OauthID = &req.OauthID
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}
	return &user, nil
}

// GetUserByOauth retrieves the user linked to an OAuth identity
func (r *PostgresUserRepository) GetUserByOauth(provider, oauthID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("oauth_provider = ? AND oauth_id = ?", provider, oauthID).First(&user).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}
	return &user, nil
}

// GetUserByHandleOrEmail retrieves a user whose username or email matches s
func (r *PostgresUserRepository) GetUserByHandleOrEmail(s string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ? OR email = ?", s, s).First(&user).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}
	return &user, nil
}

// GetUsers retrieves all users
func (r *PostgresUserRepository) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}
	return users, nil
}

// UpdateUser applies the mutable profile fields and stamps updated_at
func (r *PostgresUserRepository) UpdateUser(id uint, req *models.UpdateUserRequest) (*models.User, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	user, err := r.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if req.Location != "" {
		user.Location = req.Location
	}
	if req.Website != "" {
		user.Website = req.Website
	}
	if req.IsPrivate != nil {
		user.IsPrivate = *req.IsPrivate
	}

	if err := r.db.Save(user).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}
	return user, nil
}

// SearchUsers searches for users by handle, name or email (case-insensitive)
func (r *PostgresUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := r.db.Where(
		"LOWER(username) LIKE LOWER(?) OR LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
		pattern, pattern, pattern, pattern,
	).Find(&users).Error
	if err != nil {
		return nil, apperror.FromDB(err, "user")
	}
	return users, nil
}

// TouchLastLogin stamps last_login with the current time
func (r *PostgresUserRepository) TouchLastLogin(id uint) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login", time.Now())
	if res.Error != nil {
		return apperror.FromDB(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("user", id)
	}
	return nil
}

// DeleteUser removes a user and every row they own in a single transaction.
// Soft-deleted posts, comments and messages are purged too (Unscoped), so
// no orphaned children survive. The purge reaches the whole dependency
// graph: comments on the user's posts cascade with the post, reply threads
// under the user's comments cascade with their root, and reactions and
// notifications referencing any purged comment go with it. Two rows lose a
// reference instead of dying: notifications the user merely acted on keep
// their row with actor_id nulled, and other senders' messages replying to
// a purged message keep their row with reply_to_id nulled.
func (r *PostgresUserRepository) DeleteUser(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return apperror.FromDB(err, "user")
		}

		var postIDs []uint
		if err := tx.Unscoped().Model(&models.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		// The comment purge set: the user's own comments plus every comment
		// on the user's posts, regardless of author.
		commentQuery := tx.Unscoped().Model(&models.Comment{}).Where("user_id = ?", id)
		if len(postIDs) > 0 {
			commentQuery = commentQuery.Or("post_id IN ?", postIDs)
		}
		var commentIDs []uint
		if err := commentQuery.Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		// Reply threads cascade with their root: walk parent_id down until
		// no new descendants turn up.
		purged := make(map[uint]bool, len(commentIDs))
		for _, cid := range commentIDs {
			purged[cid] = true
		}
		frontier := commentIDs
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Unscoped().Model(&models.Comment{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
				return err
			}
			var next []uint
			for _, cid := range children {
				if !purged[cid] {
					purged[cid] = true
					commentIDs = append(commentIDs, cid)
					next = append(next, cid)
				}
			}
			frontier = next
		}

		// Reactions, notifications and analytics hanging off the user's
		// content would be orphaned by the post/comment purge below.
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Reaction{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Notification{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.AnalyticsEvent{}).Error; err != nil {
				return err
			}
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Reaction{}).Error; err != nil {
				return err
			}
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Notification{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}

		// Rows owned directly by the user.
		if err := tx.Where("user_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.ChatParticipant{}).Error; err != nil {
			return err
		}

		// Other senders' replies to the user's messages keep their row but
		// lose the reference; then the user's messages are purged.
		var messageIDs []uint
		if err := tx.Unscoped().Model(&models.Message{}).Where("sender_id = ?", id).Pluck("id", &messageIDs).Error; err != nil {
			return err
		}
		if len(messageIDs) > 0 {
			if err := tx.Model(&models.Message{}).Where("reply_to_id IN ?", messageIDs).
				Update("reply_to_id", nil).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("sender_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserSetting{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.AnalyticsEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.GamificationRecord{}).Error; err != nil {
			return err
		}

		// Notifications addressed to the user go away; notifications the
		// user triggered for others keep their row, losing only the actor.
		if err := tx.Where("recipient_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Notification{}).Where("actor_id = ?", id).
			Update("actor_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
	return apperror.FromDB(err, "user")
}
