package repositories

import (
	"gorm.io/gorm"

	"github.com/opencircle/social-datastore/internal/apperror"
	"github.com/opencircle/social-datastore/internal/models"
	"github.com/opencircle/social-datastore/internal/validators"
)

// MessageRepository defines the interface for chat messages
type MessageRepository interface {
	CreateMessage(chatID, senderID uint, req *models.SendMessageRequest) (*models.Message, error)
	GetMessageByID(id uint) (*models.Message, error)
	GetMessagesByChatID(chatID uint, page, limit int) ([]models.Message, error)
	SoftDeleteMessage(id uint) error
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage appends a message to a chat. A reply target, if given,
// must be a message of the same chat; that rule lives here because the
// table cannot express it.
func (r *PostgresMessageRepository) CreateMessage(chatID, senderID uint, req *models.SendMessageRequest) (*models.Message, error) {
	if err := validators.Struct(req); err != nil {
		return nil, err
	}

	msgType := req.MessageType
	if msgType == "" {
		msgType = models.MessageTypeText
	}
	msg := &models.Message{
		ChatID:      chatID,
		SenderID:    senderID,
		Content:     req.Content,
		MediaURL:    req.MediaURL,
		MessageType: msgType,
		ReplyToID:   req.ReplyToID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var chat models.Chat
		if err := tx.First(&chat, chatID).Error; err != nil {
			return apperror.FromDB(err, "chat")
		}

		if req.ReplyToID != nil {
			var target models.Message
			if err := tx.Unscoped().First(&target, *req.ReplyToID).Error; err != nil {
				return apperror.InvalidReplyTarget("reply target does not exist")
			}
			if target.ChatID != chatID {
				return apperror.InvalidReplyTarget("reply target belongs to a different chat")
			}
		}

		return tx.Create(msg).Error
	})
	if err != nil {
		return nil, apperror.FromDB(err, "message")
	}
	return msg, nil
}

// GetMessageByID retrieves a message by ID, excluding soft-deleted rows
func (r *PostgresMessageRepository) GetMessageByID(id uint) (*models.Message, error) {
	var msg models.Message
	if err := r.db.First(&msg, id).Error; err != nil {
		return nil, apperror.FromDB(err, "message")
	}
	return &msg, nil
}

// GetMessagesByChatID retrieves a page of a chat's messages, newest first
func (r *PostgresMessageRepository) GetMessagesByChatID(chatID uint, page, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Offset(pageOffset(page, limit)).Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, apperror.FromDB(err, "message")
	}
	return messages, nil
}

// SoftDeleteMessage marks a message deleted. Replies pointing at it keep
// their reference; readers resolve it through the unscoped lookup.
func (r *PostgresMessageRepository) SoftDeleteMessage(id uint) error {
	res := r.db.Delete(&models.Message{}, id)
	if res.Error != nil {
		return apperror.FromDB(res.Error, "message")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("message", id)
	}
	return nil
}
