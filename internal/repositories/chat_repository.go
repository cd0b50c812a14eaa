package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/opencircle/social-datastore/internal/apperror"
	"github.com/opencircle/social-datastore/internal/models"
)

// ChatRepository defines the interface for chats and their rosters
type ChatRepository interface {
	CreateChat(name string, isGroup bool) (*models.Chat, error)
	GetChatByID(id uint) (*models.Chat, error)
	AddParticipant(chatID, userID uint, role string) (*models.ChatParticipant, error)
	GetParticipants(chatID uint) ([]models.ChatParticipant, error)
	GetChatsByUserID(userID uint) ([]models.Chat, error)
	LeaveChat(chatID, userID uint) error
}

// PostgresChatRepository implements ChatRepository for PostgreSQL
type PostgresChatRepository struct {
	db *gorm.DB
}

// NewPostgresChatRepository creates a new PostgresChatRepository
func NewPostgresChatRepository(db *gorm.DB) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

// CreateChat starts a conversation. Name is only meaningful for groups.
func (r *PostgresChatRepository) CreateChat(name string, isGroup bool) (*models.Chat, error) {
	chat := &models.Chat{Name: name, IsGroup: isGroup}
	if err := r.db.Create(chat).Error; err != nil {
		return nil, apperror.FromDB(err, "chat")
	}
	return chat, nil
}

// GetChatByID retrieves a chat by ID
func (r *PostgresChatRepository) GetChatByID(id uint) (*models.Chat, error) {
	var chat models.Chat
	if err := r.db.First(&chat, id).Error; err != nil {
		return nil, apperror.FromDB(err, "chat")
	}
	return &chat, nil
}

// AddParticipant adds a user to the roster. The unique (chat, user) index
// makes a repeat ErrDuplicateMembership, including under concurrent adds.
func (r *PostgresChatRepository) AddParticipant(chatID, userID uint, role string) (*models.ChatParticipant, error) {
	if role == "" {
		role = models.ChatRoleMember
	}
	if role != models.ChatRoleMember && role != models.ChatRoleAdmin {
		return nil, apperror.ValidationFailed("role", fmt.Sprintf("unknown chat role %q", role))
	}

	p := &models.ChatParticipant{ChatID: chatID, UserID: userID, Role: role}
	if err := r.db.Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.DuplicateMembership(chatID, userID)
		}
		return nil, apperror.FromDB(err, "chat participant")
	}
	return p, nil
}

// GetParticipants retrieves the roster of a chat
func (r *PostgresChatRepository) GetParticipants(chatID uint) ([]models.ChatParticipant, error) {
	var participants []models.ChatParticipant
	if err := r.db.Where("chat_id = ?", chatID).Find(&participants).Error; err != nil {
		return nil, apperror.FromDB(err, "chat participant")
	}
	return participants, nil
}

// GetChatsByUserID retrieves the chats a user participates in
func (r *PostgresChatRepository) GetChatsByUserID(userID uint) ([]models.Chat, error) {
	var chats []models.Chat
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.ChatParticipant{}).Select("chat_id").Where("user_id = ?", userID),
	).Find(&chats).Error
	if err != nil {
		return nil, apperror.FromDB(err, "chat")
	}
	return chats, nil
}

// LeaveChat removes a user from the roster
func (r *PostgresChatRepository) LeaveChat(chatID, userID uint) error {
	res := r.db.Where("chat_id = ? AND user_id = ?", chatID, userID).Delete(&models.ChatParticipant{})
	if res.Error != nil {
		return apperror.FromDB(res.Error, "chat participant")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundKey("chat participant", fmt.Sprintf("chat %d user %d", chatID, userID))
	}
	return nil
}
