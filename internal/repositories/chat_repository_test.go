package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencircle/social-datastore/internal/apperror"
	"github.com/opencircle/social-datastore/internal/models"
)

func TestCreateChatAndRoster(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresChatRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	chat, err := repo.CreateChat("the gang", true)
	require.NoError(t, err)
	assert.True(t, chat.IsGroup)

	_, err = repo.AddParticipant(chat.ID, alice.ID, models.ChatRoleAdmin)
	require.NoError(t, err)
	_, err = repo.AddParticipant(chat.ID, bob.ID, "")
	require.NoError(t, err)

	roster, err := repo.GetParticipants(chat.ID)
	require.NoError(t, err)
	require.Len(t, roster, 2)

	roles := map[uint]string{}
	for _, p := range roster {
		roles[p.UserID] = p.Role
	}
	assert.Equal(t, models.ChatRoleAdmin, roles[alice.ID])
	assert.Equal(t, models.ChatRoleMember, roles[bob.ID], "role defaults to member")
}

func TestAddParticipant_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresChatRepository(db)

	alice := createTestUser(t, db, "alice")
	chat, err := repo.CreateChat("", false)
	require.NoError(t, err)

	_, err = repo.AddParticipant(chat.ID, alice.ID, models.ChatRoleMember)
	require.NoError(t, err)
	_, err = repo.AddParticipant(chat.ID, alice.ID, models.ChatRoleMember)
	assert.ErrorIs(t, err, apperror.ErrDuplicateMembership)
}

func TestAddParticipant_UnknownRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresChatRepository(db)

	alice := createTestUser(t, db, "alice")
	chat, err := repo.CreateChat("", false)
	require.NoError(t, err)

	_, err = repo.AddParticipant(chat.ID, alice.ID, "owner")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestGetChatsByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresChatRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	createTestChat(t, db, false, alice.ID, bob.ID)
	createTestChat(t, db, true, alice.ID, bob.ID, carol.ID)
	createTestChat(t, db, false, bob.ID, carol.ID)

	chats, err := repo.GetChatsByUserID(alice.ID)
	require.NoError(t, err)
	assert.Len(t, chats, 2)
}

func TestLeaveChat(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresChatRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	chat := createTestChat(t, db, false, alice.ID, bob.ID)

	require.NoError(t, repo.LeaveChat(chat.ID, alice.ID))
	assert.ErrorIs(t, repo.LeaveChat(chat.ID, alice.ID), apperror.ErrNotFound)

	// Rejoining after leaving is allowed.
	_, err := repo.AddParticipant(chat.ID, alice.ID, models.ChatRoleMember)
	assert.NoError(t, err)
}

func TestCreateMessage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	chat := createTestChat(t, db, false, alice.ID, bob.ID)

	msg, err := repo.CreateMessage(chat.ID, alice.ID, &models.SendMessageRequest{Content: "hi bob"})
	require.NoError(t, err)
	assert.Equal(t, models.MessageTypeText, msg.MessageType, "type defaults to text")
	assert.Nil(t, msg.ReplyToID)
}

func TestCreateMessage_Reply(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	chat := createTestChat(t, db, false, alice.ID, bob.ID)

	first, err := repo.CreateMessage(chat.ID, alice.ID, &models.SendMessageRequest{Content: "hi"})
	require.NoError(t, err)

	reply, err := repo.CreateMessage(chat.ID, bob.ID, &models.SendMessageRequest{
		Content:   "hi back",
		ReplyToID: &first.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ReplyToID)
	assert.Equal(t, first.ID, *reply.ReplyToID)
}

func TestCreateMessage_InvalidReplyTarget(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	chatA := createTestChat(t, db, false, alice.ID, bob.ID)
	chatB := createTestChat(t, db, false, alice.ID, bob.ID)

	inA, err := repo.CreateMessage(chatA.ID, alice.ID, &models.SendMessageRequest{Content: "in a"})
	require.NoError(t, err)

	// Reply target lives in another chat.
	_, err = repo.CreateMessage(chatB.ID, bob.ID, &models.SendMessageRequest{
		Content:   "cross-chat reply",
		ReplyToID: &inA.ID,
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidReplyTarget)

	// Reply target does not exist.
	missing := uint(9999)
	_, err = repo.CreateMessage(chatB.ID, bob.ID, &models.SendMessageRequest{
		Content:   "ghost reply",
		ReplyToID: &missing,
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidReplyTarget)
}

func TestGetMessagesByChatID_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	chat := createTestChat(t, db, false, alice.ID, bob.ID)

	for i := 0; i < 5; i++ {
		msg, err := repo.CreateMessage(chat.ID, alice.ID, &models.SendMessageRequest{Content: fmt.Sprintf("msg %d", i)})
		require.NoError(t, err)
		db.Model(msg).Update("created_at", time.Now().Add(time.Duration(i)*time.Minute))
	}

	page, err := repo.GetMessagesByChatID(chat.ID, 1, 3)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "msg 4", page[0].Content)
}

func TestSoftDeleteMessage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresMessageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	chat := createTestChat(t, db, false, alice.ID, bob.ID)

	msg, err := repo.CreateMessage(chat.ID, alice.ID, &models.SendMessageRequest{Content: "oops"})
	require.NoError(t, err)

	require.NoError(t, repo.SoftDeleteMessage(msg.ID))

	_, err = repo.GetMessageByID(msg.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// Replying to a soft-deleted message still resolves the target.
	_, err = repo.CreateMessage(chat.ID, bob.ID, &models.SendMessageRequest{
		Content:   "what did you say?",
		ReplyToID: &msg.ID,
	})
	assert.NoError(t, err)

	messages, err := repo.GetMessagesByChatID(chat.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, messages, 1, "soft-deleted messages are excluded from reads")
}
