package repositories

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/opencircle/social-datastore/internal/database"
	"github.com/opencircle/social-datastore/internal/models"
)

// setupTestDB opens an in-memory sqlite database and ensures the schema.
// The pool is capped at one connection: sqlite gives every connection its
// own :memory: database, and a single shared connection also serializes
// the concurrency tests the way a server-side store would.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.EnsureSchema(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// createTestUser creates a user and fails the test if it errors
func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	repo := NewPostgresUserRepository(db)
	user, err := repo.CreateUser(&models.CreateUserRequest{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("failed to create test user %s: %v", username, err)
	}
	return user
}

// createTestPost creates a post owned by userID and fails the test if it errors
func createTestPost(t *testing.T, db *gorm.DB, userID uint, content string) *models.Post {
	t.Helper()
	repo := NewPostgresPostRepository(db)
	post, err := repo.CreatePost(userID, &models.CreatePostRequest{Content: content})
	if err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// createTestChat creates a chat with the given members and fails the test on error
func createTestChat(t *testing.T, db *gorm.DB, isGroup bool, memberIDs ...uint) *models.Chat {
	t.Helper()
	repo := NewPostgresChatRepository(db)
	name := ""
	if isGroup {
		name = fmt.Sprintf("group-%d", len(memberIDs))
	}
	chat, err := repo.CreateChat(name, isGroup)
	if err != nil {
		t.Fatalf("failed to create test chat: %v", err)
	}
	for _, id := range memberIDs {
		if _, err := repo.AddParticipant(chat.ID, id, models.ChatRoleMember); err != nil {
			t.Fatalf("failed to add participant %d: %v", id, err)
		}
	}
	return chat
}
