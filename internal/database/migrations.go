package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/opencircle/social-datastore/internal/models"
)

// EnsureSchema creates all tables, indexes and constraints if absent.
// AutoMigrate is additive and skips anything that already exists, so the
// call is safe to run repeatedly.
func EnsureSchema(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Friendship{},
		&models.Notification{},
		&models.Chat{},
		&models.ChatParticipant{},
		&models.Message{},
		&models.UserSetting{},
		&models.AnalyticsEvent{},
		&models.GamificationRecord{},
	)
	if err != nil {
		log.Printf("Error running migrations: %v", err)
		return err
	}

	log.Println("Migrations completed successfully")
	return nil
}
