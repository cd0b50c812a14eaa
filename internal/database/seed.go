package database

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/opencircle/social-datastore/internal/models"
)

// SeedSampleData inserts a small fixed demo dataset: three users, a post
// each and a mutual accepted follow. Every insert carries ON CONFLICT DO
// NOTHING semantics, so reruns against a seeded database are no-ops.
func SeedSampleData(db *gorm.DB) error {
	users := []models.User{
		{Username: "john_doe", Email: "john@example.com", FirstName: "John", LastName: "Doe", Bio: "Software developer", AvatarURL: "https://via.placeholder.com/150"},
		{Username: "jane_smith", Email: "jane@example.com", FirstName: "Jane", LastName: "Smith", Bio: "Designer", AvatarURL: "https://via.placeholder.com/150"},
		{Username: "bob_wilson", Email: "bob@example.com", FirstName: "Bob", LastName: "Wilson", Bio: "Product manager", AvatarURL: "https://via.placeholder.com/150"},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error; err != nil {
		return err
	}

	// Re-read ids: on a previously seeded database the insert above is
	// skipped and the slice keeps zero ids.
	var seeded []models.User
	if err := db.Where("username IN ?", []string{"john_doe", "jane_smith", "bob_wilson"}).
		Order("id").Find(&seeded).Error; err != nil {
		return err
	}
	if len(seeded) < 3 {
		log.Printf("seed: expected 3 demo users, found %d", len(seeded))
		return nil
	}
	john, jane, bob := seeded[0], seeded[1], seeded[2]

	var postCount int64
	db.Model(&models.Post{}).Where("user_id IN ?", []uint{john.ID, jane.ID, bob.ID}).Count(&postCount)
	if postCount == 0 {
		posts := []models.Post{
			{UserID: john.ID, Content: "Hello everyone! This is my first post on the new platform!", Privacy: models.PrivacyPublic, Section: "general"},
			{UserID: jane.ID, Content: "Working on a new design. What do you think?", Privacy: models.PrivacyPublic, Section: "work"},
			{UserID: bob.ID, Content: "Great weather for a walk today!", Privacy: models.PrivacyPublic, Section: "lifestyle"},
		}
		if err := db.Create(&posts).Error; err != nil {
			return err
		}
	}

	follows := []models.Friendship{
		{FollowerID: john.ID, FollowingID: jane.ID, Status: models.FriendshipAccepted},
		{FollowerID: jane.ID, FollowingID: john.ID, Status: models.FriendshipAccepted},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follows).Error; err != nil {
		return err
	}

	log.Println("Sample data seeded")
	return nil
}
