package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/opencircle/social-datastore/internal/apperror"
	"github.com/opencircle/social-datastore/internal/models"
)

// GamificationRepository defines the interface for the points/level/badges
// record. One row per user.
type GamificationRepository interface {
	AwardPoints(userID uint, delta int) error
	GrantBadge(userID uint, badge string) error
	SetLevel(userID uint, level int) error
	GetByUserID(userID uint) (*models.GamificationRecord, error)
}

// PostgresGamificationRepository implements GamificationRepository for PostgreSQL
type PostgresGamificationRepository struct {
	db *gorm.DB
}

// NewPostgresGamificationRepository creates a new PostgresGamificationRepository
func NewPostgresGamificationRepository(db *gorm.DB) *PostgresGamificationRepository {
	return &PostgresGamificationRepository{db: db}
}

// AwardPoints adds delta to the user's points in one statement. The upsert
// increments in place on conflict, never overwriting with a stale read, so
// N concurrent awards always sum to N.
func (r *PostgresGamificationRepository) AwardPoints(userID uint, delta int) error {
	record := &models.GamificationRecord{UserID: userID, Points: delta, Level: 1}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"points":     gorm.Expr("points + ?", delta),
			"updated_at": time.Now(),
		}),
	}).Create(record).Error
	return apperror.FromDB(err, "gamification record")
}

// GrantBadge adds a badge to the user's badge set if not already present.
// The row is read under a FOR UPDATE lock so two concurrent grants of
// different badges serialize instead of overwriting each other's append.
// The sqlite driver drops the locking clause; its single writer gives the
// same guarantee.
func (r *PostgresGamificationRepository) GrantBadge(userID uint, badge string) error {
	if badge == "" {
		return apperror.ValidationFailed("badge", "badge name is required")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		seed := &models.GamificationRecord{UserID: userID, Level: 1}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(seed).Error; err != nil {
			return err
		}

		var record models.GamificationRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&record).Error; err != nil {
			return err
		}
		for _, b := range record.Badges {
			if b == badge {
				return nil
			}
		}
		record.Badges = append(record.Badges, badge)
		return tx.Model(&record).Update("badges", record.Badges).Error
	})
	return apperror.FromDB(err, "gamification record")
}

// SetLevel sets the user's level, creating the record if absent
func (r *PostgresGamificationRepository) SetLevel(userID uint, level int) error {
	record := &models.GamificationRecord{UserID: userID, Level: level}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"level":      level,
			"updated_at": time.Now(),
		}),
	}).Create(record).Error
	return apperror.FromDB(err, "gamification record")
}

// GetByUserID retrieves the user's gamification record
func (r *PostgresGamificationRepository) GetByUserID(userID uint) (*models.GamificationRecord, error) {
	var record models.GamificationRecord
	if err := r.db.Where("user_id = ?", userID).First(&record).Error; err != nil {
		return nil, apperror.FromDB(err, "gamification record")
	}
	return &record, nil
}
