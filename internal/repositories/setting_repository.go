package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/opencircle/social-datastore/internal/apperror"
	"github.com/opencircle/social-datastore/internal/models"
)

// SettingRepository defines the interface for per-user preferences
type SettingRepository interface {
	SetSetting(userID uint, key, value string) error
	GetSetting(userID uint, key string) (*models.UserSetting, error)
	GetSettingsByUser(userID uint) ([]models.UserSetting, error)
}

// PostgresSettingRepository implements SettingRepository for PostgreSQL
type PostgresSettingRepository struct {
	db *gorm.DB
}

// NewPostgresSettingRepository creates a new PostgresSettingRepository
func NewPostgresSettingRepository(db *gorm.DB) *PostgresSettingRepository {
	return &PostgresSettingRepository{db: db}
}

// SetSetting upserts the value for (user, key). The unique pair index is
// the conflict target, so concurrent sets of the same key converge on a
// single row.
func (r *PostgresSettingRepository) SetSetting(userID uint, key, value string) error {
	if key == "" {
		return apperror.ValidationFailed("setting_key", "setting key is required")
	}

	setting := &models.UserSetting{UserID: userID, Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(setting).Error
	return apperror.FromDB(err, "user setting")
}

// GetSetting retrieves one setting row
func (r *PostgresSettingRepository) GetSetting(userID uint, key string) (*models.UserSetting, error) {
	var setting models.UserSetting
	if err := r.db.Where("user_id = ? AND setting_key = ?", userID, key).First(&setting).Error; err != nil {
		return nil, apperror.FromDB(err, "user setting")
	}
	return &setting, nil
}

// GetSettingsByUser retrieves all of a user's settings
func (r *PostgresSettingRepository) GetSettingsByUser(userID uint) ([]models.UserSetting, error) {
	var settings []models.UserSetting
	if err := r.db.Where("user_id = ?", userID).Order("setting_key").Find(&settings).Error; err != nil {
		return nil, apperror.FromDB(err, "user setting")
	}
	return settings, nil
}
