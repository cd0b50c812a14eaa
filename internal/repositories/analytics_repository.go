package repositories

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/opencircle/social-datastore/internal/apperror"
	"github.com/opencircle/social-datastore/internal/models"
)

// AnalyticsRepository defines the interface for the append-only event log.
// Events are never updated or deleted individually; they only leave the
// store through the owning user's cascade.
type AnalyticsRepository interface {
	RecordEvent(eventType string, userID, postID *uint, metadata datatypes.JSON) (*models.AnalyticsEvent, error)
	GetEventsByUser(userID uint, page, limit int) ([]models.AnalyticsEvent, error)
	CountEventsByType(eventType string) (int64, error)
}

// PostgresAnalyticsRepository implements AnalyticsRepository for PostgreSQL
type PostgresAnalyticsRepository struct {
	db *gorm.DB
}

// NewPostgresAnalyticsRepository creates a new PostgresAnalyticsRepository
func NewPostgresAnalyticsRepository(db *gorm.DB) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{db: db}
}

// RecordEvent appends an observation. Only the event type is mandatory;
// metadata is stored opaque, never interpreted.
func (r *PostgresAnalyticsRepository) RecordEvent(eventType string, userID, postID *uint, metadata datatypes.JSON) (*models.AnalyticsEvent, error) {
	if eventType == "" {
		return nil, apperror.ValidationFailed("event_type", "event type is required")
	}

	event := &models.AnalyticsEvent{
		UserID:    userID,
		PostID:    postID,
		EventType: eventType,
		Metadata:  metadata,
	}
	if err := r.db.Create(event).Error; err != nil {
		return nil, apperror.FromDB(err, "analytics event")
	}
	return event, nil
}

// GetEventsByUser retrieves a user's events, newest first
func (r *PostgresAnalyticsRepository) GetEventsByUser(userID uint, page, limit int) ([]models.AnalyticsEvent, error) {
	var events []models.AnalyticsEvent
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(pageOffset(page, limit)).Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, apperror.FromDB(err, "analytics event")
	}
	return events, nil
}

// CountEventsByType retrieves the number of recorded events of one type
func (r *PostgresAnalyticsRepository) CountEventsByType(eventType string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.AnalyticsEvent{}).Where("event_type = ?", eventType).Count(&count).Error; err != nil {
		return 0, apperror.FromDB(err, "analytics event")
	}
	return count, nil
}
