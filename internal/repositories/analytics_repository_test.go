package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/opencircle/social-datastore/internal/apperror"
)

func TestRecordEvent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresAnalyticsRepository(db)

	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice.ID, "hello")

	event, err := repo.RecordEvent("view", &alice.ID, &post.ID, datatypes.JSON(`{"referrer":"feed","ms":120}`))
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())

	// Metadata round-trips whole and uninterpreted.
	events, err := repo.GetEventsByUser(alice.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.JSONEq(t, `{"referrer":"feed","ms":120}`, string(events[0].Metadata))
}

func TestRecordEvent_Anonymous(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresAnalyticsRepository(db)

	// User and post references are both optional.
	event, err := repo.RecordEvent("page_load", nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, event.UserID)
	assert.Nil(t, event.PostID)
}

func TestRecordEvent_EmptyKind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresAnalyticsRepository(db)

	_, err := repo.RecordEvent("", nil, nil, nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCountEventsByType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresAnalyticsRepository(db)
	alice := createTestUser(t, db, "alice")

	for i := 0; i < 3; i++ {
		_, err := repo.RecordEvent("view", &alice.ID, nil, nil)
		require.NoError(t, err)
	}
	_, err := repo.RecordEvent("share", &alice.ID, nil, nil)
	require.NoError(t, err)

	views, err := repo.CountEventsByType("view")
	require.NoError(t, err)
	assert.EqualValues(t, 3, views)

	shares, err := repo.CountEventsByType("share")
	require.NoError(t, err)
	assert.EqualValues(t, 1, shares)
}
