package repositories

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencircle/social-datastore/internal/apperror"
)

func TestAwardPoints_CreatesRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresGamificationRepository(db)
	alice := createTestUser(t, db, "alice")

	require.NoError(t, repo.AwardPoints(alice.ID, 10))

	record, err := repo.GetByUserID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, record.Points)
	assert.Equal(t, 1, record.Level)
}

func TestAwardPoints_Accumulates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresGamificationRepository(db)
	alice := createTestUser(t, db, "alice")

	require.NoError(t, repo.AwardPoints(alice.ID, 10))
	require.NoError(t, repo.AwardPoints(alice.ID, 5))
	require.NoError(t, repo.AwardPoints(alice.ID, -3))

	record, err := repo.GetByUserID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, record.Points)
}

// TestAwardPoints_Concurrent issues N concurrent +1 awards and expects the
// final total to be exactly N: the increment must never be a blind
// overwrite of a stale read.
func TestAwardPoints_Concurrent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresGamificationRepository(db)
	alice := createTestUser(t, db, "alice")

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.AwardPoints(alice.ID, 1)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	record, err := repo.GetByUserID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, n, record.Points)
}

func TestGrantBadge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresGamificationRepository(db)
	alice := createTestUser(t, db, "alice")

	require.NoError(t, repo.GrantBadge(alice.ID, "early-adopter"))
	require.NoError(t, repo.GrantBadge(alice.ID, "prolific-poster"))
	// Granting the same badge twice keeps the set stable.
	require.NoError(t, repo.GrantBadge(alice.ID, "early-adopter"))

	record, err := repo.GetByUserID(alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"early-adopter", "prolific-poster"}, []string(record.Badges))
}

// TestGrantBadge_ConcurrentDistinct grants N distinct badges from N
// goroutines and expects all of them in the final set: an append must
// never overwrite a concurrent append of a different badge.
func TestGrantBadge_ConcurrentDistinct(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresGamificationRepository(db)
	alice := createTestUser(t, db, "alice")

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		badge := fmt.Sprintf("badge-%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.GrantBadge(alice.ID, badge)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	record, err := repo.GetByUserID(alice.ID)
	require.NoError(t, err)
	assert.Len(t, record.Badges, n)
}

func TestGrantBadge_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresGamificationRepository(db)
	alice := createTestUser(t, db, "alice")

	assert.ErrorIs(t, repo.GrantBadge(alice.ID, ""), apperror.ErrValidation)
}

func TestGrantBadge_KeepsPoints(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresGamificationRepository(db)
	alice := createTestUser(t, db, "alice")

	require.NoError(t, repo.AwardPoints(alice.ID, 7))
	require.NoError(t, repo.GrantBadge(alice.ID, "starter"))

	record, err := repo.GetByUserID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, record.Points)
	assert.Len(t, record.Badges, 1)
}

func TestSetLevel(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresGamificationRepository(db)
	alice := createTestUser(t, db, "alice")

	require.NoError(t, repo.SetLevel(alice.ID, 3))

	record, err := repo.GetByUserID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, record.Level)

	_, err = repo.GetByUserID(9999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
