package repository

import (
	"context"
	"testing"
	"time"

	"fortuna/domain/entities"
	"fortuna/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreakRepository_GetForUpdate_CreatesZeroRow(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	userRepo := NewUserRepository(testDB.DB)
	repo := NewStreakRepository(testDB.DB)
	ctx := context.Background()

	user, err := userRepo.Create(ctx, "alice", 1000)
	require.NoError(t, err)

	streak, err := repo.GetForUpdate(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, streak.UserID)
	assert.Equal(t, 0, streak.CurrentStreak)
	assert.Nil(t, streak.LastClaimedAt)

	// A second read finds the same row instead of inserting again.
	again, err := repo.GetForUpdate(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.CurrentStreak)
}

func TestStreakRepository_Update(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	userRepo := NewUserRepository(testDB.DB)
	repo := NewStreakRepository(testDB.DB)
	ctx := context.Background()

	user, err := userRepo.Create(ctx, "bob", 1000)
	require.NoError(t, err)

	streak, err := repo.GetForUpdate(ctx, user.ID)
	require.NoError(t, err)

	claimedAt := time.Now().UTC()
	streak.CurrentStreak = 3
	streak.LastClaimedAt = &claimedAt
	require.NoError(t, repo.Update(ctx, streak))

	fetched, err := repo.GetForUpdate(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, fetched.CurrentStreak)
	require.NotNil(t, fetched.LastClaimedAt)
	assert.WithinDuration(t, claimedAt, *fetched.LastClaimedAt, time.Second)
}

func TestStreakRepository_RowLockSerializesClaims(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	userRepo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, err := userRepo.Create(ctx, "carol", 1000)
	require.NoError(t, err)

	// Seed the row outside any transaction.
	_, err = NewStreakRepository(testDB.DB).GetForUpdate(ctx, user.ID)
	require.NoError(t, err)

	// First transaction takes the row lock.
	tx1, err := testDB.DB.Begin(ctx)
	require.NoError(t, err)
	defer tx1.Rollback(ctx)

	repo1 := newStreakRepositoryWithTx(tx1)
	streak, err := repo1.GetForUpdate(ctx, user.ID)
	require.NoError(t, err)

	// Second transaction blocks on the same row until tx1 commits.
	locked := make(chan int, 1)
	go func() {
		tx2, err := testDB.DB.Begin(ctx)
		if err != nil {
			locked <- -1
			return
		}
		defer tx2.Rollback(ctx)

		repo2 := newStreakRepositoryWithTx(tx2)
		s, err := repo2.GetForUpdate(ctx, user.ID)
		if err != nil {
			locked <- -1
			return
		}
		locked <- s.CurrentStreak
		tx2.Commit(ctx)
	}()

	// Commit the first claim while the second waits on the lock.
	claimedAt := time.Now().UTC()
	streak.CurrentStreak = 1
	streak.LastClaimedAt = &claimedAt
	require.NoError(t, repo1.Update(ctx, streak))
	require.NoError(t, tx1.Commit(ctx))

	select {
	case got := <-locked:
		// The second transaction observed the first one's write.
		assert.Equal(t, 1, got)
	case <-time.After(10 * time.Second):
		t.Fatal("second claim never acquired the row lock")
	}
}

func TestStreakRepository_Update_UnknownUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewStreakRepository(testDB.DB)

	claimedAt := time.Now().UTC()
	err := repo.Update(context.Background(), &entities.DailyStreak{
		UserID:        99999,
		CurrentStreak: 1,
		LastClaimedAt: &claimedAt,
	})
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}
