package repository

import (
	"context"
	"fmt"

	"fortuna/database"
	"fortuna/domain/entities"
)

// StreakRepository implements the StreakRepository interface
type StreakRepository struct {
	q queryable
}

// NewStreakRepository creates a new streak repository
func NewStreakRepository(db *database.DB) *StreakRepository {
	return &StreakRepository{q: db.Pool}
}

// newStreakRepositoryWithTx creates a new streak repository bound to a transaction
func newStreakRepositoryWithTx(tx queryable) *StreakRepository {
	return &StreakRepository{q: tx}
}

// GetForUpdate reads the user's streak row under an exclusive row lock,
// creating a zero row first if none exists. Two concurrent claims from
// the same account serialize here: the second transaction blocks until
// the first commits and then sees its timestamp.
func (r *StreakRepository) GetForUpdate(ctx context.Context, userID int64) (*entities.DailyStreak, error) {
	insert := `
		INSERT INTO daily_streaks (user_id, current_streak)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, insert, userID); err != nil {
		return nil, fmt.Errorf("failed to ensure streak row for user %d: %w", userID, err)
	}

	query := `
		SELECT user_id, current_streak, last_claimed_at
		FROM daily_streaks
		WHERE user_id = $1
		FOR UPDATE
	`

	var streak entities.DailyStreak
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&streak.UserID,
		&streak.CurrentStreak,
		&streak.LastClaimedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lock streak row for user %d: %w", userID, err)
	}

	return &streak, nil
}

// Update writes the new streak counter and claim timestamp
func (r *StreakRepository) Update(ctx context.Context, streak *entities.DailyStreak) error {
	query := `
		UPDATE daily_streaks
		SET current_streak = $1, last_claimed_at = $2
		WHERE user_id = $3
	`

	result, err := r.q.Exec(ctx, query, streak.CurrentStreak, streak.LastClaimedAt, streak.UserID)
	if err != nil {
		return fmt.Errorf("failed to update streak for user %d: %w", streak.UserID, err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrUserNotFound
	}

	return nil
}
