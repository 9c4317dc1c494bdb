package repository

import (
	"context"
	"fmt"

	"fortuna/database"
	"fortuna/domain/entities"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository bound to a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	query := `
		SELECT id, username, balance, play_count, tier, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user entities.User
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Balance,
		&user.PlayCount,
		&user.Tier,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	return &user, nil
}

// Create creates a new user with the initial balance
func (r *UserRepository) Create(ctx context.Context, username string, initialBalance int64) (*entities.User, error) {
	query := `
		INSERT INTO users (username, balance)
		VALUES ($1, $2)
		RETURNING id, play_count, tier, created_at, updated_at
	`

	user := &entities.User{
		Username: username,
		Balance:  initialBalance,
	}
	err := r.q.QueryRow(ctx, query, username, initialBalance).Scan(
		&user.ID,
		&user.PlayCount,
		&user.Tier,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}

	return user, nil
}

// AdjustBalance applies a delta as a single conditional update. The
// WHERE clause refuses a debit that would take the balance negative, so
// two racing bets cannot overdraw the account.
func (r *UserRepository) AdjustBalance(ctx context.Context, userID int64, delta int64) (int64, error) {
	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2 AND balance + $1 >= 0
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, delta, userID).Scan(&balance)
	if err == pgx.ErrNoRows {
		// Either the user does not exist or the debit would overdraw.
		exists, existsErr := r.exists(ctx, userID)
		if existsErr != nil {
			return 0, existsErr
		}
		if !exists {
			return 0, entities.ErrUserNotFound
		}
		return 0, entities.ErrInsufficientBalance
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust balance for user %d: %w", userID, err)
	}

	return balance, nil
}

// UpdateBalance overwrites a user's balance
func (r *UserRepository) UpdateBalance(ctx context.Context, userID int64, newBalance int64) error {
	query := `
		UPDATE users
		SET balance = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.q.Exec(ctx, query, newBalance, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrUserNotFound
	}

	return nil
}

// IncrementPlayCount bumps the lifetime play counter by one
func (r *UserRepository) IncrementPlayCount(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET play_count = play_count + 1, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.q.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to increment play count for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) exists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	return exists, nil
}
