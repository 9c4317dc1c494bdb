package interfaces

import (
	"context"

	"fortuna/domain/entities"
	"fortuna/domain/events"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, userID int64) (*entities.User, error)

	// Create creates a new user with the initial balance
	Create(ctx context.Context, username string, initialBalance int64) (*entities.User, error)

	// AdjustBalance applies a delta to the user's balance as a single
	// conditional update and returns the new balance. The update fails
	// with entities.ErrInsufficientBalance when it would go negative.
	AdjustBalance(ctx context.Context, userID int64, delta int64) (int64, error)

	// UpdateBalance overwrites a user's balance (admin-style adjustment)
	UpdateBalance(ctx context.Context, userID int64, newBalance int64) error

	// IncrementPlayCount bumps the lifetime play counter by one
	IncrementPlayCount(ctx context.Context, userID int64) error
}

// TransactionRepository defines the interface for the append-only ledger
type TransactionRepository interface {
	// Record creates a new transaction entry
	Record(ctx context.Context, tx *entities.Transaction) error

	// GetByUser returns recent transactions for a user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error)

	// GetTotalWagered returns the sum of stakes across a user's game rounds
	GetTotalWagered(ctx context.Context, userID int64) (int64, error)
}

// CrashRoundRepository defines the interface for server-held crash rounds
type CrashRoundRepository interface {
	// Create persists a freshly started round
	Create(ctx context.Context, round *entities.CrashRound) error

	// GetByID retrieves a round by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*entities.CrashRound, error)

	// Settle marks an active round settled; returns
	// entities.ErrRoundSettled if it no longer is active
	Settle(ctx context.Context, id uuid.UUID) error
}

// StreakRepository defines the interface for daily streak data access
type StreakRepository interface {
	// GetForUpdate reads the user's streak row under an exclusive row
	// lock, creating a zero row first if none exists. Must be called
	// inside a transaction; the lock is held until commit.
	GetForUpdate(ctx context.Context, userID int64) (*entities.DailyStreak, error)

	// Update writes the new streak counter and claim timestamp
	Update(ctx context.Context, streak *entities.DailyStreak) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
