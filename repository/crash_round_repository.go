package repository

import (
	"context"
	"fmt"

	"fortuna/database"
	"fortuna/domain/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CrashRoundRepository implements the CrashRoundRepository interface.
// The crash point lives only in this table between start and cashout;
// the settlement path never trusts a client-supplied crash point.
type CrashRoundRepository struct {
	q queryable
}

// NewCrashRoundRepository creates a new crash round repository
func NewCrashRoundRepository(db *database.DB) *CrashRoundRepository {
	return &CrashRoundRepository{q: db.Pool}
}

// newCrashRoundRepositoryWithTx creates a new crash round repository bound to a transaction
func newCrashRoundRepositoryWithTx(tx queryable) *CrashRoundRepository {
	return &CrashRoundRepository{q: tx}
}

// Create persists a freshly started round
func (r *CrashRoundRepository) Create(ctx context.Context, round *entities.CrashRound) error {
	query := `
		INSERT INTO crash_rounds (id, user_id, amount, crash_point, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		round.ID,
		round.UserID,
		round.Amount,
		round.CrashPoint,
		round.Status,
	).Scan(&round.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create crash round %s: %w", round.ID, err)
	}

	return nil
}

// GetByID retrieves a round by its ID
func (r *CrashRoundRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.CrashRound, error) {
	query := `
		SELECT id, user_id, amount, crash_point, status, created_at, settled_at
		FROM crash_rounds
		WHERE id = $1
	`

	var round entities.CrashRound
	err := r.q.QueryRow(ctx, query, id).Scan(
		&round.ID,
		&round.UserID,
		&round.Amount,
		&round.CrashPoint,
		&round.Status,
		&round.CreatedAt,
		&round.SettledAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crash round %s: %w", id, err)
	}

	return &round, nil
}

// Settle marks an active round settled. The status guard makes the
// settlement idempotent: a second cashout on the same round fails.
func (r *CrashRoundRepository) Settle(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE crash_rounds
		SET status = $1, settled_at = NOW()
		WHERE id = $2 AND status = $3
	`

	result, err := r.q.Exec(ctx, query, entities.CrashRoundSettled, id, entities.CrashRoundActive)
	if err != nil {
		return fmt.Errorf("failed to settle crash round %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrRoundSettled
	}

	return nil
}
