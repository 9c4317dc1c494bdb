package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"fortuna/database"
	"fortuna/domain/entities"
)

// TransactionRepository implements the TransactionRepository interface.
// The table is append-only: there is deliberately no update method.
type TransactionRepository struct {
	q queryable
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

// newTransactionRepositoryWithTx creates a new transaction repository bound to a transaction
func newTransactionRepositoryWithTx(tx queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Record creates a new transaction entry
func (r *TransactionRepository) Record(ctx context.Context, tx *entities.Transaction) error {
	metadataJSON, err := json.Marshal(tx.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction metadata: %w", err)
	}

	query := `
		INSERT INTO transactions
		(user_id, game_type, type, amount, multiplier, payout, is_win, balance_before, balance_after, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		tx.UserID,
		nullableGameType(tx.GameType),
		tx.Type,
		tx.Amount,
		tx.Multiplier,
		tx.Payout,
		tx.IsWin,
		tx.BalanceBefore,
		tx.BalanceAfter,
		metadataJSON,
	).Scan(&tx.ID, &tx.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record transaction for user %d: %w", tx.UserID, err)
	}

	return nil
}

// GetByUser returns recent transactions for a user
func (r *TransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error) {
	query := `
		SELECT id, user_id, COALESCE(game_type, ''), type, amount, multiplier, payout, is_win,
		       balance_before, balance_after, metadata, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	var transactions []*entities.Transaction
	for rows.Next() {
		var tx entities.Transaction
		var metadataJSON []byte

		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.GameType,
			&tx.Type,
			&tx.Amount,
			&tx.Multiplier,
			&tx.Payout,
			&tx.IsWin,
			&tx.BalanceBefore,
			&tx.BalanceAfter,
			&metadataJSON,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &tx.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}

		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// GetTotalWagered returns the sum of stakes across a user's game rounds
func (r *TransactionRepository) GetTotalWagered(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type IN ('game_win', 'game_loss', 'game_push')
	`

	var total int64
	if err := r.q.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum wagered amount for user %d: %w", userID, err)
	}

	return total, nil
}

// nullableGameType maps the zero game type onto SQL NULL for
// system-generated transactions.
func nullableGameType(g entities.GameType) any {
	if g == "" {
		return nil
	}
	return string(g)
}
