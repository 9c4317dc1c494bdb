package entities

import (
	"errors"
	"time"
)

// Transaction is the immutable audit record written once per resolved
// round (blackjack writes one per completed hand-set, not per action).
// The ledger is append-only: no code path updates a row after creation.
type Transaction struct {
	ID            int64           `db:"id"`
	UserID        int64           `db:"user_id"`
	GameType      GameType        `db:"game_type"`
	Type          TransactionType `db:"type"`
	Amount        int64           `db:"amount"`
	Multiplier    float64         `db:"multiplier"`
	Payout        int64           `db:"payout"`
	IsWin         bool            `db:"is_win"`
	BalanceBefore int64           `db:"balance_before"`
	BalanceAfter  int64           `db:"balance_after"`
	Metadata      map[string]any  `db:"metadata"`
	CreatedAt     time.Time       `db:"created_at"`
}

// ChangeAmount returns the net balance delta this transaction recorded.
func (t *Transaction) ChangeAmount() int64 {
	return t.BalanceAfter - t.BalanceBefore
}

// IsPositiveChange returns true if the transaction increased the balance
func (t *Transaction) IsPositiveChange() bool {
	return t.ChangeAmount() > 0
}

// Validate performs basic consistency checks on the transaction
func (t *Transaction) Validate() error {
	if t.UserID == 0 {
		return errors.New("transaction requires a user")
	}
	if t.Type.IsGameRound() {
		if !t.GameType.IsValid() {
			return errors.New("game transaction requires a valid game type")
		}
		if t.BalanceAfter != t.BalanceBefore-t.Amount+t.Payout {
			return errors.New("balance calculation is inconsistent")
		}
		if t.Type == TransactionTypeGameLoss && t.Payout >= t.Amount {
			return errors.New("losing round cannot return the full stake")
		}
		if t.Type == TransactionTypeGamePush && t.Payout != t.Amount {
			return errors.New("push must return exactly the stake")
		}
	} else if t.BalanceAfter != t.BalanceBefore+t.Payout {
		return errors.New("balance calculation is inconsistent")
	}
	if t.Multiplier < 0 {
		return errors.New("multiplier cannot be negative")
	}
	return nil
}
