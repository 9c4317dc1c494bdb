package entities

import (
	"time"

	"github.com/google/uuid"
)

// CrashRoundStatus is the lifecycle of a crash round.
type CrashRoundStatus string

const (
	CrashRoundActive  CrashRoundStatus = "active"
	CrashRoundSettled CrashRoundStatus = "settled"
)

// CrashRound is the server-held state of one crash game. The crash point
// is drawn and persisted at start; cashout looks it up by round ID rather
// than trusting the request body.
type CrashRound struct {
	ID         uuid.UUID        `db:"id"`
	UserID     int64            `db:"user_id"`
	Amount     int64            `db:"amount"`
	CrashPoint float64          `db:"crash_point"`
	Status     CrashRoundStatus `db:"status"`
	CreatedAt  time.Time        `db:"created_at"`
	SettledAt  *time.Time       `db:"settled_at"`
}

// IsSettled reports whether the round has already been cashed out or lost.
func (r *CrashRound) IsSettled() bool {
	return r.Status == CrashRoundSettled
}

// CrashStartOutcome is returned when a round begins. The stake has been
// debited; the crash point stays server-side until settlement.
type CrashStartOutcome struct {
	RoundID uuid.UUID `json:"roundId"`
	Amount  int64     `json:"amount"`
	Balance int64     `json:"balance"`
}

// CrashCashoutOutcome is the settled result of a crash round.
type CrashCashoutOutcome struct {
	Outcome
	RoundID      uuid.UUID `json:"roundId"`
	CrashPoint   float64   `json:"crashPoint"`
	CashoutPoint float64   `json:"cashoutPoint"`
}
