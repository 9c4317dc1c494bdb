package events

import "fortuna/domain/entities"

// Event is the marker interface for in-process domain events.
type Event interface {
	Type() string
}

// BalanceChangeEvent is emitted after every recorded balance change.
type BalanceChangeEvent struct {
	UserID          int64
	OldBalance      int64
	NewBalance      int64
	ChangeAmount    int64
	TransactionType entities.TransactionType
}

// Type returns the event type identifier.
func (e BalanceChangeEvent) Type() string {
	return "balance_change"
}

// RoundResolvedEvent is emitted once per resolved game round.
type RoundResolvedEvent struct {
	UserID     int64
	GameType   entities.GameType
	Amount     int64
	Multiplier float64
	Payout     int64
	IsWin      bool
}

// Type returns the event type identifier.
func (e RoundResolvedEvent) Type() string {
	return "round_resolved"
}

// UserCreatedEvent is emitted when an account is seeded with its
// initial balance.
type UserCreatedEvent struct {
	UserID         int64
	Username       string
	InitialBalance int64
}

// Type returns the event type identifier.
func (e UserCreatedEvent) Type() string {
	return "user_created"
}
