package application

import (
	"context"

	"fortuna/domain/interfaces"
)

// UnitOfWork bundles the repositories behind one database transaction.
// A game round runs debit, resolution bookkeeping, credit, and the
// transaction write inside a single unit of work so a failure anywhere
// rolls everything back. No stake is ever deducted without its
// compensating record.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() interfaces.UserRepository
	TransactionRepository() interfaces.TransactionRepository
	CrashRoundRepository() interfaces.CrashRoundRepository
	StreakRepository() interfaces.StreakRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory creates fresh units of work, one per request.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
