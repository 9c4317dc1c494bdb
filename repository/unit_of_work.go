package repository

import (
	"context"
	"fmt"

	"fortuna/application"
	"fortuna/database"
	"fortuna/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the application.UnitOfWork interface
type unitOfWork struct {
	db             *database.DB
	tx             pgx.Tx
	ctx            context.Context
	eventPublisher interfaces.EventPublisher
	userRepo       interfaces.UserRepository
	txRepo         interfaces.TransactionRepository
	crashRoundRepo interfaces.CrashRoundRepository
	streakRepo     interfaces.StreakRepository
}

type unitOfWorkFactory struct {
	db             *database.DB
	eventPublisher interfaces.EventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventPublisher interfaces.EventPublisher) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:             db,
		eventPublisher: eventPublisher,
	}
}

// Create creates a new UnitOfWork
func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{
		db:             f.db,
		eventPublisher: f.eventPublisher,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.userRepo = newUserRepositoryWithTx(tx)
	u.txRepo = newTransactionRepositoryWithTx(tx)
	u.crashRoundRepo = newCrashRoundRepositoryWithTx(tx)
	u.streakRepo = newStreakRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// TransactionRepository returns the transaction repository for this unit of work
func (u *unitOfWork) TransactionRepository() interfaces.TransactionRepository {
	if u.txRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.txRepo
}

// CrashRoundRepository returns the crash round repository for this unit of work
func (u *unitOfWork) CrashRoundRepository() interfaces.CrashRoundRepository {
	if u.crashRoundRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.crashRoundRepo
}

// StreakRepository returns the streak repository for this unit of work
func (u *unitOfWork) StreakRepository() interfaces.StreakRepository {
	if u.streakRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.streakRepo
}

// EventBus returns the event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.eventPublisher
}
