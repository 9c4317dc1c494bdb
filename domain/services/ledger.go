package services

import (
	"context"
	"fmt"

	"fortuna/domain/entities"
	"fortuna/domain/events"
	"fortuna/domain/interfaces"
	"fortuna/domain/utils"

	log "github.com/sirupsen/logrus"
)

// LedgerService applies stake debits and payout credits through the
// atomic balance primitive and pairs every resolved round with exactly
// one immutable transaction. It is constructed per unit of work so all
// of its writes share the round's transaction.
type LedgerService struct {
	userRepo       interfaces.UserRepository
	txRepo         interfaces.TransactionRepository
	eventPublisher interfaces.EventPublisher
}

// NewLedgerService creates a new ledger service bound to one unit of work
func NewLedgerService(userRepo interfaces.UserRepository, txRepo interfaces.TransactionRepository, eventPublisher interfaces.EventPublisher) *LedgerService {
	return &LedgerService{
		userRepo:       userRepo,
		txRepo:         txRepo,
		eventPublisher: eventPublisher,
	}
}

// DebitStake removes the stake from the user's balance. The conditional
// update rejects the debit outright when funds are insufficient; no
// partial state is left behind.
func (l *LedgerService) DebitStake(ctx context.Context, userID int64, amount int64) (int64, error) {
	if err := entities.ValidateBetAmount(amount); err != nil {
		return 0, err
	}
	balance, err := l.userRepo.AdjustBalance(ctx, userID, -amount)
	if err != nil {
		return 0, fmt.Errorf("failed to debit stake for user %d: %w", userID, err)
	}
	return balance, nil
}

// SettleRound credits the payout, writes the round's single transaction,
// and bumps the user's lifetime play count. balanceExStake is the user's
// balance after every debit of this round and before the credit; for a
// multi-debit blackjack round that is simply the current balance at
// settlement time.
func (l *LedgerService) SettleRound(ctx context.Context, userID int64, out entities.Outcome, metadata map[string]any) (int64, error) {
	balanceExStake, err := l.currentBalance(ctx, userID)
	if err != nil {
		return 0, err
	}

	balanceFinal := balanceExStake
	if out.Payout > 0 {
		balanceFinal, err = l.userRepo.AdjustBalance(ctx, userID, out.Payout)
		if err != nil {
			return 0, fmt.Errorf("failed to credit payout for user %d: %w", userID, err)
		}
	}

	tx := &entities.Transaction{
		UserID:        userID,
		GameType:      out.GameType,
		Type:          entities.TransactionTypeForOutcome(out.Payout, out.Amount, out.IsWin),
		Amount:        out.Amount,
		Multiplier:    out.Multiplier,
		Payout:        out.Payout,
		IsWin:         out.IsWin,
		BalanceBefore: balanceExStake + out.Amount,
		BalanceAfter:  balanceFinal,
		Metadata:      metadata,
	}
	if err := utils.RecordTransaction(ctx, l.txRepo, l.eventPublisher, tx); err != nil {
		return 0, err
	}

	if err := l.userRepo.IncrementPlayCount(ctx, userID); err != nil {
		return 0, fmt.Errorf("failed to increment play count for user %d: %w", userID, err)
	}

	event := events.RoundResolvedEvent{
		UserID:     userID,
		GameType:   out.GameType,
		Amount:     out.Amount,
		Multiplier: out.Multiplier,
		Payout:     out.Payout,
		IsWin:      out.IsWin,
	}
	if err := l.eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish round resolved event")
	}

	return balanceFinal, nil
}

// currentBalance reads the user's balance inside the unit of work.
func (l *LedgerService) currentBalance(ctx context.Context, userID int64) (int64, error) {
	user, err := l.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if user == nil {
		return 0, entities.ErrUserNotFound
	}
	return user.Balance, nil
}
