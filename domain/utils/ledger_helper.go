package utils

import (
	"context"
	"fmt"

	"fortuna/domain/entities"
	"fortuna/domain/events"
	"fortuna/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// RecordTransaction appends a ledger entry and emits the matching
// balance change event. This is the single entry point for all balance
// changes in the system; nothing writes the transactions table directly.
func RecordTransaction(ctx context.Context, txRepo interfaces.TransactionRepository, eventPublisher interfaces.EventPublisher, tx *entities.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	if err := txRepo.Record(ctx, tx); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	event := events.BalanceChangeEvent{
		UserID:          tx.UserID,
		OldBalance:      tx.BalanceBefore,
		NewBalance:      tx.BalanceAfter,
		ChangeAmount:    tx.ChangeAmount(),
		TransactionType: tx.Type,
	}
	log.WithFields(log.Fields{
		"userID":          event.UserID,
		"oldBalance":      event.OldBalance,
		"newBalance":      event.NewBalance,
		"changeAmount":    event.ChangeAmount,
		"transactionType": event.TransactionType,
	}).Debug("Publishing BalanceChangeEvent")
	if err := eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish balance change event")
	}

	return nil
}
