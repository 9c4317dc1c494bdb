package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate_GameRound(t *testing.T) {
	tx := Transaction{
		UserID:        1,
		GameType:      GameDice,
		Type:          TransactionTypeGameWin,
		Amount:        100,
		Multiplier:    1.7,
		Payout:        170,
		IsWin:         true,
		BalanceBefore: 1000,
		BalanceAfter:  1070,
	}
	assert.NoError(t, tx.Validate())

	// The after-balance must equal before - stake + payout.
	broken := tx
	broken.BalanceAfter = 1071
	assert.Error(t, broken.Validate())

	// Game rounds require a valid game type.
	untyped := tx
	untyped.GameType = ""
	assert.Error(t, untyped.Validate())

	// Losses cannot return the full stake.
	loss := Transaction{
		UserID:        1,
		GameType:      GameSlots,
		Type:          TransactionTypeGameLoss,
		Amount:        100,
		Payout:        100,
		BalanceBefore: 1000,
		BalanceAfter:  1000,
	}
	assert.Error(t, loss.Validate())
}

func TestTransaction_Validate_WinBelowStake(t *testing.T) {
	// A dice win at target 99 pays out less than the stake; the round is
	// still a win and must pass validation.
	tx := Transaction{
		UserID:        1,
		GameType:      GameDice,
		Type:          TransactionTypeGameWin,
		Amount:        100,
		Multiplier:    0.88,
		Payout:        88,
		IsWin:         true,
		BalanceBefore: 1000,
		BalanceAfter:  988,
	}
	assert.NoError(t, tx.Validate())
}

func TestTransaction_Validate_PartialPayoutLoss(t *testing.T) {
	// A split blackjack round where one hand pushes and the other busts
	// loses overall but still returns part of the stake.
	tx := Transaction{
		UserID:        1,
		GameType:      GameBlackjack,
		Type:          TransactionTypeGameLoss,
		Amount:        200,
		Payout:        100,
		BalanceBefore: 1000,
		BalanceAfter:  900,
	}
	assert.NoError(t, tx.Validate())
}

func TestTransaction_Validate_PushCarriesStakeBack(t *testing.T) {
	// A blackjack push returns the stake: payout equals amount with
	// IsWin false.
	tx := Transaction{
		UserID:        1,
		GameType:      GameBlackjack,
		Type:          TransactionTypeGamePush,
		Amount:        100,
		Payout:        100,
		BalanceBefore: 1000,
		BalanceAfter:  1000,
	}
	assert.NoError(t, tx.Validate())
}

func TestTransaction_Validate_SystemTransaction(t *testing.T) {
	tx := Transaction{
		UserID:        1,
		Type:          TransactionTypeStreakReward,
		Payout:        300,
		BalanceBefore: 1000,
		BalanceAfter:  1300,
	}
	assert.NoError(t, tx.Validate())

	broken := tx
	broken.BalanceAfter = 1200
	assert.Error(t, broken.Validate())
}

func TestTransactionTypeForOutcome(t *testing.T) {
	assert.Equal(t, TransactionTypeGameWin, TransactionTypeForOutcome(170, 100, true))
	assert.Equal(t, TransactionTypeGamePush, TransactionTypeForOutcome(100, 100, false))
	assert.Equal(t, TransactionTypeGameLoss, TransactionTypeForOutcome(0, 100, false))

	// Below-stake payouts still classify as wins when the round was won.
	assert.Equal(t, TransactionTypeGameWin, TransactionTypeForOutcome(88, 100, true))

	// A losing round can carry a partial payout without becoming a push.
	assert.Equal(t, TransactionTypeGameLoss, TransactionTypeForOutcome(100, 200, false))
}
