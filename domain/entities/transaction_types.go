package entities

// TransactionType represents the type of balance change
type TransactionType string

// All transaction types supported by the system
const (
	// Game round transactions
	TransactionTypeGameWin  TransactionType = "game_win"
	TransactionTypeGameLoss TransactionType = "game_loss"
	TransactionTypeGamePush TransactionType = "game_push"

	// System transactions
	TransactionTypeInitial      TransactionType = "initial"
	TransactionTypeStreakReward TransactionType = "streak_reward"
)

// IsWinType returns true if the transaction type represents a win
func (tt TransactionType) IsWinType() bool {
	return tt == TransactionTypeGameWin
}

// IsLossType returns true if the transaction type represents a loss
func (tt TransactionType) IsLossType() bool {
	return tt == TransactionTypeGameLoss
}

// IsGameRound returns true if the transaction was produced by a resolved round
func (tt TransactionType) IsGameRound() bool {
	return tt == TransactionTypeGameWin ||
		tt == TransactionTypeGameLoss ||
		tt == TransactionTypeGamePush
}

// IsSystemGenerated returns true if the transaction type is system-generated
func (tt TransactionType) IsSystemGenerated() bool {
	return tt == TransactionTypeInitial ||
		tt == TransactionTypeStreakReward
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}

// TransactionTypeForOutcome maps a resolved outcome onto its ledger type.
// A win can pay out less than the stake (high dice targets, a partially
// losing roulette slate), so the win flag decides; payout only separates
// a push from a loss.
func TransactionTypeForOutcome(payout, amount int64, isWin bool) TransactionType {
	switch {
	case isWin:
		return TransactionTypeGameWin
	case payout == amount:
		return TransactionTypeGamePush
	default:
		return TransactionTypeGameLoss
	}
}
