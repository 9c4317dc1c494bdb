package entities

import "time"

// User represents a platform account with its wagering balance.
// PlayCount drives the win-rate model; Tier drives the payout multiplier.
type User struct {
	ID        int64            `db:"id"`
	Username  string           `db:"username"`
	Balance   int64            `db:"balance"`
	PlayCount int              `db:"play_count"`
	Tier      SubscriptionTier `db:"tier"`
	CreatedAt time.Time        `db:"created_at"`
	UpdatedAt time.Time        `db:"updated_at"`
}

// CanAfford checks if the user has sufficient balance for an amount.
func (u *User) CanAfford(amount int64) bool {
	return u.Balance >= amount
}

// ValidateStake checks if an amount is within bet bounds and affordable.
func (u *User) ValidateStake(amount int64) error {
	if err := ValidateBetAmount(amount); err != nil {
		return err
	}
	if !u.CanAfford(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

// PayoutMultiplier returns the tier payout scaling for this user.
func (u *User) PayoutMultiplier() float64 {
	return u.Tier.PayoutMultiplier()
}
