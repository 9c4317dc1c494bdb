package entities

// DiceBet is a roll-under wager: the round wins when the roll lands at or
// below the target percentile.
type DiceBet struct {
	Amount int64 `json:"amount"`
	Target int   `json:"target"`
}

// Validate checks stake bounds and the target range.
func (b DiceBet) Validate() error {
	if err := ValidateBetAmount(b.Amount); err != nil {
		return err
	}
	if b.Target < 1 || b.Target > 99 {
		return ErrInvalidBet
	}
	return nil
}

// DiceOutcome is the resolved result of one dice round.
type DiceOutcome struct {
	Outcome
	Target int `json:"target"`
	Roll   int `json:"roll"`
}
