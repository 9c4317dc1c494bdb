package entities

// PlinkoRows is the height of the pin lattice; a ball makes one
// left/right decision per row and lands in one of PlinkoRows+1 buckets.
const PlinkoRows = 10

// PlinkoRisk selects the multiplier table and probability bands.
type PlinkoRisk string

const (
	PlinkoLow    PlinkoRisk = "low"
	PlinkoMedium PlinkoRisk = "medium"
	PlinkoHigh   PlinkoRisk = "high"
)

// IsValid reports whether the risk tier is one of the supported tiers.
func (r PlinkoRisk) IsValid() bool {
	return r == PlinkoLow || r == PlinkoMedium || r == PlinkoHigh
}

// PlinkoBet is one ball drop at a chosen risk tier.
type PlinkoBet struct {
	Amount int64      `json:"amount"`
	Risk   PlinkoRisk `json:"risk"`
}

// Validate checks stake bounds and the risk tier.
func (b PlinkoBet) Validate() error {
	if err := ValidateBetAmount(b.Amount); err != nil {
		return err
	}
	if !b.Risk.IsValid() {
		return ErrInvalidBet
	}
	return nil
}

// PlinkoOutcome is the resolved result of one drop. Path holds one
// direction per row (0 left, 1 right); its sum equals Bucket.
type PlinkoOutcome struct {
	Outcome
	Risk   PlinkoRisk `json:"risk"`
	Bucket int        `json:"bucket"`
	Path   []int      `json:"path"`
}
