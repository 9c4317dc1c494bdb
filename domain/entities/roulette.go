package entities

// RouletteBetKind is one of the supported roulette bet shapes.
type RouletteBetKind string

const (
	RouletteStraight RouletteBetKind = "straight"
	RouletteSplit    RouletteBetKind = "split"
	RouletteStreet   RouletteBetKind = "street"
	RouletteCorner   RouletteBetKind = "corner"
	RouletteLine     RouletteBetKind = "line"
	RouletteDozen    RouletteBetKind = "dozen"
	RouletteColumn   RouletteBetKind = "column"
	RouletteRed      RouletteBetKind = "red"
	RouletteBlack    RouletteBetKind = "black"
	RouletteEven     RouletteBetKind = "even"
	RouletteOdd      RouletteBetKind = "odd"
	RouletteLow      RouletteBetKind = "low"
	RouletteHigh     RouletteBetKind = "high"
)

// PayoutRatio returns the fixed win ratio for the bet kind, or -1 for an
// unknown kind.
func (k RouletteBetKind) PayoutRatio() float64 {
	switch k {
	case RouletteStraight:
		return 35
	case RouletteSplit:
		return 17
	case RouletteStreet:
		return 11
	case RouletteCorner:
		return 8
	case RouletteLine:
		return 5
	case RouletteDozen, RouletteColumn:
		return 2
	case RouletteRed, RouletteBlack, RouletteEven, RouletteOdd, RouletteLow, RouletteHigh:
		return 1
	default:
		return -1
	}
}

// requiredNumbers returns how many pocket numbers the bet kind must name,
// or 0 when the kind is positional (dozen/column) or outside.
func (k RouletteBetKind) requiredNumbers() int {
	switch k {
	case RouletteStraight:
		return 1
	case RouletteSplit:
		return 2
	case RouletteStreet:
		return 3
	case RouletteCorner:
		return 4
	case RouletteLine:
		return 6
	default:
		return 0
	}
}

// RouletteBet is one wager within a spin. Numbers is used by inside bets;
// Index selects the dozen (0-2) or column (0-2) for positional bets.
type RouletteBet struct {
	Kind    RouletteBetKind `json:"kind"`
	Numbers []int           `json:"numbers,omitempty"`
	Index   int             `json:"index,omitempty"`
	Amount  int64           `json:"amount"`
}

// Validate checks the bet shape against its kind.
func (b RouletteBet) Validate() error {
	if err := ValidateBetAmount(b.Amount); err != nil {
		return err
	}
	if b.Kind.PayoutRatio() < 0 {
		return ErrInvalidBet
	}
	if need := b.Kind.requiredNumbers(); need > 0 {
		if len(b.Numbers) != need {
			return ErrInvalidBet
		}
		for _, n := range b.Numbers {
			if n < 0 || n > 36 {
				return ErrInvalidBet
			}
		}
	}
	if (b.Kind == RouletteDozen || b.Kind == RouletteColumn) && (b.Index < 0 || b.Index > 2) {
		return ErrInvalidBet
	}
	return nil
}

// Covers reports whether the bet structurally covers the drawn pocket.
func (b RouletteBet) Covers(pocket int) bool {
	switch b.Kind {
	case RouletteStraight, RouletteSplit, RouletteStreet, RouletteCorner, RouletteLine:
		for _, n := range b.Numbers {
			if n == pocket {
				return true
			}
		}
		return false
	case RouletteDozen:
		return pocket != 0 && (pocket-1)/12 == b.Index
	case RouletteColumn:
		return pocket != 0 && (pocket-1)%3 == b.Index
	case RouletteRed:
		return IsRedPocket(pocket)
	case RouletteBlack:
		return pocket != 0 && !IsRedPocket(pocket)
	case RouletteEven:
		return pocket != 0 && pocket%2 == 0
	case RouletteOdd:
		return pocket%2 == 1
	case RouletteLow:
		return pocket >= 1 && pocket <= 18
	case RouletteHigh:
		return pocket >= 19 && pocket <= 36
	}
	return false
}

// WheelOrder is the physical ordering of the 37 pockets on a European
// wheel. The spin draws an index into this slice, not a raw number.
var WheelOrder = [37]int{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10,
	5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26,
}

var redPockets = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true,
	16: true, 18: true, 19: true, 21: true, 23: true, 25: true, 27: true,
	30: true, 32: true, 34: true, 36: true,
}

// IsRedPocket reports whether the pocket is red. Zero is neither color.
func IsRedPocket(pocket int) bool {
	return redPockets[pocket]
}

// RouletteBetResult is the settled result of one bet within the spin.
type RouletteBetResult struct {
	Bet        RouletteBet `json:"bet"`
	IsWin      bool        `json:"isWin"`
	LuckyWin   bool        `json:"luckyWin"`
	Multiplier float64     `json:"multiplier"`
	Payout     int64       `json:"payout"`
}

// RouletteOutcome aggregates a full spin: the drawn pocket plus every
// individual bet settlement. Multiplier carries the largest multiplier
// seen and Payout the sum of per-bet payouts.
type RouletteOutcome struct {
	Outcome
	Pocket int                 `json:"pocket"`
	Red    bool                `json:"red"`
	Bets   []RouletteBetResult `json:"bets"`
}
