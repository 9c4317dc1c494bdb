package entities

// GameType identifies one of the supported games. The set is closed:
// dispatch happens once at the request boundary via a switch.
type GameType string

const (
	GameSlots     GameType = "slots"
	GameDice      GameType = "dice"
	GameCrash     GameType = "crash"
	GameRoulette  GameType = "roulette"
	GamePlinko    GameType = "plinko"
	GameBlackjack GameType = "blackjack"
)

// IsValid reports whether the game type is one of the supported games.
func (g GameType) IsValid() bool {
	switch g {
	case GameSlots, GameDice, GameCrash, GameRoulette, GamePlinko, GameBlackjack:
		return true
	}
	return false
}

// MaxBetAmount is the upper bound on a single stake, in balance units.
const MaxBetAmount int64 = 10000

// ValidateBetAmount checks a stake against the platform bet bounds.
func ValidateBetAmount(amount int64) error {
	if amount < 1 || amount > MaxBetAmount {
		return ErrInvalidBet
	}
	return nil
}

// SubscriptionTier is the user's paid tier. Tiers scale winning payouts.
type SubscriptionTier string

const (
	TierNone    SubscriptionTier = "none"
	TierPlus    SubscriptionTier = "plus"
	TierPremium SubscriptionTier = "premium"
)

// PayoutMultiplier returns the payout scaling applied to winning rounds.
func (t SubscriptionTier) PayoutMultiplier() float64 {
	switch t {
	case TierPlus:
		return 1.1
	case TierPremium:
		return 1.25
	default:
		return 1.0
	}
}

// IsVIP reports whether the tier receives preferential treatment in
// resolvers that nudge probabilities (plinko bands).
func (t SubscriptionTier) IsVIP() bool {
	return t == TierPlus || t == TierPremium
}

// Outcome carries the fields every resolved round produces. Game-specific
// outcome types embed it and add their own detail for rendering and audit.
type Outcome struct {
	GameType   GameType `json:"gameType"`
	Amount     int64    `json:"amount"`
	Multiplier float64  `json:"multiplier"`
	Payout     int64    `json:"payout"`
	IsWin      bool     `json:"isWin"`
	IsBigWin   bool     `json:"isBigWin"`
}

// NetChange returns the balance delta this outcome represents.
func (o *Outcome) NetChange() int64 {
	return o.Payout - o.Amount
}
