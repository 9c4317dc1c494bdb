package services

import "fortuna/domain/entities"

// Win-rate model constants. This service is the single place that
// encodes the "new-player honeymoon, then reversion to house edge"
// policy; every resolver consults it instead of embedding its own curve.
const (
	// normalizationGames is the play count at which the new-account
	// boost has fully decayed.
	normalizationGames = 100

	// maxDropGames is the play count past which the veteran penalty
	// applies.
	maxDropGames = 200

	// newAccountBoost is the starting boost, in percentage points.
	newAccountBoost = 20.0

	// veteranPenalty widens the house edge for long-lived accounts.
	veteranPenalty = 10.0

	// bigWinChance is the base one-in-N odds denominator for the big
	// win designation.
	bigWinChance = 10.0

	// bigWinDoubleBelow doubles big-win frequency for brand-new accounts.
	bigWinDoubleBelow = 50
)

// baseChance holds the per-game base win percentage before adjustment.
var baseChance = map[entities.GameType]float64{
	entities.GameSlots:    35,
	entities.GameDice:     50,
	entities.GameCrash:    45,
	entities.GameRoulette: 48,
	entities.GamePlinko:   42,
}

// WinRateService yields the adjusted win probability for a game given a
// user's lifetime play count. Blackjack never consults it: blackjack
// odds are structural.
type WinRateService struct {
	rng RandSource
}

// NewWinRateService creates a new win rate service
func NewWinRateService(rng RandSource) *WinRateService {
	return &WinRateService{rng: rng}
}

// BaseChance returns the unadjusted win percentage for a game.
func (s *WinRateService) BaseChance(game entities.GameType) float64 {
	if base, ok := baseChance[game]; ok {
		return base
	}
	return 40
}

// AdjustedChance returns the win percentage after the play-count curve:
// a +20pp boost decaying linearly to zero across the first 100 plays, a
// flat -10pp past 200 plays, the base in between. The result is clamped
// to [1, 99] so no round is ever certain either way.
func (s *WinRateService) AdjustedChance(game entities.GameType, playCount int) float64 {
	chance := s.BaseChance(game)

	switch {
	case playCount < normalizationGames:
		chance += newAccountBoost * (1 - float64(playCount)/normalizationGames)
	case playCount > maxDropGames:
		chance -= veteranPenalty
	}

	if chance < 1 {
		chance = 1
	}
	if chance > 99 {
		chance = 99
	}
	return chance
}

// IsBigWin rolls the big-win designation. Accounts under 50 plays see
// double the frequency.
func (s *WinRateService) IsBigWin(playCount int) bool {
	factor := 1.0
	if playCount < bigWinDoubleBelow {
		factor = 2.0
	}
	return s.rng.Float64() < 1/(bigWinChance/factor)
}

// BigWinBoost returns the multiplier applied on a big win, in [1.5, 3.0).
func (s *WinRateService) BigWinBoost() float64 {
	return 1.5 + s.rng.Float64()*1.5
}
