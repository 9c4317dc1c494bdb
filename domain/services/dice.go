package services

import (
	"math"

	"fortuna/domain/entities"
)

const (
	// baseHouseEdge is the nominal dice edge in percentage points before
	// the win-rate adjustment narrows it.
	baseHouseEdge = 15.0

	// forcedLossFactor scales the post-win forced-loss probability.
	forcedLossFactor = 0.2

	// payoutJitter is the +/-0.5% cosmetic variation on winning payouts.
	payoutJitter = 0.005
)

// DiceService resolves roll-under dice rounds. The visible roll decides
// the nominal result; the forced-loss override is what actually enforces
// the house edge beyond it.
type DiceService struct {
	winRate *WinRateService
	rng     RandSource
}

// NewDiceService creates a new dice resolver
func NewDiceService(winRate *WinRateService, rng RandSource) *DiceService {
	return &DiceService{winRate: winRate, rng: rng}
}

// Resolve rolls 1-100 against the bet's target percentile.
func (s *DiceService) Resolve(bet entities.DiceBet, playCount int, tier entities.SubscriptionTier) (*entities.DiceOutcome, error) {
	if err := bet.Validate(); err != nil {
		return nil, err
	}

	chance := s.winRate.AdjustedChance(entities.GameDice, playCount)

	// The house edge narrows as the model grants a higher chance.
	adjustedEdge := baseHouseEdge * (1 - (chance-50)/100)
	multiplier := (100 - adjustedEdge) / float64(bet.Target)

	roll := s.rng.Intn(100) + 1
	isWin := roll <= bet.Target

	if isWin {
		// Forced loss: overwrite the roll above the target with
		// probability proportional to the house's remaining edge.
		if s.rng.Float64() < (100-chance)/100*forcedLossFactor {
			roll = bet.Target + 1 + s.rng.Intn(100-bet.Target)
			isWin = false
		}
	}

	bigWin := false
	if isWin && s.winRate.IsBigWin(playCount) {
		multiplier *= s.winRate.BigWinBoost()
		bigWin = true
	}

	var payout int64
	if isWin {
		jitter := 1 + (s.rng.Float64()*2-1)*payoutJitter
		multiplier *= jitter
		payout = int64(math.Round(float64(bet.Amount) * multiplier * tier.PayoutMultiplier()))
	} else {
		multiplier = 0
	}

	return &entities.DiceOutcome{
		Outcome: entities.Outcome{
			GameType:   entities.GameDice,
			Amount:     bet.Amount,
			Multiplier: multiplier,
			Payout:     payout,
			IsWin:      isWin,
			IsBigWin:   bigWin,
		},
		Target: bet.Target,
		Roll:   roll,
	}, nil
}
