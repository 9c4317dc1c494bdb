package services

import (
	"math"

	"fortuna/domain/entities"
)

const (
	// rouletteForcedLossFactor scales the per-bet forced-loss gate.
	rouletteForcedLossFactor = 0.12

	// rouletteLuckyWinCap bounds the lucky-win gate at 2%.
	rouletteLuckyWinCap = 0.02
)

// RouletteService spins a European wheel and settles an arbitrary list
// of simultaneous bets. Two per-bet overrides sit on top of the physical
// draw: a forced-loss gate that can flip a structurally winning bet, and
// a lucky-win gate that can flip a structurally losing one with an
// inflated multiplier unrelated to the bet's nominal ratio.
type RouletteService struct {
	winRate *WinRateService
	rng     RandSource
}

// NewRouletteService creates a new roulette resolver
func NewRouletteService(winRate *WinRateService, rng RandSource) *RouletteService {
	return &RouletteService{winRate: winRate, rng: rng}
}

// Resolve spins the wheel once and settles every bet against the pocket.
func (s *RouletteService) Resolve(bets []entities.RouletteBet, playCount int, tier entities.SubscriptionTier) (*entities.RouletteOutcome, error) {
	if len(bets) == 0 {
		return nil, entities.ErrInvalidBet
	}
	var totalStake int64
	for _, b := range bets {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		totalStake += b.Amount
	}
	if totalStake > entities.MaxBetAmount {
		return nil, entities.ErrInvalidBet
	}

	// Uniform draw over the physical wheel ordering, not numeric order.
	pocket := entities.WheelOrder[s.rng.Intn(len(entities.WheelOrder))]

	chance := s.winRate.AdjustedChance(entities.GameRoulette, playCount)
	bigWin := s.winRate.IsBigWin(playCount)

	results := make([]entities.RouletteBetResult, 0, len(bets))
	var totalPayout int64
	var maxMultiplier float64
	for _, bet := range bets {
		res := entities.RouletteBetResult{Bet: bet}

		structuralWin := bet.Covers(pocket)
		if structuralWin {
			// Forced loss can flip a structurally winning bet.
			if s.rng.Float64() < (100-chance)/100*rouletteForcedLossFactor {
				structuralWin = false
			} else {
				res.IsWin = true
				res.Multiplier = bet.Kind.PayoutRatio()
			}
		} else if s.rng.Float64() < rouletteLuckyWinCap*chance/100 {
			// Lucky win flips a loser with an inflated multiplier.
			res.IsWin = true
			res.LuckyWin = true
			if bigWin {
				res.Multiplier = 3 + s.rng.Float64()*4
			} else {
				res.Multiplier = 2 + s.rng.Float64()*2
			}
		}

		if res.IsWin {
			jitter := 1 + (s.rng.Float64()*2-1)*payoutJitter
			winnings := float64(bet.Amount) * res.Multiplier * jitter * tier.PayoutMultiplier()
			res.Payout = bet.Amount + int64(math.Round(winnings))
			totalPayout += res.Payout
			if res.Multiplier > maxMultiplier {
				maxMultiplier = res.Multiplier
			}
		}
		results = append(results, res)
	}

	return &entities.RouletteOutcome{
		Outcome: entities.Outcome{
			GameType:   entities.GameRoulette,
			Amount:     totalStake,
			Multiplier: maxMultiplier,
			Payout:     totalPayout,
			IsWin:      totalPayout > 0,
			IsBigWin:   bigWin,
		},
		Pocket: pocket,
		Red:    entities.IsRedPocket(pocket),
		Bets:   results,
	}, nil
}
