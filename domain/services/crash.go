package services

import (
	"math"

	"fortuna/domain/entities"
)

const (
	// maxCrashPoint clamps the curve's long tail.
	maxCrashPoint = 1000.0

	// immediateCrashFactor scales the probability of a 1.00 bust.
	immediateCrashFactor = 0.1
)

// CrashService draws crash points and settles cashouts. The crash point
// is drawn at round start and persisted server-side; the cashout call
// only supplies the point the player bailed at.
type CrashService struct {
	winRate *WinRateService
	rng     RandSource
}

// NewCrashService creates a new crash resolver
func NewCrashService(winRate *WinRateService, rng RandSource) *CrashService {
	return &CrashService{winRate: winRate, rng: rng}
}

// DrawCrashPoint draws the round's crash point from the heavy-tailed
// curve 0.95/(1-r^2.5), clamped to maxCrashPoint. Points below 1.00 bust
// before the round visibly starts.
func (s *CrashService) DrawCrashPoint(playCount int) float64 {
	chance := s.winRate.AdjustedChance(entities.GameCrash, playCount)

	// Immediate-crash override.
	if s.rng.Float64() < immediateCrashFactor*(100-chance)/100 {
		return 1.0
	}

	r := s.rng.Float64()
	point := 0.95 / (1 - math.Pow(r, 2.5))
	if point > maxCrashPoint {
		point = maxCrashPoint
	}

	if point > 2.0 && s.winRate.IsBigWin(playCount) {
		point *= s.winRate.BigWinBoost()
		if point > maxCrashPoint {
			point = maxCrashPoint
		}
	}

	return point
}

// SettleCashout settles an active round against the player's observed
// cashout point.
func (s *CrashService) SettleCashout(round *entities.CrashRound, cashoutPoint float64, tier entities.SubscriptionTier) (*entities.CrashCashoutOutcome, error) {
	if cashoutPoint < 1.0 {
		return nil, entities.ErrInvalidBet
	}
	if round.IsSettled() {
		return nil, entities.ErrRoundSettled
	}

	isWin := cashoutPoint <= round.CrashPoint
	var multiplier float64
	var payout int64
	if isWin {
		multiplier = cashoutPoint
		payout = int64(math.Round(float64(round.Amount) * multiplier * tier.PayoutMultiplier()))
	}

	return &entities.CrashCashoutOutcome{
		Outcome: entities.Outcome{
			GameType:   entities.GameCrash,
			Amount:     round.Amount,
			Multiplier: multiplier,
			Payout:     payout,
			IsWin:      isWin,
		},
		RoundID:      round.ID,
		CrashPoint:   round.CrashPoint,
		CashoutPoint: cashoutPoint,
	}, nil
}
