package services

import (
	"math"

	"fortuna/domain/entities"
)

// Per-tier bucket multipliers for the 11 landing buckets. Zero entries
// are the loss band; edges pay the big wins.
var plinkoMultipliers = map[entities.PlinkoRisk][entities.PlinkoRows + 1]float64{
	entities.PlinkoLow:    {3, 2, 1.5, 1.2, 1, 0, 1, 1.2, 1.5, 2, 3},
	entities.PlinkoMedium: {8, 4, 2, 1.5, 0, 0, 0, 1.5, 2, 4, 8},
	entities.PlinkoHigh:   {25, 10, 5, 2, 0, 0, 0, 2, 5, 10, 25},
}

// plinkoBands are the per-tier probabilities of landing in each outcome
// category. They sum to 1.
type plinkoBands struct {
	loss   float64
	small  float64
	medium float64
	big    float64
}

var plinkoBandTable = map[entities.PlinkoRisk]plinkoBands{
	entities.PlinkoLow:    {loss: 0.45, small: 0.35, medium: 0.15, big: 0.05},
	entities.PlinkoMedium: {loss: 0.55, small: 0.25, medium: 0.14, big: 0.06},
	entities.PlinkoHigh:   {loss: 0.68, small: 0.15, medium: 0.10, big: 0.07},
}

// PlinkoService resolves ball drops. The target bucket is chosen from
// the tier's probability bands first; the rendered path is then built
// backwards from the bucket, biased toward it with randomized jitter.
// The path is cosmetic; the bucket's table multiplier decides the payout.
type PlinkoService struct {
	rng RandSource
}

// NewPlinkoService creates a new plinko resolver
func NewPlinkoService(rng RandSource) *PlinkoService {
	return &PlinkoService{rng: rng}
}

// bucketCategories splits bucket indices into loss/small/medium/big sets
// for one tier.
func bucketCategories(risk entities.PlinkoRisk) (loss, small, medium, big []int) {
	table := plinkoMultipliers[risk]
	for i, mult := range table {
		switch {
		case mult == 0:
			loss = append(loss, i)
		case i == 0 || i == entities.PlinkoRows:
			big = append(big, i)
		case i == 1 || i == entities.PlinkoRows-1:
			medium = append(medium, i)
		default:
			small = append(small, i)
		}
	}
	return loss, small, medium, big
}

// chooseBucket picks the target bucket from the tier's bands. VIP status
// nudges probability mass from the loss band toward winning categories.
func (s *PlinkoService) chooseBucket(risk entities.PlinkoRisk, vip bool) int {
	bands := plinkoBandTable[risk]
	if vip {
		shift := math.Min(0.05, bands.loss)
		bands.loss -= shift
		bands.small += shift * 0.6
		bands.big += shift * 0.4
	}

	loss, small, medium, big := bucketCategories(risk)

	draw := s.rng.Float64()
	var candidates []int
	switch {
	case draw < bands.loss:
		candidates = loss
	case draw < bands.loss+bands.small:
		candidates = small
	case draw < bands.loss+bands.small+bands.medium:
		candidates = medium
	default:
		candidates = big
	}
	return candidates[s.rng.Intn(len(candidates))]
}

// buildPath constructs a left/right path that lands exactly in the
// target bucket: the ideal trajectory is tracked greedily with
// randomized jitter, forced at the tail so the sum always matches.
// Extreme buckets get a tighter jitter so the ball visibly rushes the rail.
func (s *PlinkoService) buildPath(bucket int) []int {
	jitterScale := 0.3
	if bucket == 0 || bucket == entities.PlinkoRows {
		jitterScale = 0.1
	}

	path := make([]int, entities.PlinkoRows)
	remainingRights := bucket
	for row := 0; row < entities.PlinkoRows; row++ {
		remainingRows := entities.PlinkoRows - row
		switch {
		case remainingRights == 0:
			path[row] = 0
		case remainingRights == remainingRows:
			path[row] = 1
		default:
			p := float64(remainingRights)/float64(remainingRows) + (s.rng.Float64()-0.5)*jitterScale
			if s.rng.Float64() < p {
				path[row] = 1
			}
		}
		remainingRights -= path[row]
	}
	return path
}

// Resolve drops one ball at the bet's risk tier.
func (s *PlinkoService) Resolve(bet entities.PlinkoBet, tier entities.SubscriptionTier) (*entities.PlinkoOutcome, error) {
	if err := bet.Validate(); err != nil {
		return nil, err
	}

	bucket := s.chooseBucket(bet.Risk, tier.IsVIP())
	path := s.buildPath(bucket)

	multiplier := plinkoMultipliers[bet.Risk][bucket]
	isWin := multiplier > 0
	var payout int64
	if isWin {
		payout = int64(math.Round(float64(bet.Amount) * multiplier * tier.PayoutMultiplier()))
	}

	return &entities.PlinkoOutcome{
		Outcome: entities.Outcome{
			GameType:   entities.GamePlinko,
			Amount:     bet.Amount,
			Multiplier: multiplier,
			Payout:     payout,
			IsWin:      isWin,
		},
		Risk:   bet.Risk,
		Bucket: bucket,
		Path:   path,
	}, nil
}
