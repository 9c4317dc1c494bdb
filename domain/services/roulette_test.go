package services

import (
	"testing"

	"fortuna/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouletteService_Resolve_StraightWin(t *testing.T) {
	// Pocket 0 (wheel index 0). Big-win roll, forced-loss gate, and
	// jitter all drawn neutral at 0.5; at 150 plays the forced-loss gate
	// is (100-48)/100*0.12 = 0.0624.
	rng := &scriptedRand{
		ints:   []int{0},
		floats: []float64{0.5, 0.5, 0.5},
	}
	service := NewRouletteService(NewWinRateService(rng), rng)

	bets := []entities.RouletteBet{
		{Kind: entities.RouletteStraight, Numbers: []int{0}, Amount: 100},
	}
	outcome, err := service.Resolve(bets, 150, entities.TierNone)
	require.NoError(t, err)

	assert.Equal(t, 0, outcome.Pocket)
	assert.True(t, outcome.IsWin)
	require.Len(t, outcome.Bets, 1)
	assert.True(t, outcome.Bets[0].IsWin)
	assert.False(t, outcome.Bets[0].LuckyWin)
	assert.Equal(t, 35.0, outcome.Bets[0].Multiplier)
	// Stake returned plus 35x winnings.
	assert.Equal(t, int64(3600), outcome.Bets[0].Payout)
	assert.Equal(t, int64(3600), outcome.Payout)
	assert.Equal(t, 35.0, outcome.Multiplier)
}

func TestRouletteService_Resolve_ForcedLossFlipsWinner(t *testing.T) {
	rng := &scriptedRand{
		ints:   []int{0},
		floats: []float64{0.5, 0.01},
	}
	service := NewRouletteService(NewWinRateService(rng), rng)

	bets := []entities.RouletteBet{
		{Kind: entities.RouletteStraight, Numbers: []int{0}, Amount: 100},
	}
	outcome, err := service.Resolve(bets, 150, entities.TierNone)
	require.NoError(t, err)

	assert.False(t, outcome.IsWin)
	assert.False(t, outcome.Bets[0].IsWin)
	assert.Equal(t, int64(0), outcome.Payout)
}

func TestRouletteService_Resolve_LuckyWinFlipsLoser(t *testing.T) {
	// The bet misses the pocket but the lucky gate (0.02*48/100 = 0.0096)
	// fires, paying an inflated 2-4x multiplier instead of the bet's 35x.
	rng := &scriptedRand{
		ints:   []int{0},
		floats: []float64{0.5, 0.005, 0.5, 0.5},
	}
	service := NewRouletteService(NewWinRateService(rng), rng)

	bets := []entities.RouletteBet{
		{Kind: entities.RouletteStraight, Numbers: []int{5}, Amount: 100},
	}
	outcome, err := service.Resolve(bets, 150, entities.TierNone)
	require.NoError(t, err)

	assert.True(t, outcome.IsWin)
	assert.True(t, outcome.Bets[0].LuckyWin)
	assert.InDelta(t, 3.0, outcome.Bets[0].Multiplier, 0.0001)
	assert.Equal(t, int64(400), outcome.Bets[0].Payout)
}

func TestRouletteService_Resolve_MultipleBetsSettleIndependently(t *testing.T) {
	// Straight on the pocket wins, red loses (0 is neither red nor
	// black) with the lucky gate not firing.
	rng := &scriptedRand{
		ints:   []int{0},
		floats: []float64{0.5, 0.5, 0.5, 0.9},
	}
	service := NewRouletteService(NewWinRateService(rng), rng)

	bets := []entities.RouletteBet{
		{Kind: entities.RouletteStraight, Numbers: []int{0}, Amount: 100},
		{Kind: entities.RouletteRed, Amount: 200},
	}
	outcome, err := service.Resolve(bets, 150, entities.TierNone)
	require.NoError(t, err)

	assert.Equal(t, int64(300), outcome.Amount)
	assert.True(t, outcome.Bets[0].IsWin)
	assert.False(t, outcome.Bets[1].IsWin)
	assert.Equal(t, int64(3600), outcome.Payout)
}

func TestRouletteService_Resolve_Validation(t *testing.T) {
	rng := &scriptedRand{}
	service := NewRouletteService(NewWinRateService(rng), rng)

	_, err := service.Resolve(nil, 0, entities.TierNone)
	assert.ErrorIs(t, err, entities.ErrInvalidBet)

	// Straight bets name exactly one number.
	_, err = service.Resolve([]entities.RouletteBet{
		{Kind: entities.RouletteStraight, Numbers: []int{1, 2}, Amount: 100},
	}, 0, entities.TierNone)
	assert.ErrorIs(t, err, entities.ErrInvalidBet)

	// The slate's total stake is bounded like a single bet.
	_, err = service.Resolve([]entities.RouletteBet{
		{Kind: entities.RouletteRed, Amount: entities.MaxBetAmount},
		{Kind: entities.RouletteBlack, Amount: 1},
	}, 0, entities.TierNone)
	assert.ErrorIs(t, err, entities.ErrInvalidBet)
}
