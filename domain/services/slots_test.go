package services

import (
	"testing"

	"fortuna/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allCherryFloats returns nine draws that land every cell on cherry.
func allCherryFloats() []float64 {
	floats := make([]float64, 9)
	return floats
}

func TestSlotsService_Resolve_FullGridOverride(t *testing.T) {
	// Nine cherries, every line gate passing, full grid gate passing, no
	// big win. The full-grid bonus overrides the accumulated line wins.
	floats := allCherryFloats()
	for i := 0; i < 8; i++ {
		floats = append(floats, 0) // line gates
	}
	floats = append(floats, 0)   // full grid gate
	floats = append(floats, 0.5) // big win roll fails at 150 plays

	rng := &scriptedRand{floats: floats}
	service := NewSlotsService(NewWinRateService(rng), rng)

	outcome, err := service.Resolve(100, 150, entities.TierNone)
	require.NoError(t, err)

	assert.True(t, outcome.IsWin)
	assert.True(t, outcome.FullGrid)
	assert.False(t, outcome.IsBigWin)
	// Cherry multiplier 2 times the full-grid bonus 20.
	assert.InDelta(t, 40.0, outcome.Multiplier, 0.0001)
	assert.Equal(t, int64(4000), outcome.Payout)
	assert.Len(t, outcome.Lines, 8)
}

func TestSlotsService_Resolve_GatedTriplesCanStillLose(t *testing.T) {
	// Nine cherries but every gate draw fails: a structurally perfect
	// grid resolves as a loss.
	floats := allCherryFloats()
	for i := 0; i < 9; i++ {
		floats = append(floats, 0.99) // 8 line gates + full grid gate
	}

	rng := &scriptedRand{floats: floats}
	service := NewSlotsService(NewWinRateService(rng), rng)

	outcome, err := service.Resolve(100, 150, entities.TierNone)
	require.NoError(t, err)

	assert.False(t, outcome.IsWin)
	assert.False(t, outcome.FullGrid)
	assert.Equal(t, 0.0, outcome.Multiplier)
	assert.Equal(t, int64(0), outcome.Payout)
	assert.Empty(t, outcome.Lines)
}

func TestSlotsService_Resolve_TierScalesPayout(t *testing.T) {
	floats := allCherryFloats()
	for i := 0; i < 9; i++ {
		floats = append(floats, 0)
	}
	floats = append(floats, 0.5)

	rng := &scriptedRand{floats: floats}
	service := NewSlotsService(NewWinRateService(rng), rng)

	outcome, err := service.Resolve(100, 150, entities.TierPremium)
	require.NoError(t, err)

	// 100 * 40 * 1.25
	assert.Equal(t, int64(5000), outcome.Payout)
}

func TestSlotsService_Resolve_InvalidAmount(t *testing.T) {
	rng := &scriptedRand{}
	service := NewSlotsService(NewWinRateService(rng), rng)

	_, err := service.Resolve(0, 0, entities.TierNone)
	assert.ErrorIs(t, err, entities.ErrInvalidBet)

	_, err = service.Resolve(entities.MaxBetAmount+1, 0, entities.TierNone)
	assert.ErrorIs(t, err, entities.ErrInvalidBet)
}

func TestSlotsService_DrawSymbol_WeightBoundaries(t *testing.T) {
	// Total weight is 99.5; a draw just inside the first band yields
	// cherry, a draw at the very top yields the jackpot symbol.
	rng := &scriptedRand{floats: []float64{0.19, 0.9999}}
	service := NewSlotsService(NewWinRateService(rng), rng)

	assert.Equal(t, entities.SymbolCherry, service.drawSymbol())
	assert.Equal(t, entities.SymbolJackpot, service.drawSymbol())
}
