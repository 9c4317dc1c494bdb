package services

import (
	"testing"

	"fortuna/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestWinRateService_BaseChance(t *testing.T) {
	service := NewWinRateService(&scriptedRand{})

	assert.Equal(t, 35.0, service.BaseChance(entities.GameSlots))
	assert.Equal(t, 50.0, service.BaseChance(entities.GameDice))
	assert.Equal(t, 45.0, service.BaseChance(entities.GameCrash))
	assert.Equal(t, 48.0, service.BaseChance(entities.GameRoulette))
	assert.Equal(t, 42.0, service.BaseChance(entities.GamePlinko))

	// Games without a curve entry fall back to the default.
	assert.Equal(t, 40.0, service.BaseChance(entities.GameBlackjack))
}

func TestWinRateService_AdjustedChance_Curve(t *testing.T) {
	service := NewWinRateService(&scriptedRand{})

	tests := []struct {
		name      string
		playCount int
		want      float64
	}{
		{"brand new account gets the full boost", 0, 55},
		{"boost decays halfway at 50 plays", 50, 45},
		{"boost fully decayed at 100 plays", 100, 35},
		{"base chance holds between 100 and 200", 150, 35},
		{"veteran penalty past 200 plays", 250, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.AdjustedChance(entities.GameSlots, tt.playCount)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestWinRateService_AdjustedChance_Clamped(t *testing.T) {
	service := NewWinRateService(&scriptedRand{})

	for _, game := range []entities.GameType{
		entities.GameSlots, entities.GameDice, entities.GameCrash,
		entities.GameRoulette, entities.GamePlinko,
	} {
		for _, playCount := range []int{0, 1, 50, 99, 100, 200, 201, 10000} {
			got := service.AdjustedChance(game, playCount)
			assert.GreaterOrEqual(t, got, 1.0)
			assert.LessOrEqual(t, got, 99.0)
		}
	}
}

func TestWinRateService_IsBigWin(t *testing.T) {
	// New accounts roll against 1 in 5, established ones against 1 in 10.
	service := NewWinRateService(&scriptedRand{floats: []float64{0.15, 0.15}})

	assert.True(t, service.IsBigWin(10))
	assert.False(t, service.IsBigWin(100))
}

func TestWinRateService_BigWinBoost_Range(t *testing.T) {
	low := NewWinRateService(&scriptedRand{floats: []float64{0}})
	assert.InDelta(t, 1.5, low.BigWinBoost(), 0.0001)

	high := NewWinRateService(&scriptedRand{floats: []float64{0.999}})
	boost := high.BigWinBoost()
	assert.Less(t, boost, 3.0)
	assert.Greater(t, boost, 2.99)
}
