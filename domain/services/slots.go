package services

import (
	"math"

	"fortuna/domain/entities"
)

// slotSymbolDef ties a reel symbol to its sampling weight and base
// multiplier. Weights descend from common fruit to the 0.5-weight
// jackpot symbol.
type slotSymbolDef struct {
	symbol     entities.SlotSymbol
	weight     float64
	multiplier float64
}

var slotSymbols = []slotSymbolDef{
	{entities.SymbolCherry, 20, 2},
	{entities.SymbolLemon, 18, 2.5},
	{entities.SymbolOrange, 16, 3},
	{entities.SymbolPlum, 14, 4},
	{entities.SymbolBell, 10, 5},
	{entities.SymbolBar, 8, 8},
	{entities.SymbolSeven, 6, 10},
	{entities.SymbolDiamond, 4, 15},
	{entities.SymbolStar, 3, 20},
	{entities.SymbolJackpot, 0.5, 50},
}

// slotLine addresses three grid cells as (row, col) pairs.
type slotLine struct {
	kind   entities.SlotLineKind
	factor float64
	cells  [3][2]int
}

// Eight evaluated lines: three rows, three columns, two diagonals.
// Diagonals and the middle row pay extra factors on top of the symbol
// multiplier.
var slotLines = []slotLine{
	{entities.LineRow, 1.0, [3][2]int{{0, 0}, {0, 1}, {0, 2}}},
	{entities.LineRow, 1.2, [3][2]int{{1, 0}, {1, 1}, {1, 2}}},
	{entities.LineRow, 1.0, [3][2]int{{2, 0}, {2, 1}, {2, 2}}},
	{entities.LineColumn, 1.0, [3][2]int{{0, 0}, {1, 0}, {2, 0}}},
	{entities.LineColumn, 1.0, [3][2]int{{0, 1}, {1, 1}, {2, 1}}},
	{entities.LineColumn, 1.0, [3][2]int{{0, 2}, {1, 2}, {2, 2}}},
	{entities.LineDiagonal, 1.5, [3][2]int{{0, 0}, {1, 1}, {2, 2}}},
	{entities.LineDiagonal, 1.5, [3][2]int{{0, 2}, {1, 1}, {2, 0}}},
}

const (
	// pairMultiplier pays for two matching symbols in a line.
	pairMultiplier = 0.5

	// fullGridBonus scales the symbol multiplier when all nine cells match.
	fullGridBonus = 20
)

// SlotsService resolves slot spins. Matching symbols are necessary but
// not sufficient: every structural match must also pass a fresh draw
// against the adjusted win chance, keeping the house in control even
// over natural matches.
type SlotsService struct {
	winRate *WinRateService
	rng     RandSource
}

// NewSlotsService creates a new slots resolver
func NewSlotsService(winRate *WinRateService, rng RandSource) *SlotsService {
	return &SlotsService{winRate: winRate, rng: rng}
}

// drawSymbol samples one symbol by cumulative weight with a single
// uniform draw.
func (s *SlotsService) drawSymbol() entities.SlotSymbol {
	var totalWeight float64
	for _, def := range slotSymbols {
		totalWeight += def.weight
	}
	draw := s.rng.Float64() * totalWeight
	var cumulative float64
	for _, def := range slotSymbols {
		cumulative += def.weight
		if draw < cumulative {
			return def.symbol
		}
	}
	return slotSymbols[len(slotSymbols)-1].symbol
}

func symbolMultiplier(sym entities.SlotSymbol) float64 {
	for _, def := range slotSymbols {
		if def.symbol == sym {
			return def.multiplier
		}
	}
	return 0
}

// Resolve spins a 3x3 grid and settles the round.
func (s *SlotsService) Resolve(amount int64, playCount int, tier entities.SubscriptionTier) (*entities.SlotsOutcome, error) {
	if err := entities.ValidateBetAmount(amount); err != nil {
		return nil, err
	}

	var grid [3][3]entities.SlotSymbol
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			grid[r][c] = s.drawSymbol()
		}
	}

	chance := s.winRate.AdjustedChance(entities.GameSlots, playCount)

	var wins []entities.SlotLineWin
	var totalMultiplier float64
	for i, line := range slotLines {
		a := grid[line.cells[0][0]][line.cells[0][1]]
		b := grid[line.cells[1][0]][line.cells[1][1]]
		c := grid[line.cells[2][0]][line.cells[2][1]]

		if a == b && b == c {
			// Natural triple still has to pass the win gate.
			if s.rng.Float64()*100 < chance {
				mult := symbolMultiplier(a) * line.factor
				wins = append(wins, entities.SlotLineWin{
					Line:       i,
					Kind:       line.kind,
					Symbol:     a,
					Multiplier: mult,
				})
				totalMultiplier += mult
			}
			continue
		}

		if a == b || b == c || a == c {
			// Pairs pay a small fixed multiplier under a halved gate.
			if s.rng.Float64()*100 < chance/2 {
				pairSym := a
				if b == c {
					pairSym = b
				}
				wins = append(wins, entities.SlotLineWin{
					Line:       i,
					Kind:       line.kind,
					Symbol:     pairSym,
					Pair:       true,
					Multiplier: pairMultiplier,
				})
				totalMultiplier += pairMultiplier
			}
		}
	}

	// A single-symbol full grid is checked independently and overrides
	// whatever the lines accumulated.
	fullGrid := true
	for r := 0; r < 3 && fullGrid; r++ {
		for c := 0; c < 3; c++ {
			if grid[r][c] != grid[0][0] {
				fullGrid = false
				break
			}
		}
	}
	if fullGrid && s.rng.Float64()*100 < chance {
		totalMultiplier = symbolMultiplier(grid[0][0]) * fullGridBonus
	} else {
		fullGrid = false
	}

	bigWin := false
	if totalMultiplier > 0 && s.winRate.IsBigWin(playCount) {
		totalMultiplier *= s.winRate.BigWinBoost()
		bigWin = true
	}

	isWin := totalMultiplier > 0
	var payout int64
	if isWin {
		payout = int64(math.Round(float64(amount) * totalMultiplier * tier.PayoutMultiplier()))
	}

	return &entities.SlotsOutcome{
		Outcome: entities.Outcome{
			GameType:   entities.GameSlots,
			Amount:     amount,
			Multiplier: totalMultiplier,
			Payout:     payout,
			IsWin:      isWin,
			IsBigWin:   bigWin,
		},
		Grid:     grid,
		Lines:    wins,
		FullGrid: fullGrid,
	}, nil
}
