package entities

// SlotSymbol is one of the ten reel symbols.
type SlotSymbol string

const (
	SymbolCherry  SlotSymbol = "cherry"
	SymbolLemon   SlotSymbol = "lemon"
	SymbolOrange  SlotSymbol = "orange"
	SymbolPlum    SlotSymbol = "plum"
	SymbolBell    SlotSymbol = "bell"
	SymbolBar     SlotSymbol = "bar"
	SymbolSeven   SlotSymbol = "seven"
	SymbolDiamond SlotSymbol = "diamond"
	SymbolStar    SlotSymbol = "star"
	SymbolJackpot SlotSymbol = "jackpot"
)

// SlotLineKind classifies the eight evaluated lines.
type SlotLineKind string

const (
	LineRow      SlotLineKind = "row"
	LineColumn   SlotLineKind = "column"
	LineDiagonal SlotLineKind = "diagonal"
)

// SlotLineWin records one winning line for rendering and audit.
type SlotLineWin struct {
	Line       int          `json:"line"`
	Kind       SlotLineKind `json:"kind"`
	Symbol     SlotSymbol   `json:"symbol"`
	Pair       bool         `json:"pair"`
	Multiplier float64      `json:"multiplier"`
}

// SlotsOutcome is the resolved result of one spin.
type SlotsOutcome struct {
	Outcome
	Grid     [3][3]SlotSymbol `json:"grid"`
	Lines    []SlotLineWin    `json:"lines"`
	FullGrid bool             `json:"fullGrid"`
}
