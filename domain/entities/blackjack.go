package entities

// Suit is a card suit.
type Suit string

const (
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
)

// Suits lists the four suits in deck-building order.
var Suits = [4]Suit{Spades, Hearts, Diamonds, Clubs}

// Rank is a card rank. Ranks carries deck-building order.
type Rank string

const (
	RankAce   Rank = "A"
	RankTwo   Rank = "2"
	RankThree Rank = "3"
	RankFour  Rank = "4"
	RankFive  Rank = "5"
	RankSix   Rank = "6"
	RankSeven Rank = "7"
	RankEight Rank = "8"
	RankNine  Rank = "9"
	RankTen   Rank = "10"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
)

// Ranks lists the thirteen ranks in deck-building order.
var Ranks = [13]Rank{
	RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
	RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing,
}

// BaseValue returns the rank's counting value with aces high (11).
func (r Rank) BaseValue() int {
	switch r {
	case RankAce:
		return 11
	case RankTen, RankJack, RankQueen, RankKing:
		return 10
	case RankTwo:
		return 2
	case RankThree:
		return 3
	case RankFour:
		return 4
	case RankFive:
		return 5
	case RankSix:
		return 6
	case RankSeven:
		return 7
	case RankEight:
		return 8
	case RankNine:
		return 9
	}
	return 0
}

// Card is one playing card.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// HandValue computes the blackjack value of a card list: aces count 11
// and are demoted to 1 one at a time while the total exceeds 21.
func HandValue(cards []Card) int {
	total := 0
	aces := 0
	for _, c := range cards {
		total += c.Rank.BaseValue()
		if c.Rank == RankAce {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsNaturalBlackjack reports whether the cards are a two-card 21.
func IsNaturalBlackjack(cards []Card) bool {
	return len(cards) == 2 && HandValue(cards) == 21
}

// BlackjackHand is one player hand within a round. A round starts with a
// single hand; splits add more.
type BlackjackHand struct {
	Cards         []Card `json:"cards"`
	Value         int    `json:"value"`
	Bet           int64  `json:"bet"`
	IsBusted      bool   `json:"isBusted"`
	IsBlackjack   bool   `json:"isBlackjack"`
	IsSplit       bool   `json:"isSplit"`
	IsSurrendered bool   `json:"isSurrendered"`
	IsStood       bool   `json:"isStood"`
}

// Recalculate refreshes the hand's computed value and terminal flags.
func (h *BlackjackHand) Recalculate() {
	h.Value = HandValue(h.Cards)
	h.IsBusted = h.Value > 21
	h.IsBlackjack = !h.IsSplit && IsNaturalBlackjack(h.Cards)
}

// IsResolved reports whether the hand takes no further player actions.
func (h *BlackjackHand) IsResolved() bool {
	return h.IsBusted || h.IsBlackjack || h.IsSurrendered || h.IsStood
}

// CanSplit reports whether the hand is an equal-rank pair of two cards.
func (h *BlackjackHand) CanSplit() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// BlackjackStatus is the round's state-machine state. The betting state
// is implicit: dealing both creates and advances past it.
type BlackjackStatus string

const (
	StatusPlayerTurn BlackjackStatus = "player-turn"
	StatusDealerTurn BlackjackStatus = "dealer-turn"
	StatusComplete   BlackjackStatus = "complete"
)

// BlackjackAction is a player move.
type BlackjackAction string

const (
	ActionHit    BlackjackAction = "hit"
	ActionStand  BlackjackAction = "stand"
	ActionDouble BlackjackAction = "double"
	ActionSplit  BlackjackAction = "split"
)

// BlackjackResult is the terminal comparison of total payout to total stake.
type BlackjackResult string

const (
	BlackjackWin  BlackjackResult = "win"
	BlackjackLose BlackjackResult = "lose"
	BlackjackPush BlackjackResult = "push"
)

// BlackjackState is the full round state. The caller round-trips it on
// every action call; there is no server-side session for it. The ledger
// only touches the user's balance alongside transitions.
type BlackjackState struct {
	PlayerHands      []BlackjackHand   `json:"playerHands"`
	DealerHand       []Card            `json:"dealerHand"`
	DealerValue      int               `json:"dealerValue"`
	DealerHoleShown  bool              `json:"dealerHoleShown"`
	CurrentHandIndex int               `json:"currentHandIndex"`
	Deck             []Card            `json:"deck"`
	Status           BlackjackStatus   `json:"status"`
	AllowedActions   []BlackjackAction `json:"allowedActions"`
	Result           BlackjackResult   `json:"result,omitempty"`
	Payout           int64             `json:"payout"`
}

// TotalStake sums the bets across all player hands.
func (s *BlackjackState) TotalStake() int64 {
	var total int64
	for _, h := range s.PlayerHands {
		total += h.Bet
	}
	return total
}

// CurrentHand returns the active hand, or nil outside player-turn bounds.
func (s *BlackjackState) CurrentHand() *BlackjackHand {
	if s.CurrentHandIndex < 0 || s.CurrentHandIndex >= len(s.PlayerHands) {
		return nil
	}
	return &s.PlayerHands[s.CurrentHandIndex]
}

// ActionAllowed reports whether the action is in the allowed set.
func (s *BlackjackState) ActionAllowed(action BlackjackAction) bool {
	for _, a := range s.AllowedActions {
		if a == action {
			return true
		}
	}
	return false
}

// AllResolved reports whether every player hand is terminal.
func (s *BlackjackState) AllResolved() bool {
	for i := range s.PlayerHands {
		if !s.PlayerHands[i].IsResolved() {
			return false
		}
	}
	return true
}
