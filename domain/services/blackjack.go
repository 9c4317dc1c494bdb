package services

import (
	"fortuna/domain/entities"
)

const (
	// dealerStandValue is the total the dealer draws to. No soft-17 rule.
	dealerStandValue = 17

	// blackjackPayout is the natural blackjack return (3:2 plus stake).
	blackjackPayout = 2.5

	// standardWinPayout returns the stake plus an equal win.
	standardWinPayout = 2.0
)

// BlackjackService is the multi-step blackjack state machine. It is a
// pure state transformer: the caller round-trips the full state between
// actions and the application layer applies the debits and credits the
// service reports. The win-rate model is never consulted; blackjack odds
// are structural.
type BlackjackService struct {
	rng RandSource
}

// NewBlackjackService creates a new blackjack state machine
func NewBlackjackService(rng RandSource) *BlackjackService {
	return &BlackjackService{rng: rng}
}

// newDeck builds and shuffles a fresh 52-card deck (Fisher-Yates).
func (s *BlackjackService) newDeck() []entities.Card {
	deck := make([]entities.Card, 0, 52)
	for _, suit := range entities.Suits {
		for _, rank := range entities.Ranks {
			deck = append(deck, entities.Card{Rank: rank, Suit: suit})
		}
	}
	s.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// draw pops the top card off the round's deck.
func draw(state *entities.BlackjackState) entities.Card {
	card := state.Deck[0]
	state.Deck = state.Deck[1:]
	return card
}

// actionDraws returns how many cards the action itself takes off the deck.
func actionDraws(action entities.BlackjackAction) int {
	switch action {
	case entities.ActionHit, entities.ActionDouble:
		return 1
	case entities.ActionSplit:
		return 2
	}
	return 0
}

// validateState checks the caller-supplied round before any card moves:
// every hand must recompute to its claimed value and flags, the dealer
// must hold a full opening hand, and the deck must cover the action's
// draws. A state that fails here came from a tampered or corrupted
// round-trip and is rejected without mutation.
func validateState(state *entities.BlackjackState, action entities.BlackjackAction) error {
	if len(state.PlayerHands) == 0 || len(state.DealerHand) < 2 {
		return entities.ErrInvalidAction
	}
	for i := range state.PlayerHands {
		hand := &state.PlayerHands[i]
		if len(hand.Cards) == 0 || hand.Bet <= 0 {
			return entities.ErrInvalidAction
		}
		value := entities.HandValue(hand.Cards)
		if hand.Value != value || hand.IsBusted != (value > 21) {
			return entities.ErrInvalidAction
		}
	}
	if len(state.Deck) < actionDraws(action) {
		return entities.ErrInvalidAction
	}
	return nil
}

// allowedActions computes the action set for the active hand. Double and
// split additionally require the balance to cover a second stake.
func allowedActions(state *entities.BlackjackState, availableBalance int64) []entities.BlackjackAction {
	hand := state.CurrentHand()
	if hand == nil || state.Status != entities.StatusPlayerTurn {
		return nil
	}
	actions := []entities.BlackjackAction{entities.ActionHit, entities.ActionStand}
	if len(hand.Cards) == 2 && availableBalance >= hand.Bet {
		actions = append(actions, entities.ActionDouble)
		if hand.CanSplit() {
			actions = append(actions, entities.ActionSplit)
		}
	}
	return actions
}

// Deal starts a round: shuffles, deals two cards each (dealer's second
// hidden), and either hands control to the player or, on a natural
// blackjack, resolves immediately. The caller has already debited the
// stake; availableBalance is the balance after that debit.
func (s *BlackjackService) Deal(amount int64, availableBalance int64) (*entities.BlackjackState, error) {
	if err := entities.ValidateBetAmount(amount); err != nil {
		return nil, err
	}

	state := &entities.BlackjackState{
		Deck:   s.newDeck(),
		Status: entities.StatusPlayerTurn,
	}

	player := entities.BlackjackHand{Bet: amount}
	player.Cards = append(player.Cards, draw(state), draw(state))
	player.Recalculate()
	state.PlayerHands = []entities.BlackjackHand{player}

	state.DealerHand = append(state.DealerHand, draw(state), draw(state))
	state.DealerValue = entities.HandValue(state.DealerHand[:1])

	if player.IsBlackjack {
		s.resolveDealer(state)
		return state, nil
	}

	state.AllowedActions = allowedActions(state, availableBalance)
	return state, nil
}

// Apply performs one player action on the round. It validates fully
// before touching the state: an illegal action leaves the state as it
// came in. The returned extraDebit is the additional stake the caller
// must debit (double and split); it is always affordable when non-zero.
func (s *BlackjackService) Apply(state *entities.BlackjackState, action entities.BlackjackAction, handIndex int, availableBalance int64) (int64, error) {
	if state.Status != entities.StatusPlayerTurn {
		return 0, entities.ErrInvalidAction
	}
	if handIndex != state.CurrentHandIndex {
		return 0, entities.ErrInvalidAction
	}
	hand := state.CurrentHand()
	if hand == nil || hand.IsResolved() {
		return 0, entities.ErrInvalidAction
	}
	if !state.ActionAllowed(action) {
		return 0, entities.ErrInvalidAction
	}
	if err := validateState(state, action); err != nil {
		return 0, err
	}

	var extraDebit int64
	switch action {
	case entities.ActionHit:
		hand.Cards = append(hand.Cards, draw(state))
		hand.Recalculate()
		if hand.Value == 21 {
			hand.IsStood = true
		}

	case entities.ActionStand:
		hand.IsStood = true

	case entities.ActionDouble:
		if len(hand.Cards) != 2 || availableBalance < hand.Bet {
			return 0, entities.ErrInvalidAction
		}
		extraDebit = hand.Bet
		hand.Bet *= 2
		hand.Cards = append(hand.Cards, draw(state))
		hand.Recalculate()
		if !hand.IsBusted {
			hand.IsStood = true
		}

	case entities.ActionSplit:
		if !hand.CanSplit() || availableBalance < hand.Bet {
			return 0, entities.ErrInvalidAction
		}
		extraDebit = hand.Bet

		second := entities.BlackjackHand{
			Cards:   []entities.Card{hand.Cards[1]},
			Bet:     hand.Bet,
			IsSplit: true,
		}
		hand.Cards = hand.Cards[:1]
		hand.IsSplit = true

		hand.Cards = append(hand.Cards, draw(state))
		second.Cards = append(second.Cards, draw(state))
		hand.Recalculate()
		second.Recalculate()

		rest := append([]entities.BlackjackHand{second}, state.PlayerHands[state.CurrentHandIndex+1:]...)
		state.PlayerHands = append(state.PlayerHands[:state.CurrentHandIndex+1], rest...)

	default:
		return 0, entities.ErrInvalidAction
	}

	s.advance(state, availableBalance-extraDebit)
	return extraDebit, nil
}

// advance moves play to the next unresolved hand, or to the dealer when
// every hand is terminal.
func (s *BlackjackService) advance(state *entities.BlackjackState, availableBalance int64) {
	if state.AllResolved() {
		s.resolveDealer(state)
		return
	}
	for i := range state.PlayerHands {
		if !state.PlayerHands[i].IsResolved() {
			state.CurrentHandIndex = i
			break
		}
	}
	state.AllowedActions = allowedActions(state, availableBalance)
}

// resolveDealer reveals the hole card, draws to 17, and settles every
// hand. One transaction covers the whole round; the caller credits
// state.Payout.
func (s *BlackjackService) resolveDealer(state *entities.BlackjackState) {
	state.Status = entities.StatusDealerTurn
	state.AllowedActions = nil
	state.DealerHoleShown = true
	state.DealerValue = entities.HandValue(state.DealerHand)

	// The dealer only draws when a hand can still be beaten; busted hands
	// and naturals are settled as-is.
	anyLive := false
	for i := range state.PlayerHands {
		if !state.PlayerHands[i].IsBusted && !state.PlayerHands[i].IsBlackjack {
			anyLive = true
			break
		}
	}
	if anyLive {
		// A fresh 52-card deck never empties mid-draw; a short
		// caller-supplied one leaves the dealer standing where it is.
		for state.DealerValue < dealerStandValue && len(state.Deck) > 0 {
			state.DealerHand = append(state.DealerHand, draw(state))
			state.DealerValue = entities.HandValue(state.DealerHand)
		}
	}
	dealerBusted := state.DealerValue > 21

	var totalPayout int64
	for i := range state.PlayerHands {
		hand := &state.PlayerHands[i]
		switch {
		case hand.IsBusted:
			// No payout.
		case hand.IsBlackjack:
			if entities.IsNaturalBlackjack(state.DealerHand) {
				totalPayout += hand.Bet
			} else {
				totalPayout += int64(float64(hand.Bet) * blackjackPayout)
			}
		case dealerBusted || hand.Value > state.DealerValue:
			totalPayout += int64(float64(hand.Bet) * standardWinPayout)
		case hand.Value == state.DealerValue:
			totalPayout += hand.Bet
		}
	}

	state.Payout = totalPayout
	state.Status = entities.StatusComplete
	state.CurrentHandIndex = -1

	stake := state.TotalStake()
	switch {
	case totalPayout > stake:
		state.Result = entities.BlackjackWin
	case totalPayout == stake:
		state.Result = entities.BlackjackPush
	default:
		state.Result = entities.BlackjackLose
	}
}
