package services

import (
	"testing"

	"fortuna/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(rank entities.Rank) entities.Card {
	return entities.Card{Rank: rank, Suit: entities.Spades}
}

// tableState builds an in-flight round with one player hand against the
// given dealer cards, with the remaining deck scripted.
func tableState(playerCards []entities.Card, bet int64, dealerCards []entities.Card, deck []entities.Card) *entities.BlackjackState {
	hand := entities.BlackjackHand{Cards: playerCards, Bet: bet}
	hand.Recalculate()

	state := &entities.BlackjackState{
		PlayerHands: []entities.BlackjackHand{hand},
		DealerHand:  dealerCards,
		DealerValue: entities.HandValue(dealerCards[:1]),
		Deck:        deck,
		Status:      entities.StatusPlayerTurn,
		AllowedActions: []entities.BlackjackAction{
			entities.ActionHit, entities.ActionStand,
			entities.ActionDouble, entities.ActionSplit,
		},
	}
	return state
}

func TestBlackjackService_Deal(t *testing.T) {
	// scriptedRand leaves the deck unshuffled: the player draws A,2
	// (soft 13) and the dealer shows a 3.
	service := NewBlackjackService(&scriptedRand{})

	state, err := service.Deal(100, 900)
	require.NoError(t, err)

	assert.Equal(t, entities.StatusPlayerTurn, state.Status)
	require.Len(t, state.PlayerHands, 1)
	assert.Len(t, state.PlayerHands[0].Cards, 2)
	assert.Equal(t, 13, state.PlayerHands[0].Value)
	assert.Equal(t, int64(100), state.PlayerHands[0].Bet)
	assert.Len(t, state.DealerHand, 2)
	assert.False(t, state.DealerHoleShown)
	assert.Equal(t, 3, state.DealerValue)
	assert.Len(t, state.Deck, 48)
	assert.Contains(t, state.AllowedActions, entities.ActionHit)
	assert.Contains(t, state.AllowedActions, entities.ActionStand)
	assert.Contains(t, state.AllowedActions, entities.ActionDouble)
}

func TestBlackjackService_Deal_DoubleRequiresBalance(t *testing.T) {
	service := NewBlackjackService(&scriptedRand{})

	state, err := service.Deal(100, 50)
	require.NoError(t, err)

	assert.NotContains(t, state.AllowedActions, entities.ActionDouble)
	assert.NotContains(t, state.AllowedActions, entities.ActionSplit)
}

func TestBlackjackService_Deal_InvalidAmount(t *testing.T) {
	service := NewBlackjackService(&scriptedRand{})

	_, err := service.Deal(0, 1000)
	assert.ErrorIs(t, err, entities.ErrInvalidBet)
}

func TestBlackjackService_StandSettlesAgainstDealer(t *testing.T) {
	service := NewBlackjackService(&scriptedRand{})

	// Player 19 versus a pat dealer 17.
	state := tableState(
		[]entities.Card{card(entities.RankKing), card(entities.RankNine)}, 100,
		[]entities.Card{card(entities.RankTen), card(entities.RankSeven)},
		nil,
	)

	extraDebit, err := service.Apply(state, entities.ActionStand, 0, 900)
	require.NoError(t, err)
	assert.Equal(t, int64(0), extraDebit)

	assert.Equal(t, entities.StatusComplete, state.Status)
	assert.True(t, state.DealerHoleShown)
	assert.Equal(t, 17, state.DealerValue)
	assert.Equal(t, entities.BlackjackWin, state.Result)
	assert.Equal(t, int64(200), state.Payout)
	assert.Equal(t, -1, state.CurrentHandIndex)
}

func TestBlackjackService_PushReturnsStake(t *testing.T) {
	service := NewBlackjackService(&scriptedRand{})

	state := tableState(
		[]entities.Card{card(entities.RankKing), card(entities.RankSeven)}, 100,
		[]entities.Card{card(entities.RankTen), card(entities.RankSeven)},
		nil,
	)

	_, err := service.Apply(state, entities.ActionStand, 0, 900)
	require.NoError(t, err)

	assert.Equal(t, entities.BlackjackPush, state.Result)
	assert.Equal(t, int64(100), state.Payout)
}

func TestBlackjackService_HitCanBust(t *testing.T) {
	service := NewBlackjackService(&scriptedRand{})

	// Player 19 draws a five and busts; the dealer stands pat on a
	// stiff hand since no live hand remains.
	state := tableState(
		[]entities.Card{card(entities.RankKing), card(entities.RankNine)}, 100,
		[]entities.Card{card(entities.RankTen), card(entities.RankSix)},
		[]entities.Card{card(entities.RankFive)},
	)

	_, err := service.Apply(state, entities.ActionHit, 0, 900)
	require.NoError(t, err)

	assert.Equal(t, entities.StatusComplete, state.Status)
	assert.True(t, state.PlayerHands[0].IsBusted)
	assert.Equal(t, 16, state.DealerValue)
	assert.Equal(t, entities.BlackjackLose, state.Result)
	assert.Equal(t, int64(0), state.Payout)
}

func TestBlackjackService_HitOnTwentyOneAutoStands(t *testing.T) {
	service := NewBlackjackService(&scriptedRand{})

	state := tableState(
		[]entities.Card{card(entities.RankKing), card(entities.RankNine)}, 100,
		[]entities.Card{card(entities.RankTen), card(entities.RankSeven)},
		[]entities.Card{card(entities.RankTwo)},
	)

	_, err := service.Apply(state, entities.ActionHit, 0, 900)
	require.NoError(t, err)

	// 21 resolves the hand immediately, so the round completes.
	assert.Equal(t, entities.StatusComplete, state.Status)
	assert.Equal(t, 21, state.PlayerHands[0].Value)
	assert.Equal(t, entities.BlackjackWin, state.Result)
	assert.Equal(t, int64(200), state.Payout)
}

func TestBlackjackService_DoubleDebitsAndDrawsOne(t *testing.T) {
	service := NewBlackjackService(&scriptedRand{})

	// Player 11 doubles into a ten against a pat 17: 21 wins 2x on the
	// doubled stake.
	state := tableState(
		[]entities.Card{card(entities.RankSix), card(entities.RankFive)}, 100,
		[]entities.Card{card(entities.RankTen), card(entities.RankSeven)},
		[]entities.Card{card(entities.RankTen)},
	)

	extraDebit, err := service.Apply(state, entities.ActionDouble, 0, 900)
	require.NoError(t, err)

	assert.Equal(t, int64(100), extraDebit)
	assert.Equal(t, int64(200), state.PlayerHands[0].Bet)
	assert.Len(t, state.PlayerHands[0].Cards, 3)
	assert.Equal(t, entities.StatusComplete, state.Status)
	assert.Equal(t, entities.BlackjackWin, state.Result)
	assert.Equal(t, int64(400), state.Payout)
}

func TestBlackjackService_SplitSevens(t *testing.T) {
	service := NewBlackjackService(&scriptedRand{})

	state := tableState(
		[]entities.Card{card(entities.RankSeven), {Rank: entities.RankSeven, Suit: entities.Hearts}}, 100,
		[]entities.Card{card(entities.RankTen), card(entities.RankSeven)},
		[]entities.Card{card(entities.RankTwo), card(entities.RankThree)},
	)

	extraDebit, err := service.Apply(state, entities.ActionSplit, 0, 900)
	require.NoError(t, err)

	assert.Equal(t, int64(100), extraDebit)
	require.Len(t, state.PlayerHands, 2)
	for _, hand := range state.PlayerHands {
		assert.True(t, hand.IsSplit)
		assert.Len(t, hand.Cards, 2)
		assert.Equal(t, int64(100), hand.Bet)
	}
	assert.Equal(t, entities.StatusPlayerTurn, state.Status)
	assert.Equal(t, 0, state.CurrentHandIndex)
}

func TestBlackjackService_SplitRequiresPair(t *testing.T) {
	service := NewBlackjackService(&scriptedRand{})

	// Seven-eight is not splittable even when the action slips into the
	// allowed list.
	state := tableState(
		[]entities.Card{card(entities.RankSeven), card(entities.RankEight)}, 100,
		[]entities.Card{card(entities.RankTen), card(entities.RankSeven)},
		nil,
	)

	_, err := service.Apply(state, entities.ActionSplit, 0, 900)
	assert.ErrorIs(t, err, entities.ErrInvalidAction)
	assert.Len(t, state.PlayerHands, 1)
	assert.Len(t, state.PlayerHands[0].Cards, 2)
}

func TestBlackjackService_NaturalBeatsDealerTwentyOne(t *testing.T) {
	service := NewBlackjackService(&scriptedRand{})

	// Hand 0 is a resolved natural; standing hand 1 triggers the dealer.
	// The natural pays 3:2 even though the dealer later reaches 21 on
	// three cards.
	natural := entities.BlackjackHand{
		Cards: []entities.Card{card(entities.RankAce), card(entities.RankKing)},
		Bet:   100,
	}
	natural.Recalculate()
	require.True(t, natural.IsBlackjack)

	live := entities.BlackjackHand{
		Cards: []entities.Card{card(entities.RankKing), card(entities.RankNine)},
		Bet:   100,
	}
	live.Recalculate()

	state := &entities.BlackjackState{
		PlayerHands:      []entities.BlackjackHand{natural, live},
		DealerHand:       []entities.Card{card(entities.RankTen), card(entities.RankSix)},
		DealerValue:      10,
		Deck:             []entities.Card{card(entities.RankFive)},
		Status:           entities.StatusPlayerTurn,
		CurrentHandIndex: 1,
		AllowedActions:   []entities.BlackjackAction{entities.ActionHit, entities.ActionStand},
	}

	_, err := service.Apply(state, entities.ActionStand, 1, 800)
	require.NoError(t, err)

	assert.Equal(t, entities.StatusComplete, state.Status)
	assert.Equal(t, 21, state.DealerValue)
	// Natural pays 250, the 19 loses to 21: total 250 on a 200 stake.
	assert.Equal(t, int64(250), state.Payout)
	assert.Equal(t, entities.BlackjackWin, state.Result)
}

func TestBlackjackService_Apply_RejectsExhaustedDeck(t *testing.T) {
	service := NewBlackjackService(&scriptedRand{})

	// Hitting needs a card; a round-tripped state without one is rejected
	// before anything moves.
	state := tableState(
		[]entities.Card{card(entities.RankKing), card(entities.RankNine)}, 100,
		[]entities.Card{card(entities.RankTen), card(entities.RankSeven)},
		nil,
	)

	_, err := service.Apply(state, entities.ActionHit, 0, 900)
	assert.ErrorIs(t, err, entities.ErrInvalidAction)
	assert.Equal(t, entities.StatusPlayerTurn, state.Status)
	assert.Len(t, state.PlayerHands[0].Cards, 2)

	// Splitting takes two cards; one is not enough.
	state = tableState(
		[]entities.Card{card(entities.RankSeven), {Rank: entities.RankSeven, Suit: entities.Hearts}}, 100,
		[]entities.Card{card(entities.RankTen), card(entities.RankSeven)},
		[]entities.Card{card(entities.RankTwo)},
	)

	_, err = service.Apply(state, entities.ActionSplit, 0, 900)
	assert.ErrorIs(t, err, entities.ErrInvalidAction)
	assert.Len(t, state.PlayerHands, 1)
}

func TestBlackjackService_Apply_RejectsTamperedState(t *testing.T) {
	service := NewBlackjackService(&scriptedRand{})

	// A hand whose claimed value disagrees with its cards is rejected.
	state := tableState(
		[]entities.Card{card(entities.RankKing), card(entities.RankNine)}, 100,
		[]entities.Card{card(entities.RankTen), card(entities.RankSeven)},
		nil,
	)
	state.PlayerHands[0].Value = 21

	_, err := service.Apply(state, entities.ActionStand, 0, 900)
	assert.ErrorIs(t, err, entities.ErrInvalidAction)
	assert.Equal(t, entities.StatusPlayerTurn, state.Status)

	// A dealer hand missing its hole card is rejected.
	state = tableState(
		[]entities.Card{card(entities.RankKing), card(entities.RankNine)}, 100,
		[]entities.Card{card(entities.RankTen), card(entities.RankSeven)},
		nil,
	)
	state.DealerHand = state.DealerHand[:1]

	_, err = service.Apply(state, entities.ActionStand, 0, 900)
	assert.ErrorIs(t, err, entities.ErrInvalidAction)

	// A non-positive bet is rejected.
	state = tableState(
		[]entities.Card{card(entities.RankKing), card(entities.RankNine)}, 100,
		[]entities.Card{card(entities.RankTen), card(entities.RankSeven)},
		nil,
	)
	state.PlayerHands[0].Bet = 0

	_, err = service.Apply(state, entities.ActionStand, 0, 900)
	assert.ErrorIs(t, err, entities.ErrInvalidAction)
}

func TestBlackjackService_Apply_Rejections(t *testing.T) {
	service := NewBlackjackService(&scriptedRand{})

	state := tableState(
		[]entities.Card{card(entities.RankKing), card(entities.RankNine)}, 100,
		[]entities.Card{card(entities.RankTen), card(entities.RankSeven)},
		nil,
	)

	// Wrong hand index.
	_, err := service.Apply(state, entities.ActionStand, 1, 900)
	assert.ErrorIs(t, err, entities.ErrInvalidAction)

	// Unknown action.
	_, err = service.Apply(state, entities.BlackjackAction("surrender"), 0, 900)
	assert.ErrorIs(t, err, entities.ErrInvalidAction)

	// Completed rounds accept nothing.
	state.Status = entities.StatusComplete
	_, err = service.Apply(state, entities.ActionStand, 0, 900)
	assert.ErrorIs(t, err, entities.ErrInvalidAction)
}
