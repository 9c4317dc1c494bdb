package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"fortuna/domain/entities"
	"fortuna/domain/services"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// GameService orchestrates one game round per call. Every operation
// opens a unit of work, loads the user, debits the stake, resolves the
// round through the pure game service, settles through the ledger, and
// commits. A failure at any point rolls the whole round back.
type GameService struct {
	uowFactory UnitOfWorkFactory

	winRate   *services.WinRateService
	slots     *services.SlotsService
	dice      *services.DiceService
	crash     *services.CrashService
	roulette  *services.RouletteService
	plinko    *services.PlinkoService
	blackjack *services.BlackjackService
	streak    func(uow UnitOfWork) *services.StreakService
}

// NewGameService creates the round orchestrator with all resolvers
// sharing one random source.
func NewGameService(uowFactory UnitOfWorkFactory, rng services.RandSource) *GameService {
	winRate := services.NewWinRateService(rng)
	return &GameService{
		uowFactory: uowFactory,
		winRate:    winRate,
		slots:      services.NewSlotsService(winRate, rng),
		dice:       services.NewDiceService(winRate, rng),
		crash:      services.NewCrashService(winRate, rng),
		roulette:   services.NewRouletteService(winRate, rng),
		plinko:     services.NewPlinkoService(rng),
		blackjack:  services.NewBlackjackService(rng),
		streak: func(uow UnitOfWork) *services.StreakService {
			return services.NewStreakService(uow.StreakRepository(), uow.UserRepository(), uow.TransactionRepository(), uow.EventBus())
		},
	}
}

// RoundResult pairs a resolved outcome with the caller's new balance.
type RoundResult[T any] struct {
	Outcome *T    `json:"outcome"`
	Balance int64 `json:"balance"`
}

// BlackjackRoundResult carries the table state back to the player.
// Balance reflects every debit so far; settlement happens only when
// Status is complete.
type BlackjackRoundResult struct {
	State   *entities.BlackjackState `json:"state"`
	Balance int64                    `json:"balance"`
}

// loadUser fetches the user inside the unit of work.
func loadUser(ctx context.Context, uow UnitOfWork, userID int64) (*entities.User, error) {
	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, entities.ErrUserNotFound
	}
	return user, nil
}

func (g *GameService) ledger(uow UnitOfWork) *services.LedgerService {
	return services.NewLedgerService(uow.UserRepository(), uow.TransactionRepository(), uow.EventBus())
}

// PlaySlots runs one slot machine spin.
func (g *GameService) PlaySlots(ctx context.Context, userID int64, amount int64) (*RoundResult[entities.SlotsOutcome], error) {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := loadUser(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	ledger := g.ledger(uow)
	if _, err := ledger.DebitStake(ctx, userID, amount); err != nil {
		return nil, err
	}

	outcome, err := g.slots.Resolve(amount, user.PlayCount, user.Tier)
	if err != nil {
		return nil, err
	}

	balance, err := ledger.SettleRound(ctx, userID, outcome.Outcome, map[string]any{
		"grid":  outcome.Grid,
		"lines": len(outcome.Lines),
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	logRound(userID, &outcome.Outcome)
	return &RoundResult[entities.SlotsOutcome]{Outcome: outcome, Balance: balance}, nil
}

// PlayDice runs one dice roll against the player's target.
func (g *GameService) PlayDice(ctx context.Context, userID int64, bet entities.DiceBet) (*RoundResult[entities.DiceOutcome], error) {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := loadUser(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	ledger := g.ledger(uow)
	if _, err := ledger.DebitStake(ctx, userID, bet.Amount); err != nil {
		return nil, err
	}

	outcome, err := g.dice.Resolve(bet, user.PlayCount, user.Tier)
	if err != nil {
		return nil, err
	}

	balance, err := ledger.SettleRound(ctx, userID, outcome.Outcome, map[string]any{
		"target": outcome.Target,
		"roll":   outcome.Roll,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	logRound(userID, &outcome.Outcome)
	return &RoundResult[entities.DiceOutcome]{Outcome: outcome, Balance: balance}, nil
}

// PlayRoulette spins the wheel once against the player's bet slate.
func (g *GameService) PlayRoulette(ctx context.Context, userID int64, bets []entities.RouletteBet) (*RoundResult[entities.RouletteOutcome], error) {
	if len(bets) == 0 {
		return nil, entities.ErrInvalidBet
	}

	var totalStake int64
	for _, bet := range bets {
		totalStake += bet.Amount
	}

	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := loadUser(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	ledger := g.ledger(uow)
	if _, err := ledger.DebitStake(ctx, userID, totalStake); err != nil {
		return nil, err
	}

	outcome, err := g.roulette.Resolve(bets, user.PlayCount, user.Tier)
	if err != nil {
		return nil, err
	}

	balance, err := ledger.SettleRound(ctx, userID, outcome.Outcome, map[string]any{
		"pocket": outcome.Pocket,
		"bets":   len(bets),
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	logRound(userID, &outcome.Outcome)
	return &RoundResult[entities.RouletteOutcome]{Outcome: outcome, Balance: balance}, nil
}

// PlayPlinko drops one ball.
func (g *GameService) PlayPlinko(ctx context.Context, userID int64, bet entities.PlinkoBet) (*RoundResult[entities.PlinkoOutcome], error) {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := loadUser(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	ledger := g.ledger(uow)
	if _, err := ledger.DebitStake(ctx, userID, bet.Amount); err != nil {
		return nil, err
	}

	outcome, err := g.plinko.Resolve(bet, user.Tier)
	if err != nil {
		return nil, err
	}

	balance, err := ledger.SettleRound(ctx, userID, outcome.Outcome, map[string]any{
		"risk":   outcome.Risk,
		"bucket": outcome.Bucket,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	logRound(userID, &outcome.Outcome)
	return &RoundResult[entities.PlinkoOutcome]{Outcome: outcome, Balance: balance}, nil
}

// StartCrash debits the stake, draws the crash point server-side, and
// persists the active round. The crash point never leaves the database
// until settlement.
func (g *GameService) StartCrash(ctx context.Context, userID int64, amount int64) (*entities.CrashStartOutcome, error) {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := loadUser(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	ledger := g.ledger(uow)
	balance, err := ledger.DebitStake(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	round := &entities.CrashRound{
		ID:         uuid.New(),
		UserID:     userID,
		Amount:     amount,
		CrashPoint: g.crash.DrawCrashPoint(user.PlayCount),
		Status:     entities.CrashRoundActive,
	}
	if err := uow.CrashRoundRepository().Create(ctx, round); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"userID":  userID,
		"roundID": round.ID,
		"amount":  amount,
	}).Info("Crash round started")

	return &entities.CrashStartOutcome{
		RoundID: round.ID,
		Amount:  amount,
		Balance: balance,
	}, nil
}

// CashoutCrash settles an active crash round against the player's
// cashout point. The stake was debited at start, so the round's
// transaction is written here with the stored stake.
func (g *GameService) CashoutCrash(ctx context.Context, userID int64, roundID uuid.UUID, cashoutPoint float64) (*RoundResult[entities.CrashCashoutOutcome], error) {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := loadUser(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	round, err := uow.CrashRoundRepository().GetByID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round == nil || round.UserID != userID {
		return nil, entities.ErrRoundNotFound
	}

	outcome, err := g.crash.SettleCashout(round, cashoutPoint, user.Tier)
	if err != nil {
		return nil, err
	}

	if err := uow.CrashRoundRepository().Settle(ctx, roundID); err != nil {
		return nil, err
	}

	balance, err := g.ledger(uow).SettleRound(ctx, userID, outcome.Outcome, map[string]any{
		"roundId":      round.ID,
		"crashPoint":   outcome.CrashPoint,
		"cashoutPoint": outcome.CashoutPoint,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	logRound(userID, &outcome.Outcome)
	return &RoundResult[entities.CrashCashoutOutcome]{Outcome: outcome, Balance: balance}, nil
}

// StartBlackjack debits the stake and deals the opening hands. On a
// natural blackjack the round settles immediately.
func (g *GameService) StartBlackjack(ctx context.Context, userID int64, amount int64) (*BlackjackRoundResult, error) {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := loadUser(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	ledger := g.ledger(uow)
	balance, err := ledger.DebitStake(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	state, err := g.blackjack.Deal(amount, balance)
	if err != nil {
		return nil, err
	}

	if state.Status == entities.StatusComplete {
		balance, err = g.settleBlackjack(ctx, uow, userID, user.Tier, state)
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &BlackjackRoundResult{State: state, Balance: balance}, nil
}

// BlackjackAction applies one player action to an in-flight round. The
// caller round-trips the full table state; double and split debit the
// extra stake here, and a completed round settles in the same unit of
// work.
func (g *GameService) BlackjackAction(ctx context.Context, userID int64, state *entities.BlackjackState, action entities.BlackjackAction, handIndex int) (*BlackjackRoundResult, error) {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := loadUser(ctx, uow, userID)
	if err != nil {
		return nil, err
	}
	balance := user.Balance

	extraDebit, err := g.blackjack.Apply(state, action, handIndex, balance)
	if err != nil {
		return nil, err
	}
	if extraDebit > 0 {
		ledger := g.ledger(uow)
		balance, err = ledger.DebitStake(ctx, userID, extraDebit)
		if err != nil {
			return nil, err
		}
	}

	if state.Status == entities.StatusComplete {
		balance, err = g.settleBlackjack(ctx, uow, userID, user.Tier, state)
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &BlackjackRoundResult{State: state, Balance: balance}, nil
}

// settleBlackjack writes the round's single transaction. The table
// payout is tier-free; winning rounds get the tier multiplier here.
func (g *GameService) settleBlackjack(ctx context.Context, uow UnitOfWork, userID int64, tier entities.SubscriptionTier, state *entities.BlackjackState) (int64, error) {
	stake := state.TotalStake()
	payout := state.Payout
	if state.Result == entities.BlackjackWin {
		payout = int64(math.Round(float64(payout) * tier.PayoutMultiplier()))
		state.Payout = payout
	}

	var multiplier float64
	if payout > 0 {
		multiplier = float64(payout) / float64(stake)
	}

	out := entities.Outcome{
		GameType:   entities.GameBlackjack,
		Amount:     stake,
		Multiplier: multiplier,
		Payout:     payout,
		IsWin:      state.Result == entities.BlackjackWin,
	}

	balance, err := g.ledger(uow).SettleRound(ctx, userID, out, map[string]any{
		"result":      state.Result,
		"playerHands": len(state.PlayerHands),
		"dealerValue": state.DealerValue,
	})
	if err != nil {
		return 0, err
	}

	logRound(userID, &out)
	return balance, nil
}

// ClaimStreak pays the daily streak reward.
func (g *GameService) ClaimStreak(ctx context.Context, userID int64) (*entities.StreakClaimResult, error) {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	result, err := g.streak(uow).Claim(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"userID": userID,
		"streak": result.Streak,
		"reward": result.Reward,
	}).Info("Daily streak claimed")

	return result, nil
}

func logRound(userID int64, out *entities.Outcome) {
	log.WithFields(log.Fields{
		"userID":     userID,
		"game":       out.GameType,
		"amount":     out.Amount,
		"multiplier": out.Multiplier,
		"payout":     out.Payout,
		"isWin":      out.IsWin,
	}).Info("Round resolved")
}
