package services

import (
	"context"
	"fmt"
	"time"

	"fortuna/domain/entities"
	"fortuna/domain/interfaces"
	"fortuna/domain/utils"
)

const (
	// streakBaseReward is the payout for a one-day streak.
	streakBaseReward int64 = 100

	// streakRewardCap bounds the streak multiplier.
	streakRewardCap = 7
)

// StreakService handles the daily login streak claim. The claim is the
// one mutation in the system that takes an explicit row lock: the streak
// row is read FOR UPDATE inside the unit of work, so two concurrent
// claims from the same account serialize and the second one sees the
// first one's timestamp.
type StreakService struct {
	streakRepo     interfaces.StreakRepository
	userRepo       interfaces.UserRepository
	txRepo         interfaces.TransactionRepository
	eventPublisher interfaces.EventPublisher
}

// NewStreakService creates a new streak service bound to one unit of work
func NewStreakService(streakRepo interfaces.StreakRepository, userRepo interfaces.UserRepository, txRepo interfaces.TransactionRepository, eventPublisher interfaces.EventPublisher) *StreakService {
	return &StreakService{
		streakRepo:     streakRepo,
		userRepo:       userRepo,
		txRepo:         txRepo,
		eventPublisher: eventPublisher,
	}
}

// Reward returns the payout for the given consecutive-day count.
func (s *StreakService) Reward(streak int) int64 {
	multiplier := streak
	if multiplier < 1 {
		multiplier = 1
	} else if multiplier > streakRewardCap {
		multiplier = streakRewardCap
	}
	return streakBaseReward * int64(multiplier)
}

// Claim pays the daily reward. Eligibility is checked only after the
// row lock is held; the lock is released at commit.
func (s *StreakService) Claim(ctx context.Context, userID int64, now time.Time) (*entities.StreakClaimResult, error) {
	streak, err := s.streakRepo.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock streak row for user %d: %w", userID, err)
	}

	if streak.ClaimedToday(now) {
		return nil, entities.ErrStreakAlreadyClaimed
	}

	if streak.ContinuesStreak(now) {
		streak.CurrentStreak++
	} else {
		streak.CurrentStreak = 1
	}
	claimedAt := now.UTC()
	streak.LastClaimedAt = &claimedAt

	if err := s.streakRepo.Update(ctx, streak); err != nil {
		return nil, fmt.Errorf("failed to update streak for user %d: %w", userID, err)
	}

	reward := s.Reward(streak.CurrentStreak)
	newBalance, err := s.userRepo.AdjustBalance(ctx, userID, reward)
	if err != nil {
		return nil, fmt.Errorf("failed to credit streak reward for user %d: %w", userID, err)
	}

	tx := &entities.Transaction{
		UserID:        userID,
		Type:          entities.TransactionTypeStreakReward,
		Payout:        reward,
		BalanceBefore: newBalance - reward,
		BalanceAfter:  newBalance,
		Metadata:      map[string]any{"streak": streak.CurrentStreak},
	}
	if err := utils.RecordTransaction(ctx, s.txRepo, s.eventPublisher, tx); err != nil {
		return nil, err
	}

	return &entities.StreakClaimResult{
		Streak:  streak.CurrentStreak,
		Reward:  reward,
		Balance: newBalance,
	}, nil
}
