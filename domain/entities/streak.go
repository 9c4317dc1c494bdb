package entities

import "time"

// DailyStreak tracks consecutive daily reward claims for one user. The
// row is read under an exclusive lock during a claim so two concurrent
// claims cannot both pay out.
type DailyStreak struct {
	UserID        int64      `db:"user_id"`
	CurrentStreak int        `db:"current_streak"`
	LastClaimedAt *time.Time `db:"last_claimed_at"`
}

// ClaimedToday reports whether the streak was already claimed on the
// given UTC day.
func (s *DailyStreak) ClaimedToday(now time.Time) bool {
	if s.LastClaimedAt == nil {
		return false
	}
	return s.LastClaimedAt.UTC().Truncate(24 * time.Hour).Equal(now.UTC().Truncate(24 * time.Hour))
}

// ContinuesStreak reports whether claiming now extends the streak, i.e.
// the previous claim was on the immediately preceding UTC day.
func (s *DailyStreak) ContinuesStreak(now time.Time) bool {
	if s.LastClaimedAt == nil {
		return false
	}
	yesterday := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)
	return s.LastClaimedAt.UTC().Truncate(24 * time.Hour).Equal(yesterday)
}

// StreakClaimResult is returned from a successful daily claim.
type StreakClaimResult struct {
	Streak  int   `json:"streak"`
	Reward  int64 `json:"reward"`
	Balance int64 `json:"balance"`
}
