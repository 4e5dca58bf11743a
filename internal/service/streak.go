package service

import (
	"time"

	"github.com/ccorchooo/CalAIFree/internal/model"
)

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// AdvanceStreak applies the streak transition for a meal logged at now:
// last qualifying day was yesterday -> count+1; today -> unchanged;
// anything else (including no prior state) -> reset to 1.
func AdvanceStreak(prev model.StreakState, now time.Time) model.StreakState {
	yesterday := now.AddDate(0, 0, -1)
	switch {
	case prev.LastDate.IsZero():
		return model.StreakState{StreakCount: 1, LastDate: now}
	case sameDay(prev.LastDate, yesterday):
		return model.StreakState{StreakCount: prev.StreakCount + 1, LastDate: now}
	case sameDay(prev.LastDate, now):
		return model.StreakState{StreakCount: prev.StreakCount, LastDate: now}
	default:
		return model.StreakState{StreakCount: 1, LastDate: now}
	}
}

// ResetIfStale zeroes the streak count when the last qualifying day is
// neither today nor yesterday. Applied once at session load.
func ResetIfStale(st model.StreakState, now time.Time) (model.StreakState, bool) {
	if st.LastDate.IsZero() || st.StreakCount == 0 {
		return st, false
	}
	if sameDay(st.LastDate, now) || sameDay(st.LastDate, now.AddDate(0, 0, -1)) {
		return st, false
	}
	st.StreakCount = 0
	return st, true
}
