package logic

import (
	"github.com/focusclub/leaderboard-api/internal/models"
)

// Rollover applies the once-per-day transition for a single user and returns
// a new snapshot. The input is never mutated.
//
// The state machine is keyed by LastUpdated:
//   - "" (never rolled over): stamp today and stop; no scoring on the
//     bootstrap cycle.
//   - today: no-op, which makes the whole transition idempotent per
//     (user, date).
//   - any other date: fold TimeToday into DailyStats at the next contiguous
//     index and reset the counter. Filling the seventh day completes the
//     week: the window is cleared entirely (no seed day is retained) and
//     the weekly score and scored-day bookkeeping reset with it.
func Rollover(stat models.UserStat, today string) (models.UserStat, bool) {
	switch stat.LastUpdated {
	case "":
		out := stat.Clone()
		out.LastUpdated = today
		return out, true
	case today:
		return stat, false
	}

	out := stat.Clone()
	out.DailyStats[len(out.DailyStats)+1] = out.TimeToday
	out.TimeToday = 0
	out.LastUpdated = today

	if len(out.DailyStats) >= models.DaysPerWeek {
		out.DailyStats = make(map[int]float64)
		out.ScoredDays = make(map[int]int)
		out.ScoreWeek = 0
	}

	out.TimeTotal = sumDaily(out.DailyStats) + out.TimeToday
	return out, true
}

// ValidateStat rejects records that would corrupt aggregate computation:
// negative counters, negative day values, or a non-contiguous day window.
func ValidateStat(stat models.UserStat) error {
	if stat.TimeToday < 0 {
		return &MalformedStatError{OwnerID: stat.OwnerID, Reason: "negative time_today"}
	}
	if stat.TimeTotal < 0 {
		return &MalformedStatError{OwnerID: stat.OwnerID, Reason: "negative time_total"}
	}
	for day := 1; day <= len(stat.DailyStats); day++ {
		v, ok := stat.DailyStats[day]
		if !ok {
			return &MalformedStatError{OwnerID: stat.OwnerID, Reason: "daily_stats indices are not contiguous from 1"}
		}
		if v < 0 {
			return &MalformedStatError{OwnerID: stat.OwnerID, Reason: "negative daily_stats value"}
		}
	}
	return nil
}

func sumDaily(daily map[int]float64) float64 {
	var total float64
	for _, v := range daily {
		total += v
	}
	return total
}
