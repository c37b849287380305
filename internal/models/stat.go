package models

import "time"

// DaysPerWeek is the size of the weekly window before a reset.
const DaysPerWeek = 7

// UserStat is the per-user time-tracking aggregate. One record per user,
// owned by that user and mutated only by the leaderboard cycle.
type UserStat struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`

	// TimeToday accumulates focus minutes since the last rollover.
	TimeToday float64 `json:"time_today"`
	// TimeTotal is the accumulated time of the current weekly window:
	// sum of DailyStats plus TimeToday. Reset when the window resets.
	TimeTotal float64 `json:"time_total"`

	// DailyStats maps day index (1..N, contiguous, at most 7) to the
	// minutes recorded for that day. Index 1 is the oldest retained day.
	DailyStats map[int]float64 `json:"daily_stats"`

	// ScoreWeek holds the points earned in the current weekly cycle. It is
	// always recomputable by replaying per-day scoring over DailyStats.
	ScoreWeek int `json:"score_week"`
	// ScoreAlltime is the sum of AllTimeScoreRecord, never incremented
	// directly.
	ScoreAlltime int `json:"score_alltime"`
	// AllTimeScoreRecord is the append-only sequence of awarded points
	// underlying ScoreAlltime.
	AllTimeScoreRecord []int `json:"all_time_score_record"`
	// ScoredDays tracks which day indices of the current window have
	// already contributed to AllTimeScoreRecord, and with how many points.
	// Cleared together with DailyStats on a window reset.
	ScoredDays map[int]int `json:"scored_days"`

	// LastUpdated is the client-local calendar date (DD/MM/YYYY) of the
	// last rollover. Empty string means the record has never rolled over.
	LastUpdated string `json:"last_updated"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserStat returns the zeroed record created alongside a user account.
func NewUserStat(id, ownerID string) *UserStat {
	now := time.Now().UTC()
	return &UserStat{
		ID:                 id,
		OwnerID:            ownerID,
		DailyStats:         make(map[int]float64),
		AllTimeScoreRecord: []int{},
		ScoredDays:         make(map[int]int),
		LastUpdated:        "",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Clone returns a deep copy so cycle stages can transform snapshots without
// aliasing the caller's maps and slices.
func (s UserStat) Clone() UserStat {
	out := s
	out.DailyStats = make(map[int]float64, len(s.DailyStats))
	for d, v := range s.DailyStats {
		out.DailyStats[d] = v
	}
	out.ScoredDays = make(map[int]int, len(s.ScoredDays))
	for d, p := range s.ScoredDays {
		out.ScoredDays[d] = p
	}
	out.AllTimeScoreRecord = make([]int, len(s.AllTimeScoreRecord))
	copy(out.AllTimeScoreRecord, s.AllTimeScoreRecord)
	return out
}

// Equal reports whether two snapshots carry the same cycle-relevant state.
// Timestamps and the row ID are ignored.
func (s UserStat) Equal(other UserStat) bool {
	if s.OwnerID != other.OwnerID ||
		s.TimeToday != other.TimeToday ||
		s.TimeTotal != other.TimeTotal ||
		s.ScoreWeek != other.ScoreWeek ||
		s.ScoreAlltime != other.ScoreAlltime ||
		s.LastUpdated != other.LastUpdated {
		return false
	}
	if len(s.DailyStats) != len(other.DailyStats) {
		return false
	}
	for d, v := range s.DailyStats {
		if ov, ok := other.DailyStats[d]; !ok || ov != v {
			return false
		}
	}
	if len(s.ScoredDays) != len(other.ScoredDays) {
		return false
	}
	for d, p := range s.ScoredDays {
		if op, ok := other.ScoredDays[d]; !ok || op != p {
			return false
		}
	}
	if len(s.AllTimeScoreRecord) != len(other.AllTimeScoreRecord) {
		return false
	}
	for i, p := range s.AllTimeScoreRecord {
		if other.AllTimeScoreRecord[i] != p {
			return false
		}
	}
	return true
}
