package logic

import (
	"sort"

	"github.com/focusclub/leaderboard-api/internal/models"
)

// RecomputeWeeklyScores replays per-day scoring over every user's daily
// window and returns new snapshots in the same order. ScoreWeek is rebuilt
// from scratch so late joiners and corrected history stay consistent.
//
// The first time a day index is scored for a user, the awarded points are
// appended to the all-time score record; later replays of the same day leave
// the record alone. ScoreAlltime is always recomputed as the sum of the
// record.
func RecomputeWeeklyScores(stats []models.UserStat) []models.UserStat {
	out := make([]models.UserStat, len(stats))
	pos := make(map[string]int, len(stats))
	days := make(map[int]struct{})
	for i, s := range stats {
		out[i] = s.Clone()
		out[i].ScoreWeek = 0
		pos[s.OwnerID] = i
		for d := range s.DailyStats {
			days[d] = struct{}{}
		}
	}

	// Day results are independent of each other; iterate in index order so
	// the record append order is deterministic.
	ordered := make([]int, 0, len(days))
	for d := range days {
		ordered = append(ordered, d)
	}
	sort.Ints(ordered)

	for _, day := range ordered {
		entries := make([]ScoreEntry, 0, len(out))
		for i := range out {
			if v, ok := out[i].DailyStats[day]; ok {
				entries = append(entries, ScoreEntry{ID: out[i].OwnerID, Metric: v})
			}
		}

		points, scored := RankAndScore(entries)
		if !scored {
			continue
		}

		for owner, pts := range points {
			s := &out[pos[owner]]
			s.ScoreWeek += pts
			if _, seen := s.ScoredDays[day]; !seen {
				s.ScoredDays[day] = pts
				s.AllTimeScoreRecord = append(s.AllTimeScoreRecord, pts)
			}
		}
	}

	for i := range out {
		out[i].ScoreAlltime = sumRecord(out[i].AllTimeScoreRecord)
	}
	return out
}

func sumRecord(record []int) int {
	var total int
	for _, p := range record {
		total += p
	}
	return total
}
