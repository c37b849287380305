package logic

import "sort"

// Point scale by dense competition rank. Everything past third place
// scores zero.
var rankPoints = [...]int{5, 3, 1}

// ScoreEntry is one (user, metric) pair fed into the scoring policy.
type ScoreEntry struct {
	ID     string
	Metric float64
}

// RankedEntry pairs an entry with its 1-based dense competition rank.
type RankedEntry struct {
	ScoreEntry
	Rank int
}

// PointsForRank maps a 0-based dense rank to period points.
func PointsForRank(rank int) int {
	if rank >= 0 && rank < len(rankPoints) {
		return rankPoints[rank]
	}
	return 0
}

// RankAndScore sorts entries by metric descending, assigns dense competition
// ranks (ties share a rank, the next distinct metric advances the rank by
// exactly one) and maps ranks to points.
//
// When every metric sits at the zero baseline there is nothing to rank;
// scored is false and the caller must leave prior scores untouched.
func RankAndScore(entries []ScoreEntry) (points map[string]int, scored bool) {
	if len(entries) == 0 {
		return nil, false
	}
	allZero := true
	for _, e := range entries {
		if e.Metric > 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil, false
	}

	ranked := DenseRanks(entries)
	points = make(map[string]int, len(ranked))
	for _, r := range ranked {
		points[r.ID] = PointsForRank(r.Rank - 1)
	}
	return points, true
}

// DenseRanks returns entries sorted by metric descending with 1-based dense
// competition ranks assigned.
func DenseRanks(entries []ScoreEntry) []RankedEntry {
	sorted := make([]ScoreEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Metric > sorted[j].Metric
	})

	ranked := make([]RankedEntry, 0, len(sorted))
	rank := 0
	for i, e := range sorted {
		if i == 0 || e.Metric < sorted[i-1].Metric {
			rank++
		}
		ranked = append(ranked, RankedEntry{ScoreEntry: e, Rank: rank})
	}
	return ranked
}
