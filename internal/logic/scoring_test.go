package logic

import (
	"reflect"
	"testing"
)

func TestRankAndScore(t *testing.T) {
	tests := []struct {
		name       string
		entries    []ScoreEntry
		wantPoints map[string]int
		wantScored bool
	}{
		{
			name: "DenseRanksWithTieAtTop",
			entries: []ScoreEntry{
				{ID: "a", Metric: 50},
				{ID: "b", Metric: 50},
				{ID: "c", Metric: 30},
				{ID: "d", Metric: 10},
			},
			// tied leaders share rank 0; next distinct value is rank 1,
			// not rank 2
			wantPoints: map[string]int{"a": 5, "b": 5, "c": 1, "d": 0},
			wantScored: true,
		},
		{
			name: "ThreeWayTieForFirst",
			entries: []ScoreEntry{
				{ID: "a", Metric: 10},
				{ID: "b", Metric: 10},
				{ID: "c", Metric: 10},
				{ID: "d", Metric: 5},
			},
			wantPoints: map[string]int{"a": 5, "b": 5, "c": 5, "d": 3},
			wantScored: true,
		},
		{
			name: "SingleEntry",
			entries: []ScoreEntry{
				{ID: "a", Metric: 42},
			},
			wantPoints: map[string]int{"a": 5},
			wantScored: true,
		},
		{
			name: "BeyondThirdRankScoresZero",
			entries: []ScoreEntry{
				{ID: "a", Metric: 40},
				{ID: "b", Metric: 30},
				{ID: "c", Metric: 20},
				{ID: "d", Metric: 10},
				{ID: "e", Metric: 5},
			},
			wantPoints: map[string]int{"a": 5, "b": 3, "c": 1, "d": 0, "e": 0},
			wantScored: true,
		},
		{
			name: "ZeroMetricStillRanked",
			entries: []ScoreEntry{
				{ID: "a", Metric: 15},
				{ID: "b", Metric: 0},
			},
			wantPoints: map[string]int{"a": 5, "b": 3},
			wantScored: true,
		},
		{
			name: "AllZeroBaselineIsNoOp",
			entries: []ScoreEntry{
				{ID: "a", Metric: 0},
				{ID: "b", Metric: 0},
				{ID: "c", Metric: 0},
			},
			wantScored: false,
		},
		{
			name:       "EmptyInput",
			entries:    nil,
			wantScored: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, scored := RankAndScore(tt.entries)
			if scored != tt.wantScored {
				t.Fatalf("scored = %v, want %v", scored, tt.wantScored)
			}
			if !tt.wantScored {
				if len(points) != 0 {
					t.Errorf("no-op guard returned points: %v", points)
				}
				return
			}
			if !reflect.DeepEqual(points, tt.wantPoints) {
				t.Errorf("points = %v, want %v", points, tt.wantPoints)
			}
		})
	}
}

func TestRankAndScore_TiesGetIdenticalPoints(t *testing.T) {
	entries := []ScoreEntry{
		{ID: "a", Metric: 20},
		{ID: "b", Metric: 20},
		{ID: "c", Metric: 20},
		{ID: "d", Metric: 7},
		{ID: "e", Metric: 7},
	}
	points, scored := RankAndScore(entries)
	if !scored {
		t.Fatal("expected entries to be scored")
	}
	if points["a"] != points["b"] || points["b"] != points["c"] {
		t.Errorf("tied leaders got different points: %v", points)
	}
	if points["d"] != points["e"] {
		t.Errorf("tied runners-up got different points: %v", points)
	}
	if points["d"] >= points["a"] {
		t.Errorf("lower rank scored at least as much as higher rank: %v", points)
	}
}

func TestDenseRanks(t *testing.T) {
	entries := []ScoreEntry{
		{ID: "d", Metric: 10},
		{ID: "a", Metric: 50},
		{ID: "c", Metric: 30},
		{ID: "b", Metric: 50},
	}
	ranked := DenseRanks(entries)

	wantOrder := []string{"a", "b", "c", "d"}
	wantRanks := []int{1, 1, 2, 3}
	for i, r := range ranked {
		if r.ID != wantOrder[i] {
			t.Errorf("position %d: got %s, want %s", i, r.ID, wantOrder[i])
		}
		if r.Rank != wantRanks[i] {
			t.Errorf("entry %s: rank = %d, want %d", r.ID, r.Rank, wantRanks[i])
		}
	}

	// points never increase as ranks increase
	for i := 1; i < len(ranked); i++ {
		if PointsForRank(ranked[i].Rank-1) > PointsForRank(ranked[i-1].Rank-1) {
			t.Errorf("points increased between positions %d and %d", i-1, i)
		}
	}
}

func TestPointsForRank(t *testing.T) {
	want := map[int]int{0: 5, 1: 3, 2: 1, 3: 0, 10: 0, -1: 0}
	for rank, pts := range want {
		if got := PointsForRank(rank); got != pts {
			t.Errorf("PointsForRank(%d) = %d, want %d", rank, got, pts)
		}
	}
}
