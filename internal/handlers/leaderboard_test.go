package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/focusclub/leaderboard-api/internal/models"
)

func TestGetLeaderboard(t *testing.T) {
	stats := &MockStatStore{Records: []models.UserStat{
		statWith("a", 10, 100, 8, 20),
		statWith("b", 40, 80, 8, 15),
		statWith("c", 5, 60, 3, 30),
	}}
	h := newTestHandler(stats, &MockCycleRunner{})

	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantOrder  []string
		wantRanks  []int
	}{
		{
			name:       "WeekPeriodWithTie",
			url:        "/api/v1/leaderboard?period=week",
			wantStatus: 200,
			wantOrder:  []string{"a", "b", "c"},
			wantRanks:  []int{1, 1, 2}, // dense: tied leaders, next rank +1
		},
		{
			name:       "TodayPeriod",
			url:        "/api/v1/leaderboard?period=today",
			wantStatus: 200,
			wantOrder:  []string{"b", "a", "c"},
			wantRanks:  []int{1, 2, 3},
		},
		{
			name:       "AlltimePeriod",
			url:        "/api/v1/leaderboard?period=alltime",
			wantStatus: 200,
			wantOrder:  []string{"c", "a", "b"},
			wantRanks:  []int{1, 2, 3},
		},
		{
			name:       "DefaultsToWeek",
			url:        "/api/v1/leaderboard",
			wantStatus: 200,
			wantOrder:  []string{"a", "b", "c"},
			wantRanks:  []int{1, 1, 2},
		},
		{
			name:       "LimitApplied",
			url:        "/api/v1/leaderboard?period=today&limit=2",
			wantStatus: 200,
			wantOrder:  []string{"b", "a"},
			wantRanks:  []int{1, 2},
		},
		{
			name:       "UnknownPeriod",
			url:        "/api/v1/leaderboard?period=decade",
			wantStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			w := httptest.NewRecorder()
			h.GetLeaderboard(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != 200 {
				return
			}

			var board models.Leaderboard
			if err := json.Unmarshal(w.Body.Bytes(), &board); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if board.TotalUsers != 3 {
				t.Errorf("total_users = %d, want 3", board.TotalUsers)
			}
			if len(board.Entries) != len(tt.wantOrder) {
				t.Fatalf("got %d entries, want %d", len(board.Entries), len(tt.wantOrder))
			}
			for i, e := range board.Entries {
				if e.OwnerID != tt.wantOrder[i] {
					t.Errorf("position %d: owner = %s, want %s", i, e.OwnerID, tt.wantOrder[i])
				}
				if e.Rank != tt.wantRanks[i] {
					t.Errorf("position %d: rank = %d, want %d", i, e.Rank, tt.wantRanks[i])
				}
			}
		})
	}
}

func TestGetLeaderboard_LimitClampedTo100(t *testing.T) {
	records := make([]models.UserStat, 0, 120)
	for i := 0; i < 120; i++ {
		records = append(records, statWith(fmt.Sprintf("u%03d", i), float64(i), float64(i), i, i))
	}
	h := newTestHandler(&MockStatStore{Records: records}, &MockCycleRunner{})

	req := httptest.NewRequest("GET", "/api/v1/leaderboard?period=today&limit=500", nil)
	w := httptest.NewRecorder()
	h.GetLeaderboard(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var board models.Leaderboard
	if err := json.Unmarshal(w.Body.Bytes(), &board); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(board.Entries) != 100 {
		t.Errorf("got %d entries, want the 100 cap", len(board.Entries))
	}
	if board.TotalUsers != 120 {
		t.Errorf("total_users = %d, want 120", board.TotalUsers)
	}
}

func TestGetLeaderboard_StoreFailure(t *testing.T) {
	h := newTestHandler(&MockStatStore{FindAllErr: errBoom}, &MockCycleRunner{})

	req := httptest.NewRequest("GET", "/api/v1/leaderboard", nil)
	w := httptest.NewRecorder()
	h.GetLeaderboard(w, req)

	if w.Code != 500 {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
