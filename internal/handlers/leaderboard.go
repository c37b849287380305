package handlers

import (
	"net/http"
	"strconv"

	"github.com/focusclub/leaderboard-api/internal/logic"
	"github.com/focusclub/leaderboard-api/internal/models"
)

// Metric selectors per leaderboard period
var periodMetrics = map[string]func(models.UserStat) float64{
	"today":   func(s models.UserStat) float64 { return s.TimeToday },
	"week":    func(s models.UserStat) float64 { return float64(s.ScoreWeek) },
	"alltime": func(s models.UserStat) float64 { return float64(s.ScoreAlltime) },
}

// GetLeaderboard returns the ranked board for a period
// @Summary Leaderboard
// @Description Ranked users for today, the current week or all time
// @Tags Leaderboard
// @Produce json
// @Param period query string false "Period (today, week, alltime)" default(week)
// @Param limit query int false "Limit (capped at 100)" default(25)
// @Success 200 {object} models.Leaderboard
// @Failure 500 {object} map[string]string
// @Router /leaderboard [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "week"
	}
	metric, ok := periodMetrics[period]
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "Unknown period")
		return
	}

	limit := 25
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			if parsed > 100 {
				parsed = 100
			}
			limit = parsed
		}
	}

	stats, err := h.stats.FindAll(ctx)
	if err != nil {
		h.logger.Errorw("Failed to load stats for leaderboard", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}

	byOwner := make(map[string]models.UserStat, len(stats))
	entries := make([]logic.ScoreEntry, 0, len(stats))
	for _, s := range stats {
		byOwner[s.OwnerID] = s
		entries = append(entries, logic.ScoreEntry{ID: s.OwnerID, Metric: metric(s)})
	}

	board := models.Leaderboard{
		Period:     period,
		Entries:    []models.LeaderboardEntry{},
		TotalUsers: len(stats),
	}
	for _, ranked := range logic.DenseRanks(entries) {
		if len(board.Entries) >= limit {
			break
		}
		s := byOwner[ranked.ID]
		board.Entries = append(board.Entries, models.LeaderboardEntry{
			Rank:         ranked.Rank,
			OwnerID:      s.OwnerID,
			Value:        ranked.Metric,
			TimeToday:    s.TimeToday,
			TimeTotal:    s.TimeTotal,
			ScoreWeek:    s.ScoreWeek,
			ScoreAlltime: s.ScoreAlltime,
		})
	}

	h.jsonResponse(w, http.StatusOK, board)
}
