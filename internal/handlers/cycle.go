package handlers

import (
	"errors"
	"net/http"

	"github.com/focusclub/leaderboard-api/internal/worker"
)

// RunCycle triggers a leaderboard cycle on demand
// @Summary Run leaderboard cycle
// @Tags Leaderboard
// @Produce json
// @Success 200 {object} models.CycleReport
// @Failure 409 {object} map[string]string
// @Router /cycle/run [post]
func (h *Handler) RunCycle(w http.ResponseWriter, r *http.Request) {
	report, err := h.cycle.TriggerCycle(r.Context())
	if err != nil {
		if errors.Is(err, worker.ErrCycleRunning) {
			h.errorResponse(w, http.StatusConflict, "A cycle is already running")
			return
		}
		h.logger.Errorw("Manual cycle trigger failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Cycle failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, report)
}

// LastCycleReport returns the most recent cycle report
// @Summary Last cycle report
// @Tags Leaderboard
// @Produce json
// @Success 200 {object} models.CycleReport
// @Failure 404 {object} map[string]string
// @Router /cycle/last [get]
func (h *Handler) LastCycleReport(w http.ResponseWriter, r *http.Request) {
	report := h.cycle.LastReport()
	if report == nil {
		h.errorResponse(w, http.StatusNotFound, "No cycle has completed yet")
		return
	}

	h.jsonResponse(w, http.StatusOK, report)
}
