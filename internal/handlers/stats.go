package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/focusclub/leaderboard-api/internal/models"
	"github.com/focusclub/leaderboard-api/internal/store"
)

// GetUserStats returns one user's stat record
// @Summary User statistics
// @Tags Stats
// @Produce json
// @Param ownerID path string true "Owner ID"
// @Success 200 {object} models.UserStat
// @Failure 404 {object} map[string]string
// @Router /stats/{ownerID} [get]
func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	stat, err := h.stats.FindOne(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, store.ErrStatNotFound) {
			h.errorResponse(w, http.StatusNotFound, "No stats for this user")
			return
		}
		h.logger.Errorw("Failed to load user stats", "owner", ownerID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	h.jsonResponse(w, http.StatusOK, stat)
}

// CreateUserStats creates the zeroed stat record for a new account
// @Summary Create stat record
// @Tags Stats
// @Accept json
// @Produce json
// @Success 201 {object} models.UserStat
// @Router /stats [post]
func (h *Handler) CreateUserStats(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStatsRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "owner_id must be a UUID")
		return
	}

	stat := models.NewUserStat(uuid.New().String(), req.OwnerID)
	created, err := h.stats.Create(r.Context(), stat)
	if err != nil {
		h.logger.Errorw("Failed to create stat record", "owner", req.OwnerID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to create stats")
		return
	}

	h.jsonResponse(w, http.StatusCreated, created)
}

// AddTime adds focus minutes to the caller's running daily counter. The
// counter is folded into history by the next rollover, never here.
// @Summary Record focus time
// @Tags Stats
// @Accept json
// @Produce json
// @Param ownerID path string true "Owner ID"
// @Success 200 {object} models.AddTimeResponse
// @Router /stats/{ownerID}/time [post]
func (h *Handler) AddTime(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	if auth := authOwnerFromContext(r.Context()); auth != "" && auth != ownerID {
		h.errorResponse(w, http.StatusForbidden, "Token does not match user")
		return
	}

	var req models.AddTimeRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "minutes must be greater than zero")
		return
	}

	// Single in-place increment. A read-modify-write here could carry a
	// stale snapshot over a concurrent rollover.
	updated, err := h.stats.AddTime(r.Context(), ownerID, req.Minutes)
	if err != nil {
		if errors.Is(err, store.ErrStatNotFound) {
			h.errorResponse(w, http.StatusNotFound, "No stats for this user")
			return
		}
		h.logger.Errorw("Failed to record focus time", "owner", ownerID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to record time")
		return
	}

	h.jsonResponse(w, http.StatusOK, models.AddTimeResponse{
		OwnerID:   updated.OwnerID,
		TimeToday: updated.TimeToday,
		TimeTotal: updated.TimeTotal,
	})
}
