package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const authOwnerKey contextKey = "auth_owner_id"

// hashToken creates a SHA256 hash of a token for secure storage lookup
func hashToken(token string) string {
	h := sha256.New()
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{
		"postgres": h.pg.Ping(ctx) == nil,
		"redis":    h.redis.Ping(ctx).Err() == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	})
}

// AuthMiddleware validates client API tokens. Token issuance lives in the
// account service; this only verifies.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		token = strings.TrimPrefix(token, "Bearer ")

		if token == "" {
			h.errorResponse(w, http.StatusUnauthorized, "Missing API token")
			return
		}

		ctx := r.Context()
		var ownerID string
		err := h.pg.QueryRow(ctx,
			"SELECT owner_id FROM api_tokens WHERE token_hash = $1 AND revoked = false",
			hashToken(token)).Scan(&ownerID)

		if err != nil || ownerID == "" {
			h.errorResponse(w, http.StatusUnauthorized, "Invalid API token")
			return
		}

		ctx = context.WithValue(ctx, authOwnerKey, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authOwnerFromContext extracts the verified owner id set by AuthMiddleware.
func authOwnerFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(authOwnerKey).(string); ok {
		return id
	}
	return ""
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
