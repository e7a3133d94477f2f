package handlers

import (
	"errors"
	"net/http"

	"finance-tracker-server/src/middleware"
	"finance-tracker-server/src/store"
)

func GetUser(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := env.logger(r)
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := env.Users.GetUserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "user not found", nil)
				return
			}
			log.Error().Err(err).Msg("Failed to get user")
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// DeleteUser removes the caller's account and every record it owns. The body
// must repeat the caller's id.
func DeleteUser(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := env.logger(r)
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req struct {
			UserID int64 `json:"user_id"`
		}
		if err := decodeBody(w, r, &req); err != nil {
			log.Error().Err(err).Msg("Failed to decode delete user request body")
			writeError(w, http.StatusBadRequest, "invalid request", nil)
			return
		}
		if req.UserID != userID {
			log.Error().Int64("requested_user_id", req.UserID).Msg("Forbidden delete attempt")
			writeError(w, http.StatusForbidden, "forbidden", nil)
			return
		}

		if err := env.Users.DeleteUser(r.Context(), userID); err != nil {
			log.Error().Err(err).Msg("Failed to delete user")
			writeError(w, statusFor(err), "failed to delete user", nil)
			return
		}

		log.Info().Msg("User deleted with all associated data")
		writeJSON(w, http.StatusOK, map[string]string{
			"message":  "user deleted",
			"redirect": "/register",
		})
	}
}
