package handlers

import (
	"net/http"

	"finance-tracker-server/src/cache"

	"github.com/go-chi/chi/v5"
)

// ClearCache drops every entry in the named cache. Super admins only.
func ClearCache(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := env.logger(r)
		name := chi.URLParam(r, "cache_name")

		ns, err := cache.ParseNamespace(name)
		if err != nil {
			log.Error().Err(err).Msg("Invalid cache name")
			writeError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}

		cleared := 0
		if env.Cache != nil {
			cleared = env.Cache.Clear(ns)
		}
		log.Info().Str("cache", name).Int("cleared", cleared).Msg("Cleared cache")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "cache cleared",
			"cache":   name,
			"cleared": cleared,
		})
	}
}
