package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-localize/internal/auth"
)

// requireUser guards a handler behind bearer-token verification. The
// verified identity is stored on the request context for handlers that need
// the caller's email.
func (api *API) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api.verifier == nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
			return
		}
		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, err)
			return
		}
		identity, err := api.verifier.Verify(r.Context(), token)
		if err != nil {
			api.logger.Debug("token rejected", "error", err)
			writeError(w, err)
			return
		}
		next(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	}
}

// CORSConfig controls cross-origin headers. An empty origin list allows any
// origin, mirroring permissive hosted-dashboard defaults.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

func corsMiddleware(cfg CORSConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && originAllowed(cfg.AllowedOrigins, origin) {
			allowed := origin
			if len(cfg.AllowedOrigins) == 0 && !cfg.AllowCredentials {
				allowed = "*"
			}
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func originAllowed(allowed []string, origin string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.EqualFold(candidate, origin) {
			return true
		}
	}
	return false
}
