package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          pinger
	startupTime time.Time
}

func newHealthHandler(db pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		startupTime: startupTime,
	}
}

// healthz reports uptime and whether the database answers. A database outage
// turns the response into a 503.
func (h healthHandler) healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := healthResponse{
			Status:    "ok",
			Database:  "ok",
			Uptime:    time.Since(h.startupTime).Round(time.Second).String(),
			StartedAt: h.startupTime.UTC().Format(time.RFC3339),
		}

		status := http.StatusOK
		if h.db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := h.db.Ping(ctx); err != nil {
				h.logger.Error().Err(err).Msg("database ping failed")
				response.Status = "degraded"
				response.Database = "unreachable"
				status = http.StatusServiceUnavailable
			}
		}

		h.responder.WriteJSONStatus(w, status, response)
	}
}

// csrfToken hands out a token for the X-CSRF-Token header. The matching
// cookie is set on the same response.
func (h healthHandler) csrfToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := csrf.Token(r)
		w.Header().Set(csrfHeader, token)
		h.responder.WriteJSON(w, csrfTokenResponse{CSRFToken: token})
	}
}
