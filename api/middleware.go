package api

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/csrf"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// csrfHeader carries the token on mutating requests
const csrfHeader = "X-CSRF-Token"

type authMiddleware struct {
	responder Responder
	tokens    *tokenIssuer
}

func newAuthMiddleware(tokens *tokenIssuer) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		tokens:    tokens,
	}
}

// authenticate admits requests carrying a valid admin bearer token
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		subject, err := m.tokens.Verify(token)
		if err != nil {
			m.responder.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxWithAdmin(r.Context(), subject)))
	})
}

// statusResponseWriter remembers the status and size of a response for logging
type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func newStatusResponseWriter(w http.ResponseWriter) *statusResponseWriter {
	return &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// LogInternalServerErrors turns panics into a JSON 500 and logs every 5xx.
func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := newStatusResponseWriter(w)
		logger := log.With().
			Str("requestId", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		defer func() {
			if rec := recover(); rec != nil {
				logger.Error().Interface("panic", rec).Bytes("stack", debug.Stack()).Msg("recovered from panic")
				if !srw.wroteHeader {
					NewResponder(logger).WriteError(srw, errs.NewInternalError("internal server error"))
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status >= http.StatusInternalServerError {
			logger.Error().Int("status", srw.status).Msg("server error response")
		}
	})
}

// corsMiddleware allows credentialed requests from the configured frontends
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", csrfHeader},
		ExposedHeaders:   []string{csrfHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// csrfMiddleware guards every mutating request with a double-submit token.
// Rejections are answered with 403 and an error body.
func csrfMiddleware(authKey []byte, secure bool, trustedOrigins []string) func(http.Handler) http.Handler {
	responder := NewResponder(log.With().Str("handlerName", "csrfMiddleware").Logger())

	sameSite := csrf.SameSiteLaxMode
	if secure {
		// the admin and public frontends may live on other domains
		sameSite = csrf.SameSiteNoneMode
	}

	protect := csrf.Protect(authKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(sameSite),
		csrf.RequestHeader(csrfHeader),
		csrf.TrustedOrigins(trustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			responder.WriteError(w, errs.NewCSRFError(csrf.FailureReason(r)))
		})),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS == nil && !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}

// trustedOriginHosts converts the CORS origins into the host form the CSRF
// origin check compares against.
func trustedOriginHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" || origin == "*" {
			continue
		}
		if i := strings.Index(origin, "://"); i >= 0 {
			origin = origin[i+3:]
		}
		hosts = append(hosts, strings.TrimSuffix(origin, "/"))
	}
	return hosts
}

// ColoredHTTPLoggingMiddleware writes one console line per request, leveled by status.
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	console := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := newStatusResponseWriter(w)

		next.ServeHTTP(srw, r)

		level := zerolog.InfoLevel
		if srw.status >= http.StatusInternalServerError {
			level = zerolog.ErrorLevel
		} else if srw.status >= http.StatusBadRequest {
			level = zerolog.WarnLevel
		}

		console.WithLevel(level).
			Str("requestId", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Int("bytes", srw.bytes).
			Dur("duration", time.Since(start)).
			Str("remoteAddr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
