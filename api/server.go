package api

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rpupo63/studio-site-backend/database"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rs/zerolog/log"
)

// uploadsPath is where locally stored images are served from
const uploadsPath = "/uploads"

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(ctx context.Context, database database.Database, c map[string]string) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	tokens, err := newTokenIssuerFromConfig(c)
	if err != nil {
		return Server{}, err
	}
	if config.GetString(c, "ADMIN_PASSWORD", "") == "" {
		return Server{}, errs.NewConfigMissingError("ADMIN_PASSWORD")
	}

	handlers, err := initializeHandlers(ctx, database, c, tokens, startupTime)
	if err != nil {
		return Server{}, err
	}

	csrfKey, err := csrfKeyFromConfig(c)
	if err != nil {
		return Server{}, err
	}

	opts := []func(*router){withConfig(c), withCSRFKey(csrfKey)}
	if config.GetString(c, "S3_BUCKET", "") == "" {
		opts = append(opts, withUploadDir(uploadDir(c)))
	}
	router := newRouter(handlers, tokens, opts...)

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 60)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 60)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

func newTokenIssuerFromConfig(c map[string]string) (*tokenIssuer, error) {
	secret := config.GetString(c, "JWT_SECRET", "")
	if secret == "" {
		return nil, errs.NewConfigMissingError("JWT_SECRET")
	}
	if len(secret) < 32 {
		return nil, errs.NewConfigInvalidError("JWT_SECRET", "must be at least 32 characters")
	}
	ttl := time.Duration(config.GetInt(c, "JWT_TTL_HOURS", 12)) * time.Hour
	return newTokenIssuer(secret, ttl), nil
}

// csrfKeyFromConfig reads the 32 byte CSRF_KEY. Without one a random key is
// generated, which invalidates issued tokens on every restart.
func csrfKeyFromConfig(c map[string]string) ([]byte, error) {
	key := config.GetString(c, "CSRF_KEY", "")
	if key == "" {
		generated := make([]byte, 32)
		if _, err := rand.Read(generated); err != nil {
			return nil, fmt.Errorf("generating CSRF key: %w", err)
		}
		log.Warn().Msg("CSRF_KEY not set, using a random key")
		return generated, nil
	}
	if len(key) != 32 {
		return nil, errs.NewConfigInvalidError("CSRF_KEY", "must be exactly 32 bytes")
	}
	return []byte(key), nil
}

type router struct {
	config    map[string]string
	csrfKey   []byte
	uploadDir string
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withCSRFKey(key []byte) func(*router) {
	return func(r *router) {
		r.csrfKey = key
	}
}

func withUploadDir(dir string) func(*router) {
	return func(r *router) {
		r.uploadDir = dir
	}
}

func newRouter(handlers *routeHandlers, tokens *tokenIssuer, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	acceptedOrigins := config.GetStrings(router.config, "ACCEPTED_ORIGINS", nil)
	secure := config.GetBool(router.config, "SECURE_COOKIES", true)

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(corsMiddleware(acceptedOrigins))
	if config.GetBool(router.config, "HTTP_LOGGING", true) {
		chiRouter.Use(ColoredHTTPLoggingMiddleware)
	}

	chiRouter.Get("/healthz", handlers.healthHandler.healthz())

	if router.uploadDir != "" {
		chiRouter.Get(uploadsPath+"/*", serveUploads(router.uploadDir).ServeHTTP)
	}

	chiRouter.Route("/api", func(r chi.Router) {
		r.Use(csrfMiddleware(router.csrfKey, secure, trustedOriginHosts(acceptedOrigins)))
		setupAPIRoutes(r, handlers, newAuthMiddleware(tokens))
	})

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msgf("HttpServer gracefully shut down after %s", time.Since(s.startupTime).Round(time.Second))
	}
}
