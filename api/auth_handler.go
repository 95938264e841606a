package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const adminSubject = "admin"

// tokenIssuer signs and verifies the HS256 tokens handed to the admin dashboard.
type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newTokenIssuer(secret string, ttl time.Duration) *tokenIssuer {
	return &tokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *tokenIssuer) Issue(subject string) (string, time.Time, error) {
	issuedAt := t.now()
	expiresAt := issuedAt.Add(t.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify returns the token subject or an ApiErr suitable for a 401 response.
func (t *tokenIssuer) Verify(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "", errs.NewTokenExpiredError()
	}
	if err != nil {
		return "", errs.NewInvalidTokenError(err)
	}
	if claims.Subject != adminSubject {
		return "", errs.NewInvalidTokenError(errors.New("unexpected subject"))
	}
	return claims.Subject, nil
}

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	password  string
	tokens    *tokenIssuer
}

func newAuthHandler(password string, tokens *tokenIssuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		password:  password,
		tokens:    tokens,
	}
}

// login exchanges the admin password for a bearer token
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Admin password"
// @Success 200 {object} loginResponse
// @Failure 401 {object} ErrorResponse "Wrong password"
// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if req.Password == "" || subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
			h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("failed admin login")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, expiresAt, err := h.tokens.Issue(adminSubject)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to sign token", err))
			return
		}

		h.responder.WriteJSON(w, loginResponse{Token: token, ExpiresAt: expiresAt})
	}
}
