package api

import (
	"time"

	"github.com/rpupo63/studio-site-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	teamHandler     resourceHandler[models.TeamMember]
	projectHandler  resourceHandler[models.Project]
	slideHandler    resourceHandler[models.BannerSlide]
	categoryHandler resourceHandler[models.Category]
	inquiryHandler  inquiryHandler
	settingsHandler settingsHandler
	uploadHandler   uploadHandler
	authHandler     authHandler
	healthHandler   healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// collectionResponse wraps every list endpoint
type collectionResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func newCollection[T any](rows []T) collectionResponse[T] {
	if rows == nil {
		rows = []T{}
	}
	return collectionResponse[T]{Data: rows, Total: len(rows)}
}

type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type csrfTokenResponse struct {
	CSRFToken string `json:"csrf_token"`
}

type statusChangeRequest struct {
	Status models.InquiryStatus `json:"status"`
	Notes  *string              `json:"notes"`
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Uptime    string `json:"uptime"`
	StartedAt string `json:"started_at"`
}
