package api

import (
	"context"
	"net/http"

	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// settingsStore is the singleton settings row.
type settingsStore interface {
	GetOrCreate(ctx context.Context) (*models.SiteSettings, error)
	Save(ctx context.Context, settings *models.SiteSettings) error
}

type settingsHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     settingsStore
}

func newSettingsHandler(store settingsStore) settingsHandler {
	logger := log.With().Str("handlerName", "settingsHandler").Logger()

	return settingsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// getSettings returns the site settings, creating the defaults on first access
// @Router /api/settings [get]
func (h settingsHandler) getSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.store.GetOrCreate(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("load", "site settings", err))
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}

// updateSettings replaces the settings wholesale
// @Router /api/settings [put]
func (h settingsHandler) updateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings models.SiteSettings
		if err := decodeJSON(r, &settings); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if settings.QuickLinks == nil {
			settings.QuickLinks = models.JSONList[models.QuickLink]{}
		}
		if settings.Services == nil {
			settings.Services = models.JSONList[string]{}
		}

		if err := h.store.Save(r.Context(), &settings); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save", "site settings", err))
			return
		}

		saved, err := h.store.GetOrCreate(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("load", "site settings", err))
			return
		}
		h.responder.WriteJSON(w, saved)
	}
}
