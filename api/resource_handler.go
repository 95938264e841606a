package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// resourceStore is the repository surface of one admin-managed collection.
type resourceStore[T any] interface {
	FindAll(ctx context.Context) ([]*T, error)
	FindByID(ctx context.Context, id uint) (*T, error)
	Add(ctx context.Context, row *T) error
	Update(ctx context.Context, row *T) error
	Delete(ctx context.Context, id uint) error
}

// resourceHandler serves get-all/get-by-id/create/update/delete for one
// collection. Writes replace the row wholesale and answer with the persisted row.
type resourceHandler[T any] struct {
	responder Responder
	logger    zerolog.Logger
	entity    string
	store     resourceStore[T]
	// prepare validates and normalises a decoded payload before it is written
	prepare func(row *T) error
	setID   func(row *T, id uint)
}

func newResourceHandler[T any](entity string, store resourceStore[T], setID func(*T, uint), prepare func(*T) error) resourceHandler[T] {
	logger := log.With().Str("handlerName", entity+"Handler").Logger()
	if prepare == nil {
		prepare = func(*T) error { return nil }
	}

	return resourceHandler[T]{
		responder: NewResponder(logger),
		logger:    logger,
		entity:    entity,
		store:     store,
		prepare:   prepare,
		setID:     setID,
	}
}

func (h resourceHandler[T]) getAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.store.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", h.entity, err))
			return
		}

		items := make([]T, 0, len(rows))
		for _, row := range rows {
			items = append(items, *row)
		}
		h.responder.WriteJSON(w, newCollection(items))
	}
}

func (h resourceHandler[T]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		row, err := h.find(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, row)
	}
}

func (h resourceHandler[T]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var row T
		if err := decodeJSON(r, &row); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		// ids are always assigned by the store
		h.setID(&row, 0)

		if err := h.prepare(&row); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Add(r.Context(), &row); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", h.entity, err))
			return
		}

		h.logger.Info().Msg("created " + h.entity)
		h.responder.WriteCreated(w, row)
	}
}

func (h resourceHandler[T]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.find(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var row T
		if err := decodeJSON(r, &row); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.setID(&row, id)

		if err := h.prepare(&row); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Update(r.Context(), &row); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", h.entity, err))
			return
		}

		// reload so the response carries the stored timestamps
		updated, err := h.find(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, updated)
	}
}

func (h resourceHandler[T]) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.find(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", h.entity, err))
			return
		}

		h.responder.WriteJSON(w, messageResponse{
			Status:  "success",
			Message: h.entity + " deleted successfully",
		})
	}
}

func (h resourceHandler[T]) find(ctx context.Context, id uint) (*T, error) {
	row, err := h.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapDatabaseError("find", h.entity, err)
	}
	if row == nil {
		return nil, errs.NewNotFound(h.entity)
	}
	return row, nil
}

// parseID reads the {id} URL parameter
func parseID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, errs.NewMissingRequiredFieldError("id")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errs.NewInvalidFieldError("id", "must be a positive integer")
	}
	return uint(id), nil
}
