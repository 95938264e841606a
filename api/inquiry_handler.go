package api

import (
	"net/http"

	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type inquiryHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   *services.InquiryService
}

func newInquiryHandler(service *services.InquiryService) inquiryHandler {
	logger := log.With().Str("handlerName", "inquiryHandler").Logger()

	return inquiryHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

// submitInquiry stores a contact form submission from the public site
// @Summary Submit inquiry
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param inquiry body models.Inquiry true "Inquiry"
// @Success 201 {object} models.Inquiry
// @Failure 400 {object} ErrorResponse "Missing or invalid field"
// @Router /api/inquiries [post]
func (h inquiryHandler) submitInquiry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inquiry models.Inquiry
		if err := decodeJSON(r, &inquiry); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.service.Submit(r.Context(), &inquiry); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("inquiryID", inquiry.ID).Msg("inquiry submitted")
		h.responder.WriteCreated(w, inquiry)
	}
}

// listInquiries returns inquiries filtered by ?status= and ?search=, newest first
// @Summary List inquiries
// @Tags Inquiries
// @Produce json
// @Param status query string false "all, new, in-progress, completed or cancelled"
// @Param search query string false "matches company, contact person or email"
// @Success 200 {object} collectionResponse[models.Inquiry]
// @Router /api/inquiries [get]
func (h inquiryHandler) listInquiries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		inquiries, err := h.service.List(r.Context(), models.StatusFilter(query.Get("status")), query.Get("search"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, newCollection(inquiries))
	}
}

// @Router /api/inquiries/stats [get]
func (h inquiryHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.service.Stats(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, stats)
	}
}

func (h inquiryHandler) getInquiry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		inquiry, err := h.service.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, inquiry)
	}
}

func (h inquiryHandler) getActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		history, err := h.service.History(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		items := make([]models.InquiryActivity, 0, len(history))
		for _, activity := range history {
			items = append(items, *activity)
		}
		h.responder.WriteJSON(w, newCollection(items))
	}
}

// changeStatus moves an inquiry to another status and answers with the stored record
// @Summary Change inquiry status
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param id path int true "Inquiry ID"
// @Param body body statusChangeRequest true "New status and optional notes"
// @Success 200 {object} models.Inquiry
// @Failure 400 {object} ErrorResponse "Unknown status"
// @Failure 404 {object} ErrorResponse "Inquiry not found"
// @Router /api/inquiries/{id}/status [patch]
func (h inquiryHandler) changeStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req statusChangeRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.service.ChangeStatus(r.Context(), id, req.Status, req.Notes)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		admin, _ := ctxGetAdmin(r.Context())
		h.logger.Info().Uint("inquiryID", id).Str("status", string(updated.Status)).Str("by", admin).Msg("inquiry status changed")
		h.responder.WriteJSON(w, updated)
	}
}

func (h inquiryHandler) deleteInquiry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.service.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, messageResponse{
			Status:  "success",
			Message: "inquiry deleted successfully",
		})
	}
}
