package api

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// multipartOverhead leaves room for boundaries and part headers around the image
const multipartOverhead = 64 * 1024

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   *services.UploadService
}

func newUploadHandler(service *services.UploadService) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

// uploadImage stores the multipart field "image" and answers with its URL
// @Summary Upload image
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image, at most 5 MB"
// @Success 201 {object} uploadResponse
// @Failure 413 {object} ErrorResponse "Image too large"
// @Failure 415 {object} ErrorResponse "Not an image"
// @Router /api/upload [post]
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := services.MaxUploadBytes + multipartOverhead
		if r.ContentLength > limit {
			h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(services.MaxUploadBytes))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)

		file, header, err := r.FormFile("image")
		if err != nil {
			var maxErr *http.MaxBytesError
			switch {
			case errors.As(err, &maxErr):
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(services.MaxUploadBytes))
			case errors.Is(err, http.ErrMissingFile):
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("image"))
			default:
				h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			}
			return
		}
		defer file.Close()

		if header.Size > services.MaxUploadBytes {
			h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(services.MaxUploadBytes))
			return
		}

		url, err := h.service.Upload(r.Context(), header.Filename, file)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, uploadResponse{URL: url})
	}
}

// serveUploads serves stored images. Directory listings are refused, and the
// headers keep a browser from treating a file as anything but a passive image.
func serveUploads(dir string) http.Handler {
	fileServer := http.StripPrefix(uploadsPath+"/", http.FileServer(filesOnly{http.Dir(dir)}))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; sandbox")
		fileServer.ServeHTTP(w, r)
	})
}

// filesOnly hides directories, so GET /uploads/ is a 404 rather than a listing.
type filesOnly struct {
	root http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
