package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MaxUploadBytes is the largest image accepted, 5 MB.
const MaxUploadBytes int64 = 5 * 1024 * 1024

// imageExtensions maps each accepted type to the extension its key gets.
// SVG is not accepted since it can carry script.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// UploadService validates an uploaded image and hands it to an ImageStore.
type UploadService struct {
	store    ImageStore
	maxBytes int64
	logger   zerolog.Logger
}

func NewUploadService(store ImageStore) *UploadService {
	return &UploadService{
		store:    store,
		maxBytes: MaxUploadBytes,
		logger:   log.With().Str("serviceName", "uploadService").Logger(),
	}
}

// Upload stores the image read from body and returns its public URL.
// Oversized bodies are rejected without reaching the store.
func (s *UploadService) Upload(ctx context.Context, filename string, body io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return "", errs.NewMalformedPayloadError("upload", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", errs.NewMaxBodySizeExceededError(s.maxBytes)
	}
	if len(data) == 0 {
		return "", errs.NewMissingRequiredFieldError("image")
	}

	// The key never takes the client's extension: the file server picks the
	// Content-Type from it.
	contentType := detectImageType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", errs.NewUnsupportedMediaTypeError(contentType, allowedImageTypes)
	}

	key := uuid.NewString() + ext
	url, err := s.store.Put(ctx, key, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to store upload")
		return "", errs.NewStorageWriteError(key, err)
	}

	s.logger.Info().Str("key", key).Str("filename", filename).Int("bytes", len(data)).Str("contentType", contentType).Msg("stored upload")
	return url, nil
}

func detectImageType(data []byte) string {
	contentType := http.DetectContentType(data)
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return contentType
}
