package api

import (
	"strings"

	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
)

func newSlideHandler(store resourceStore[models.BannerSlide]) resourceHandler[models.BannerSlide] {
	return newResourceHandler("banner slide", store,
		func(s *models.BannerSlide, id uint) { s.ID = id },
		func(s *models.BannerSlide) error {
			s.Title = strings.TrimSpace(s.Title)
			if s.Title == "" {
				return errs.NewMissingRequiredFieldError("title")
			}
			return nil
		},
	)
}
