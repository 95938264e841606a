package api

import (
	"strings"

	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/services"
)

// newProjectHandler serves /api/projects. Rich text content is sanitized on every write.
func newProjectHandler(store resourceStore[models.Project], sanitizer *services.ContentSanitizer) resourceHandler[models.Project] {
	return newResourceHandler("project", store,
		func(p *models.Project, id uint) { p.ID = id },
		func(p *models.Project) error {
			p.Title = strings.TrimSpace(p.Title)
			if p.Title == "" {
				return errs.NewMissingRequiredFieldError("title")
			}
			p.Category = strings.TrimSpace(p.Category)
			sanitizer.SanitizeProject(p)
			return nil
		},
	)
}
