package api

import (
	"strings"

	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
)

// newCategoryHandler serves /api/categories. The slug is derived from the name
// when the client sends none; a taken slug is answered with 409.
func newCategoryHandler(store resourceStore[models.Category]) resourceHandler[models.Category] {
	return newResourceHandler("category", store,
		func(c *models.Category, id uint) { c.ID = id },
		func(c *models.Category) error {
			c.Name = strings.TrimSpace(c.Name)
			if c.Name == "" {
				return errs.NewMissingRequiredFieldError("name")
			}
			if strings.TrimSpace(c.Slug) == "" {
				c.Slug = c.Name
			}
			c.Slug = models.Slugify(c.Slug)
			if c.Slug == "" {
				return errs.NewInvalidFieldError("slug", "name must contain at least one letter or digit")
			}
			return nil
		},
	)
}
