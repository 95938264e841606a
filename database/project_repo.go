package database

import (
	"context"

	"github.com/rpupo63/studio-site-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	crudRepo[models.Project]
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{newCRUDRepo[models.Project](db, "display_order ASC, id ASC")}
}

// FindByCategory returns the projects filed under the given category name
func (r *ProjectRepo) FindByCategory(ctx context.Context, category string) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order(r.order).
		Find(&projects).Error
	return projects, err
}
