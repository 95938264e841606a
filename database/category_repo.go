package database

import (
	"context"
	"errors"

	"github.com/rpupo63/studio-site-backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	crudRepo[models.Category]
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{newCRUDRepo[models.Category](db, "name ASC")}
}

// FindBySlug returns nil, nil when no category has the slug
func (r *CategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
