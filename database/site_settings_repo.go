package database

import (
	"context"
	"errors"

	"github.com/rpupo63/studio-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiteSettingsRepo manages the single settings row.
type SiteSettingsRepo struct {
	db *gorm.DB
}

func NewSiteSettingsRepo(db *gorm.DB) *SiteSettingsRepo {
	return &SiteSettingsRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *SiteSettingsRepo) GetDB() *gorm.DB {
	return r.db
}

// Get returns nil, nil until the settings have been saved once
func (r *SiteSettingsRepo) Get(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.db.WithContext(ctx).First(&settings, models.SiteSettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetOrCreate returns the settings row, inserting the defaults on first access
func (r *SiteSettingsRepo) GetOrCreate(ctx context.Context) (*models.SiteSettings, error) {
	settings := models.DefaultSiteSettings()
	err := r.db.WithContext(ctx).
		Where(models.SiteSettings{ID: models.SiteSettingsID}).
		FirstOrCreate(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save overwrites the settings row wholesale, creating it if absent
func (r *SiteSettingsRepo) Save(ctx context.Context, settings *models.SiteSettings) error {
	settings.ID = models.SiteSettingsID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(settings).Error
}
