package database

import (
	"github.com/rpupo63/studio-site-backend/models"
	"gorm.io/gorm"
)

type BannerSlideRepo struct {
	crudRepo[models.BannerSlide]
}

func NewBannerSlideRepo(db *gorm.DB) *BannerSlideRepo {
	return &BannerSlideRepo{newCRUDRepo[models.BannerSlide](db, "sort_order ASC, id ASC")}
}
