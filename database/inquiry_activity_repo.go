package database

import (
	"context"

	"github.com/rpupo63/studio-site-backend/models"
	"gorm.io/gorm"
)

type InquiryActivityRepo struct {
	db *gorm.DB
}

func NewInquiryActivityRepo(db *gorm.DB) *InquiryActivityRepo {
	return &InquiryActivityRepo{db}
}

// Add inserts a new activity entry
func (r *InquiryActivityRepo) Add(ctx context.Context, activity *models.InquiryActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// FindByInquiry returns the history of one inquiry, oldest first
func (r *InquiryActivityRepo) FindByInquiry(ctx context.Context, inquiryID uint) ([]*models.InquiryActivity, error) {
	var activities []*models.InquiryActivity
	err := r.db.WithContext(ctx).
		Where("inquiry_id = ?", inquiryID).
		Order("created_at ASC, id ASC").
		Find(&activities).Error
	return activities, err
}

// DeleteByInquiry removes the history of one inquiry
func (r *InquiryActivityRepo) DeleteByInquiry(ctx context.Context, inquiryID uint) error {
	return r.db.WithContext(ctx).Where("inquiry_id = ?", inquiryID).Delete(&models.InquiryActivity{}).Error
}
