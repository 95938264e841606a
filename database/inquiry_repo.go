package database

import (
	"context"
	"time"

	"github.com/rpupo63/studio-site-backend/models"
	"gorm.io/gorm"
)

type InquiryRepo struct {
	crudRepo[models.Inquiry]
}

func NewInquiryRepo(db *gorm.DB) *InquiryRepo {
	return &InquiryRepo{newCRUDRepo[models.Inquiry](db, "created_at DESC, id DESC")}
}

// UpdateStatus sets the status and updated_at of one inquiry. Notes are only
// overwritten when notes is non-nil. It reports whether a row was matched.
func (r *InquiryRepo) UpdateStatus(ctx context.Context, id uint, status models.InquiryStatus, notes *string, at time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": at,
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	result := r.db.WithContext(ctx).
		Model(&models.Inquiry{}).
		Where("id = ?", id).
		UpdateColumns(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByStatus returns the number of inquiries per status
func (r *InquiryRepo) CountByStatus(ctx context.Context) (map[models.InquiryStatus]int, error) {
	var rows []struct {
		Status models.InquiryStatus
		Count  int
	}
	err := r.db.WithContext(ctx).
		Model(&models.Inquiry{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.InquiryStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
