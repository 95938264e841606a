package models

import (
	"time"

	"gorm.io/datatypes"
)

// InquiryActivity records one status change of an inquiry.
type InquiryActivity struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	InquiryID  uint              `json:"inquiry_id" gorm:"not null;index"`
	FromStatus InquiryStatus     `json:"from_status" gorm:"type:text"`
	ToStatus   InquiryStatus     `json:"to_status" gorm:"type:text;not null"`
	Details    datatypes.JSONMap `json:"details"`
	CreatedAt  time.Time         `json:"created_at"`
}
