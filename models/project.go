package models

import "time"

// Project is a portfolio entry. Content holds sanitized rich text.
type Project struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"type:text;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Content      string    `json:"content" gorm:"type:text"`
	Category     string    `json:"category" gorm:"type:text;index"`
	Author       string    `json:"author" gorm:"type:text"`
	BannerImage  string    `json:"banner_image" gorm:"type:text"`
	ImageURL     string    `json:"image_url" gorm:"type:text"`
	DisplayOrder int       `json:"display_order" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
