package models

import "time"

// DefaultMemberIcon is shown for team members without an icon of their own.
const DefaultMemberIcon = "👤"

type TeamMember struct {
	ID          uint                 `json:"id" gorm:"primaryKey"`
	Name        string               `json:"name" gorm:"type:text;not null"`
	Position    string               `json:"position" gorm:"type:text"`
	Bio         string               `json:"bio" gorm:"type:text"`
	Icon        string               `json:"icon" gorm:"type:text"`
	ImageURL    string               `json:"image_url" gorm:"type:text"`
	Skills      JSONList[Skill]      `json:"skills" gorm:"type:text"`
	SocialMedia JSONList[SocialLink] `json:"social_media" gorm:"type:text"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
