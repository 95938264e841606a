package models

import "time"

// SiteSettingsID is the primary key of the only settings row.
const SiteSettingsID uint = 1

// SiteSettings is a singleton holding the company details shown in the site footer and header.
type SiteSettings struct {
	ID           uint                `json:"id" gorm:"primaryKey"`
	CompanyName  string              `json:"company_name" gorm:"type:text"`
	CompanyShort string              `json:"company_short" gorm:"type:text"`
	Tagline      string              `json:"tagline" gorm:"type:text"`
	Description  string              `json:"description" gorm:"type:text"`
	Email        string              `json:"email" gorm:"type:text"`
	Phone        string              `json:"phone" gorm:"type:text"`
	Address      string              `json:"address" gorm:"type:text"`
	QuickLinks   JSONList[QuickLink] `json:"quick_links" gorm:"type:text"`
	Services     JSONList[string]    `json:"services" gorm:"type:text"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// DefaultSiteSettings is what a fresh install serves before the first save.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ID:         SiteSettingsID,
		QuickLinks: JSONList[QuickLink]{},
		Services:   JSONList[string]{},
	}
}
