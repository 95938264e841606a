package models

import (
	"sort"
	"strings"
	"time"
)

type InquiryStatus string

const (
	StatusNew        InquiryStatus = "new"
	StatusInProgress InquiryStatus = "in-progress"
	StatusCompleted  InquiryStatus = "completed"
	StatusCancelled  InquiryStatus = "cancelled"
)

// InquiryStatuses lists every status in workflow order.
var InquiryStatuses = []InquiryStatus{StatusNew, StatusInProgress, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the four known statuses.
// Any known status may follow any other.
func (s InquiryStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// StatusFilter selects inquiries by status. FilterAll matches every status.
type StatusFilter string

const FilterAll StatusFilter = "all"

func (f StatusFilter) Valid() bool {
	return f == FilterAll || InquiryStatus(f).Valid()
}

func (f StatusFilter) Matches(s InquiryStatus) bool {
	return f == FilterAll || f == "" || InquiryStatus(f) == s
}

// Inquiry is a lead submitted through the public contact form.
type Inquiry struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	CompanyName    string           `json:"company_name" gorm:"type:text;not null"`
	BusinessType   string           `json:"business_type" gorm:"type:text"`
	ContactPerson  string           `json:"contact_person" gorm:"type:text;not null"`
	Email          string           `json:"email" gorm:"type:text;not null"`
	Phone          string           `json:"phone" gorm:"type:text"`
	Whatsapp       string           `json:"whatsapp" gorm:"type:text"`
	ProjectType    JSONList[string] `json:"project_type" gorm:"type:text"`
	Budget         string           `json:"budget" gorm:"type:text"`
	Timeline       string           `json:"timeline" gorm:"type:text"`
	ProjectDetails string           `json:"project_details" gorm:"type:text"`
	Status         InquiryStatus    `json:"status" gorm:"type:text;not null;default:'new';index"`
	Notes          *string          `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// MatchesSearch does a case-insensitive substring match of term against the
// company name, contact person and email. An empty term matches everything.
func (i Inquiry) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(i.CompanyName), term) ||
		strings.Contains(strings.ToLower(i.ContactPerson), term) ||
		strings.Contains(strings.ToLower(i.Email), term)
}

// FilterInquiries returns the inquiries passing both the status filter and the
// search term, newest first. The input slice is not modified.
func FilterInquiries(inquiries []Inquiry, filter StatusFilter, term string) []Inquiry {
	out := make([]Inquiry, 0, len(inquiries))
	for _, inq := range inquiries {
		if filter.Matches(inq.Status) && inq.MatchesSearch(term) {
			out = append(out, inq)
		}
	}
	SortInquiries(out)
	return out
}

// SortInquiries orders by created_at descending, then id descending.
func SortInquiries(inquiries []Inquiry) {
	sort.SliceStable(inquiries, func(a, b int) bool {
		if !inquiries[a].CreatedAt.Equal(inquiries[b].CreatedAt) {
			return inquiries[a].CreatedAt.After(inquiries[b].CreatedAt)
		}
		return inquiries[a].ID > inquiries[b].ID
	})
}

// InquiryStats is the dashboard summary. Cancelled inquiries count toward
// Total only.
type InquiryStats struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

func ComputeInquiryStats(inquiries []Inquiry) InquiryStats {
	stats := InquiryStats{Total: len(inquiries)}
	for _, inq := range inquiries {
		switch inq.Status {
		case StatusNew:
			stats.New++
		case StatusInProgress:
			stats.InProgress++
		case StatusCompleted:
			stats.Completed++
		}
	}
	return stats
}
