package models

import "time"

// Feedback categories and statuses. "open" is the one and only initial status;
// closing is a status transition, deletion is a separate operation.
const (
	CategoryGeneral     = "general"
	CategoryFeature     = "feature"
	CategoryBug         = "bug"
	CategoryUI          = "ui"
	CategoryPerformance = "performance"

	StatusOpen     = "open"
	StatusReviewed = "reviewed"
	StatusClosed   = "closed"
)

// Feedback represents one user-submitted rated comment.
// UserID is a soft reference: submission falls back to a client-generated id
// when registration fails, so the referenced user may not exist.
type Feedback struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID        string    `json:"userId" gorm:"size:64;not null;index"`
	UserName      string    `json:"userName" gorm:"size:256"`
	UserEmail     string    `json:"userEmail" gorm:"size:256"`
	Rating        int       `json:"rating" gorm:"not null;index"`
	Comment       string    `json:"comment" gorm:"type:text;not null"`
	Category      string    `json:"category" gorm:"size:32;default:general;index"`
	Status        string    `json:"status" gorm:"size:32;default:open;index"`
	AdminResponse *string   `json:"adminResponse,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryGeneral, CategoryFeature, CategoryBug, CategoryUI, CategoryPerformance:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusReviewed, StatusClosed:
		return true
	}
	return false
}

// NormalizeCategory maps absent or unrecognized categories to the default.
func NormalizeCategory(c string) string {
	if ValidCategory(c) {
		return c
	}
	return CategoryGeneral
}
