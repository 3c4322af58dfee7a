package models

import (
	"time"
)

// Announcement is a notice shown in the portals. A nil GymID makes it
// platform-wide: every gym's feed unions those with its own rows. Visibility
// is gated by IsPublished and the StartsAt/EndsAt window, either end open.
type Announcement struct {
	ID          uint       `gorm:"column:id;primaryKey" json:"id"`
	GymID       *uint      `gorm:"column:gym_id;index" json:"gym_id"`
	Title       string     `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Body        string     `gorm:"column:body;type:text" json:"body"`
	IsPublished bool       `gorm:"column:is_published;not null;default:false" json:"is_published"`
	StartsAt    *time.Time `gorm:"column:starts_at" json:"starts_at"`
	EndsAt      *time.Time `gorm:"column:ends_at" json:"ends_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// ActiveAt reports whether the announcement is visible at the given instant.
func (a *Announcement) ActiveAt(now time.Time) bool {
	if !a.IsPublished {
		return false
	}
	if a.StartsAt != nil && a.StartsAt.After(now) {
		return false
	}
	if a.EndsAt != nil && a.EndsAt.Before(now) {
		return false
	}
	return true
}
