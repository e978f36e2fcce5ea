package models

import "time"

// SiteSettings holds the contact details and opening hours published on the site.
// A single row is expected; the content layer falls back to a caller supplied
// value when the table is empty.
type SiteSettings struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Address      string    `gorm:"type:varchar(255)" json:"address"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	OpeningHours string    `gorm:"type:text" json:"opening_hours"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
