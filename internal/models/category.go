package models

import (
	"time"
)

// Category is one of two independent classification taxonomies for posts.
// Status gates public visibility; inactive categories stay editable in the
// admin area.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	// No column default: the service layer decides the initial status so an
	// explicit false survives the insert.
	Status    bool      `gorm:"index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
