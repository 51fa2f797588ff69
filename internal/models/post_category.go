package models

import (
	"time"
)

// PostCategory is the second classification taxonomy. Same shape as Category
// plus an image. A post may carry both taxonomies, either, or neither.
type PostCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Status      bool      `gorm:"index" json:"status"`
	// PostCount is not persisted; computed at query time for list responses.
	PostCount int       `gorm:"->" json:"post_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
