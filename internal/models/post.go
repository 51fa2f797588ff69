package models

import (
	"time"
)

// Post represents a blog article. Tags is a raw comma-separated string; the
// tag universe is derived at query time, never stored. Posts are hard-deleted.
type Post struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Title          string        `gorm:"not null" json:"title"`
	Content        string        `gorm:"type:text;not null" json:"content"`
	Slug           string        `gorm:"uniqueIndex;not null" json:"slug"`
	Tags           string        `json:"tags"`
	Image          string        `json:"image"`
	Published      bool          `gorm:"default:false;index" json:"published"`
	AuthorID       uint          `gorm:"not null;index" json:"author_id"`
	Author         User          `gorm:"foreignKey:AuthorID" json:"author"`
	CategoryID     *uint         `gorm:"index" json:"category_id,omitempty"`
	Category       *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	PostCategoryID *uint         `gorm:"index" json:"post_category_id,omitempty"`
	PostCategory   *PostCategory `gorm:"foreignKey:PostCategoryID" json:"post_category,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
