package models

import "time"

// BlogPost is a blog entry. Slug is unique and URL-safe; it is derived from
// the title when not supplied explicitly. Unpublished posts are visible to
// admins only.
type BlogPost struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title         string     `json:"title" validate:"required,max=300"`
	Slug          string     `json:"slug" gorm:"uniqueIndex;type:varchar(300)"`
	Excerpt       string     `json:"excerpt" validate:"required"`
	Content       string     `json:"content,omitempty" gorm:"type:text"`
	FeaturedImage string     `json:"featured_image,omitempty" gorm:"column:featured_image;type:varchar(500)"`
	Tags          StringList `json:"tags" gorm:"type:text"`
	Published     bool       `json:"published"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// BlogPostSummary is the listing projection of BlogPost, without content.
type BlogPostSummary struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	FeaturedImage string     `json:"featured_image,omitempty" gorm:"column:featured_image"`
	Tags          StringList `json:"tags"`
	Published     bool       `json:"published"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
