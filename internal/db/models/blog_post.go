package models

import (
	"time"

	"gorm.io/datatypes"
)

// Blog post states.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// BlogPost is an entry of the blog.
type BlogPost struct {
	ID            uint64 `gorm:"primaryKey"`
	Title         string `gorm:"size:255;not null"`
	Content       string `gorm:"type:text"`
	Excerpt       string `gorm:"type:text"`
	FeaturedImage string `gorm:"size:500"`
	Author        string `gorm:"size:100"`
	Status        string `gorm:"size:20;index;default:'draft'"`
	// PublishedAt is set the first time the post is saved as published.
	PublishedAt *time.Time
	Tags        datatypes.JSONSlice[string]
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for the BlogPost model.
func (BlogPost) TableName() string {
	return "blog_posts"
}
