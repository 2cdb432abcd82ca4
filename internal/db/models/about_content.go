package models

import (
	"time"

	"gorm.io/datatypes"
)

// AboutContent backs the about page. The site shows the most recently updated row.
type AboutContent struct {
	ID             uint64 `gorm:"primaryKey"`
	Title          string `gorm:"size:255"`
	Subtitle       string `gorm:"size:255"`
	Biography      string `gorm:"type:text"`
	PersonalQuote  string `gorm:"type:text"`
	ProfileImage   string `gorm:"size:500"`
	WritingJourney string `gorm:"type:text"`
	Inspiration    string `gorm:"type:text"`
	Achievements   datatypes.JSONSlice[string]
	Hobbies        datatypes.JSONSlice[string]
	FavoriteBooks  datatypes.JSONSlice[string]
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the database table name for the AboutContent model.
func (AboutContent) TableName() string {
	return "about_content"
}
