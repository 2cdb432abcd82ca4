package models

import (
	"time"

	"gorm.io/datatypes"
)

// Book publication states.
const (
	BookStatusPublished  = "published"
	BookStatusDraft      = "draft"
	BookStatusComingSoon = "coming-soon"
)

// Book is a title listed on the books page.
type Book struct {
	ID          uint64  `gorm:"primaryKey"`
	Title       string  `gorm:"size:255;not null"`
	Description string  `gorm:"type:text"`
	Excerpt     string  `gorm:"type:text"`
	Price       float64 `gorm:"type:decimal(10,2)"`
	Currency    string  `gorm:"size:10"`
	AmazonLink  string  `gorm:"size:500"`
	CoverImage  string  `gorm:"size:500"`
	// PublishDate is kept as entered (YYYY-MM-DD).
	PublishDate string `gorm:"size:32"`
	ISBN        string `gorm:"column:isbn;size:50"`
	PageCount   int
	Genre       string `gorm:"size:100"`
	Status      string `gorm:"size:20;index;default:'draft'"`
	Featured    bool   `gorm:"index;default:false"`
	Tags        datatypes.JSONSlice[string]
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for the Book model.
func (Book) TableName() string {
	return "books"
}
