// Package book provides CRUD operations for books.
package book

import (
	"errors"

	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrBookNotFound is returned when no book has the requested id.
	ErrBookNotFound = errors.New("book not found")
	// ErrTitleEmpty is returned when saving a book without a title.
	ErrTitleEmpty = errors.New("book title cannot be empty")
)

// Filter narrows List. Zero values match everything.
type Filter struct {
	Status   string
	Featured bool
	Limit    int
}

// List returns books matching f, featured first, then most recently updated.
func List(db *gorm.DB, f Filter) ([]models.Book, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	q := db.Model(&models.Book{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	if f.Featured {
		q = q.Where("featured = ?", true)
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var books []models.Book
	if err := q.Order("featured DESC").Order("updated_at DESC").Order("id DESC").Find(&books).Error; err != nil {
		return nil, err
	}

	return books, nil
}

// Get returns the book with id.
func Get(db *gorm.DB, id uint64) (*models.Book, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var b models.Book
	if err := db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}

		return nil, err
	}

	return &b, nil
}

// Save creates b when b.ID is zero, otherwise it replaces the stored book.
func Save(db *gorm.DB, b *models.Book) error {
	if db == nil {
		return ErrDBNil
	}

	if b.Title == "" {
		return ErrTitleEmpty
	}

	if b.Status == "" {
		b.Status = models.BookStatusDraft
	}

	if b.Tags == nil {
		b.Tags = []string{}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if b.ID != 0 {
			existing, err := Get(tx, b.ID)
			if err != nil {
				return err
			}

			b.CreatedAt = existing.CreatedAt
		}

		return tx.Save(b).Error
	})
}

// Delete removes the book with id.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Book{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}

	return nil
}
