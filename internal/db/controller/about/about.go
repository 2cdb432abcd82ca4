// Package about stores the content of the about page.
package about

import (
	"errors"

	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrAboutNotFound is returned when no about content is stored.
	ErrAboutNotFound = errors.New("about content not found")
)

// Get returns the most recently updated about content.
func Get(db *gorm.DB) (*models.AboutContent, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var a models.AboutContent
	if err := db.Order("updated_at DESC").Order("id DESC").First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAboutNotFound
		}

		return nil, err
	}

	return &a, nil
}

// Save replaces the current about content, creating it when none exists.
func Save(db *gorm.DB, a *models.AboutContent) error {
	if db == nil {
		return ErrDBNil
	}

	for _, list := range []*[]string{
		(*[]string)(&a.Achievements),
		(*[]string)(&a.Hobbies),
		(*[]string)(&a.FavoriteBooks),
	} {
		if *list == nil {
			*list = []string{}
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		current, err := Get(tx)

		switch {
		case errors.Is(err, ErrAboutNotFound):
			a.ID = 0
		case err != nil:
			return err
		default:
			a.ID = current.ID
			a.CreatedAt = current.CreatedAt
		}

		return tx.Save(a).Error
	})
}
