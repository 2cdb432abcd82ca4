// Package blog provides CRUD operations for blog posts.
package blog

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrPostNotFound is returned when no post has the requested id.
	ErrPostNotFound = errors.New("blog post not found")
	// ErrTitleEmpty is returned when saving a post without a title.
	ErrTitleEmpty = errors.New("blog post title cannot be empty")
)

// List returns posts, newest first. An empty status matches every post.
// limit <= 0 returns all posts.
func List(db *gorm.DB, status string, limit int) ([]models.BlogPost, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	q := db.Model(&models.BlogPost{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if limit > 0 {
		q = q.Limit(limit)
	}

	var posts []models.BlogPost
	if err := q.Order("created_at DESC").Order("id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}

	return posts, nil
}

// Get returns the post with id.
func Get(db *gorm.DB, id uint64) (*models.BlogPost, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.BlogPost
	if err := db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}

		return nil, err
	}

	return &p, nil
}

// Save creates p when p.ID is zero, otherwise it replaces the stored post.
// An empty author becomes defaultAuthor. PublishedAt is stamped the first time the post
// is saved as published and kept afterwards.
func Save(db *gorm.DB, p *models.BlogPost, defaultAuthor string) error {
	if db == nil {
		return ErrDBNil
	}

	if p.Title == "" {
		return ErrTitleEmpty
	}

	if p.Author == "" {
		p.Author = defaultAuthor
	}

	if p.Status == "" {
		p.Status = models.PostStatusDraft
	}

	if p.Tags == nil {
		p.Tags = []string{}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if p.ID != 0 {
			existing, err := Get(tx, p.ID)
			if err != nil {
				return err
			}

			p.CreatedAt = existing.CreatedAt
			if p.PublishedAt == nil {
				p.PublishedAt = existing.PublishedAt
			}
		}

		if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
			now := time.Now()
			p.PublishedAt = &now
		}

		return tx.Save(p).Error
	})
}

// Delete removes the post with id.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.BlogPost{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}
