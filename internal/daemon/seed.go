package daemon

import (
	"errors"

	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/config"
	"github.com/authorsite/authorsite/internal/db/controller/about"
	"github.com/authorsite/authorsite/internal/db/controller/palette"
	"github.com/authorsite/authorsite/internal/db/controller/site"
	"github.com/authorsite/authorsite/internal/db/models"
)

// seed fills an empty database with the default settings, the preset palettes and
// a placeholder about page. Existing rows are never touched.
func seed(cfg *config.Config, db *gorm.DB) error {
	if err := site.Seed(db); err != nil {
		return err
	}

	if err := palette.SeedPresets(db); err != nil {
		return err
	}

	_, err := about.Get(db)
	if !errors.Is(err, about.ErrAboutNotFound) {
		return err
	}

	return about.Save(db, &models.AboutContent{
		Title:    "Hakkımda",
		Subtitle: cfg.Content.DefaultAuthor,
	})
}
