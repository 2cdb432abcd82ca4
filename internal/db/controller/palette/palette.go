// Package palette stores colour palettes and keeps at most one of them active.
package palette

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/db/models"
	"github.com/authorsite/authorsite/internal/theme"
	"github.com/authorsite/authorsite/internal/validation"
)

// DefaultCreatedBy is recorded for palettes created without an explicit creator.
const DefaultCreatedBy = "admin"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrPaletteNotFound is returned when no palette has the requested id.
	ErrPaletteNotFound = errors.New("palette not found")
	// ErrNoActivePalette is returned when no palette is marked active.
	ErrNoActivePalette = errors.New("no active palette")
	// ErrActivePaletteDelete is returned when deleting the active palette.
	ErrActivePaletteDelete = errors.New("active palette can not be deleted")
	// ErrPaletteNameEmpty is returned when saving a palette without a name.
	ErrPaletteNameEmpty = errors.New("palette name cannot be empty")
	// ErrPaletteColorsInvalid is returned when a slot is not a hex colour.
	ErrPaletteColorsInvalid = errors.New("palette colors must be hex colours")
)

// List returns all palettes, the active one first, then newest first.
func List(db *gorm.DB) ([]models.ColorPalette, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var palettes []models.ColorPalette
	if err := db.Order("is_active DESC").Order("created_at DESC").Order("id DESC").Find(&palettes).Error; err != nil {
		return nil, err
	}

	return palettes, nil
}

// Get returns the palette with id.
func Get(db *gorm.DB, id uint64) (*models.ColorPalette, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.ColorPalette
	if err := db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaletteNotFound
		}

		return nil, err
	}

	return &p, nil
}

// GetActive returns the active palette.
func GetActive(db *gorm.DB) (*models.ColorPalette, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.ColorPalette
	if err := db.Where("is_active = ?", true).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActivePalette
		}

		return nil, err
	}

	return &p, nil
}

// Save creates p when p.ID is zero, otherwise it updates the stored palette.
// Saving an active palette deactivates every other palette in the same transaction.
func Save(db *gorm.DB, p *models.ColorPalette) error {
	if db == nil {
		return ErrDBNil
	}

	if p.Name == "" {
		return ErrPaletteNameEmpty
	}

	if validation.Struct(p.Colors.Data()) != nil {
		return ErrPaletteColorsInvalid
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if p.ID != 0 {
			existing, err := Get(tx, p.ID)
			if err != nil {
				return err
			}

			p.CreatedBy = existing.CreatedBy
			p.CreatedAt = existing.CreatedAt
		}

		if p.CreatedBy == "" {
			p.CreatedBy = DefaultCreatedBy
		}

		if p.IsActive {
			if err := deactivateAll(tx); err != nil {
				return err
			}
		}

		return tx.Save(p).Error
	})
}

// Activate marks the palette with id as the only active palette.
// An unknown id leaves the current active palette untouched.
func Activate(db *gorm.DB, id uint64) (*models.ColorPalette, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var activated *models.ColorPalette

	err := db.Transaction(func(tx *gorm.DB) error {
		p, err := Get(tx, id)
		if err != nil {
			return err
		}

		if err = deactivateAll(tx); err != nil {
			return err
		}

		if err = tx.Model(p).Update("is_active", true).Error; err != nil {
			return err
		}

		p.IsActive = true
		activated = p

		return nil
	})
	if err != nil {
		return nil, err
	}

	return activated, nil
}

// Delete removes an inactive palette.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		p, err := Get(tx, id)
		if err != nil {
			return err
		}

		if p.IsActive {
			return ErrActivePaletteDelete
		}

		return tx.Delete(p).Error
	})
}

// SeedPresets stores the preset palettes when the table is empty. The default preset is active.
func SeedPresets(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	var count int64
	if err := db.Model(&models.ColorPalette{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, preset := range theme.Presets() {
			p := &models.ColorPalette{
				Name:      preset.Name,
				Colors:    datatypes.NewJSONType(preset.Palette),
				IsActive:  preset.Default,
				CreatedBy: "system",
			}

			if err := tx.Create(p).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func deactivateAll(tx *gorm.DB) error {
	return tx.Model(&models.ColorPalette{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

// Source serves the active palette of a database to a theme.Resolver.
type Source struct {
	DB *gorm.DB
}

// ActivePalette implements theme.Source.
func (s Source) ActivePalette(ctx context.Context) (theme.Palette, error) {
	if s.DB == nil {
		return theme.Palette{}, ErrDBNil
	}

	p, err := GetActive(s.DB.WithContext(ctx))
	if err != nil {
		return theme.Palette{}, err
	}

	return p.Colors.Data(), nil
}
