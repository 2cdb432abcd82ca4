package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/authorsite/authorsite/internal/theme"
)

// ColorPalette is a stored theme. At most one row has IsActive set.
type ColorPalette struct {
	// ID is the unique identifier for the palette.
	ID uint64 `gorm:"primaryKey"`
	// Name is the display name shown in the colour manager.
	Name string `gorm:"size:255;not null"`
	// Colors holds the 8 semantic colour slots as a JSON document.
	Colors datatypes.JSONType[theme.Palette]
	// IsActive marks the palette the site is rendered with.
	IsActive bool `gorm:"index;default:false"`
	// CreatedBy is the admin name that created the palette.
	CreatedBy string `gorm:"size:100"`
	// CreatedAt is the timestamp when the palette was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the palette was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the ColorPalette model.
func (ColorPalette) TableName() string {
	return "color_palettes"
}
