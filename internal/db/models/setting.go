// Package models contains database model definitions.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Setting is one entry of the site settings bag.
// Value always holds a JSON document; scalars are stored as JSON strings, numbers or booleans.
type Setting struct {
	ID        uint64         `gorm:"primaryKey"`
	Name      string         `gorm:"unique;size:255;not null"`
	Value     datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Setting model.
func (Setting) TableName() string {
	return "site_settings"
}
