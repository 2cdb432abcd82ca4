// Package setting provides CRUD operations for the site settings bag.
package setting

import (
	"encoding/json"
	"errors"
	"sort"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingNameEmpty is returned when attempting to create/update a setting with an empty name.
	ErrSettingNameEmpty = errors.New("setting name cannot be empty")
	// ErrSettingAlreadyExists is returned when attempting to create a setting that already exists.
	ErrSettingAlreadyExists = errors.New("setting already exists")
	// ErrSettingValueInvalid is returned when a value is not a JSON document.
	ErrSettingValueInvalid = errors.New("setting value must be valid json")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its name.
func Get(db *gorm.DB, name string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var setting models.Setting

	result := db.Where(nameQueryPattern, name).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	return &setting, nil
}

// GetAll retrieves all settings ordered by name.
func GetAll(db *gorm.DB) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting

	result := db.Order("name").Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// Create creates a new setting in the database.
func Create(db *gorm.DB, name string, value json.RawMessage) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	if !json.Valid(value) {
		return nil, ErrSettingValueInvalid
	}

	var existing models.Setting

	result := db.Where(nameQueryPattern, name).First(&existing)
	if result.Error == nil {
		return nil, ErrSettingAlreadyExists
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	setting := &models.Setting{
		Name:  name,
		Value: datatypes.JSON(value),
	}

	if result = db.Create(setting); result.Error != nil {
		return nil, result.Error
	}

	return setting, nil
}

// Set creates or updates a setting by name (upsert operation).
func Set(db *gorm.DB, name string, value json.RawMessage) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	if !json.Valid(value) {
		return nil, ErrSettingValueInvalid
	}

	var setting models.Setting

	result := db.Where(nameQueryPattern, name).First(&setting)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return Create(db, name, value)
	}

	if result.Error != nil {
		return nil, result.Error
	}

	setting.Value = datatypes.JSON(value)

	if result = db.Save(&setting); result.Error != nil {
		return nil, result.Error
	}

	return &setting, nil
}

// SetMany upserts every entry of values in one transaction. Keys are written in sorted order.
func SetMany(db *gorm.DB, values map[string]json.RawMessage) error {
	if db == nil {
		return ErrDBNil
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}

	sort.Strings(names)

	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			if _, err := Set(tx, name, values[name]); err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteByName deletes a setting by name.
func DeleteByName(db *gorm.DB, name string) error {
	if db == nil {
		return ErrDBNil
	}

	if name == "" {
		return ErrSettingNameEmpty
	}

	result := db.Where(nameQueryPattern, name).Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}

// Bag returns all settings as a map. Each value is decoded from JSON;
// values that do not decode are returned as the raw string.
func Bag(db *gorm.DB) (map[string]any, error) {
	settings, err := GetAll(db)
	if err != nil {
		return nil, err
	}

	bag := make(map[string]any, len(settings))
	for _, s := range settings {
		bag[s.Name] = Decode(s.Value)
	}

	return bag, nil
}

// Decode parses a stored value, falling back to the raw string.
func Decode(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}

	return v
}
