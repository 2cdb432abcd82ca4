package palette

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/db/models"
	"github.com/authorsite/authorsite/internal/theme"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.ColorPalette{}))

	return db
}

func newPalette(name string, active bool) *models.ColorPalette {
	return &models.ColorPalette{
		Name:     name,
		Colors:   datatypes.NewJSONType(theme.DefaultPalette()),
		IsActive: active,
	}
}

func activeIDs(t *testing.T, db *gorm.DB) []uint64 {
	t.Helper()

	var ids []uint64
	require.NoError(t, db.Model(&models.ColorPalette{}).Where("is_active = ?", true).Pluck("id", &ids).Error)

	return ids
}

func TestNilDB(t *testing.T) {
	_, err := List(nil)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Get(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = GetActive(nil)
	require.ErrorIs(t, err, ErrDBNil)

	require.ErrorIs(t, Save(nil, newPalette("x", false)), ErrDBNil)

	_, err = Activate(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)

	require.ErrorIs(t, Delete(nil, 1), ErrDBNil)
	require.ErrorIs(t, SeedPresets(nil), ErrDBNil)

	_, err = Source{}.ActivePalette(context.Background())
	require.ErrorIs(t, err, ErrDBNil)
}

func TestSaveCreateAndRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	p := newPalette("Ocean", false)
	p.Colors = datatypes.NewJSONType(theme.Presets()[1].Palette)

	require.NoError(t, Save(db, p))
	assert.NotZero(t, p.ID)
	assert.Equal(t, DefaultCreatedBy, p.CreatedBy)

	list, err := List(db)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ocean", list[0].Name)
	assert.Equal(t, theme.Presets()[1].Palette, list[0].Colors.Data())
	assert.False(t, list[0].IsActive)
}

func TestSaveValidation(t *testing.T) {
	db := setupTestDB(t)

	require.ErrorIs(t, Save(db, newPalette("", false)), ErrPaletteNameEmpty)

	broken := newPalette("broken", false)
	colors := theme.DefaultPalette()
	colors.Accent = "red}</style><script>"
	broken.Colors = datatypes.NewJSONType(colors)
	require.ErrorIs(t, Save(db, broken), ErrPaletteColorsInvalid)

	missing := newPalette("ghost", false)
	missing.ID = 42
	require.ErrorIs(t, Save(db, missing), ErrPaletteNotFound)
}

func TestSaveUpdateKeepsCreator(t *testing.T) {
	db := setupTestDB(t)

	p := newPalette("Sand", false)
	p.CreatedBy = "editor"
	require.NoError(t, Save(db, p))

	update := newPalette("Sand v2", false)
	update.ID = p.ID
	require.NoError(t, Save(db, update))

	got, err := Get(db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sand v2", got.Name)
	assert.Equal(t, "editor", got.CreatedBy)
}

func TestSaveActiveDeactivatesOthers(t *testing.T) {
	db := setupTestDB(t)

	first := newPalette("first", true)
	require.NoError(t, Save(db, first))

	second := newPalette("second", true)
	require.NoError(t, Save(db, second))

	assert.Equal(t, []uint64{second.ID}, activeIDs(t, db))
}

func TestActivate(t *testing.T) {
	db := setupTestDB(t)

	a := newPalette("a", true)
	b := newPalette("b", false)
	c := newPalette("c", false)

	for _, p := range []*models.ColorPalette{a, b, c} {
		require.NoError(t, Save(db, p))
	}

	activated, err := Activate(db, c.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)
	assert.Equal(t, []uint64{c.ID}, activeIDs(t, db))

	// activating twice is harmless
	_, err = Activate(db, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{c.ID}, activeIDs(t, db))

	// unknown id rolls back and keeps c active
	_, err = Activate(db, 999)
	require.ErrorIs(t, err, ErrPaletteNotFound)
	assert.Equal(t, []uint64{c.ID}, activeIDs(t, db))

	active, err := GetActive(db)
	require.NoError(t, err)
	assert.Equal(t, c.ID, active.ID)
}

func TestListOrder(t *testing.T) {
	db := setupTestDB(t)

	old := newPalette("old", false)
	old.CreatedAt = time.Now().Add(-2 * time.Hour)
	require.NoError(t, db.Create(old).Error)

	active := newPalette("active", true)
	active.CreatedAt = time.Now().Add(-3 * time.Hour)
	require.NoError(t, db.Create(active).Error)

	recent := newPalette("recent", false)
	recent.CreatedAt = time.Now().Add(-1 * time.Hour)
	require.NoError(t, db.Create(recent).Error)

	list, err := List(db)
	require.NoError(t, err)

	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{"active", "recent", "old"}, names)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	active := newPalette("active", true)
	inactive := newPalette("inactive", false)
	require.NoError(t, Save(db, active))
	require.NoError(t, Save(db, inactive))

	require.ErrorIs(t, Delete(db, active.ID), ErrActivePaletteDelete)
	require.ErrorIs(t, Delete(db, 999), ErrPaletteNotFound)
	require.NoError(t, Delete(db, inactive.ID))

	_, err := Get(db, inactive.ID)
	require.ErrorIs(t, err, ErrPaletteNotFound)
}

func TestSeedPresets(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SeedPresets(db))
	require.NoError(t, SeedPresets(db))

	list, err := List(db)
	require.NoError(t, err)
	assert.Len(t, list, len(theme.Presets()))
	assert.True(t, list[0].IsActive)
	assert.Equal(t, theme.DefaultPalette(), list[0].Colors.Data())
}

func TestSource(t *testing.T) {
	db := setupTestDB(t)
	src := Source{DB: db}

	_, err := src.ActivePalette(context.Background())
	require.ErrorIs(t, err, ErrNoActivePalette)

	require.NoError(t, SeedPresets(db))

	p, err := src.ActivePalette(context.Background())
	require.NoError(t, err)
	assert.Equal(t, theme.DefaultPalette(), p)

	res := theme.NewResolver(src, nil).Resolve(context.Background())
	assert.Equal(t, theme.OriginSource, res.Origin)
}
