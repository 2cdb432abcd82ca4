package book

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Book{}))

	return db
}

func TestSaveRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	in := &models.Book{
		Title:       "İlk Kitabım",
		Description: "A first novel.",
		Excerpt:     "It began with a letter.",
		Price:       49.9,
		Currency:    "₺",
		AmazonLink:  "https://amazon.com/dp/123",
		CoverImage:  "/uploads/cover.jpg",
		PublishDate: "2024-01-15",
		ISBN:        "978-605-00000-0-0",
		PageCount:   240,
		Genre:       "Roman",
		Status:      models.BookStatusPublished,
		Featured:    true,
		Tags:        []string{"roman", "genç yetişkin"},
	}
	require.NoError(t, Save(db, in))
	require.NotZero(t, in.ID)

	books, err := List(db, Filter{})
	require.NoError(t, err)
	require.Len(t, books, 1)

	got := books[0]
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Price, got.Price)
	assert.Equal(t, in.PublishDate, got.PublishDate)
	assert.Equal(t, in.ISBN, got.ISBN)
	assert.Equal(t, in.PageCount, got.PageCount)
	assert.Equal(t, []string{"roman", "genç yetişkin"}, []string(got.Tags))
	assert.True(t, got.Featured)
}

func TestSaveDefaults(t *testing.T) {
	db := setupTestDB(t)

	require.ErrorIs(t, Save(db, &models.Book{}), ErrTitleEmpty)
	require.ErrorIs(t, Save(nil, &models.Book{Title: "x"}), ErrDBNil)

	b := &models.Book{Title: "Draft"}
	require.NoError(t, Save(db, b))

	got, err := Get(db, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookStatusDraft, got.Status)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
}

func TestSaveUpdate(t *testing.T) {
	db := setupTestDB(t)

	b := &models.Book{Title: "Working title"}
	require.NoError(t, Save(db, b))

	update := &models.Book{ID: b.ID, Title: "Final title", Status: models.BookStatusComingSoon}
	require.NoError(t, Save(db, update))

	got, err := Get(db, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final title", got.Title)
	assert.Equal(t, models.BookStatusComingSoon, got.Status)
	assert.Equal(t, b.CreatedAt.Unix(), got.CreatedAt.Unix())

	require.ErrorIs(t, Save(db, &models.Book{ID: 999, Title: "ghost"}), ErrBookNotFound)
}

func TestListFilter(t *testing.T) {
	db := setupTestDB(t)

	for _, b := range []*models.Book{
		{Title: "a", Status: models.BookStatusPublished},
		{Title: "b", Status: models.BookStatusPublished, Featured: true},
		{Title: "c", Status: models.BookStatusDraft, Featured: true},
	} {
		require.NoError(t, Save(db, b))
	}

	titles := func(books []models.Book) []string {
		out := make([]string, 0, len(books))
		for _, b := range books {
			out = append(out, b.Title)
		}

		return out
	}

	all, err := List(db, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, titles(all))

	published, err := List(db, Filter{Status: models.BookStatusPublished})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, titles(published))

	featured, err := List(db, Filter{Featured: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c"}, titles(featured))

	both, err := List(db, Filter{Status: models.BookStatusPublished, Featured: true, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, titles(both))
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	b := &models.Book{Title: "gone"}
	require.NoError(t, Save(db, b))

	require.NoError(t, Delete(db, b.ID))
	require.ErrorIs(t, Delete(db, b.ID), ErrBookNotFound)

	_, err := Get(db, b.ID)
	require.ErrorIs(t, err, ErrBookNotFound)
}
