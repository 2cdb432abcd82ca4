package blog

import (
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authorsite/authorsite/internal/db/models"
	"github.com/authorsite/authorsite/internal/web/handler/api"
	"github.com/authorsite/authorsite/internal/web/handler/api/apitest"
)

func setup(t *testing.T) *fiber.App {
	t.Helper()

	return apitest.App(t, &Service{}, apitest.Config(), apitest.DB(t))
}

func create(t *testing.T, app *fiber.App, p Post) uint64 {
	t.Helper()

	status, body := apitest.Do(t, app, fiber.MethodPost, Path, p, true)
	require.Equal(t, fiber.StatusOK, status, string(body))

	return apitest.Decode[api.SuccessResponse](t, body).ID
}

func TestCreateDefaults(t *testing.T) {
	app := setup(t)

	id := create(t, app, Post{Title: "Merhaba", Content: "ilk yazı"})

	status, body := apitest.Do(t, app, fiber.MethodGet, Path+"/"+strconv.FormatUint(id, 10), nil, false)
	require.Equal(t, fiber.StatusOK, status)

	got := apitest.Decode[Post](t, body)
	assert.Equal(t, "Merhaba", got.Title)
	assert.Equal(t, "Test Author", got.Author)
	assert.Equal(t, models.PostStatusDraft, got.Status)
	assert.Equal(t, []string{}, got.Tags)
	assert.Nil(t, got.PublishedAt)
}

func TestPublishStampsPublishedAt(t *testing.T) {
	app := setup(t)

	id := create(t, app, Post{Title: "Draft", Author: "Guest"})
	create(t, app, Post{ID: id, Title: "Live", Author: "Guest", Status: models.PostStatusPublished, Tags: []string{"news"}})

	_, body := apitest.Do(t, app, fiber.MethodGet, Path+"/"+strconv.FormatUint(id, 10), nil, false)
	got := apitest.Decode[Post](t, body)

	assert.Equal(t, "Live", got.Title)
	assert.Equal(t, "Guest", got.Author)
	assert.Equal(t, []string{"news"}, got.Tags)
	require.NotNil(t, got.PublishedAt)
}

func TestListFilter(t *testing.T) {
	app := setup(t)

	create(t, app, Post{Title: "a"})
	create(t, app, Post{Title: "b", Status: models.PostStatusPublished})

	_, body := apitest.Do(t, app, fiber.MethodGet, Path, nil, false)
	assert.Len(t, apitest.Decode[[]Post](t, body), 2)

	_, body = apitest.Do(t, app, fiber.MethodGet, Path+"?status=published", nil, false)
	published := apitest.Decode[[]Post](t, body)
	require.Len(t, published, 1)
	assert.Equal(t, "b", published[0].Title)
}

func TestErrors(t *testing.T) {
	app := setup(t)

	tests := []struct {
		name       string
		method     string
		target     string
		body       any
		admin      bool
		wantStatus int
	}{
		{name: "get bad id", method: fiber.MethodGet, target: Path + "/abc", wantStatus: fiber.StatusBadRequest},
		{name: "get unknown", method: fiber.MethodGet, target: Path + "/7", wantStatus: fiber.StatusNotFound},
		{name: "post without admin", method: fiber.MethodPost, target: Path, body: Post{Title: "x"}, wantStatus: fiber.StatusUnauthorized},
		{name: "post without title", method: fiber.MethodPost, target: Path, body: Post{}, admin: true, wantStatus: fiber.StatusBadRequest},
		{name: "post bad status", method: fiber.MethodPost, target: Path, body: Post{Title: "x", Status: "hidden"}, admin: true, wantStatus: fiber.StatusBadRequest},
		{name: "update unknown", method: fiber.MethodPost, target: Path, body: Post{ID: 7, Title: "x"}, admin: true, wantStatus: fiber.StatusNotFound},
		{name: "delete without id", method: fiber.MethodDelete, target: Path, admin: true, wantStatus: fiber.StatusBadRequest},
		{name: "delete unknown", method: fiber.MethodDelete, target: Path + "?id=7", admin: true, wantStatus: fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := apitest.Do(t, app, tt.method, tt.target, tt.body, tt.admin)
			assert.Equal(t, tt.wantStatus, status, string(body))
		})
	}
}

func TestDelete(t *testing.T) {
	app := setup(t)

	id := create(t, app, Post{Title: "gone"})

	status, _ := apitest.Do(t, app, fiber.MethodDelete, Path+"?id="+strconv.FormatUint(id, 10), nil, true)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = apitest.Do(t, app, fiber.MethodGet, Path+"/"+strconv.FormatUint(id, 10), nil, false)
	assert.Equal(t, fiber.StatusNotFound, status)
}
