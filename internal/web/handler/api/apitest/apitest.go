// Package apitest wires api handlers to an in-memory database for tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/authorsite/authorsite/internal/config"
	"github.com/authorsite/authorsite/internal/db/models"
	"github.com/authorsite/authorsite/internal/web/handler"
	"github.com/authorsite/authorsite/internal/web/middleware/admin"
)

// AdminHeader is the header Do sends for admin requests.
const AdminHeader = config.DefaultAdminHeader

// testWriter routes gorm output into the test log.
type testWriter struct {
	t *testing.T
}

func (w testWriter) Printf(format string, args ...any) {
	w.t.Helper()
	w.t.Logf(format, args...)
}

// quietLogger only reports failed statements. Lookups of missing records are expected
// during seeding and are not reported.
func quietLogger(w gormlogger.Writer) gormlogger.Interface {
	return gormlogger.New(w, gormlogger.Config{
		LogLevel:                  gormlogger.Error,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// DB opens an in-memory sqlite database with the full schema.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: quietLogger(testWriter{t})})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")

	return db
}

// Config returns a validated minimal config.
func Config() *config.Config {
	return &config.Config{
		Webserver: config.Webserver{Port: 8080, URL: "http://localhost:8080", AdminHeader: AdminHeader},
		Content:   config.Content{DefaultAuthor: "Test Author", HomePosts: 3, HomeBooks: 3},
		Media:     config.Media{MaxUploadSize: 1 << 20, URLPrefix: "/uploads"},
	}
}

// App creates a fiber app behind the admin gate with svc initialised on it.
func App(t *testing.T, svc handler.Service, cfg *config.Config, db *gorm.DB) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(admin.New(admin.Config{Header: cfg.Webserver.AdminHeader}))

	require.NoError(t, svc.Init(app, cfg, db))

	return app
}

// Do sends a request with an optional JSON body and returns status and body.
func Do(t *testing.T, app *fiber.App, method, target string, body any, asAdmin bool) (int, []byte) {
	t.Helper()

	var reader io.Reader

	if body != nil {
		raw, ok := body.(string)
		if !ok {
			data, err := json.Marshal(body)
			require.NoError(t, err)

			raw = string(data)
		}

		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	if asAdmin {
		req.Header.Set(AdminHeader, "1")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, out
}

// Decode unmarshals body into a value of type T.
func Decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))

	return v
}
