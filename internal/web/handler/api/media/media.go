// Package media serves the media library api.
package media

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/config"
	store "github.com/authorsite/authorsite/internal/db/controller/media"
	"github.com/authorsite/authorsite/internal/db/models"
	"github.com/authorsite/authorsite/internal/web/handler"
	"github.com/authorsite/authorsite/internal/web/handler/api"
)

// Path is the route of the media api.
const Path = api.Prefix + "/media"

// File is the api representation of an uploaded file.
type File struct {
	ID           uint64    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	URL          string    `json:"file_path"`
	Size         int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	Kind         string    `json:"type"`
	AltText      string    `json:"alt_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// FromModel converts a stored file.
func FromModel(f *models.MediaFile) File {
	return File{
		ID:           f.ID,
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		URL:          f.FilePath,
		Size:         f.FileSize,
		MimeType:     f.MimeType,
		Kind:         f.Kind,
		AltText:      f.AltText,
		CreatedAt:    f.CreatedAt,
	}
}

// Service is the media api handler service.
type Service struct {
	handler.Service
	store *store.Store
}

// Handler is the media api handler.
var Handler = Service{}

// Init registers the media routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.store = &store.Store{
		DB:        db,
		Dir:       cfg.Media.Dir,
		URLPrefix: cfg.Media.URLPrefix,
		MaxSize:   cfg.Media.MaxUploadSize,
	}

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
		router.Delete(handler.RouterRootPath, s.Delete)
	})

	return nil
}

// Get lists uploaded files, optionally filtered by ?type=.
func (s *Service) Get(c *fiber.Ctx) error {
	files, err := s.store.List(c.Query("type"))
	if err != nil {
		return api.ServerError(c, err, "list media")
	}

	out := make([]File, 0, len(files))
	for i := range files {
		out = append(out, FromModel(&files[i]))
	}

	return c.JSON(out)
}

// Post stores the multipart form file "file" with the optional "alt_text".
func (s *Service) Post(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return api.Fail(c, fiber.StatusBadRequest, "file is required")
	}

	if s.store.MaxSize > 0 && header.Size > s.store.MaxSize {
		return api.Fail(c, fiber.StatusRequestEntityTooLarge, store.ErrFileTooLarge.Error())
	}

	content, err := header.Open()
	if err != nil {
		return api.ServerError(c, err, "open upload")
	}

	defer func() {
		if err := content.Close(); err != nil {
			log.Warn().Err(err).Msg("can't close upload")
		}
	}()

	f, err := s.store.Save(store.Upload{
		OriginalName: header.Filename,
		AltText:      c.FormValue("alt_text"),
		Content:      content,
	})

	switch {
	case errors.Is(err, store.ErrFileEmpty):
		return api.Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrFileTooLarge):
		return api.Fail(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case err != nil:
		return api.ServerError(c, err, "store upload")
	}

	log.Info().
		Uint64("id", f.ID).
		Str("name", f.OriginalName).
		Str("mime", f.MimeType).
		Int64("size", f.FileSize).
		Msg("media uploaded")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "file uploaded",
		"id":      f.ID,
		"file":    FromModel(f),
	})
}

// Delete removes the file named by ?id=.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := api.QueryID(c, "id")
	if !ok {
		return api.Fail(c, fiber.StatusBadRequest, api.MsgInvalidID)
	}

	err := s.store.Delete(id)
	if errors.Is(err, store.ErrMediaNotFound) {
		return api.Fail(c, fiber.StatusNotFound, "file not found")
	}

	if err != nil {
		return api.ServerError(c, err, "delete media")
	}

	return api.OK(c, "file deleted", id)
}
