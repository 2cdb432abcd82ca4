// Package colors serves the palette api.
package colors

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/config"
	"github.com/authorsite/authorsite/internal/db/controller/palette"
	"github.com/authorsite/authorsite/internal/db/models"
	"github.com/authorsite/authorsite/internal/theme"
	"github.com/authorsite/authorsite/internal/validation"
	"github.com/authorsite/authorsite/internal/web/handler"
	"github.com/authorsite/authorsite/internal/web/handler/api"
)

// Path is the route of the palette api.
const Path = api.Prefix + "/colors"

type (
	// Palette is the api representation of a stored palette.
	Palette struct {
		ID        uint64        `json:"id"`
		Name      string        `json:"name"`
		Colors    theme.Palette `json:"colors"`
		IsActive  bool          `json:"isActive"`
		CreatedAt time.Time     `json:"createdAt"`
		CreatedBy string        `json:"createdBy,omitempty"`
	}

	// SaveRequest creates a palette, or updates it when ID is set.
	SaveRequest struct {
		ID       uint64         `json:"id"`
		Name     string         `json:"name"     validate:"required"`
		Colors   *theme.Palette `json:"colors"   validate:"required"`
		IsActive bool           `json:"isActive"`
	}

	// ActivateRequest is the body of PUT.
	ActivateRequest struct {
		ID uint64 `json:"id"`
	}
)

// Service is the palette api handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the palette api handler.
var Handler = Service{}

// Init registers the palette routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
		router.Put(handler.RouterRootPath, s.Put)
		router.Delete(handler.RouterRootPath, s.Delete)
	})

	return nil
}

// FromModel converts a stored palette.
func FromModel(p *models.ColorPalette) Palette {
	return Palette{
		ID:        p.ID,
		Name:      p.Name,
		Colors:    p.Colors.Data(),
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		CreatedBy: p.CreatedBy,
	}
}

// Get lists all palettes, or only the active one with ?active=true.
func (s *Service) Get(c *fiber.Ctx) error {
	if c.QueryBool("active") {
		p, err := palette.GetActive(s.db)
		if errors.Is(err, palette.ErrNoActivePalette) {
			return api.Fail(c, fiber.StatusNotFound, "no active palette")
		}

		if err != nil {
			return api.ServerError(c, err, "load active palette")
		}

		out := FromModel(p)
		out.CreatedBy = ""

		return c.JSON(out)
	}

	palettes, err := palette.List(s.db)
	if err != nil {
		return api.ServerError(c, err, "list palettes")
	}

	out := make([]Palette, 0, len(palettes))
	for i := range palettes {
		out = append(out, FromModel(&palettes[i]))
	}

	return c.JSON(out)
}

// Post creates or updates a palette.
func (s *Service) Post(c *fiber.Ctx) error {
	var req SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return api.Fail(c, fiber.StatusBadRequest, api.MsgInvalidBody)
	}

	if fields := validation.Struct(req); fields != nil {
		return api.Invalid(c, "name and valid colors are required", fields)
	}

	p := &models.ColorPalette{
		ID:       req.ID,
		Name:     req.Name,
		Colors:   datatypes.NewJSONType(*req.Colors),
		IsActive: req.IsActive,
	}

	err := palette.Save(s.db, p)
	if errors.Is(err, palette.ErrPaletteNotFound) {
		return api.Fail(c, fiber.StatusNotFound, "palette not found")
	}

	if errors.Is(err, palette.ErrPaletteColorsInvalid) {
		return api.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err != nil {
		return api.ServerError(c, err, "save palette")
	}

	msg := "palette created"
	if req.ID != 0 {
		msg = "palette updated"
	}

	log.Info().Uint64("id", p.ID).Bool("active", p.IsActive).Msg(msg)

	return api.OK(c, msg, p.ID)
}

// Put activates the palette named by the body id.
func (s *Service) Put(c *fiber.Ctx) error {
	var req ActivateRequest
	if err := c.BodyParser(&req); err != nil {
		return api.Fail(c, fiber.StatusBadRequest, api.MsgInvalidBody)
	}

	if req.ID == 0 {
		return api.Fail(c, fiber.StatusBadRequest, api.MsgInvalidID)
	}

	p, err := palette.Activate(s.db, req.ID)
	if errors.Is(err, palette.ErrPaletteNotFound) {
		return api.Fail(c, fiber.StatusNotFound, "palette not found")
	}

	if err != nil {
		return api.ServerError(c, err, "activate palette")
	}

	log.Info().Uint64("id", p.ID).Str("name", p.Name).Msg("palette activated")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "palette activated",
		"id":      p.ID,
		"palette": FromModel(p),
	})
}

// Delete removes the palette named by ?id=. The active palette can not be deleted.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := api.QueryID(c, "id")
	if !ok {
		return api.Fail(c, fiber.StatusBadRequest, api.MsgInvalidID)
	}

	err := palette.Delete(s.db, id)

	switch {
	case errors.Is(err, palette.ErrPaletteNotFound):
		return api.Fail(c, fiber.StatusNotFound, "palette not found")
	case errors.Is(err, palette.ErrActivePaletteDelete):
		return api.Fail(c, fiber.StatusBadRequest, "active palette can not be deleted")
	case err != nil:
		return api.ServerError(c, err, "delete palette")
	}

	return api.OK(c, "palette deleted", id)
}
