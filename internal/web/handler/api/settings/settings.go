// Package settings serves the site settings api.
package settings

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/config"
	"github.com/authorsite/authorsite/internal/db/controller/setting"
	"github.com/authorsite/authorsite/internal/web/handler"
	"github.com/authorsite/authorsite/internal/web/handler/api"
)

// Path is the route of the settings api.
const Path = api.Prefix + "/settings"

// Service is the settings api handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the settings api handler.
var Handler = Service{}

// Init registers the settings routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get returns every setting as one object.
func (s *Service) Get(c *fiber.Ctx) error {
	bag, err := setting.Bag(s.db)
	if err != nil {
		return api.ServerError(c, err, "load settings")
	}

	return c.JSON(bag)
}

// Post upserts every key of the body object.
func (s *Service) Post(c *fiber.Ctx) error {
	var values map[string]json.RawMessage
	if err := c.BodyParser(&values); err != nil {
		return api.Fail(c, fiber.StatusBadRequest, api.MsgInvalidBody)
	}

	if _, ok := values[""]; ok {
		return api.Fail(c, fiber.StatusBadRequest, "setting name can not be empty")
	}

	err := setting.SetMany(s.db, values)
	if errors.Is(err, setting.ErrSettingValueInvalid) {
		return api.Fail(c, fiber.StatusBadRequest, api.MsgInvalidBody)
	}

	if err != nil {
		return api.ServerError(c, err, "save settings")
	}

	log.Info().Int("count", len(values)).Msg("settings saved")

	return api.OK(c, "settings saved", 0)
}
