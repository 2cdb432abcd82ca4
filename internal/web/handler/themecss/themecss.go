// Package themecss serves the resolved colour theme as a stylesheet.
package themecss

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/config"
	"github.com/authorsite/authorsite/internal/theme"
	"github.com/authorsite/authorsite/internal/web/handler"
)

const (
	// Path is the route of the theme stylesheet.
	Path = handler.RootPath + "theme.css"

	// OriginHeader reports where the served palette came from.
	OriginHeader = "X-Theme-Origin"
)

// Service is the theme stylesheet handler service.
type Service struct {
	handler.Service
	resolver *theme.Resolver
}

// Handler is the theme stylesheet handler.
var Handler = Service{}

// Init registers the stylesheet route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, resolver *theme.Resolver) error {
	if app == nil || cfg == nil || db == nil || resolver == nil {
		return handler.ErrNilACD
	}

	s.resolver = resolver

	app.Get(Path, s.Get)

	return nil
}

// Get renders the resolved variables. With nothing resolved the body is empty
// and the static stylesheet defaults apply.
func (s *Service) Get(c *fiber.Ctx) error {
	res := s.resolver.Resolve(c.UserContext())

	c.Type("css", "utf-8")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(OriginHeader, string(res.Origin))

	return c.SendString(res.CSS())
}
