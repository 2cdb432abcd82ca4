// Package about serves the about page api.
package about

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/config"
	store "github.com/authorsite/authorsite/internal/db/controller/about"
	"github.com/authorsite/authorsite/internal/db/models"
	"github.com/authorsite/authorsite/internal/web/handler"
	"github.com/authorsite/authorsite/internal/web/handler/api"
)

// Path is the route of the about api.
const Path = api.Prefix + "/about"

// Content is the api representation of the about page.
type Content struct {
	ID             uint64    `json:"id"`
	Title          string    `json:"title"`
	Subtitle       string    `json:"subtitle"`
	Biography      string    `json:"biography"`
	PersonalQuote  string    `json:"personal_quote"`
	ProfileImage   string    `json:"profile_image"`
	WritingJourney string    `json:"writing_journey"`
	Inspiration    string    `json:"inspiration"`
	Achievements   []string  `json:"achievements"`
	Hobbies        []string  `json:"hobbies"`
	FavoriteBooks  []string  `json:"favorite_books"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func list(v []string) []string {
	if v == nil {
		return []string{}
	}

	return v
}

// FromModel converts the stored about content.
func FromModel(a *models.AboutContent) Content {
	return Content{
		ID:             a.ID,
		Title:          a.Title,
		Subtitle:       a.Subtitle,
		Biography:      a.Biography,
		PersonalQuote:  a.PersonalQuote,
		ProfileImage:   a.ProfileImage,
		WritingJourney: a.WritingJourney,
		Inspiration:    a.Inspiration,
		Achievements:   list(a.Achievements),
		Hobbies:        list(a.Hobbies),
		FavoriteBooks:  list(a.FavoriteBooks),
		UpdatedAt:      a.UpdatedAt,
	}
}

// Service is the about api handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the about api handler.
var Handler = Service{}

// Init registers the about routes.
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

// Get returns the current about content.
func (s *Service) Get(c *fiber.Ctx) error {
	a, err := store.Get(s.db)
	if errors.Is(err, store.ErrAboutNotFound) {
		return api.Fail(c, fiber.StatusNotFound, "about content not found")
	}

	if err != nil {
		return api.ServerError(c, err, "load about content")
	}

	return c.JSON(FromModel(a))
}

// Post replaces the about content.
func (s *Service) Post(c *fiber.Ctx) error {
	var req Content
	if err := c.BodyParser(&req); err != nil {
		return api.Fail(c, fiber.StatusBadRequest, api.MsgInvalidBody)
	}

	a := &models.AboutContent{
		Title:          req.Title,
		Subtitle:       req.Subtitle,
		Biography:      req.Biography,
		PersonalQuote:  req.PersonalQuote,
		ProfileImage:   req.ProfileImage,
		WritingJourney: req.WritingJourney,
		Inspiration:    req.Inspiration,
		Achievements:   datatypes.JSONSlice[string](req.Achievements),
		Hobbies:        datatypes.JSONSlice[string](req.Hobbies),
		FavoriteBooks:  datatypes.JSONSlice[string](req.FavoriteBooks),
	}

	if err := store.Save(s.db, a); err != nil {
		return api.ServerError(c, err, "save about content")
	}

	log.Info().Uint64("id", a.ID).Msg("about content saved")

	return api.OK(c, "about content saved", a.ID)
}
