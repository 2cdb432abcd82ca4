// Package blog serves the blog api.
package blog

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/config"
	posts "github.com/authorsite/authorsite/internal/db/controller/blog"
	"github.com/authorsite/authorsite/internal/db/models"
	"github.com/authorsite/authorsite/internal/validation"
	"github.com/authorsite/authorsite/internal/web/handler"
	"github.com/authorsite/authorsite/internal/web/handler/api"
)

// Path is the route of the blog api.
const Path = api.Prefix + "/blog"

// Post is the api representation of a blog post.
type Post struct {
	ID            uint64     `json:"id"`
	Title         string     `json:"title"          validate:"required"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	FeaturedImage string     `json:"featured_image"`
	Author        string     `json:"author"`
	Status        string     `json:"status"         validate:"omitempty,oneof=draft published"`
	Tags          []string   `json:"tags"`
	PublishedAt   *time.Time `json:"published_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// FromModel converts a stored post.
func FromModel(p *models.BlogPost) Post {
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}

	return Post{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		Author:        p.Author,
		Status:        p.Status,
		Tags:          tags,
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// Service is the blog api handler service.
type Service struct {
	handler.Service
	db            *gorm.DB
	defaultAuthor string
}

// Handler is the blog api handler.
var Handler = Service{}

// Init registers the blog routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.db = db
	s.defaultAuthor = cfg.Content.DefaultAuthor

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.List)
		router.Get("/:id", s.Get)
		router.Post(handler.RouterRootPath, s.Post)
		router.Delete(handler.RouterRootPath, s.Delete)
	})

	return nil
}

// List returns posts, newest first, optionally filtered by ?status=.
func (s *Service) List(c *fiber.Ctx) error {
	list, err := posts.List(s.db, c.Query("status"), 0)
	if err != nil {
		return api.ServerError(c, err, "list posts")
	}

	out := make([]Post, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}

	return c.JSON(out)
}

// Get returns a single post.
func (s *Service) Get(c *fiber.Ctx) error {
	id, ok := api.ParamID(c, "id")
	if !ok {
		return api.Fail(c, fiber.StatusBadRequest, api.MsgInvalidID)
	}

	p, err := posts.Get(s.db, id)
	if errors.Is(err, posts.ErrPostNotFound) {
		return api.Fail(c, fiber.StatusNotFound, "post not found")
	}

	if err != nil {
		return api.ServerError(c, err, "load post")
	}

	return c.JSON(FromModel(p))
}

// Post creates a post, or replaces it when the body carries an id.
func (s *Service) Post(c *fiber.Ctx) error {
	var req Post
	if err := c.BodyParser(&req); err != nil {
		return api.Fail(c, fiber.StatusBadRequest, api.MsgInvalidBody)
	}

	if fields := validation.Struct(req); fields != nil {
		return api.Invalid(c, "invalid post", fields)
	}

	p := &models.BlogPost{
		ID:            req.ID,
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Author:        req.Author,
		Status:        req.Status,
		Tags:          datatypes.JSONSlice[string](req.Tags),
	}

	err := posts.Save(s.db, p, s.defaultAuthor)
	if errors.Is(err, posts.ErrPostNotFound) {
		return api.Fail(c, fiber.StatusNotFound, "post not found")
	}

	if err != nil {
		return api.ServerError(c, err, "save post")
	}

	msg := "post created"
	if req.ID != 0 {
		msg = "post updated"
	}

	log.Info().Uint64("id", p.ID).Str("status", p.Status).Msg(msg)

	return api.OK(c, msg, p.ID)
}

// Delete removes the post named by ?id=.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := api.QueryID(c, "id")
	if !ok {
		return api.Fail(c, fiber.StatusBadRequest, api.MsgInvalidID)
	}

	err := posts.Delete(s.db, id)
	if errors.Is(err, posts.ErrPostNotFound) {
		return api.Fail(c, fiber.StatusNotFound, "post not found")
	}

	if err != nil {
		return api.ServerError(c, err, "delete post")
	}

	return api.OK(c, "post deleted", id)
}
