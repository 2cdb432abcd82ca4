// Package site renders the public pages of the author site.
package site

import (
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/config"
	aboutstore "github.com/authorsite/authorsite/internal/db/controller/about"
	"github.com/authorsite/authorsite/internal/db/controller/blog"
	"github.com/authorsite/authorsite/internal/db/controller/book"
	sitesettings "github.com/authorsite/authorsite/internal/db/controller/site"
	"github.com/authorsite/authorsite/internal/db/models"
	"github.com/authorsite/authorsite/internal/theme"
	"github.com/authorsite/authorsite/internal/web/handler"
	"github.com/authorsite/authorsite/internal/web/navigation"
)

const (
	// BlogPath is the route of the blog listing.
	BlogPath = handler.RootPath + "blog"

	// BooksPath is the route of the book listing.
	BooksPath = handler.RootPath + "books"

	// Template names.
	TemplateHome     = "site/home"
	TemplateBlog     = "site/blog"
	TemplatePost     = "site/post"
	TemplateBooks    = "site/books"
	TemplateNotFound = "site/notfound"
)

// Home is the data of the home page.
type Home struct {
	About *models.AboutContent
	Books []models.Book
	Posts []models.BlogPost
}

// Service is the public site handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	resolver *theme.Resolver
}

// Handler is the public site handler.
var Handler = Service{}

// Init registers the public page routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, resolver *theme.Resolver) error {
	if app == nil || cfg == nil || db == nil || resolver == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.db = db
	s.resolver = resolver

	app.Get(handler.RootPath, s.Home)
	app.Get(BooksPath, s.Books)
	app.Route(BlogPath, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Blog)
		router.Get("/:id", s.Post)
	})

	return nil
}

// render adds the site settings and the resolved theme to data and renders name
// inside the base layout. Settings that can't be loaded fall back to the defaults.
func (s *Service) render(c *fiber.Ctx, name string, nav *navigation.Context, data any) error {
	settings := sitesettings.Defaults()
	if err := settings.Load(s.db); err != nil {
		log.Warn().Err(err).Msg("can't load site settings, using defaults")
	}

	res := s.resolver.Resolve(c.UserContext())

	return c.Render(name, fiber.Map{
		"Navigation": nav,
		"Title":      nav.Title(settings.SiteName),
		"Site":       settings,
		// hex colours and derived digits only
		"ThemeCSS": template.CSS(res.InlineCSS()), //nolint:gosec
		"Data":     data,
	}, handler.BaseLayout)
}

func (s *Service) notFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)

	nav := navigation.NewContext("Sayfa bulunamadı", "")

	return s.render(c, TemplateNotFound, nav, nil)
}

// Home renders the landing page.
func (s *Service) Home(c *fiber.Ctx) error {
	var data Home

	about, err := aboutstore.Get(s.db)

	switch {
	case err == nil:
		data.About = about
	case !errors.Is(err, aboutstore.ErrAboutNotFound):
		log.Warn().Err(err).Msg("can't load about content")
	}

	data.Books, err = book.List(s.db, book.Filter{Featured: true, Limit: s.cfg.Content.HomeBooks})
	if err != nil {
		log.Warn().Err(err).Msg("can't load featured books")
	}

	data.Posts, err = blog.List(s.db, models.PostStatusPublished, s.cfg.Content.HomePosts)
	if err != nil {
		log.Warn().Err(err).Msg("can't load latest posts")
	}

	nav := navigation.NewContext("", navigation.SectionHome)

	return s.render(c, TemplateHome, nav, data)
}

// Books renders every book that is not a draft.
func (s *Service) Books(c *fiber.Ctx) error {
	all, err := book.List(s.db, book.Filter{})
	if err != nil {
		log.Error().Err(err).Msg("can't load books")
		return c.Status(fiber.StatusInternalServerError).SendString("server error")
	}

	visible := make([]models.Book, 0, len(all))

	for i := range all {
		if all[i].Status != models.BookStatusDraft {
			visible = append(visible, all[i])
		}
	}

	nav := navigation.NewContext("Kitaplar", navigation.SectionBooks).
		AddBreadcrumb("Ana Sayfa", handler.RootPath, false).
		AddBreadcrumb("Kitaplar", BooksPath, true)

	return s.render(c, TemplateBooks, nav, visible)
}

// Blog renders the published posts.
func (s *Service) Blog(c *fiber.Ctx) error {
	posts, err := blog.List(s.db, models.PostStatusPublished, 0)
	if err != nil {
		log.Error().Err(err).Msg("can't load posts")
		return c.Status(fiber.StatusInternalServerError).SendString("server error")
	}

	nav := navigation.NewContext("Blog", navigation.SectionBlog).
		AddBreadcrumb("Ana Sayfa", handler.RootPath, false).
		AddBreadcrumb("Blog", BlogPath, true)

	return s.render(c, TemplateBlog, nav, posts)
}

// Post renders a single published post. Drafts are not found.
func (s *Service) Post(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return s.notFound(c)
	}

	p, err := blog.Get(s.db, uint64(id))
	if errors.Is(err, blog.ErrPostNotFound) || (err == nil && p.Status != models.PostStatusPublished) {
		return s.notFound(c)
	}

	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("can't load post")
		return c.Status(fiber.StatusInternalServerError).SendString("server error")
	}

	nav := navigation.NewContext(p.Title, navigation.SectionBlog).
		AddBreadcrumb("Ana Sayfa", handler.RootPath, false).
		AddBreadcrumb("Blog", BlogPath, false).
		AddBreadcrumb(p.Title, c.Path(), true)

	return s.render(c, TemplatePost, nav, p)
}
