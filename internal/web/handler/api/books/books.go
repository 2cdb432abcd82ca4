// Package books serves the book api.
package books

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/config"
	"github.com/authorsite/authorsite/internal/db/controller/book"
	"github.com/authorsite/authorsite/internal/db/models"
	"github.com/authorsite/authorsite/internal/validation"
	"github.com/authorsite/authorsite/internal/web/handler"
	"github.com/authorsite/authorsite/internal/web/handler/api"
)

// Path is the route of the book api.
const Path = api.Prefix + "/books"

// Book is the api representation of a book, used for reading and writing.
type Book struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"        validate:"required"`
	Description string    `json:"description"`
	Excerpt     string    `json:"excerpt"`
	Price       float64   `json:"price"        validate:"gte=0"`
	Currency    string    `json:"currency"`
	AmazonLink  string    `json:"amazon_link"`
	CoverImage  string    `json:"cover_image"`
	PublishDate string    `json:"publish_date"`
	ISBN        string    `json:"isbn"`
	PageCount   int       `json:"page_count"   validate:"gte=0"`
	Genre       string    `json:"genre"`
	Status      string    `json:"status"       validate:"omitempty,oneof=published draft coming-soon"`
	Featured    bool      `json:"featured"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromModel converts a stored book.
func FromModel(b *models.Book) Book {
	tags := []string(b.Tags)
	if tags == nil {
		tags = []string{}
	}

	return Book{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Excerpt:     b.Excerpt,
		Price:       b.Price,
		Currency:    b.Currency,
		AmazonLink:  b.AmazonLink,
		CoverImage:  b.CoverImage,
		PublishDate: b.PublishDate,
		ISBN:        b.ISBN,
		PageCount:   b.PageCount,
		Genre:       b.Genre,
		Status:      b.Status,
		Featured:    b.Featured,
		Tags:        tags,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// Model converts the request body into a model. Timestamps are left to the store.
func (b *Book) Model() *models.Book {
	return &models.Book{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Excerpt:     b.Excerpt,
		Price:       b.Price,
		Currency:    b.Currency,
		AmazonLink:  b.AmazonLink,
		CoverImage:  b.CoverImage,
		PublishDate: b.PublishDate,
		ISBN:        b.ISBN,
		PageCount:   b.PageCount,
		Genre:       b.Genre,
		Status:      b.Status,
		Featured:    b.Featured,
		Tags:        datatypes.JSONSlice[string](b.Tags),
	}
}

// Service is the book api handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the book api handler.
var Handler = Service{}

// Init registers the book routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
		router.Delete(handler.RouterRootPath, s.Delete)
	})

	return nil
}

// Get lists books, optionally filtered by ?status= and ?featured=true.
func (s *Service) Get(c *fiber.Ctx) error {
	books, err := book.List(s.db, book.Filter{
		Status:   c.Query("status"),
		Featured: c.QueryBool("featured"),
	})
	if err != nil {
		return api.ServerError(c, err, "list books")
	}

	out := make([]Book, 0, len(books))
	for i := range books {
		out = append(out, FromModel(&books[i]))
	}

	return c.JSON(out)
}

// Post creates a book, or replaces it when the body carries an id.
func (s *Service) Post(c *fiber.Ctx) error {
	var req Book
	if err := c.BodyParser(&req); err != nil {
		return api.Fail(c, fiber.StatusBadRequest, api.MsgInvalidBody)
	}

	if fields := validation.Struct(req); fields != nil {
		return api.Invalid(c, "invalid book", fields)
	}

	b := req.Model()

	err := book.Save(s.db, b)
	if errors.Is(err, book.ErrBookNotFound) {
		return api.Fail(c, fiber.StatusNotFound, "book not found")
	}

	if err != nil {
		return api.ServerError(c, err, "save book")
	}

	msg := "book created"
	if req.ID != 0 {
		msg = "book updated"
	}

	log.Info().Uint64("id", b.ID).Str("status", b.Status).Msg(msg)

	return api.OK(c, msg, b.ID)
}

// Delete removes the book named by ?id=.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := api.QueryID(c, "id")
	if !ok {
		return api.Fail(c, fiber.StatusBadRequest, api.MsgInvalidID)
	}

	err := book.Delete(s.db, id)
	if errors.Is(err, book.ErrBookNotFound) {
		return api.Fail(c, fiber.StatusNotFound, "book not found")
	}

	if err != nil {
		return api.ServerError(c, err, "delete book")
	}

	return api.OK(c, "book deleted", id)
}
