// Package client talks to the site api the way the admin console does, mirroring
// what it reads into a local store and falling back to it when the site is unavailable.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/authorsite/authorsite/internal/config"
	"github.com/authorsite/authorsite/internal/localstore"
	"github.com/authorsite/authorsite/internal/theme"
	"github.com/authorsite/authorsite/internal/web/handler/api"
	"github.com/authorsite/authorsite/internal/web/handler/api/books"
	"github.com/authorsite/authorsite/internal/web/handler/api/colors"
	"github.com/authorsite/authorsite/internal/web/handler/api/settings"
)

const defaultTimeout = 10 * time.Second

var (
	// ErrUnreachable wraps transport failures.
	ErrUnreachable = errors.New("site unreachable")
	// ErrSavedLocally is returned when a write could only be stored in the local store.
	ErrSavedLocally = errors.New("site unavailable, saved locally")
	// ErrNotAdmin is returned for writes without an admin session.
	ErrNotAdmin = errors.New("admin session required")
)

// StatusError is a non 2xx answer of the api.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api answered %d: %s", e.Code, e.Message)
}

// Client is a site api client.
type Client struct {
	BaseURL     string
	Timeout     time.Duration
	AdminHeader string
	// Admin makes the client send AdminHeader on writes.
	Admin bool
	// Local mirrors reads and takes writes the site could not. May be nil.
	Local *localstore.Store
}

// New creates a client for cfg.SiteURL.
func New(cfg config.Client, adminHeader string, local *localstore.Store) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if adminHeader == "" {
		adminHeader = config.DefaultAdminHeader
	}

	return &Client{
		BaseURL:     strings.TrimRight(cfg.SiteURL, "/"),
		Timeout:     timeout,
		AdminHeader: adminHeader,
		Local:       local,
	}
}

func (c *Client) agent(method, path string) *fiber.Agent {
	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.BaseURL + path)

	a.Timeout(c.Timeout)

	if c.Admin {
		a.Set(c.AdminHeader, "true")
	}

	return a
}

// do sends the request prepared by a and decodes a 2xx JSON answer into out.
func (c *Client) do(ctx context.Context, a *fiber.Agent, out any) error {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(a)
		return err
	}

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return errors.Wrap(err, "prepare request")
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrUnreachable, errs[0])
	}

	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		var res api.ErrorResponse
		if err := json.Unmarshal(body, &res); err != nil || res.Error == "" {
			res.Error = strings.TrimSpace(string(body))
		}

		return &StatusError{Code: code, Message: res.Error}
	}

	if out == nil {
		return nil
	}

	return errors.Wrap(json.Unmarshal(body, out), "decode response")
}

// IsUnreachable reports whether err is a transport failure.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// IsUnavailable reports whether the site failed to serve a request: a transport failure
// or a 5xx answer. Reads fall back to the local store and writes go there instead.
func IsUnavailable(err error) bool {
	if IsUnreachable(err) {
		return true
	}

	var statusErr *StatusError

	return errors.As(err, &statusErr) && statusErr.Code >= fiber.StatusInternalServerError
}

// ActivePalette fetches the active palette. It implements theme.Source.
func (c *Client) ActivePalette(ctx context.Context) (theme.Palette, error) {
	var p colors.Palette
	if err := c.do(ctx, c.agent(fiber.MethodGet, colors.Path+"?active=true"), &p); err != nil {
		return theme.Palette{}, err
	}

	return p.Colors, nil
}

// Palettes lists every stored palette, the active one first.
func (c *Client) Palettes(ctx context.Context) ([]colors.Palette, error) {
	var out []colors.Palette
	if err := c.do(ctx, c.agent(fiber.MethodGet, colors.Path), &out); err != nil {
		return nil, err
	}

	return out, nil
}

// ActivatePalette makes the palette with id the only active one and mirrors it locally.
func (c *Client) ActivatePalette(ctx context.Context, id uint64) (colors.Palette, error) {
	if !c.Admin {
		return colors.Palette{}, ErrNotAdmin
	}

	a := c.agent(fiber.MethodPut, colors.Path).JSON(colors.ActivateRequest{ID: id})

	var res struct {
		api.SuccessResponse
		Palette colors.Palette `json:"palette"`
	}

	if err := c.do(ctx, a, &res); err != nil {
		return colors.Palette{}, err
	}

	c.mirror(localstore.KeyPalette, res.Palette.Colors)

	return res.Palette, nil
}

// DeletePalette removes an inactive palette.
func (c *Client) DeletePalette(ctx context.Context, id uint64) error {
	if !c.Admin {
		return ErrNotAdmin
	}

	return c.do(ctx, c.agent(fiber.MethodDelete, colors.Path+"?id="+strconv.FormatUint(id, 10)), nil)
}

// Settings returns the settings bag. When the site is unavailable the last bag
// stored locally is returned instead.
func (c *Client) Settings(ctx context.Context) (map[string]any, error) {
	var bag map[string]any

	err := c.do(ctx, c.agent(fiber.MethodGet, settings.Path), &bag)
	if err == nil {
		c.mirror(localstore.KeySettings, bag)
		return bag, nil
	}

	if !IsUnavailable(err) || c.Local == nil {
		return nil, err
	}

	log.Warn().Err(err).Msg("settings not available, reading local copy")

	found, lerr := c.Local.GetJSON(localstore.KeySettings, &bag)
	if lerr != nil || !found {
		return nil, err
	}

	return bag, nil
}

// SaveSettings upserts values. When the site is unavailable the values are merged
// into the local copy and ErrSavedLocally is returned.
func (c *Client) SaveSettings(ctx context.Context, values map[string]any) error {
	if !c.Admin {
		return ErrNotAdmin
	}

	err := c.do(ctx, c.agent(fiber.MethodPost, settings.Path).JSON(values), nil)
	if err == nil {
		if lerr := c.merge(values); lerr != nil {
			log.Warn().Err(lerr).Msg("can't mirror settings into local store")
		}

		return nil
	}

	if !IsUnavailable(err) || c.Local == nil {
		return err
	}

	log.Warn().Err(err).Msg("settings not available, saving locally")

	if lerr := c.merge(values); lerr != nil {
		return errors.Wrap(lerr, "save settings locally")
	}

	return ErrSavedLocally
}

// Books lists every book, drafts included, and mirrors the list locally. When the
// site is unavailable the local list is returned instead.
func (c *Client) Books(ctx context.Context) ([]books.Book, error) {
	var list []books.Book

	err := c.do(ctx, c.agent(fiber.MethodGet, books.Path), &list)
	if err == nil {
		c.mirror(localstore.KeyBooks, list)
		return list, nil
	}

	if !IsUnavailable(err) || c.Local == nil {
		return nil, err
	}

	log.Warn().Err(err).Msg("books not available, reading local copy")

	found, lerr := c.Local.GetJSON(localstore.KeyBooks, &list)
	if lerr != nil || !found {
		return nil, err
	}

	return list, nil
}

// SaveBook creates b, or updates it when b.ID is set, and returns it with its id.
// When the site is unavailable b is kept in the local list and ErrSavedLocally is returned.
func (c *Client) SaveBook(ctx context.Context, b books.Book) (books.Book, error) {
	if !c.Admin {
		return b, ErrNotAdmin
	}

	var res api.SuccessResponse

	err := c.do(ctx, c.agent(fiber.MethodPost, books.Path).JSON(b), &res)
	if err == nil {
		b.ID = res.ID

		if lerr := c.updateBooks(func(list []books.Book) []books.Book { return upsertBook(list, b) }); lerr != nil {
			log.Warn().Err(lerr).Msg("can't mirror book into local store")
		}

		return b, nil
	}

	if !IsUnavailable(err) || c.Local == nil {
		return b, err
	}

	log.Warn().Err(err).Str("title", b.Title).Msg("books not available, saving locally")

	if lerr := c.updateBooks(func(list []books.Book) []books.Book { return upsertBook(list, b) }); lerr != nil {
		return b, errors.Wrap(lerr, "save book locally")
	}

	return b, ErrSavedLocally
}

// DeleteBook removes the book with id. When the site is unavailable the book is only
// removed from the local list and ErrSavedLocally is returned.
func (c *Client) DeleteBook(ctx context.Context, id uint64) error {
	if !c.Admin {
		return ErrNotAdmin
	}

	remove := func(list []books.Book) []books.Book {
		out := list[:0]

		for _, b := range list {
			if b.ID != id {
				out = append(out, b)
			}
		}

		return out
	}

	err := c.do(ctx, c.agent(fiber.MethodDelete, books.Path+"?id="+strconv.FormatUint(id, 10)), nil)
	if err == nil {
		if lerr := c.updateBooks(remove); lerr != nil {
			log.Warn().Err(lerr).Msg("can't mirror book removal into local store")
		}

		return nil
	}

	if !IsUnavailable(err) || c.Local == nil {
		return err
	}

	log.Warn().Err(err).Uint64("id", id).Msg("books not available, deleting locally")

	if lerr := c.updateBooks(remove); lerr != nil {
		return errors.Wrap(lerr, "delete book locally")
	}

	return ErrSavedLocally
}

// upsertBook replaces the book with b.ID, or appends b when it is new or unsaved.
func upsertBook(list []books.Book, b books.Book) []books.Book {
	if b.ID != 0 {
		for i := range list {
			if list[i].ID == b.ID {
				list[i] = b
				return list
			}
		}
	}

	return append(list, b)
}

func (c *Client) updateBooks(fn func([]books.Book) []books.Book) error {
	if c.Local == nil {
		return nil
	}

	var list []books.Book
	if _, err := c.Local.GetJSON(localstore.KeyBooks, &list); err != nil {
		log.Warn().Err(err).Msg("local books unreadable, replacing them")
	}

	return c.Local.SetJSON(localstore.KeyBooks, fn(list))
}

func (c *Client) merge(values map[string]any) error {
	if c.Local == nil {
		return nil
	}

	bag := map[string]any{}
	if _, err := c.Local.GetJSON(localstore.KeySettings, &bag); err != nil {
		log.Warn().Err(err).Msg("local settings unreadable, replacing them")
	}

	for k, v := range values {
		bag[k] = v
	}

	return c.Local.SetJSON(localstore.KeySettings, bag)
}

func (c *Client) mirror(key string, v any) {
	if c.Local == nil {
		return
	}

	if err := c.Local.SetJSON(key, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("can't mirror into local store")
	}
}
