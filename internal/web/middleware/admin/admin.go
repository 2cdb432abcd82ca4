package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// LocalsKey is the fiber.Locals key holding whether the request carried the admin header.
const LocalsKey = "IsAdmin"

// Config of the admin gate.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	Next func(c *fiber.Ctx) bool

	// Header marks a request as coming from the admin console.
	//
	// Optional. Default: "X-Admin-Session"
	Header string

	// Message is the error returned with the 401.
	//
	// Optional. Default: "unauthorized"
	Message string
}

// ConfigDefault is the default config.
var ConfigDefault = Config{ //nolint:gochecknoglobals
	Header:  "X-Admin-Session",
	Message: "unauthorized",
}

// New creates the admin gate middleware.
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault

	if len(config) > 0 {
		cfg = config[0]

		if cfg.Header == "" {
			cfg.Header = ConfigDefault.Header
		}

		if cfg.Message == "" {
			cfg.Message = ConfigDefault.Message
		}
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		present := c.Get(cfg.Header) != ""
		c.Locals(LocalsKey, present)

		if present || IsSafeMethod(c.Method()) {
			return c.Next()
		}

		log.Debug().Str("method", c.Method()).Str("path", c.Path()).Msg("mutating request without admin header")

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": cfg.Message})
	}
}

// IsSafeMethod reports whether method never changes content.
func IsSafeMethod(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the current request carried the admin header.
func IsAdmin(c *fiber.Ctx) bool {
	v, _ := c.Locals(LocalsKey).(bool)
	return v
}
