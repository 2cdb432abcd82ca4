// Package api holds the response helpers shared by the json api handlers.
package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/authorsite/authorsite/internal/validation"
)

// Prefix is the path prefix of every api route.
const Prefix = "/api"

// Fixed error messages. Details never leave the server, they are logged instead.
const (
	MsgServerError = "server error"
	MsgInvalidBody = "invalid request body"
	MsgInvalidID   = "id is required"
	MsgNotFound    = "not found"
)

type (
	// ErrorResponse is the body of every failed api call.
	ErrorResponse struct {
		Error  string                  `json:"error"`
		Fields []validation.FieldError `json:"fields,omitempty"`
	}

	// SuccessResponse is the body of a successful mutating api call.
	SuccessResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      uint64 `json:"id,omitempty"`
	}
)

// Fail answers with status and a fixed message.
func Fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

// Invalid answers 400 listing the fields that failed validation.
func Invalid(c *fiber.Ctx, msg string, fields []validation.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg, Fields: fields})
}

// ServerError logs err and answers 500 with the fixed server error message.
func ServerError(c *fiber.Ctx, err error, action string) error {
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg(action + " failed")

	return Fail(c, fiber.StatusInternalServerError, MsgServerError)
}

// OK answers 200 with a success body.
func OK(c *fiber.Ctx, msg string, id uint64) error {
	return c.JSON(SuccessResponse{Success: true, Message: msg, ID: id})
}

// QueryID parses the positive integer query parameter name.
func QueryID(c *fiber.Ctx, name string) (uint64, bool) {
	return parseID(c.Query(name))
}

// ParamID parses the positive integer route parameter name.
func ParamID(c *fiber.Ctx, name string) (uint64, bool) {
	return parseID(c.Params(name))
}

func parseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return id, true
}
