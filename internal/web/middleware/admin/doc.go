// Package admin provides the admin gate middleware for the api.
//
// The admin console sends a marker header on every mutating request. The middleware
// only checks that the header is present; its value is never verified. It is a UI gate
// that keeps casual visitors from editing content by accident, not an authentication layer.
//
// The middleware performs the following tasks:
//   - Lets safe methods (GET, HEAD, OPTIONS) through untouched
//   - Answers 401 with a JSON error when the header is missing on any other method
//   - Stores whether the header was present in fiber.Locals for handlers and templates
//
// Usage:
//
//	api := app.Group("/api", admin.New(admin.Config{Header: cfg.Webserver.AdminHeader}))
package admin
