package handler

import (
	"errors"

	"github.com/codewithlokesh/intrvu-backend/internal/usecase"
	"github.com/gofiber/fiber/v2"
)

// statusOf maps the usecase failure classes onto HTTP statuses. Unknown
// errors stay 500 and are reported without detail.
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, usecase.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrInvalidModelOutput):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// publicMessage picks what the client sees. Store and provider details stay
// server-side; the tagged classes carry safe messages of their own.
func publicMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrInvalidModelOutput):
		return "AI returned an unreadable response"
	case errors.Is(err, usecase.ErrSaveFailed):
		return "Failed to save changes"
	case errors.Is(err, usecase.ErrUnauthorized),
		errors.Is(err, usecase.ErrNotFound),
		errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrConflict):
		return err.Error()
	default:
		return "Internal server error"
	}
}
