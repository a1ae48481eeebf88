// Package apperr holds the error kinds shared by the services and the single
// fiber error handler that turns them into HTTP responses.
package apperr

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindForbidden  Kind = "forbidden"
	KindInternal   Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps a kind to its HTTP status. Conflicts stay 400 to keep the
// already-paid contract clients rely on.
func Status(k Kind) int {
	switch k {
	case KindValidation, KindConflict:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func kindFromStatus(code int) Kind {
	switch {
	case code == fiber.StatusNotFound:
		return KindNotFound
	case code == fiber.StatusUnauthorized || code == fiber.StatusForbidden:
		return KindForbidden
	case code >= 400 && code < 500:
		return KindValidation
	default:
		return KindInternal
	}
}

// ErrorHandler is installed as fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"kind":  kindFromStatus(fe.Code),
		})
	}

	var ae *Error
	if errors.As(err, &ae) {
		return c.Status(Status(ae.Kind)).JSON(fiber.Map{
			"error": ae.Message,
			"kind":  ae.Kind,
		})
	}

	zerolog.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("unexpected error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  KindInternal,
	})
}
