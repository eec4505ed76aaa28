package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edu-crud/user-records-api/internal/core/domain"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// now is swapped in tests.
var now = time.Now

// Envelope is the body of every response the API writes, errors included.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// Respond writes an envelope. success is derived from the status code.
func Respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{
		Success:   code < http.StatusBadRequest,
		Message:   message,
		Data:      data,
		Timestamp: now().UTC().Format(timestampLayout),
	})
}

// respondError maps a service error to its status. fallback is the message
// used for unexpected failures; the service has already logged those.
func respondError(c echo.Context, err error, fallback string) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return Respond(c, http.StatusBadRequest, ve.Message, nil)
	case errors.Is(err, domain.ErrUserNotFound):
		return Respond(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, domain.ErrUsernameTaken):
		return Respond(c, http.StatusConflict, "Username already exists", nil)
	}
	return Respond(c, http.StatusInternalServerError, fallback, nil)
}
