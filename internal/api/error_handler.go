package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/edu-crud/user-records-api/internal/api/handler"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders errors
// escaping the handlers (unknown routes, method mismatches, bind failures,
// recovered panics) in the same envelope as every other response.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = handler.Respond(c, code, msg, nil)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			return he.Code, "Route not found"
		case http.StatusMethodNotAllowed:
			return he.Code, "Method not allowed"
		case http.StatusBadRequest, http.StatusUnsupportedMediaType:
			return http.StatusBadRequest, "Invalid request body"
		}
		if he.Code < http.StatusInternalServerError {
			return he.Code, http.StatusText(he.Code)
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}
