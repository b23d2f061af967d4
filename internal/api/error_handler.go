package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// statusMapping ties a domain sentinel to its response. An empty msg means the
// error text itself is safe to return.
type statusMapping struct {
	target error
	code   int
	msg    string
}

// Checked in order: specific errors precede the category they wrap.
var domainStatuses = []statusMapping{
	{domain.ErrValidation, http.StatusBadRequest, ""},
	{domain.ErrUserExists, http.StatusBadRequest, "user already exists"},
	{domain.ErrRestaurantExists, http.StatusBadRequest, "restaurant already exists"},
	{domain.ErrConflict, http.StatusBadRequest, "conflict"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrRestaurantNotFound, http.StatusNotFound, "restaurant not found"},
	{domain.ErrNotFound, http.StatusNotFound, "not found"},
}

// NewHTTPErrorHandler renders every error returned by a handler or middleware
// as {"error": msg}. Unknown errors are logged and answered with a 500 that
// carries no detail.
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
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// bind failures, router 404/405
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("http error")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range domainStatuses {
		if !errors.Is(err, m.target) {
			continue
		}
		if m.msg == "" {
			return m.code, err.Error()
		}
		return m.code, m.msg
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
