package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ballotbox/internal/auth"
	"ballotbox/internal/errors"
	"ballotbox/internal/logger"
	"ballotbox/internal/middleware"
)

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError converts a service error into an echo HTTP error carrying an ErrorResponse.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		logger.Log.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bindAndValidate decodes the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return respondError(c, fmt.Errorf("%w: invalid request body", errors.ErrInvalidInput))
	}
	if err := c.Validate(req); err != nil {
		return respondError(c, fmt.Errorf("%w: %s", errors.ErrInvalidInput, err.Error()))
	}
	return nil
}

// parseUUID parses an id taken from a path parameter or a request body.
func parseUUID(value, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a valid id", errors.ErrInvalidInput, field)
	}
	return id, nil
}

func paramUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := parseUUID(c.Param(name), name)
	if err != nil {
		return uuid.Nil, respondError(c, err)
	}
	return id, nil
}

func callerClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return nil, respondError(c, errors.ErrUnauthenticated)
	}
	return claims, nil
}
