package middleware

import (
	"context"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"ballotbox/internal/auth"
	"ballotbox/internal/errors"
	"ballotbox/internal/logger"
)

// ClaimsContextKey is where the authenticated claims are stored on the echo context.
const ClaimsContextKey = "user"

// Authorizer validates bearer tokens.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*auth.Claims, error)
}

// JWT returns the echo-jwt middleware backed by the given authorizer, so
// revoked tokens are rejected alongside malformed and expired ones.
func JWT(authorizer Authorizer) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ClaimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authorizer.Authorize(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logger.Log.Debug("authentication failed", "path", c.Path(), "error", err)
			return respond(errors.ErrUnauthenticated)
		},
	})
}

// RequireAdmin rejects callers that are not administrators. It must run after JWT.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return respond(errors.ErrUnauthenticated)
		}
		if !claims.IsAdmin() {
			return respond(errors.ErrForbidden)
		}
		return next(c)
	}
}

// ClaimsFrom returns the claims stored by JWT.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

func respond(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
