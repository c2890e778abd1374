package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"ballotbox/internal/auth"
	"ballotbox/internal/errors"
	"ballotbox/internal/middleware"
)

type testValidator struct{ v *validator.Validate }

func (tv *testValidator) Validate(i interface{}) error { return tv.v.Struct(i) }

type request struct {
	method string
	path   string
	body   string
	claims *auth.Claims
	params map[string]string
}

func newContext(r request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}

	req := httptest.NewRequest(r.method, r.path, strings.NewReader(r.body))
	if r.body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if r.claims != nil {
		c.Set(middleware.ClaimsContextKey, r.claims)
	}
	if len(r.params) > 0 {
		var names, values []string
		for name, value := range r.params {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

// status returns the code the client would see for a handler result.
func status(rec *httptest.ResponseRecorder, err error) int {
	if err == nil {
		return rec.Code
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return -1
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	body, ok := he.Message.(errors.ErrorResponse)
	require.True(t, ok, "expected ErrorResponse message, got %T", he.Message)
	return body.Code
}
