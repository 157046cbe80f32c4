package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	apperrors "todoapp/internal/errors"
	"todoapp/internal/model"
	"todoapp/internal/service"
)

var testPrincipal = &service.Principal{
	User:    &model.User{ID: "u1", Email: "ada@example.com"},
	TokenID: "jti-1",
}

func newTestContext(method, target, body string, principal *service.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(PrincipalContextKey, principal)
	}
	return c, rec
}

// requireHTTPError asserts err is an echo.HTTPError carrying the expected status and code.
func requireHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var httpErr *echo.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *echo.HTTPError, got %T", err)
	require.Equal(t, status, httpErr.Code)
	body, ok := httpErr.Message.(apperrors.ErrorResponse)
	require.True(t, ok, "expected ErrorResponse body, got %T", httpErr.Message)
	require.Equal(t, code, body.Code)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
