package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "todoapp/internal/errors"
	"todoapp/internal/service"
)

// PrincipalContextKey is where the auth middleware stores the resolved caller.
const PrincipalContextKey = "principal"

// principalFrom returns the caller resolved by the auth middleware.
func principalFrom(c echo.Context) (*service.Principal, error) {
	principal, ok := c.Get(PrincipalContextKey).(*service.Principal)
	if !ok || principal == nil || principal.User == nil {
		return nil, errorResponse(apperrors.ErrUnauthenticated)
	}
	return principal, nil
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(req); err != nil {
		return errorResponse(err)
	}
	return nil
}

// errorResponse maps a domain error onto the uniform JSON error body.
func errorResponse(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
