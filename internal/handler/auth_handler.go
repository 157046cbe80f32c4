package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"todoapp/internal/model"
	"todoapp/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// SigninRequest represents a user login request.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse carries the bearer token and when it stops being accepted.
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	User    *model.User     `json:"user"`
	Session SessionResponse `json:"session"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Signup(c.Request().Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusCreated, toAuthResponse(result))
}

// Signin godoc
// @Summary Sign in a user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SigninRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req SigninRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// Signout godoc
// @Summary Sign out the current user
// @Description Revokes the bearer token used for this request.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/signout [post]
func (h *AuthHandler) Signout(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	if err := h.authService.Signout(c.Request().Context(), principal); err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Successfully signed out"})
}

// Me godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, principal.User)
}

func toAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		User: result.User,
		Session: SessionResponse{
			Token:     result.Token,
			ExpiresAt: result.ExpiresAt,
		},
	}
}
