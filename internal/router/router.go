package router

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"todoapp/internal/config"
	apperrors "todoapp/internal/errors"
	"todoapp/internal/handler"
	"todoapp/internal/service"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Health *handler.HealthHandler
	Auth   *handler.AuthHandler
	Todo   *handler.TodoHandler
	Events *handler.EventsHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, authService service.AuthService, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.Validator = handler.NewValidator()

	e.GET("/", h.Health.Root)
	e.GET("/health", h.Health.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/signin", h.Auth.Signin)

	// Secured routes (require a bearer token)
	secured := api.Group("", bearerAuth(authService, "header:"+echo.HeaderAuthorization+":Bearer "))

	secured.POST("/auth/signout", h.Auth.Signout)
	secured.GET("/auth/me", h.Auth.Me)

	secured.GET("/todos", h.Todo.ListTodos)
	secured.POST("/todos", h.Todo.CreateTodo)
	secured.GET("/todos/:id", h.Todo.GetTodo)
	secured.PUT("/todos/:id", h.Todo.UpdateTodo)
	secured.DELETE("/todos/:id", h.Todo.DeleteTodo)
	secured.PATCH("/todos/:id/toggle", h.Todo.ToggleTodo)

	// Browsers cannot set headers on a websocket handshake, so the token rides in the query.
	api.GET("/todos/events", h.Events.Subscribe, bearerAuth(authService, "query:token"))
}

// bearerAuth resolves the token found by lookup into a service.Principal and
// stores it under handler.PrincipalContextKey. Any failure yields the same 401.
func bearerAuth(authService service.AuthService, lookup string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: lookup,
		ContextKey:  handler.PrincipalContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.Resolve(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}
