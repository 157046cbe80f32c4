package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todoapp/internal/model"
	"todoapp/internal/service"
)

// TodoHandler handles todo endpoints. Every route runs behind the auth middleware.
type TodoHandler struct {
	todoService service.TodoService
}

// NewTodoHandler creates a new todo handler.
func NewTodoHandler(todoService service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// CreateTodoRequest represents a todo creation request.
type CreateTodoRequest struct {
	Description string `json:"description"`
}

// UpdateTodoRequest represents a partial todo update. Omitted fields are left unchanged.
type UpdateTodoRequest struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TodoListResponse wraps the caller's todos.
type TodoListResponse struct {
	Todos []model.Todo `json:"todos"`
}

// ListTodos godoc
// @Summary List todos
// @Description Returns the caller's todos, newest first.
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TodoListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /todos [get]
func (h *TodoHandler) ListTodos(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	todos, err := h.todoService.ListTodos(c.Request().Context(), principal.User.ID)
	if err != nil {
		return errorResponse(err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}

	return c.JSON(http.StatusOK, TodoListResponse{Todos: todos})
}

// CreateTodo godoc
// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTodoRequest true "Todo payload"
// @Success 201 {object} model.Todo
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /todos [post]
func (h *TodoHandler) CreateTodo(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req CreateTodoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	todo, err := h.todoService.CreateTodo(c.Request().Context(), principal.User.ID, req.Description)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusCreated, todo)
}

// GetTodo godoc
// @Summary Get a todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} model.Todo
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /todos/{id} [get]
func (h *TodoHandler) GetTodo(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.GetTodo(c.Request().Context(), c.Param("id"), principal.User.ID)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, todo)
}

// UpdateTodo godoc
// @Summary Update a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Param request body UpdateTodoRequest true "Fields to change"
// @Success 200 {object} model.Todo
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /todos/{id} [put]
func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req UpdateTodoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	todo, err := h.todoService.UpdateTodo(c.Request().Context(), c.Param("id"), principal.User.ID, service.TodoPatch{
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, todo)
}

// DeleteTodo godoc
// @Summary Delete a todo
// @Tags todos
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /todos/{id} [delete]
func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	if err := h.todoService.DeleteTodo(c.Request().Context(), c.Param("id"), principal.User.ID); err != nil {
		return errorResponse(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ToggleTodo godoc
// @Summary Toggle a todo's completion
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} model.Todo
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /todos/{id}/toggle [patch]
func (h *TodoHandler) ToggleTodo(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.ToggleTodo(c.Request().Context(), c.Param("id"), principal.User.ID)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, todo)
}
