package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"todoapp/internal/model"
	"todoapp/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, email, password, confirmPassword string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password, confirmPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Signin(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Resolve(ctx context.Context, token string) (*service.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Principal), args.Error(1)
}

func (m *MockAuthService) Signout(ctx context.Context, principal *service.Principal) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

// MockTodoService is a mock implementation of service.TodoService.
type MockTodoService struct {
	mock.Mock
}

func (m *MockTodoService) CreateTodo(ctx context.Context, userID, description string) (*model.Todo, error) {
	args := m.Called(ctx, userID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoService) ListTodos(ctx context.Context, userID string) ([]model.Todo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *MockTodoService) GetTodo(ctx context.Context, todoID, userID string) (*model.Todo, error) {
	args := m.Called(ctx, todoID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoService) UpdateTodo(ctx context.Context, todoID, userID string, patch service.TodoPatch) (*model.Todo, error) {
	args := m.Called(ctx, todoID, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoService) DeleteTodo(ctx context.Context, todoID, userID string) error {
	args := m.Called(ctx, todoID, userID)
	return args.Error(0)
}

func (m *MockTodoService) ToggleTodo(ctx context.Context, todoID, userID string) (*model.Todo, error) {
	args := m.Called(ctx, todoID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}
