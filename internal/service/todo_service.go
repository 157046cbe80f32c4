package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "todoapp/internal/errors"
	"todoapp/internal/model"
	"todoapp/internal/repository"
	"todoapp/internal/ws"
)

// EventPublisher delivers todo change events to the owner's live subscribers.
type EventPublisher interface {
	Publish(userID string, event ws.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, ws.Event) {}

// TodoPatch carries the fields of an update. Nil fields are left unchanged.
type TodoPatch struct {
	Description *string
	Completed   *bool
}

// TodoService exposes todo operations. Every call is scoped to the given owner.
type TodoService interface {
	CreateTodo(ctx context.Context, userID, description string) (*model.Todo, error)
	ListTodos(ctx context.Context, userID string) ([]model.Todo, error)
	GetTodo(ctx context.Context, todoID, userID string) (*model.Todo, error)
	UpdateTodo(ctx context.Context, todoID, userID string, patch TodoPatch) (*model.Todo, error)
	DeleteTodo(ctx context.Context, todoID, userID string) error
	ToggleTodo(ctx context.Context, todoID, userID string) (*model.Todo, error)
}

type todoService struct {
	repo   repository.TodoRepository
	events EventPublisher
	now    func() time.Time
}

// NewTodoService creates a new todo service. events may be nil.
func NewTodoService(repo repository.TodoRepository, events EventPublisher) TodoService {
	if events == nil {
		events = noopPublisher{}
	}
	return &todoService{repo: repo, events: events, now: time.Now}
}

// CreateTodo stores a new, uncompleted todo for userID.
func (s *todoService) CreateTodo(ctx context.Context, userID, description string) (*model.Todo, error) {
	desc, err := normalizeDescription(description)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	todo := &model.Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: desc,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	s.events.Publish(userID, ws.Event{Type: ws.EventTodoCreated, Data: todo})
	return todo, nil
}

// ListTodos returns the owner's todos, newest first.
func (s *todoService) ListTodos(ctx context.Context, userID string) ([]model.Todo, error) {
	todos, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// GetTodo returns one todo. Todos owned by someone else are reported as missing.
func (s *todoService) GetTodo(ctx context.Context, todoID, userID string) (*model.Todo, error) {
	todo, err := s.repo.FindByIDForOwner(ctx, todoID, userID)
	if err != nil {
		return nil, mapTodoError(err)
	}
	return todo, nil
}

// UpdateTodo applies the supplied fields of patch.
func (s *todoService) UpdateTodo(ctx context.Context, todoID, userID string, patch TodoPatch) (*model.Todo, error) {
	var desc string
	if patch.Description != nil {
		var err error
		if desc, err = normalizeDescription(*patch.Description); err != nil {
			return nil, err
		}
	}

	var updated *model.Todo
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.TodoRepository) error {
		todo, err := repo.FindByIDForOwner(ctx, todoID, userID)
		if err != nil {
			return err
		}
		if patch.Description != nil {
			todo.Description = desc
		}
		if patch.Completed != nil {
			todo.Completed = *patch.Completed
		}
		todo.UpdatedAt = s.now().UTC()
		if err := repo.Update(ctx, todo); err != nil {
			return err
		}
		updated = todo
		return nil
	})
	if err != nil {
		return nil, mapTodoError(err)
	}

	s.events.Publish(userID, ws.Event{Type: ws.EventTodoUpdated, Data: updated})
	return updated, nil
}

// DeleteTodo removes a todo the caller owns.
func (s *todoService) DeleteTodo(ctx context.Context, todoID, userID string) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.TodoRepository) error {
		todo, err := repo.FindByIDForOwner(ctx, todoID, userID)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, todo)
	})
	if err != nil {
		return mapTodoError(err)
	}

	s.events.Publish(userID, ws.Event{Type: ws.EventTodoDeleted, Data: map[string]string{"id": todoID}})
	return nil
}

// ToggleTodo flips the completed flag.
func (s *todoService) ToggleTodo(ctx context.Context, todoID, userID string) (*model.Todo, error) {
	var toggled *model.Todo
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.TodoRepository) error {
		todo, err := repo.FindByIDForOwner(ctx, todoID, userID)
		if err != nil {
			return err
		}
		todo.Completed = !todo.Completed
		todo.UpdatedAt = s.now().UTC()
		if err := repo.Update(ctx, todo); err != nil {
			return err
		}
		toggled = todo
		return nil
	})
	if err != nil {
		return nil, mapTodoError(err)
	}

	s.events.Publish(userID, ws.Event{Type: ws.EventTodoUpdated, Data: toggled})
	return toggled, nil
}

func normalizeDescription(description string) (string, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return "", apperrors.NewValidationError("description must not be empty")
	}
	if utf8.RuneCountInString(desc) > model.MaxDescriptionLength {
		return "", apperrors.NewValidationError("description must be at most %d characters", model.MaxDescriptionLength)
	}
	return desc, nil
}

func mapTodoError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrTodoNotFound
	}
	return fmt.Errorf("todo store: %w", err)
}
