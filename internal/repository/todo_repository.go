package repository

import (
	"context"

	"gorm.io/gorm"

	"todoapp/internal/model"
)

// TodoRepository defines todo persistence operations. Reads are always scoped to an owner.
type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	Update(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, todo *model.Todo) error
	FindByIDForOwner(ctx context.Context, id, userID string) (*model.Todo, error)
	ListByOwner(ctx context.Context, userID string) ([]model.Todo, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TodoRepository) error) error
}

type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new todo repository.
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepository{db: db}
}

// Create creates a new todo.
func (r *todoRepository) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

// Update writes every column of an existing todo.
func (r *todoRepository) Update(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Save(todo).Error
}

// Delete removes a todo. The owner is part of the condition so a stale or
// foreign record can never remove someone else's row.
func (r *todoRepository) Delete(ctx context.Context, todo *model.Todo) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", todo.ID, todo.UserID).
		Delete(&model.Todo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByIDForOwner finds a todo by ID only if userID owns it. A missing todo and
// a todo owned by someone else both yield gorm.ErrRecordNotFound.
func (r *todoRepository) FindByIDForOwner(ctx context.Context, id, userID string) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// ListByOwner lists the owner's todos, newest first.
func (r *todoRepository) ListByOwner(ctx context.Context, userID string) ([]model.Todo, error) {
	todos := []model.Todo{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// WithTransaction executes a function within a database transaction.
func (r *todoRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TodoRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &todoRepository{db: tx})
	})
}
