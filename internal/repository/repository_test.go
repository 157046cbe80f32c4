package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todoapp/internal/db"
	"todoapp/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.Open(db.Options{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, false))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

func createUser(t *testing.T, repo UserRepository, email string) *model.User {
	t.Helper()
	now := time.Now().UTC()
	user := &model.User{ID: uuid.NewString(), Email: email, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func createTodo(t *testing.T, repo TodoRepository, userID, description string, createdAt time.Time) *model.Todo {
	t.Helper()
	todo := &model.Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: description,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), todo))
	return todo
}

func TestUserRepository_FindByEmailAndID(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	user := createUser(t, repo, "ada@example.com")

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)

	_, err = repo.FindByEmail(ctx, "ADA@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "emails are case-sensitive as stored")

	_, err = repo.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_EmailIsUnique(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)

	createUser(t, repo, "ada@example.com")

	now := time.Now().UTC()
	err := repo.Create(context.Background(), &model.User{
		ID: uuid.NewString(), Email: "ada@example.com", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
	})
	assert.Error(t, err)
}

func TestUserRepository_WithTransactionRollsBack(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	err := repo.WithTransaction(ctx, func(ctx context.Context, tx UserRepository) error {
		createUser(t, tx, "ada@example.com")
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = repo.FindByEmail(ctx, "ada@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTodoRepository_ListByOwner(t *testing.T) {
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	todos := NewTodoRepository(gormDB)
	ctx := context.Background()

	alice := createUser(t, users, "alice@example.com")
	bob := createUser(t, users, "bob@example.com")

	base := time.Date(2025, 12, 29, 10, 0, 0, 0, time.UTC)
	first := createTodo(t, todos, alice.ID, "first", base)
	second := createTodo(t, todos, alice.ID, "second", base.Add(time.Minute))
	createTodo(t, todos, bob.ID, "bob's", base.Add(2*time.Minute))

	list, err := todos.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)

	empty, err := todos.ListByOwner(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTodoRepository_OwnershipScoping(t *testing.T) {
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	todos := NewTodoRepository(gormDB)
	ctx := context.Background()

	alice := createUser(t, users, "alice@example.com")
	bob := createUser(t, users, "bob@example.com")
	todo := createTodo(t, todos, alice.ID, "alice's", time.Now().UTC())

	found, err := todos.FindByIDForOwner(ctx, todo.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice's", found.Description)

	_, err = todos.FindByIDForOwner(ctx, todo.ID, bob.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = todos.FindByIDForOwner(ctx, uuid.NewString(), alice.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	foreign := *todo
	foreign.UserID = bob.ID
	assert.ErrorIs(t, todos.Delete(ctx, &foreign), gorm.ErrRecordNotFound)

	_, err = todos.FindByIDForOwner(ctx, todo.ID, alice.ID)
	assert.NoError(t, err, "a delete carrying the wrong owner must not remove the row")
}

func TestTodoRepository_UpdateAndDelete(t *testing.T) {
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	todos := NewTodoRepository(gormDB)
	ctx := context.Background()

	alice := createUser(t, users, "alice@example.com")
	created := time.Date(2025, 12, 29, 10, 0, 0, 0, time.UTC)
	todo := createTodo(t, todos, alice.ID, "draft", created)

	todo.Description = "final"
	todo.Completed = true
	todo.UpdatedAt = created.Add(time.Hour)
	require.NoError(t, todos.Update(ctx, todo))

	found, err := todos.FindByIDForOwner(ctx, todo.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", found.Description)
	assert.True(t, found.Completed)
	assert.True(t, found.UpdatedAt.Equal(created.Add(time.Hour)))
	assert.True(t, found.CreatedAt.Equal(created))

	require.NoError(t, todos.Delete(ctx, todo))
	_, err = todos.FindByIDForOwner(ctx, todo.ID, alice.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
