package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"todoapp/internal/auth"
	"todoapp/internal/config"
	"todoapp/internal/db"
	"todoapp/internal/model"
	"todoapp/internal/repository"
	"todoapp/internal/service"
)

var demoTodos = []string{
	"Buy groceries",
	"Walk the dog",
	"Read a chapter of a book",
	"Call mom",
	"Plan the weekend trip",
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()
	email := envOr("SEED_EMAIL", "demo@example.com")
	password := envOr("SEED_PASSWORD", "password123")

	// Connect to database
	gormDB, err := db.Open(db.Options{Driver: cfg.DBDriver, DSN: cfg.DBURL, LogLevel: cfg.DBLogLevel})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB, false); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userService := service.NewUserService(repository.NewUserRepository(gormDB), auth.NewPasswordHasher(cfg.BcryptCost))
	todoService := service.NewTodoService(repository.NewTodoRepository(gormDB), nil)
	ctx := context.Background()

	user, created, err := ensureUser(ctx, userService, email, password)
	if err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}
	if created {
		log.Printf("Created demo user %s", user.Email)
	} else {
		log.Printf("Demo user %s already exists", user.Email)
	}

	log.Println("Seeding todos into database...")
	seeded, skipped, err := seedTodos(ctx, todoService, user.ID, demoTodos)
	if err != nil {
		log.Fatalf("Failed to seed todos: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New todos created: %d", seeded)
	log.Printf("  - Existing todos skipped: %d", skipped)
}

// ensureUser returns the user registered under email, creating it if needed.
func ensureUser(ctx context.Context, users service.UserService, email, password string) (*model.User, bool, error) {
	existing, err := users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, false, fmt.Errorf("error checking user %s: %w", email, err)
	}
	if existing != nil {
		return existing, false, nil
	}

	user, err := users.CreateUser(ctx, email, password)
	if err != nil {
		return nil, false, fmt.Errorf("error creating user %s: %w", email, err)
	}
	return user, true, nil
}

// seedTodos creates each description the user does not have yet, so running the
// seed twice leaves the list unchanged.
func seedTodos(ctx context.Context, todos service.TodoService, userID string, descriptions []string) (seeded int, skipped int, err error) {
	existing, err := todos.ListTodos(ctx, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("error listing todos: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, todo := range existing {
		have[todo.Description] = true
	}

	for _, desc := range descriptions {
		if have[desc] {
			skipped++
			continue
		}
		if _, err := todos.CreateTodo(ctx, userID, desc); err != nil {
			return seeded, skipped, fmt.Errorf("error creating todo %q: %w", desc, err)
		}
		have[desc] = true
		seeded++
	}

	return seeded, skipped, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
