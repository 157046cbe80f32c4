package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "todoapp/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"todoapp/internal/auth"
	"todoapp/internal/cache"
	"todoapp/internal/config"
	"todoapp/internal/db"
	"todoapp/internal/handler"
	"todoapp/internal/repository"
	"todoapp/internal/router"
	"todoapp/internal/service"
	"todoapp/internal/ws"
)

// @title Evolution of Todo API
// @version 1.0.0
// @description Multi-user todo API with signup, signin and per-user todo lists.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Println("WARNING: JWT_SECRET is not set, using the development default")
	}

	gormDB, err := db.Open(db.Options{Driver: cfg.DBDriver, DSN: cfg.DBURL, LogLevel: cfg.DBLogLevel})
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("database handle: %v", err)
	}
	defer sqlDB.Close()

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Printf("WARNING: redis unavailable at %s, signed-out tokens stay valid until expiry: %v", cfg.RedisAddr, err)
	}
	cancelPing()

	// Initialize auth components
	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		log.Fatalf("jwt init: %v", err)
	}
	tokenStore := auth.NewTokenStore(cacheClient)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	hub := ws.NewHub()

	// Initialize services
	userService := service.NewUserService(repository.NewUserRepository(gormDB), hasher)
	todoService := service.NewTodoService(repository.NewTodoRepository(gormDB), hub)
	authService := service.NewAuthService(userService, jwtService, tokenStore, cfg.AccessTokenTTL)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, authService, router.Handlers{
		Health: handler.NewHealthHandler(sqlDB),
		Auth:   handler.NewAuthHandler(authService),
		Todo:   handler.NewTodoHandler(todoService),
		Events: handler.NewEventsHandler(hub, cfg.CORSOrigins),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.Addr())
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
