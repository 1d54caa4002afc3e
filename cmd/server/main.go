package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshatdev/bitblog/internal/auth"
	"github.com/akshatdev/bitblog/internal/config"
	"github.com/akshatdev/bitblog/internal/database"
	postgresrepo "github.com/akshatdev/bitblog/internal/repository/postgres"
	"github.com/akshatdev/bitblog/internal/service"
	"github.com/akshatdev/bitblog/internal/transport/http/handlers"
	"github.com/akshatdev/bitblog/internal/transport/http/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()

	ctx := context.Background()

	// Database
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, database.DSN(cfg)); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	categoryRepo := postgresrepo.NewCategoryRepo(pool)

	// Auth primitives
	hasher := auth.NewBcryptHasher()
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	cookies := auth.NewCookieManager(cfg.IsProduction())

	// Services
	authService := service.NewAuthService(userRepo, hasher, tokens)
	categoryService := service.NewCategoryService(categoryRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cookies)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	requireAuth := middleware.Auth(tokens)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", healthHandler(pool))

	mux.HandleFunc("POST /api/auth/register", handlers.Wrap(logger, authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", handlers.Wrap(logger, authHandler.Login))
	mux.HandleFunc("POST /api/auth/google-login", handlers.Wrap(logger, authHandler.GoogleLogin))
	mux.HandleFunc("POST /api/auth/logout", handlers.Wrap(logger, authHandler.Logout))

	mux.Handle("POST /api/category", requireAuth(handlers.Wrap(logger, categoryHandler.Add)))
	mux.HandleFunc("GET /api/category", handlers.Wrap(logger, categoryHandler.List))
	mux.HandleFunc("GET /api/category/{id}", handlers.Wrap(logger, categoryHandler.Show))
	mux.Handle("PUT /api/category/{id}", requireAuth(handlers.Wrap(logger, categoryHandler.Update)))
	mux.Handle("DELETE /api/category/{id}", requireAuth(handlers.Wrap(logger, categoryHandler.Delete)))

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("starting server", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, middleware.CORS(cfg.CORSOrigins)(mux)); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func healthHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "connected"
		if err := pool.Ping(ctx); err != nil {
			dbStatus = "disconnected"
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "healthy",
			"database":  dbStatus,
			"timestamp": time.Now(),
		})
	}
}
