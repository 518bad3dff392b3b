package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/movieshelf/backend/docs"
	"github.com/movieshelf/backend/internal/auth"
	"github.com/movieshelf/backend/internal/config"
	"github.com/movieshelf/backend/internal/handlers"
	"github.com/movieshelf/backend/internal/logger"
	"github.com/movieshelf/backend/internal/middleware"
	"github.com/movieshelf/backend/internal/models"
	"github.com/movieshelf/backend/internal/repositories"
	"github.com/movieshelf/backend/internal/seed"
	"github.com/movieshelf/backend/internal/services"
)

// @title MovieShelf API
// @version 1.0
// @description Movie catalog with user accounts, ratings, tags and asynchronous image analysis

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting MovieShelf API")

	if cfg.JWT.Secret == config.DevJWTSecret {
		logger.Logger.Warn("Using the development JWT secret, tokens are forgeable")
	}

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Seed catalog data from CSV files when configured
	if cfg.SeedDataDir != "" {
		seedCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		if err := seed.NewLoader(db, logger.Logger).Load(seedCtx, cfg.SeedDataDir); err != nil {
			cancel()
			logger.Logger.Fatal("Failed to seed database", zap.Error(err))
		}
		cancel()
	}

	// Job queue client for image analysis dispatch
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Initialize JWT token generator
	tokenGenerator := auth.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	movieRepo := repositories.NewMovieRepository(db)
	linkRepo := repositories.NewLinkRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)
	tagRepo := repositories.NewTagRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenGenerator, logger.Logger)
	userService := services.NewUserService(userRepo, logger.Logger)
	movieService := services.NewMovieService(movieRepo)
	linkService := services.NewLinkService(linkRepo)
	ratingService := services.NewRatingService(ratingRepo)
	tagService := services.NewTagService(tagRepo)
	analysisService := services.NewAnalysisService(asynqClient, logger.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	userHandler := handlers.NewUserHandler(userService, logger.Logger)
	movieHandler := handlers.NewMovieHandler(movieService, logger.Logger)
	linkHandler := handlers.NewLinkHandler(linkService, logger.Logger)
	ratingHandler := handlers.NewRatingHandler(ratingService, logger.Logger)
	tagHandler := handlers.NewTagHandler(tagService, logger.Logger)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, logger.Logger)

	// Initialize auth middleware. Role checks are exact-match, so the user
	// and admin route groups are gated separately.
	authMiddleware := middleware.AuthMiddleware(tokenGenerator, userRepo, logger.Logger)
	userMiddleware := middleware.RequireRole(models.RoleUser)
	adminMiddleware := middleware.RequireRole(models.RoleAdmin)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(10 * 1024 * 1024)) // 10MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Register auth routes (register and login stay public)
		authHandler.RegisterRoutes(r, authMiddleware)
		// Register catalog and analysis routes for the user role
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(userMiddleware)
			movieHandler.RegisterRoutes(r)
			linkHandler.RegisterRoutes(r)
			ratingHandler.RegisterRoutes(r)
			tagHandler.RegisterRoutes(r)
			analysisHandler.RegisterRoutes(r)
		})
		// Register user management routes for the admin role
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			userHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "movieshelf_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
