package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"foodjournal/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"foodjournal/internal/auth"
	"foodjournal/internal/cache"
	"foodjournal/internal/config"
	"foodjournal/internal/db"
	"foodjournal/internal/handler"
	"foodjournal/internal/model"
	"foodjournal/internal/repository"
	"foodjournal/internal/router"
	"foodjournal/internal/service"
	"foodjournal/internal/storage"
	"foodjournal/internal/upload"
)

// @title Food Journal API
// @version 1.0
// @description Social food journal: upload dish photos, follow users, read feeds.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.FoodItem{},
			&model.Follow{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.FoodItem{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	store, err := storage.NewS3Store(context.Background(), cfg.S3Bucket, cfg.AWSRegion, cfg.S3ObjectURLTemplate)
	if err != nil {
		log.Fatalf("object store init: %v", err)
	}

	// Install the upload pipeline once; every staged record with a remote
	// asset passes through it before its row is written.
	coordinator := upload.NewCoordinator(store, cfg.UploadTimeout)
	if err := coordinator.Register(gormDB); err != nil {
		log.Fatalf("register upload pipeline: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	followRepo := repository.NewFollowRepository(gormDB)
	foodRepo := repository.NewFoodRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	followService := service.NewFollowService(followRepo, userRepo, cacheClient)
	foodService := service.NewFoodService(foodRepo, store)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, followService)
	followHandler := handler.NewFollowHandler(followService)
	foodHandler := handler.NewFoodHandler(foodService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		followHandler,
		foodHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
