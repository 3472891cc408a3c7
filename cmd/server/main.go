package main

import (
	"log"
	"net/http"

	_ "tasktrack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tasktrack/internal/cache"
	"tasktrack/internal/config"
	"tasktrack/internal/db"
	"tasktrack/internal/handler"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
	"tasktrack/internal/router"
	"tasktrack/internal/service"
	"tasktrack/internal/session"
)

// @title TaskTrack API
// @version 1.0
// @description Task tracker JSON API with cookie session authentication.
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Create tables if absent; this is the only migration mechanism.
	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize session components
	sessions := session.NewManager(cfg.SessionSecret)
	revoker := session.NewRevocationStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo)
	taskService := service.NewTaskService(taskRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessions, revoker)
	taskHandler := handler.NewTaskHandler(taskService)
	taskAPIHandler := handler.NewTaskAPIHandler(taskService)

	// Register routes
	router.Register(e, sessions, revoker, authHandler, taskHandler, taskAPIHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
