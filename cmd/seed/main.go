package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"tasktrack/internal/config"
	"tasktrack/internal/db"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
	"tasktrack/internal/service"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "demo-password"
)

var demoTasks = []struct {
	title       string
	description string
	status      string
}{
	{"Buy groceries", "Milk, eggs, coffee", "todo"},
	{"Write project notes", "Summarize last week's decisions", "doing"},
	{"Book dentist appointment", "", "done"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Printf("Connected to database %s", cfg.DBPath)

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	authService := service.NewAuthService(userRepo)

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	if err == gorm.ErrRecordNotFound {
		user, err = authService.Register(ctx, demoEmail, demoPassword)
		if err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %s (password: %s)", demoEmail, demoPassword)
	} else if err != nil {
		log.Fatalf("Failed to look up demo user: %v", err)
	} else {
		log.Printf("Demo user %s already exists", demoEmail)
	}

	existing, err := taskRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to list demo tasks: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Demo user already has %d tasks, nothing to do", len(existing))
		return
	}

	for _, t := range demoTasks {
		task := &model.Task{
			Title:       t.title,
			Description: t.description,
			Status:      t.status,
			UserID:      user.ID,
		}
		if err := taskRepo.Create(ctx, task); err != nil {
			log.Fatalf("Failed to create task %q: %v", t.title, err)
		}
	}

	log.Printf("Seed completed: %d tasks created for %s", len(demoTasks), demoEmail)
}
