package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"tasktrack/internal/cache"
	apperrors "tasktrack/internal/errors"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

const taskListCacheTTL = 5 * time.Minute

// TaskUpdate carries a partial update. Nil fields keep their prior value.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

// TaskService exposes owner-scoped task operations.
type TaskService interface {
	List(ctx context.Context, ownerID uint) ([]model.Task, error)
	Create(ctx context.Context, ownerID uint, title, description, status string) (*model.Task, error)
	Update(ctx context.Context, ownerID, taskID uint, update TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, ownerID, taskID uint) error
}

type taskService struct {
	repo  repository.TaskRepository
	cache *cache.Client
}

// NewTaskService builds a TaskService with repository and cache.
func NewTaskService(repo repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{repo: repo, cache: cache}
}

func (s *taskService) cacheKey(ownerID uint) string {
	return fmt.Sprintf("tasks:%d", ownerID)
}

// List returns the owner's tasks newest first, serving from cache when possible.
func (s *taskService) List(ctx context.Context, ownerID uint) ([]model.Task, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(ownerID)); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if payload, err := json.Marshal(tasks); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(ownerID), payload, taskListCacheTTL)
	}
	return tasks, nil
}

// Create stores a new task for the owner. Title is required; description
// defaults to empty and status to the default tag.
func (s *taskService) Create(ctx context.Context, ownerID uint, title, description, status string) (*model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.ErrInvalidInput
	}
	if strings.TrimSpace(status) == "" {
		status = model.DefaultTaskStatus
	}

	task := &model.Task{
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      status,
		UserID:      ownerID,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(ownerID))
	return task, nil
}

// Update applies the supplied fields to a task the owner holds. A supplied
// title must remain non-empty after trimming, same rule as create.
func (s *taskService) Update(ctx context.Context, ownerID, taskID uint, update TaskUpdate) (*model.Task, error) {
	task, err := s.repo.FindByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, apperrors.ErrInvalidInput
		}
		task.Title = title
	}
	if update.Description != nil {
		task.Description = strings.TrimSpace(*update.Description)
	}
	if update.Status != nil {
		task.Status = *update.Status
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(ownerID))
	return task, nil
}

// Delete removes a task the owner holds.
func (s *taskService) Delete(ctx context.Context, ownerID, taskID uint) error {
	if err := s.repo.DeleteByIDAndOwner(ctx, taskID, ownerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(ownerID))
	return nil
}
