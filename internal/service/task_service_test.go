package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "tasktrack/internal/errors"
	"tasktrack/internal/model"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func TestTaskService_Create(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		description   string
		status        string
		setupMock     func(*MockTaskRepository)
		expectedError error
		check         func(*testing.T, *model.Task)
	}{
		{
			name:        "defaults applied",
			title:       "Buy milk",
			description: "",
			status:      "",
			setupMock: func(m *MockTaskRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			},
			check: func(t *testing.T, task *model.Task) {
				assert.Equal(t, "Buy milk", task.Title)
				assert.Equal(t, "", task.Description)
				assert.Equal(t, model.DefaultTaskStatus, task.Status)
				assert.Equal(t, uint(7), task.UserID)
			},
		},
		{
			name:        "title and description trimmed",
			title:       "  Call plumber  ",
			description: "  leaking sink  ",
			status:      "doing",
			setupMock: func(m *MockTaskRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			},
			check: func(t *testing.T, task *model.Task) {
				assert.Equal(t, "Call plumber", task.Title)
				assert.Equal(t, "leaking sink", task.Description)
				assert.Equal(t, "doing", task.Status)
			},
		},
		{
			name:          "empty title",
			title:         "",
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:          "whitespace-only title",
			title:         "   ",
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo, nil)
			task, err := service.Create(context.Background(), 7, tt.title, tt.description, tt.status)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, task)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, task)
				tt.check(t, task)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_List(t *testing.T) {
	now := time.Now()
	stored := []model.Task{
		{ID: 3, Title: "third", CreatedAt: now.Add(2 * time.Minute), UserID: 7},
		{ID: 2, Title: "second", CreatedAt: now.Add(time.Minute), UserID: 7},
		{ID: 1, Title: "first", CreatedAt: now, UserID: 7},
	}

	mockRepo := new(MockTaskRepository)
	mockRepo.On("ListByOwner", mock.Anything, uint(7)).Return(stored, nil)

	service := NewTaskService(mockRepo, nil)
	tasks, err := service.List(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, tasks, 3)
	// Repository order (newest first) is passed through untouched.
	assert.Equal(t, uint(3), tasks[0].ID)
	assert.Equal(t, uint(2), tasks[1].ID)
	assert.Equal(t, uint(1), tasks[2].ID)

	mockRepo.AssertExpectations(t)
}

func TestTaskService_List_Empty(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("ListByOwner", mock.Anything, uint(7)).Return([]model.Task{}, nil)

	service := NewTaskService(mockRepo, nil)
	tasks, err := service.List(context.Background(), 7)

	assert.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskService_Update(t *testing.T) {
	tests := []struct {
		name          string
		update        TaskUpdate
		setupMock     func(*MockTaskRepository)
		expectedError error
		check         func(*testing.T, *model.Task)
	}{
		{
			name:   "partial update changes only status",
			update: TaskUpdate{Status: strPtr("done")},
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByIDAndOwner", mock.Anything, uint(1), uint(7)).Return(&model.Task{
					ID: 1, Title: "Buy milk", Description: "2L", Status: "todo", UserID: 7,
				}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			},
			check: func(t *testing.T, task *model.Task) {
				assert.Equal(t, "Buy milk", task.Title)
				assert.Equal(t, "2L", task.Description)
				assert.Equal(t, "done", task.Status)
			},
		},
		{
			name:   "supplied title is trimmed",
			update: TaskUpdate{Title: strPtr("  New title  ")},
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByIDAndOwner", mock.Anything, uint(1), uint(7)).Return(&model.Task{
					ID: 1, Title: "Old title", Status: "todo", UserID: 7,
				}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			},
			check: func(t *testing.T, task *model.Task) {
				assert.Equal(t, "New title", task.Title)
			},
		},
		{
			name:   "supplied title must stay non-empty",
			update: TaskUpdate{Title: strPtr("   ")},
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByIDAndOwner", mock.Anything, uint(1), uint(7)).Return(&model.Task{
					ID: 1, Title: "Old title", Status: "todo", UserID: 7,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:   "task owned by someone else reads as not found",
			update: TaskUpdate{Status: strPtr("done")},
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByIDAndOwner", mock.Anything, uint(1), uint(7)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo, nil)
			task, err := service.Update(context.Background(), 7, 1, tt.update)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, task)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, task)
				tt.check(t, task)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name: "successful delete",
			setupMock: func(m *MockTaskRepository) {
				m.On("DeleteByIDAndOwner", mock.Anything, uint(1), uint(7)).Return(nil)
			},
		},
		{
			name: "missing or foreign task reads as not found",
			setupMock: func(m *MockTaskRepository) {
				m.On("DeleteByIDAndOwner", mock.Anything, uint(1), uint(7)).Return(gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo, nil)
			err := service.Delete(context.Background(), 7, 1)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
