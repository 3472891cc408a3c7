package model

import "time"

// DefaultTaskStatus is assigned when a task is created without a status.
// Status is a free-form tag, not an enum.
const DefaultTaskStatus = "todo"

// Task is a to-do item owned by exactly one user for its whole lifetime.
type Task struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Status      string    `json:"status" gorm:"size:50;not null;default:'todo'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
	UserID      uint      `json:"-" gorm:"not null;index"`
}
