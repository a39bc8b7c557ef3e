package model

import "time"

// TaskStatus is the run state of a single task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusSkipped   TaskStatus = "skipped"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusSkipped:
		return true
	}
	return false
}

// TaskPriority ranks how important a task is within its checklist.
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

// Valid reports whether p is one of the known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

// Task is a single step within a checklist.
type Task struct {
	// ID is unique within the owning checklist and never changes.
	ID string `json:"id"`

	// Title is the display text. Callers must not pass an empty title.
	Title string `json:"title"`

	// Description holds optional details; empty means absent.
	Description string `json:"description,omitempty"`

	Status   TaskStatus   `json:"status"`
	Priority TaskPriority `json:"priority"`

	// Order positions the task for display. Ties keep their stored order.
	Order int `json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// CompletedAt is set when Status moves into completed and cleared
	// when it moves away from completed.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CreateTaskInput carries the fields needed to create a task.
// Title is not validated here.
type CreateTaskInput struct {
	Title       string
	Order       int
	Description string
	// Priority defaults to medium when empty.
	Priority TaskPriority
}

// TaskUpdate is a partial update of a task. Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	Order       *int
}
