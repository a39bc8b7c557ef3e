package checklist

import "github.com/nhle/sailcheck/internal/model"

// NewTask creates a pending task from input. Priority defaults to medium.
func (o Ops) NewTask(input model.CreateTaskInput) model.Task {
	now := o.Time()
	priority := input.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}

	return model.Task{
		ID:          o.id(),
		Title:       input.Title,
		Description: input.Description,
		Status:      model.TaskStatusPending,
		Priority:    priority,
		Order:       input.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ApplyTaskUpdate returns task with the non-nil fields of u applied and
// UpdatedAt refreshed. CompletedAt is stamped when the status moves into
// completed and cleared when it moves out; it is left alone otherwise,
// including when u carries no status.
func (o Ops) ApplyTaskUpdate(task model.Task, u model.TaskUpdate) model.Task {
	now := o.Time()
	out := task

	if u.Title != nil {
		out.Title = *u.Title
	}
	if u.Description != nil {
		out.Description = *u.Description
	}
	if u.Priority != nil {
		out.Priority = *u.Priority
	}
	if u.Order != nil {
		out.Order = *u.Order
	}

	if u.Status != nil {
		wasCompleted := task.Status == model.TaskStatusCompleted
		willBeCompleted := *u.Status == model.TaskStatusCompleted

		out.Status = *u.Status
		switch {
		case willBeCompleted && !wasCompleted:
			completedAt := now
			out.CompletedAt = &completedAt
		case !willBeCompleted && wasCompleted:
			out.CompletedAt = nil
		}
	}

	out.UpdatedAt = now
	return out
}

// NewTask creates a task with the default clock and id source.
func NewTask(input model.CreateTaskInput) model.Task {
	return Default.NewTask(input)
}

// ApplyTaskUpdate updates a task with the default clock.
func ApplyTaskUpdate(task model.Task, u model.TaskUpdate) model.Task {
	return Default.ApplyTaskUpdate(task, u)
}

// TaskArraysEqual reports whether a and b hold the same tasks, matched by
// id, with equal title, description, status, priority and order.
// Timestamps are ignored.
func TaskArraysEqual(a, b []model.Task) bool {
	if len(a) != len(b) {
		return false
	}

	byID := make(map[string]model.Task, len(b))
	for _, t := range b {
		byID[t.ID] = t
	}
	if len(byID) != len(b) {
		return false
	}

	seen := make(map[string]bool, len(a))
	for _, t := range a {
		if seen[t.ID] {
			return false
		}
		seen[t.ID] = true

		other, ok := byID[t.ID]
		if !ok {
			return false
		}
		if t.Title != other.Title ||
			t.Description != other.Description ||
			t.Status != other.Status ||
			t.Priority != other.Priority ||
			t.Order != other.Order {
			return false
		}
	}

	return true
}
