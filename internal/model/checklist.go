package model

import (
	"strings"
	"time"
)

// Category tags a checklist for filtering and display.
type Category string

const (
	CategoryPreDeparture Category = "pre_departure"
	CategoryDeparture    Category = "departure"
	CategoryNavigation   Category = "navigation"
	CategoryArrival      Category = "arrival"
	CategorySafety       Category = "safety"
	CategoryMaintenance  Category = "maintenance"
	CategoryEmergency    Category = "emergency"
	CategoryGeneral      Category = "general"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryPreDeparture,
	CategoryDeparture,
	CategoryNavigation,
	CategoryArrival,
	CategorySafety,
	CategoryMaintenance,
	CategoryEmergency,
	CategoryGeneral,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns a human-readable label, e.g. "Pre Departure".
func (c Category) Label() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// Checklist is an ordered set of tasks run together.
type Checklist struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`

	// Tasks are owned by this checklist only.
	Tasks []Task `json:"tasks"`

	// IsActive hides the checklist from default views when false.
	IsActive bool `json:"is_active"`

	// IsTemplate is informational only.
	IsTemplate bool `json:"is_template"`

	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// LastCompletedAt is stamped when a status change leaves every task
	// completed. Un-completing a task later does not clear it; only a
	// run reset does.
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate store state.
func (c Checklist) Clone() Checklist {
	out := c
	if c.Tasks != nil {
		out.Tasks = make([]Task, len(c.Tasks))
		for i, t := range c.Tasks {
			out.Tasks[i] = t.clone()
		}
	}
	out.LastCompletedAt = cloneTime(c.LastCompletedAt)
	return out
}

func (t Task) clone() Task {
	t.CompletedAt = cloneTime(t.CompletedAt)
	return t
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// CreateChecklistInput carries the fields needed to create a checklist.
// Name is not validated here.
type CreateChecklistInput struct {
	Name        string
	Category    Category
	Description string
	IsTemplate  bool
	Color       string
	Icon        string
}

// ChecklistUpdate is a partial update of a checklist's own fields.
// Nil fields are left unchanged.
type ChecklistUpdate struct {
	Name        *string
	Description *string
	Category    *Category
	IsActive    *bool
	Color       *string
	Icon        *string
}

// ChecklistStats summarizes task progress. It is derived, never stored.
type ChecklistStats struct {
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`

	// PendingTasks is TotalTasks - CompletedTasks, so skipped tasks count
	// as pending.
	PendingTasks int `json:"pending_tasks"`

	CompletionPercentage int  `json:"completion_percentage"`
	IsFullyCompleted     bool `json:"is_fully_completed"`
}
