package checklist

import (
	"math"
	"sort"

	"github.com/nhle/sailcheck/internal/model"
)

// NewChecklist creates an active checklist with no tasks.
func (o Ops) NewChecklist(input model.CreateChecklistInput) model.Checklist {
	now := o.Time()
	return model.Checklist{
		ID:          o.id(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Tasks:       []model.Task{},
		IsActive:    true,
		IsTemplate:  input.IsTemplate,
		Color:       input.Color,
		Icon:        input.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewChecklist creates a checklist with the default clock and id source.
func NewChecklist(input model.CreateChecklistInput) model.Checklist {
	return Default.NewChecklist(input)
}

// ComputeStats derives progress counters for c. A checklist with no tasks
// is 0% and never fully completed.
func ComputeStats(c model.Checklist) model.ChecklistStats {
	total := len(c.Tasks)
	completed := 0
	for _, t := range c.Tasks {
		if t.Status == model.TaskStatusCompleted {
			completed++
		}
	}

	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return model.ChecklistStats{
		TotalTasks:           total,
		CompletedTasks:       completed,
		PendingTasks:         total - completed,
		CompletionPercentage: pct,
		IsFullyCompleted:     total > 0 && completed == total,
	}
}

// AllCompleted reports whether every task in tasks is completed.
// An empty slice counts as all completed.
func AllCompleted(tasks []model.Task) bool {
	for _, t := range tasks {
		if t.Status != model.TaskStatusCompleted {
			return false
		}
	}
	return true
}

// SortedTasks returns a copy of tasks ordered by Order, keeping the stored
// order for ties.
func SortedTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}
