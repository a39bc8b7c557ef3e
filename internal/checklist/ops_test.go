package checklist

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/sailcheck/internal/model"
)

var t0 = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

// fakeOps returns Ops whose clock advances one minute per call and whose
// ids count up from 1.
func fakeOps() Ops {
	tick := 0
	n := 0
	return Ops{
		Now: func() time.Time {
			tick++
			return t0.Add(time.Duration(tick) * time.Minute)
		},
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
}

func statusPtr(s model.TaskStatus) *model.TaskStatus { return &s }

func TestNewTaskDefaults(t *testing.T) {
	ops := fakeOps()

	task := ops.NewTask(model.CreateTaskInput{Title: "Check bilge", Order: 2})

	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, "Check bilge", task.Title)
	assert.Equal(t, model.TaskStatusPending, task.Status)
	assert.Equal(t, model.TaskPriorityMedium, task.Priority)
	assert.Equal(t, 2, task.Order)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	assert.Nil(t, task.CompletedAt)
}

func TestNewTaskKeepsPriority(t *testing.T) {
	task := NewTask(model.CreateTaskInput{Title: "Lifejackets", Priority: model.TaskPriorityCritical})
	assert.Equal(t, model.TaskPriorityCritical, task.Priority)
	assert.NotEmpty(t, task.ID)
}

func TestNewTaskUniqueIDs(t *testing.T) {
	a := NewTask(model.CreateTaskInput{Title: "a"})
	b := NewTask(model.CreateTaskInput{Title: "b"})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestApplyTaskUpdateCompletionTimestamps(t *testing.T) {
	done := t0.Add(-time.Hour)

	tests := []struct {
		name          string
		from          model.TaskStatus
		completedAt   *time.Time
		update        model.TaskUpdate
		wantStatus    model.TaskStatus
		wantCompleted bool
		wantUnchanged bool
	}{
		{
			name:          "pending to completed stamps",
			from:          model.TaskStatusPending,
			update:        model.TaskUpdate{Status: statusPtr(model.TaskStatusCompleted)},
			wantStatus:    model.TaskStatusCompleted,
			wantCompleted: true,
		},
		{
			name:        "completed to pending clears",
			from:        model.TaskStatusCompleted,
			completedAt: &done,
			update:      model.TaskUpdate{Status: statusPtr(model.TaskStatusPending)},
			wantStatus:  model.TaskStatusPending,
		},
		{
			name:        "completed to skipped clears",
			from:        model.TaskStatusCompleted,
			completedAt: &done,
			update:      model.TaskUpdate{Status: statusPtr(model.TaskStatusSkipped)},
			wantStatus:  model.TaskStatusSkipped,
		},
		{
			name:       "pending to skipped leaves unset",
			from:       model.TaskStatusPending,
			update:     model.TaskUpdate{Status: statusPtr(model.TaskStatusSkipped)},
			wantStatus: model.TaskStatusSkipped,
		},
		{
			name:          "completed to completed keeps original stamp",
			from:          model.TaskStatusCompleted,
			completedAt:   &done,
			update:        model.TaskUpdate{Status: statusPtr(model.TaskStatusCompleted)},
			wantStatus:    model.TaskStatusCompleted,
			wantCompleted: true,
			wantUnchanged: true,
		},
		{
			name:          "no status leaves stamp alone",
			from:          model.TaskStatusCompleted,
			completedAt:   &done,
			update:        model.TaskUpdate{},
			wantStatus:    model.TaskStatusCompleted,
			wantCompleted: true,
			wantUnchanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := fakeOps()
			task := model.Task{ID: "t", Title: "x", Status: tt.from, CompletedAt: tt.completedAt, UpdatedAt: t0}

			got := ops.ApplyTaskUpdate(task, tt.update)

			assert.Equal(t, tt.wantStatus, got.Status)
			assert.True(t, got.UpdatedAt.After(t0))
			if !tt.wantCompleted {
				assert.Nil(t, got.CompletedAt)
				return
			}
			require.NotNil(t, got.CompletedAt)
			if tt.wantUnchanged {
				assert.Equal(t, done, *got.CompletedAt)
			} else {
				assert.Equal(t, got.UpdatedAt, *got.CompletedAt)
			}
		})
	}
}

func TestApplyTaskUpdateOtherFields(t *testing.T) {
	title := "Stow fenders"
	desc := "All four"
	prio := model.TaskPriorityLow
	order := 9
	task := model.Task{ID: "t", Title: "old", Status: model.TaskStatusPending, Priority: model.TaskPriorityHigh}

	got := ApplyTaskUpdate(task, model.TaskUpdate{Title: &title, Description: &desc, Priority: &prio, Order: &order})

	assert.Equal(t, "t", got.ID)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, desc, got.Description)
	assert.Equal(t, prio, got.Priority)
	assert.Equal(t, order, got.Order)
	assert.Equal(t, model.TaskStatusPending, got.Status)
	// The input is not mutated.
	assert.Equal(t, "old", task.Title)
}

func TestTaskArraysEqual(t *testing.T) {
	a := []model.Task{
		{ID: "1", Title: "a", Status: model.TaskStatusPending, Priority: model.TaskPriorityLow, Order: 1},
		{ID: "2", Title: "b", Status: model.TaskStatusCompleted, Priority: model.TaskPriorityHigh, Order: 2},
	}
	reordered := []model.Task{a[1], a[0]}
	changed := []model.Task{a[0], a[1]}
	changed[1].Status = model.TaskStatusPending

	assert.True(t, TaskArraysEqual(a, reordered))
	assert.False(t, TaskArraysEqual(a, changed))
	assert.False(t, TaskArraysEqual(a, a[:1]))
	assert.False(t, TaskArraysEqual(a, []model.Task{a[0], a[0]}))
	assert.True(t, TaskArraysEqual(nil, []model.Task{}))
}
