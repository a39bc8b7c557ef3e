package store

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/sailcheck/internal/checklist"
	"github.com/nhle/sailcheck/internal/defaults"
	"github.com/nhle/sailcheck/internal/kv"
	"github.com/nhle/sailcheck/internal/model"
	"github.com/nhle/sailcheck/tests/testutil"
)

var t0 = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

// testOps returns Ops with a clock that advances one second per call and
// sequential ids.
func testOps() checklist.Ops {
	tick, n := 0, 0
	return checklist.Ops{
		Now: func() time.Time {
			tick++
			return t0.Add(time.Duration(tick) * time.Second)
		},
		NewID: func() string {
			n++
			return fmt.Sprintf("cl-%d", n)
		},
	}
}

// seedCatalog builds a fresh two-entry catalog on every call.
func seedCatalog(locale string) []model.Checklist {
	name := "Before leaving"
	if locale == "fr" {
		name = "Avant de partir"
	}
	return []model.Checklist{
		{
			ID:       "seed-a",
			Name:     name,
			Category: model.CategoryPreDeparture,
			IsActive: true,
			Color:    "#111111",
			Tasks: []model.Task{
				{ID: "a1", Title: "Weather", Status: model.TaskStatusPending, Priority: model.TaskPriorityHigh, Order: 1},
				{ID: "a2", Title: "Fuel", Status: model.TaskStatusPending, Priority: model.TaskPriorityMedium, Order: 2},
			},
		},
		{
			ID:       "seed-b",
			Name:     "Fire",
			Category: model.CategoryEmergency,
			IsActive: true,
			Tasks: []model.Task{
				{ID: "b1", Title: "Alarm", Status: model.TaskStatusPending, Priority: model.TaskPriorityCritical, Order: 1},
			},
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newTestStore(t *testing.T, kvs kv.KeyValueStore) *ChecklistStore {
	t.Helper()
	return Open(kvs, seedCatalog, WithOps(testOps()), WithLogger(quietLogger()))
}

// countingKV records calls and can be told to fail.
type countingKV struct {
	*kv.Memory
	sets    int
	failGet bool
	failSet bool
}

func newCountingKV() *countingKV { return &countingKV{Memory: kv.NewMemory()} }

func (c *countingKV) Get(key string) (string, bool, error) {
	if c.failGet {
		return "", false, errors.New("disk on fire")
	}
	return c.Memory.Get(key)
}

func (c *countingKV) Set(key, value string) error {
	c.sets++
	if c.failSet {
		return errors.New("disk full")
	}
	return c.Memory.Set(key, value)
}

func tasksWithStatuses(statuses ...model.TaskStatus) []model.Task {
	out := make([]model.Task, len(statuses))
	for i, s := range statuses {
		out[i] = model.Task{
			ID:       fmt.Sprintf("t%d", i+1),
			Title:    fmt.Sprintf("Task %d", i+1),
			Status:   s,
			Priority: model.TaskPriorityMedium,
			Order:    i + 1,
		}
	}
	return out
}

func TestAddChecklistIDsAreUnique(t *testing.T) {
	cs := Open(kv.NewMemory(), seedCatalog, WithLogger(quietLogger()))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		var id string
		if i%2 == 0 {
			id = cs.AddChecklist(model.CreateChecklistInput{Name: "n", Category: model.CategoryGeneral})
		} else {
			id = cs.AddChecklistWithTasks(model.CreateChecklistInput{Name: "n", Category: model.CategoryGeneral}, tasksWithStatuses(model.TaskStatusPending))
		}
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Equal(t, 50, cs.Count())
}

func TestAddChecklistIsReadable(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())

	id := cs.AddChecklist(model.CreateChecklistInput{Name: "Night watch", Category: model.CategoryNavigation, Icon: "moon"})

	got, ok := cs.GetChecklist(id)
	require.True(t, ok)
	assert.Equal(t, "Night watch", got.Name)
	assert.Equal(t, "moon", got.Icon)
	assert.True(t, got.IsActive)
	assert.Empty(t, got.Tasks)
}

func TestAddChecklistWithTasksCopiesTasks(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	tasks := tasksWithStatuses(model.TaskStatusPending, model.TaskStatusPending)

	id := cs.AddChecklistWithTasks(model.CreateChecklistInput{Name: "x", Category: model.CategoryGeneral}, tasks)
	tasks[0].Title = "mutated by caller"

	got, ok := cs.GetChecklist(id)
	require.True(t, ok)
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "Task 1", got.Tasks[0].Title)
}

func TestGetChecklistReturnsCopy(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	id := cs.AddChecklistWithTasks(model.CreateChecklistInput{Name: "x"}, tasksWithStatuses(model.TaskStatusPending))

	got, _ := cs.GetChecklist(id)
	got.Name = "changed"
	got.Tasks[0].Status = model.TaskStatusCompleted

	again, _ := cs.GetChecklist(id)
	assert.Equal(t, "x", again.Name)
	assert.Equal(t, model.TaskStatusPending, again.Tasks[0].Status)
}

func TestGetChecklistStats(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	id := cs.AddChecklistWithTasks(model.CreateChecklistInput{Name: "x"},
		tasksWithStatuses(model.TaskStatusCompleted, model.TaskStatusPending, model.TaskStatusCompleted))

	stats, ok := cs.GetChecklistStats(id)
	require.True(t, ok)
	assert.Equal(t, model.ChecklistStats{
		TotalTasks:           3,
		CompletedTasks:       2,
		PendingTasks:         1,
		CompletionPercentage: 67,
		IsFullyCompleted:     false,
	}, stats)

	emptyID := cs.AddChecklist(model.CreateChecklistInput{Name: "empty"})
	stats, ok = cs.GetChecklistStats(emptyID)
	require.True(t, ok)
	assert.Equal(t, 0, stats.CompletionPercentage)
	assert.False(t, stats.IsFullyCompleted)

	_, ok = cs.GetChecklistStats("missing")
	assert.False(t, ok)
}

func TestUpdateChecklist(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	id := cs.AddChecklist(model.CreateChecklistInput{Name: "old", Category: model.CategoryGeneral, Color: "#000"})
	before, _ := cs.GetChecklist(id)

	name := "new"
	cat := model.CategorySafety
	inactive := false
	cs.UpdateChecklist(id, model.ChecklistUpdate{Name: &name, Category: &cat, IsActive: &inactive})

	got, _ := cs.GetChecklist(id)
	assert.Equal(t, "new", got.Name)
	assert.Equal(t, model.CategorySafety, got.Category)
	assert.False(t, got.IsActive)
	assert.Equal(t, "#000", got.Color)
	assert.True(t, got.UpdatedAt.After(before.UpdatedAt))
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	kvs := newCountingKV()
	cs := Open(kvs, seedCatalog, WithOps(testOps()), WithLogger(quietLogger()))
	cs.AddChecklistWithTasks(model.CreateChecklistInput{Name: "x"}, tasksWithStatuses(model.TaskStatusPending))
	before := cs.Checklists()
	writes := kvs.sets

	name := "y"
	cs.UpdateChecklist("missing", model.ChecklistUpdate{Name: &name})
	cs.UpdateChecklistTasks("missing", nil)
	cs.DeleteChecklist("missing")
	cs.ToggleChecklistActive("missing")
	cs.UpdateTaskStatus("missing", "t1", model.TaskStatusCompleted)
	cs.UpdateTaskStatus(before[0].ID, "missing", model.TaskStatusCompleted)
	cs.ResetChecklistRun("missing")

	_, ok := cs.GetChecklist("missing")
	assert.False(t, ok)
	assert.Equal(t, before, cs.Checklists())
	assert.Equal(t, writes, kvs.sets)
}

func TestUpdateChecklistTasksDoesNotTouchLastCompleted(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	id := cs.AddChecklistWithTasks(model.CreateChecklistInput{Name: "x"}, tasksWithStatuses(model.TaskStatusPending))

	cs.UpdateChecklistTasks(id, tasksWithStatuses(model.TaskStatusCompleted, model.TaskStatusCompleted))

	got, _ := cs.GetChecklist(id)
	assert.Len(t, got.Tasks, 2)
	assert.Nil(t, got.LastCompletedAt)
}

func TestDeleteChecklist(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	x := cs.AddChecklist(model.CreateChecklistInput{Name: "X"})
	y := cs.AddChecklist(model.CreateChecklistInput{Name: "Y"})

	cs.DeleteChecklist(x)
	got := cs.Checklists()
	require.Len(t, got, 1)
	assert.Equal(t, y, got[0].ID)

	cs.DeleteChecklist("nope")
	assert.Equal(t, got, cs.Checklists())
}

func TestToggleChecklistActive(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	id := cs.AddChecklist(model.CreateChecklistInput{Name: "x"})

	cs.ToggleChecklistActive(id)
	got, _ := cs.GetChecklist(id)
	assert.False(t, got.IsActive)
	assert.Empty(t, cs.Active())

	cs.ToggleChecklistActive(id)
	got, _ = cs.GetChecklist(id)
	assert.True(t, got.IsActive)
	assert.Len(t, cs.Active(), 1)
}

func TestUpdateTaskStatusCompletedAtRoundTrip(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	id := cs.AddChecklistWithTasks(model.CreateChecklistInput{Name: "x"},
		tasksWithStatuses(model.TaskStatusPending, model.TaskStatusPending))

	cs.UpdateTaskStatus(id, "t1", model.TaskStatusCompleted)
	got, _ := cs.GetChecklist(id)
	require.NotNil(t, got.Tasks[0].CompletedAt)
	assert.Nil(t, got.LastCompletedAt)

	cs.UpdateTaskStatus(id, "t1", model.TaskStatusPending)
	got, _ = cs.GetChecklist(id)
	assert.Nil(t, got.Tasks[0].CompletedAt)
	assert.Equal(t, model.TaskStatusPending, got.Tasks[0].Status)
}

func TestUpdateTaskStatusStampsLastCompleted(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	id := cs.AddChecklistWithTasks(model.CreateChecklistInput{Name: "x"},
		tasksWithStatuses(model.TaskStatusCompleted, model.TaskStatusPending))

	cs.UpdateTaskStatus(id, "t2", model.TaskStatusCompleted)
	got, _ := cs.GetChecklist(id)
	require.NotNil(t, got.LastCompletedAt)
	stamp := *got.LastCompletedAt

	stats, _ := cs.GetChecklistStats(id)
	assert.True(t, stats.IsFullyCompleted)

	// Un-completing a task leaves the stale stamp in place.
	cs.UpdateTaskStatus(id, "t1", model.TaskStatusPending)
	got, _ = cs.GetChecklist(id)
	require.NotNil(t, got.LastCompletedAt)
	assert.Equal(t, stamp, *got.LastCompletedAt)
}

func TestUpdateTaskStatusSkippedNeverCompletes(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	id := cs.AddChecklistWithTasks(model.CreateChecklistInput{Name: "x"},
		tasksWithStatuses(model.TaskStatusCompleted, model.TaskStatusPending))

	cs.UpdateTaskStatus(id, "t2", model.TaskStatusSkipped)

	got, _ := cs.GetChecklist(id)
	assert.Nil(t, got.LastCompletedAt)
	assert.Nil(t, got.Tasks[1].CompletedAt)
	stats, _ := cs.GetChecklistStats(id)
	assert.Equal(t, 1, stats.PendingTasks)
}

func TestResetChecklistRunIsIsolated(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	a := cs.AddChecklistWithTasks(model.CreateChecklistInput{Name: "A"}, tasksWithStatuses(model.TaskStatusPending, model.TaskStatusPending))
	b := cs.AddChecklistWithTasks(model.CreateChecklistInput{Name: "B"}, tasksWithStatuses(model.TaskStatusPending))

	cs.UpdateTaskStatus(a, "t1", model.TaskStatusCompleted)
	cs.UpdateTaskStatus(a, "t2", model.TaskStatusSkipped)
	cs.UpdateTaskStatus(b, "t1", model.TaskStatusCompleted)
	bBefore, _ := cs.GetChecklist(b)
	require.NotNil(t, bBefore.LastCompletedAt)

	cs.ResetChecklistRun(a)

	gotA, _ := cs.GetChecklist(a)
	for _, task := range gotA.Tasks {
		assert.Equal(t, model.TaskStatusPending, task.Status)
		assert.Nil(t, task.CompletedAt)
	}
	assert.Nil(t, gotA.LastCompletedAt)

	gotB, _ := cs.GetChecklist(b)
	assert.Equal(t, bBefore, gotB)
}

func TestResetClearsLastCompleted(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	id := cs.AddChecklistWithTasks(model.CreateChecklistInput{Name: "x"}, tasksWithStatuses(model.TaskStatusPending))
	cs.UpdateTaskStatus(id, "t1", model.TaskStatusCompleted)

	cs.ResetChecklistRun(id)

	got, _ := cs.GetChecklist(id)
	assert.Nil(t, got.LastCompletedAt)
	assert.Nil(t, got.Tasks[0].CompletedAt)
}

func TestInitializeSampleDataIsIdempotent(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())

	cs.InitializeSampleData("")
	once := cs.Count()
	cs.InitializeSampleData("")

	assert.Equal(t, 2, once)
	assert.Equal(t, once, cs.Count())
}

func TestInitializeSampleDataSkipsNonEmpty(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	cs.AddChecklist(model.CreateChecklistInput{Name: "mine"})

	cs.InitializeSampleData("en")

	got := cs.Checklists()
	require.Len(t, got, 1)
	assert.Equal(t, "mine", got[0].Name)
}

func TestInitializeSampleDataUsesLocale(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	cs.InitializeSampleData("fr")

	got, ok := cs.GetChecklist("seed-a")
	require.True(t, ok)
	assert.Equal(t, "Avant de partir", got.Name)
}

func TestReloadDefaultsKeepsCustomAndRefreshesUntouched(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	cs.InitializeSampleData("en")
	cs.DeleteChecklist("seed-b")
	customID := cs.AddChecklistWithTasks(model.CreateChecklistInput{Name: "Mine", Category: model.CategoryGeneral},
		tasksWithStatuses(model.TaskStatusPending))
	custom, _ := cs.GetChecklist(customID)

	// Run state does not count as a modification.
	cs.UpdateTaskStatus("seed-a", "a1", model.TaskStatusCompleted)

	cs.ReloadDefaultChecklists("en")

	got := cs.Checklists()
	require.Len(t, got, 3)
	assert.Equal(t, "seed-a", got[0].ID)
	assert.Equal(t, seedCatalog("en")[0], got[0])
	assert.Equal(t, model.TaskStatusPending, got[0].Tasks[0].Status)
	assert.Equal(t, custom, got[1])
	assert.Equal(t, "seed-b", got[2].ID, "missing catalog entries are appended")
}

func TestReloadDefaultsPreservesEdits(t *testing.T) {
	tests := []struct {
		name string
		edit func(cs *ChecklistStore)
	}{
		{
			name: "renamed",
			edit: func(cs *ChecklistStore) {
				n := "My pre-departure"
				cs.UpdateChecklist("seed-a", model.ChecklistUpdate{Name: &n})
			},
		},
		{
			name: "recolored",
			edit: func(cs *ChecklistStore) {
				c := "#abcdef"
				cs.UpdateChecklist("seed-a", model.ChecklistUpdate{Color: &c})
			},
		},
		{
			name: "task added",
			edit: func(cs *ChecklistStore) {
				c, _ := cs.GetChecklist("seed-a")
				tasks := append(c.Tasks, model.Task{ID: "extra", Title: "Extra", Order: 3})
				cs.UpdateChecklistTasks("seed-a", tasks)
			},
		},
		{
			name: "task retitled",
			edit: func(cs *ChecklistStore) {
				c, _ := cs.GetChecklist("seed-a")
				c.Tasks[1].Title = "Diesel"
				cs.UpdateChecklistTasks("seed-a", c.Tasks)
			},
		},
		{
			name: "task reprioritised",
			edit: func(cs *ChecklistStore) {
				c, _ := cs.GetChecklist("seed-a")
				c.Tasks[0].Priority = model.TaskPriorityLow
				cs.UpdateChecklistTasks("seed-a", c.Tasks)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := newTestStore(t, kv.NewMemory())
			cs.InitializeSampleData("en")
			tt.edit(cs)
			edited, _ := cs.GetChecklist("seed-a")

			cs.ReloadDefaultChecklists("en")

			got, ok := cs.GetChecklist("seed-a")
			require.True(t, ok)
			assert.Equal(t, edited, got)

			untouched, _ := cs.GetChecklist("seed-b")
			assert.Equal(t, "Fire", untouched.Name)
			assert.Equal(t, 2, cs.Count())
		})
	}
}

func TestReloadDefaultsRelocalizesUntouchedSeeds(t *testing.T) {
	tests := []struct {
		name    string
		locales []string
		edit    func(cs *ChecklistStore)
		want    string
	}{
		{
			name:    "untouched seed takes the new language",
			locales: []string{"en", "fr"},
			want:    "Avant de partir",
		},
		{
			name:    "run state is not an edit",
			locales: []string{"en", "fr"},
			edit: func(cs *ChecklistStore) {
				cs.UpdateTaskStatus("seed-a", "a1", model.TaskStatusCompleted)
			},
			want: "Avant de partir",
		},
		{
			name:    "edited seed is kept",
			locales: []string{"en", "fr"},
			edit: func(cs *ChecklistStore) {
				c := "#abcdef"
				cs.UpdateChecklist("seed-a", model.ChecklistUpdate{Color: &c})
			},
			want: "Before leaving",
		},
		{
			name: "unknown translations read as edits",
			want: "Before leaving",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := Open(kv.NewMemory(), seedCatalog,
				WithOps(testOps()), WithLogger(quietLogger()), WithCatalogLocales(tt.locales...))
			cs.InitializeSampleData("en")
			if tt.edit != nil {
				tt.edit(cs)
			}

			cs.ReloadDefaultChecklists("fr")

			got, ok := cs.GetChecklist("seed-a")
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Name)
			assert.Equal(t, 2, cs.Count())
		})
	}
}

func TestReloadDefaultsOnEmptyStoreAddsCatalog(t *testing.T) {
	cs := newTestStore(t, kv.NewMemory())
	cs.ReloadDefaultChecklists("")
	assert.Equal(t, 2, cs.Count())
}

func TestHydrationFlag(t *testing.T) {
	tests := []struct {
		name  string
		setup func(kvs *countingKV)
		want  int
	}{
		{name: "nothing stored", setup: func(*countingKV) {}, want: 0},
		{name: "read failure", setup: func(kvs *countingKV) { kvs.failGet = true }, want: 0},
		{
			name:  "corrupt blob",
			setup: func(kvs *countingKV) { require.NoError(t, kvs.Memory.Set(StorageKey, "{not json")) },
			want:  0,
		},
		{
			name: "stored data",
			setup: func(kvs *countingKV) {
				data, err := JSONSerializer{}.Marshal(seedCatalog(""))
				require.NoError(t, err)
				require.NoError(t, kvs.Memory.Set(StorageKey, data))
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kvs := newCountingKV()
			tt.setup(kvs)

			cs := New(kvs, seedCatalog, WithLogger(quietLogger()))
			assert.False(t, cs.HasHydrated())

			cs.Hydrate()
			assert.True(t, cs.HasHydrated())
			assert.Equal(t, tt.want, cs.Count())

			// A second call is ignored.
			kvs.failGet = false
			cs.Hydrate()
			assert.True(t, cs.HasHydrated())
			assert.Equal(t, tt.want, cs.Count())
		})
	}
}

func TestWriteThroughAndRehydrate(t *testing.T) {
	kvs := kv.NewMemory()
	cs := newTestStore(t, kvs)
	cs.InitializeSampleData("en")
	cs.UpdateTaskStatus("seed-b", "b1", model.TaskStatusCompleted)
	id := cs.AddChecklist(model.CreateChecklistInput{Name: "Mine", Category: model.CategoryMaintenance})

	reopened := newTestStore(t, kvs)

	require.True(t, reopened.HasHydrated())
	assert.Equal(t, cs.Checklists(), reopened.Checklists())

	b, ok := reopened.GetChecklist("seed-b")
	require.True(t, ok)
	require.NotNil(t, b.LastCompletedAt)
	require.NotNil(t, b.Tasks[0].CompletedAt)
	assert.True(t, b.Tasks[0].CompletedAt.Equal(*b.LastCompletedAt) || b.Tasks[0].CompletedAt.Before(*b.LastCompletedAt))

	mine, ok := reopened.GetChecklist(id)
	require.True(t, ok)
	assert.Equal(t, model.CategoryMaintenance, mine.Category)
}

func TestRehydrateFromSQLite(t *testing.T) {
	kvs := testutil.NewTestKV(t)
	cs := newTestStore(t, kvs)
	cs.InitializeSampleData("fr")
	cs.ToggleChecklistActive("seed-a")

	reopened := newTestStore(t, kvs)
	require.Equal(t, 2, reopened.Count())
	a, ok := reopened.GetChecklist("seed-a")
	require.True(t, ok)
	assert.Equal(t, "Avant de partir", a.Name)
	assert.False(t, a.IsActive)
}

func TestEveryMutationWritesOnce(t *testing.T) {
	kvs := newCountingKV()
	cs := Open(kvs, seedCatalog, WithOps(testOps()), WithLogger(quietLogger()))

	steps := []func(){
		func() { cs.InitializeSampleData("") },
		func() { cs.AddChecklist(model.CreateChecklistInput{Name: "x"}) },
		func() { cs.UpdateTaskStatus("seed-a", "a1", model.TaskStatusCompleted) },
		func() { cs.ResetChecklistRun("seed-a") },
		func() { cs.ToggleChecklistActive("seed-a") },
		func() { cs.UpdateChecklistTasks("seed-a", nil) },
		func() { cs.ReloadDefaultChecklists("") },
		func() { cs.DeleteChecklist("seed-b") },
	}

	for i, step := range steps {
		before := kvs.sets
		step()
		assert.Equal(t, before+1, kvs.sets, "step %d", i)
	}
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	var logs bytes.Buffer
	kvs := newCountingKV()
	kvs.failSet = true
	cs := Open(kvs, seedCatalog, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	id := cs.AddChecklist(model.CreateChecklistInput{Name: "x"})

	_, ok := cs.GetChecklist(id)
	assert.True(t, ok)
	assert.True(t, strings.Contains(logs.String(), "persisting checklists"))
}

func TestWithRealDefaultsProvider(t *testing.T) {
	p, err := defaults.NewProvider()
	require.NoError(t, err)
	cs := Open(kv.NewMemory(), p.LoadDefaultChecklists,
		WithLogger(quietLogger()), WithCatalogLocales(p.AvailableLocales()...))

	cs.InitializeSampleData("es")
	require.NotZero(t, cs.Count())
	emergency := cs.ByCategory(model.CategoryEmergency)
	assert.NotEmpty(t, emergency)

	cs.ReloadDefaultChecklists("en")
	mob, ok := cs.GetChecklist("man-overboard")
	require.True(t, ok)
	assert.Equal(t, "Man Overboard", mob.Name)

	name := "MOB drill"
	cs.UpdateChecklist("man-overboard", model.ChecklistUpdate{Name: &name})
	cs.ReloadDefaultChecklists("fr")
	mob, _ = cs.GetChecklist("man-overboard")
	assert.Equal(t, name, mob.Name)
}
