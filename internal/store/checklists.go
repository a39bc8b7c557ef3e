// Package store holds the checklist collection: the single source of truth
// the front ends read from and mutate. Every mutation is written through
// to a kv.KeyValueStore as one serialized blob; the blob is read back once
// by Hydrate at startup.
package store

import (
	"log/slog"
	"sync"

	"github.com/nhle/sailcheck/internal/checklist"
	"github.com/nhle/sailcheck/internal/kv"
	"github.com/nhle/sailcheck/internal/model"
)

// StorageKey is the key the collection is persisted under.
const StorageKey = "checklist-storage"

// DefaultsFunc returns the seed catalog for a locale. An empty locale
// selects the provider's default.
type DefaultsFunc func(locale string) []model.Checklist

// ChecklistStore is a mutable, persisted collection of checklists.
// Lookups on unknown ids report ok=false and mutations on unknown ids do
// nothing; no operation returns an error. Persistence failures are
// logged and otherwise ignored.
type ChecklistStore struct {
	mu sync.Mutex

	kv         kv.KeyValueStore
	serializer Serializer
	defaults   DefaultsFunc
	locales    []string
	ops        checklist.Ops
	logger     *slog.Logger
	key        string

	checklists  []model.Checklist
	hasHydrated bool
	hydrateOnce sync.Once
}

// Option configures a ChecklistStore.
type Option func(*ChecklistStore)

// WithOps sets the clock and id source used for new and updated entities.
func WithOps(ops checklist.Ops) Option {
	return func(cs *ChecklistStore) { cs.ops = ops }
}

// WithLogger sets the logger for persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(cs *ChecklistStore) { cs.logger = l }
}

// WithCatalogLocales names every locale the defaults catalog is
// translated into. A seeded checklist still matching its entry in any of
// them counts as untouched on reload and is replaced by the requested
// translation.
func WithCatalogLocales(locales ...string) Option {
	return func(cs *ChecklistStore) { cs.locales = locales }
}

// New returns an empty, not yet hydrated store backed by kvs. defaults
// supplies the seed catalog for InitializeSampleData and
// ReloadDefaultChecklists.
func New(kvs kv.KeyValueStore, defaults DefaultsFunc, opts ...Option) *ChecklistStore {
	cs := &ChecklistStore{
		kv:         kvs,
		serializer: JSONSerializer{},
		defaults:   defaults,
		logger:     slog.Default(),
		key:        StorageKey,
		checklists: []model.Checklist{},
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

// Open returns a store that has already been hydrated.
func Open(kvs kv.KeyValueStore, defaults DefaultsFunc, opts ...Option) *ChecklistStore {
	cs := New(kvs, defaults, opts...)
	cs.Hydrate()
	return cs
}

// Hydrate loads the persisted collection. Only the first call does any
// work. A missing, unreadable or corrupt blob leaves the collection empty.
// HasHydrated reports true afterwards in every case.
func (cs *ChecklistStore) Hydrate() {
	cs.hydrateOnce.Do(func() {
		cs.mu.Lock()
		defer cs.mu.Unlock()

		defer func() { cs.hasHydrated = true }()

		data, ok, err := cs.kv.Get(cs.key)
		if err != nil {
			cs.logger.Warn("hydrating checklists", "key", cs.key, "error", err)
			return
		}
		if !ok {
			cs.logger.Debug("no persisted checklists", "key", cs.key)
			return
		}

		loaded, err := cs.serializer.Unmarshal(data)
		if err != nil {
			cs.logger.Warn("hydrating checklists", "key", cs.key, "error", err)
			return
		}

		cs.checklists = loaded
		cs.logger.Debug("hydrated checklists", "key", cs.key, "count", len(loaded))
	})
}

// HasHydrated reports whether Hydrate has run. Callers must wait for it
// before seeding, or seed data could replace persisted data.
func (cs *ChecklistStore) HasHydrated() bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.hasHydrated
}

// persist writes the whole collection through to the key-value store.
// Callers hold cs.mu.
func (cs *ChecklistStore) persist() {
	data, err := cs.serializer.Marshal(cs.checklists)
	if err != nil {
		cs.logger.Warn("persisting checklists", "key", cs.key, "error", err)
		return
	}
	if err := cs.kv.Set(cs.key, data); err != nil {
		cs.logger.Warn("persisting checklists", "key", cs.key, "error", err)
	}
}

// indexOf returns the position of id, or -1. Callers hold cs.mu.
func (cs *ChecklistStore) indexOf(id string) int {
	for i := range cs.checklists {
		if cs.checklists[i].ID == id {
			return i
		}
	}
	return -1
}

// Checklists returns a copy of every checklist in stored order.
func (cs *ChecklistStore) Checklists() []model.Checklist {
	return cs.filter(func(model.Checklist) bool { return true })
}

// Active returns copies of the checklists with IsActive set.
func (cs *ChecklistStore) Active() []model.Checklist {
	return cs.filter(func(c model.Checklist) bool { return c.IsActive })
}

// ByCategory returns copies of the checklists in category.
func (cs *ChecklistStore) ByCategory(category model.Category) []model.Checklist {
	return cs.filter(func(c model.Checklist) bool { return c.Category == category })
}

func (cs *ChecklistStore) filter(keep func(model.Checklist) bool) []model.Checklist {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	out := make([]model.Checklist, 0, len(cs.checklists))
	for _, c := range cs.checklists {
		if keep(c) {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Count returns the number of checklists.
func (cs *ChecklistStore) Count() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.checklists)
}

// AddChecklist appends a new empty checklist and returns its id.
func (cs *ChecklistStore) AddChecklist(input model.CreateChecklistInput) string {
	return cs.AddChecklistWithTasks(input, nil)
}

// AddChecklistWithTasks appends a new checklist holding tasks and returns
// its id.
func (cs *ChecklistStore) AddChecklistWithTasks(input model.CreateChecklistInput, tasks []model.Task) string {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	c := cs.ops.NewChecklist(input)
	if tasks != nil {
		c.Tasks = model.Checklist{Tasks: tasks}.Clone().Tasks
	}

	cs.checklists = append(cs.checklists, c)
	cs.persist()
	return c.ID
}

// UpdateChecklist applies the non-nil fields of u to checklist id.
func (cs *ChecklistStore) UpdateChecklist(id string, u model.ChecklistUpdate) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	i := cs.indexOf(id)
	if i < 0 {
		return
	}

	c := &cs.checklists[i]
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Category != nil {
		c.Category = *u.Category
	}
	if u.IsActive != nil {
		c.IsActive = *u.IsActive
	}
	if u.Color != nil {
		c.Color = *u.Color
	}
	if u.Icon != nil {
		c.Icon = *u.Icon
	}
	c.UpdatedAt = cs.ops.Time()

	cs.persist()
}

// UpdateChecklistTasks replaces the task list of checklist id.
// LastCompletedAt is not recomputed.
func (cs *ChecklistStore) UpdateChecklistTasks(id string, tasks []model.Task) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	i := cs.indexOf(id)
	if i < 0 {
		return
	}

	replaced := model.Checklist{Tasks: tasks}.Clone().Tasks
	if replaced == nil {
		replaced = []model.Task{}
	}
	cs.checklists[i].Tasks = replaced
	cs.checklists[i].UpdatedAt = cs.ops.Time()

	cs.persist()
}

// DeleteChecklist removes checklist id.
func (cs *ChecklistStore) DeleteChecklist(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	i := cs.indexOf(id)
	if i < 0 {
		return
	}

	cs.checklists = append(cs.checklists[:i:i], cs.checklists[i+1:]...)
	cs.persist()
}

// GetChecklist returns a copy of checklist id.
func (cs *ChecklistStore) GetChecklist(id string) (model.Checklist, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	i := cs.indexOf(id)
	if i < 0 {
		return model.Checklist{}, false
	}
	return cs.checklists[i].Clone(), true
}

// GetChecklistStats returns progress statistics for checklist id.
func (cs *ChecklistStore) GetChecklistStats(id string) (model.ChecklistStats, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	i := cs.indexOf(id)
	if i < 0 {
		return model.ChecklistStats{}, false
	}
	return checklist.ComputeStats(cs.checklists[i]), true
}

// ToggleChecklistActive flips IsActive on checklist id.
func (cs *ChecklistStore) ToggleChecklistActive(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	i := cs.indexOf(id)
	if i < 0 {
		return
	}

	cs.checklists[i].IsActive = !cs.checklists[i].IsActive
	cs.checklists[i].UpdatedAt = cs.ops.Time()
	cs.persist()
}

// UpdateTaskStatus sets the status of one task. When that leaves every
// task completed, LastCompletedAt is stamped; otherwise it is kept as is,
// even if it is now stale.
func (cs *ChecklistStore) UpdateTaskStatus(checklistID, taskID string, status model.TaskStatus) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	i := cs.indexOf(checklistID)
	if i < 0 {
		return
	}
	c := &cs.checklists[i]

	j := -1
	for k := range c.Tasks {
		if c.Tasks[k].ID == taskID {
			j = k
			break
		}
	}
	if j < 0 {
		return
	}

	c.Tasks[j] = cs.ops.ApplyTaskUpdate(c.Tasks[j], model.TaskUpdate{Status: &status})

	now := cs.ops.Time()
	if checklist.AllCompleted(c.Tasks) {
		completedAt := now
		c.LastCompletedAt = &completedAt
	}
	c.UpdatedAt = now

	cs.persist()
}

// ResetChecklistRun sets every task of checklist id back to pending and
// clears all completion timestamps.
func (cs *ChecklistStore) ResetChecklistRun(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	i := cs.indexOf(id)
	if i < 0 {
		return
	}
	c := &cs.checklists[i]
	now := cs.ops.Time()

	for k := range c.Tasks {
		c.Tasks[k].Status = model.TaskStatusPending
		c.Tasks[k].CompletedAt = nil
		c.Tasks[k].UpdatedAt = now
	}
	c.LastCompletedAt = nil
	c.UpdatedAt = now

	cs.persist()
}

// InitializeSampleData seeds the collection with the default catalog for
// locale, but only while the collection is empty. Repeated calls never
// duplicate checklists.
func (cs *ChecklistStore) InitializeSampleData(locale string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if len(cs.checklists) > 0 {
		return
	}

	seed := cs.catalog(locale)
	cs.checklists = seed
	cs.logger.Info("seeded default checklists", "locale", locale, "count", len(seed))
	cs.persist()
}

// ReloadDefaultChecklists reconciles the collection with a fresh default
// catalog for locale:
//   - checklists whose id is not in the catalog are user-created and kept;
//   - seeded checklists identical to their entry in any catalog
//     translation are replaced by the locale's entry;
//   - seeded checklists the user edited are kept as edited;
//   - catalog entries missing from the collection are appended.
func (cs *ChecklistStore) ReloadDefaultChecklists(locale string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	fresh := cs.catalog(locale)
	byID := make(map[string]model.Checklist, len(fresh))
	for _, d := range fresh {
		byID[d.ID] = d
	}
	translations := cs.translations(fresh)

	merged := make([]model.Checklist, 0, len(cs.checklists)+len(fresh))
	present := make(map[string]bool, len(cs.checklists))
	replaced, kept := 0, 0

	for _, current := range cs.checklists {
		def, ok := byID[current.ID]
		switch {
		case !ok:
			merged = append(merged, current)
		case !matchesAny(current, translations[current.ID]):
			merged = append(merged, current)
			present[current.ID] = true
			kept++
		default:
			merged = append(merged, def)
			present[current.ID] = true
			replaced++
		}
	}

	added := 0
	for _, d := range fresh {
		if !present[d.ID] {
			merged = append(merged, d)
			added++
		}
	}

	cs.checklists = merged
	cs.logger.Info("reloaded default checklists",
		"locale", locale,
		"replaced", replaced,
		"kept_modified", kept,
		"added", added,
	)
	cs.persist()
}

// translations groups the catalog entries of every known locale by id,
// starting with fresh.
func (cs *ChecklistStore) translations(fresh []model.Checklist) map[string][]model.Checklist {
	out := make(map[string][]model.Checklist, len(fresh))
	for _, d := range fresh {
		out[d.ID] = append(out[d.ID], d)
	}
	for _, l := range cs.locales {
		for _, d := range cs.catalog(l) {
			out[d.ID] = append(out[d.ID], d)
		}
	}
	return out
}

func matchesAny(current model.Checklist, defs []model.Checklist) bool {
	for _, d := range defs {
		if !modifiedFromDefault(current, d) {
			return true
		}
	}
	return false
}

// catalog fetches the default catalog, never returning nil.
func (cs *ChecklistStore) catalog(locale string) []model.Checklist {
	if cs.defaults == nil {
		return []model.Checklist{}
	}
	seed := cs.defaults(locale)
	if seed == nil {
		return []model.Checklist{}
	}
	return seed
}

// modifiedFromDefault reports whether current differs from its catalog
// entry in any user-editable content. Task run state and timestamps are
// not compared.
func modifiedFromDefault(current, def model.Checklist) bool {
	if current.Name != def.Name ||
		current.Description != def.Description ||
		current.Category != def.Category ||
		current.Color != def.Color ||
		current.Icon != def.Icon {
		return true
	}

	if len(current.Tasks) != len(def.Tasks) {
		return true
	}

	for i := range current.Tasks {
		a, b := current.Tasks[i], def.Tasks[i]
		if a.Title != b.Title ||
			a.Description != b.Description ||
			a.Priority != b.Priority ||
			a.Order != b.Order {
			return true
		}
	}

	return false
}
