// Package defaults provides the built-in seed checklists. Catalogs are
// embedded TOML files, one per translated locale, sharing the same
// checklist and task ids so a stored checklist can be matched against any
// translation.
package defaults

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nhle/sailcheck/internal/model"
)

// DefaultLocale is used when no locale is given or the requested one has
// no translation.
const DefaultLocale = "en"

// SupportedLocales lists the languages the application can be set to.
// Only some of them ship a translated catalog; see AvailableLocales.
var SupportedLocales = []string{"en", "fr", "es", "de", "it"}

//go:embed catalogs/*.toml
var catalogFS embed.FS

type catalogFile struct {
	Checklists []checklistEntry `toml:"checklists"`
}

type checklistEntry struct {
	ID          string      `toml:"id"`
	Name        string      `toml:"name"`
	Description string      `toml:"description"`
	Category    string      `toml:"category"`
	IsActive    bool        `toml:"is_active"`
	IsTemplate  bool        `toml:"is_template"`
	Color       string      `toml:"color"`
	Icon        string      `toml:"icon"`
	Tasks       []taskEntry `toml:"tasks"`
}

type taskEntry struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Status      string `toml:"status"`
	Priority    string `toml:"priority"`
	Order       int    `toml:"order"`
}

// Provider serves localized seed checklists.
type Provider struct {
	now      func() time.Time
	catalogs map[string]catalogFile
}

// Option configures a Provider.
type Option func(*Provider)

// WithClock sets the clock used to stamp created/updated times.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// NewProvider parses the embedded catalogs.
func NewProvider(opts ...Option) (*Provider, error) {
	p := &Provider{
		now:      time.Now,
		catalogs: make(map[string]catalogFile),
	}
	for _, opt := range opts {
		opt(p)
	}

	entries, err := catalogFS.ReadDir("catalogs")
	if err != nil {
		return nil, fmt.Errorf("listing catalogs: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		data, err := catalogFS.ReadFile(path.Join("catalogs", name))
		if err != nil {
			return nil, fmt.Errorf("reading catalog %s: %w", name, err)
		}

		var cf catalogFile
		if _, err := toml.Decode(string(data), &cf); err != nil {
			return nil, fmt.Errorf("decoding catalog %s: %w", name, err)
		}
		if err := cf.validate(); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", name, err)
		}

		p.catalogs[strings.TrimSuffix(name, path.Ext(name))] = cf
	}

	if _, ok := p.catalogs[DefaultLocale]; !ok {
		return nil, fmt.Errorf("missing %s catalog", DefaultLocale)
	}

	return p, nil
}

// resolve maps a locale such as "fr-CA" or "FR" to a catalog key,
// falling back to DefaultLocale.
func (p *Provider) resolve(locale string) string {
	base := strings.ToLower(locale)
	if i := strings.IndexAny(base, "-_"); i >= 0 {
		base = base[:i]
	}
	if _, ok := p.catalogs[base]; ok {
		return base
	}
	return DefaultLocale
}

// LoadDefaultChecklists returns the seed checklists for locale. Each call
// builds new values stamped with the current time, so callers may keep
// and mutate the result.
func (p *Provider) LoadDefaultChecklists(locale string) []model.Checklist {
	cf := p.catalogs[p.resolve(locale)]
	now := p.now()

	out := make([]model.Checklist, 0, len(cf.Checklists))
	for _, c := range cf.Checklists {
		out = append(out, c.toModel(now))
	}
	return out
}

// GetDefaultChecklistByID returns the seed checklist with id for locale.
func (p *Provider) GetDefaultChecklistByID(id, locale string) (model.Checklist, bool) {
	for _, c := range p.LoadDefaultChecklists(locale) {
		if c.ID == id {
			return c, true
		}
	}
	return model.Checklist{}, false
}

// AvailableLocales returns the locales that ship a translated catalog,
// sorted.
func (p *Provider) AvailableLocales() []string {
	out := make([]string, 0, len(p.catalogs))
	for k := range p.catalogs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (cf catalogFile) validate() error {
	seen := make(map[string]bool, len(cf.Checklists))
	for _, c := range cf.Checklists {
		if c.ID == "" {
			return fmt.Errorf("checklist %q has no id", c.Name)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate checklist id %q", c.ID)
		}
		seen[c.ID] = true

		if !model.Category(c.Category).Valid() {
			return fmt.Errorf("checklist %s: unknown category %q", c.ID, c.Category)
		}

		taskIDs := make(map[string]bool, len(c.Tasks))
		for _, t := range c.Tasks {
			if taskIDs[t.ID] {
				return fmt.Errorf("checklist %s: duplicate task id %q", c.ID, t.ID)
			}
			taskIDs[t.ID] = true
			if t.Priority != "" && !model.TaskPriority(t.Priority).Valid() {
				return fmt.Errorf("task %s: unknown priority %q", t.ID, t.Priority)
			}
			if t.Status != "" && !model.TaskStatus(t.Status).Valid() {
				return fmt.Errorf("task %s: unknown status %q", t.ID, t.Status)
			}
		}
	}
	return nil
}

func (c checklistEntry) toModel(now time.Time) model.Checklist {
	tasks := make([]model.Task, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		status := model.TaskStatus(t.Status)
		if status == "" {
			status = model.TaskStatusPending
		}
		priority := model.TaskPriority(t.Priority)
		if priority == "" {
			priority = model.TaskPriorityMedium
		}
		tasks = append(tasks, model.Task{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      status,
			Priority:    priority,
			Order:       t.Order,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	return model.Checklist{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Category:    model.Category(c.Category),
		Tasks:       tasks,
		IsActive:    c.IsActive,
		IsTemplate:  c.IsTemplate,
		Color:       c.Color,
		Icon:        c.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
