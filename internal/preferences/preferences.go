// Package preferences persists per-user settings that are not part of the
// checklist collection: interface language, theme mode and whether the
// first-run onboarding has been completed.
package preferences

import (
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/nhle/sailcheck/internal/kv"
)

// StorageKey is the key preferences are persisted under.
const StorageKey = "preferences-storage"

// Language is an interface language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
	LanguageSpanish Language = "es"
	LanguageGerman  Language = "de"
	LanguageItalian Language = "it"
)

// Languages lists the selectable languages.
var Languages = []Language{
	LanguageEnglish,
	LanguageFrench,
	LanguageSpanish,
	LanguageGerman,
	LanguageItalian,
}

// Valid reports whether l is a selectable language.
func (l Language) Valid() bool {
	return slices.Contains(Languages, l)
}

// ParseLanguage maps a locale such as "fr", "FR" or "fr-CA" to a
// selectable language.
func ParseLanguage(locale string) (Language, bool) {
	base := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(base, "-_"); i >= 0 {
		base = base[:i]
	}
	l := Language(base)
	return l, l.Valid()
}

// ThemeMode selects the color palette.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Valid reports whether m is a known mode.
func (m ThemeMode) Valid() bool {
	return m == ThemeLight || m == ThemeDark
}

// Preferences is the persisted settings document.
type Preferences struct {
	Language               Language  `json:"language"`
	ThemeMode              ThemeMode `json:"theme_mode"`
	HasCompletedOnboarding bool      `json:"has_completed_onboarding"`
}

// Defaults returns the settings of a fresh install.
func Defaults() Preferences {
	return Preferences{
		Language:  LanguageEnglish,
		ThemeMode: ThemeLight,
	}
}

// Store holds Preferences and writes every change through to a
// kv.KeyValueStore.
type Store struct {
	mu          sync.Mutex
	kv          kv.KeyValueStore
	logger      *slog.Logger
	prefs       Preferences
	hasHydrated bool
	hydrateOnce sync.Once
}

// New returns a store holding Defaults that has not been hydrated yet.
func New(kvs kv.KeyValueStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kvs, logger: logger, prefs: Defaults()}
}

// Open returns a hydrated store.
func Open(kvs kv.KeyValueStore, logger *slog.Logger) *Store {
	s := New(kvs, logger)
	s.Hydrate()
	return s
}

// Hydrate loads persisted preferences once. Unknown or missing fields keep
// their defaults; read failures are logged.
func (s *Store) Hydrate() {
	s.hydrateOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		defer func() { s.hasHydrated = true }()

		data, ok, err := s.kv.Get(StorageKey)
		if err != nil {
			s.logger.Warn("hydrating preferences", "key", StorageKey, "error", err)
			return
		}
		if !ok {
			return
		}

		loaded := Defaults()
		if err := json.Unmarshal([]byte(data), &loaded); err != nil {
			s.logger.Warn("hydrating preferences", "key", StorageKey, "error", err)
			return
		}
		if !loaded.Language.Valid() {
			loaded.Language = LanguageEnglish
		}
		if !loaded.ThemeMode.Valid() {
			loaded.ThemeMode = ThemeLight
		}
		s.prefs = loaded
	})
}

// HasHydrated reports whether Hydrate has run.
func (s *Store) HasHydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasHydrated
}

// Get returns the current preferences.
func (s *Store) Get() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// SetLanguage changes the interface language. Unknown languages are
// ignored and reported as false.
func (s *Store) SetLanguage(l Language) bool {
	if !l.Valid() {
		return false
	}
	s.update(func(p *Preferences) { p.Language = l })
	return true
}

// SetTheme changes the theme mode. Unknown modes are ignored and reported
// as false.
func (s *Store) SetTheme(m ThemeMode) bool {
	if !m.Valid() {
		return false
	}
	s.update(func(p *Preferences) { p.ThemeMode = m })
	return true
}

// ToggleTheme flips between light and dark and returns the new mode.
func (s *Store) ToggleTheme() ThemeMode {
	var mode ThemeMode
	s.update(func(p *Preferences) {
		if p.ThemeMode == ThemeDark {
			p.ThemeMode = ThemeLight
		} else {
			p.ThemeMode = ThemeDark
		}
		mode = p.ThemeMode
	})
	return mode
}

// CompleteOnboarding marks the first-run flow as done.
func (s *Store) CompleteOnboarding() {
	s.update(func(p *Preferences) { p.HasCompletedOnboarding = true })
}

// ResetOnboarding makes the first-run flow show again.
func (s *Store) ResetOnboarding() {
	s.update(func(p *Preferences) { p.HasCompletedOnboarding = false })
}

func (s *Store) update(fn func(*Preferences)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.prefs)

	data, err := json.Marshal(s.prefs)
	if err != nil {
		s.logger.Warn("persisting preferences", "key", StorageKey, "error", err)
		return
	}
	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		s.logger.Warn("persisting preferences", "key", StorageKey, "error", err)
	}
}
