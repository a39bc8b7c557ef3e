// Package main implements the sailcheck CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/sailcheck/internal/credential"
	"github.com/nhle/sailcheck/internal/defaults"
	"github.com/nhle/sailcheck/internal/entitlement"
	"github.com/nhle/sailcheck/internal/kv"
	"github.com/nhle/sailcheck/internal/model"
	"github.com/nhle/sailcheck/internal/preferences"
	"github.com/nhle/sailcheck/internal/store"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	configPath   string
	localeFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "sailcheck",
	Short: "Sailing checklists for the terminal",
	Long: "Sailcheck keeps pre-departure, navigation, arrival and emergency checklists.\n" +
		"Run without a subcommand to open the interactive interface.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "locale for default checklists (default from preferences or config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "debug, info, warn or error (default from config)")
}

// openSecrets opens the credential store. Tests replace it with an
// in-memory keyring.
var openSecrets = func() (entitlement.Secrets, error) {
	return credential.Open()
}

// session bundles everything a command needs. Close it when done.
type session struct {
	cfg      *model.AppConfig
	logger   *slog.Logger
	kv       kvCloser
	store    *store.ChecklistStore
	prefs    *preferences.Store
	defaults *defaults.Provider
}

type kvCloser interface {
	kv.KeyValueStore
	kv.Lister
	Close() error
}

// openSession loads config, opens the configured storage backend and
// hydrates the checklist and preference stores. Logs go to logOut.
func openSession(logOut io.Writer) (*session, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(logOut, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	kvs, err := openKV(cfg.Storage)
	if err != nil {
		return nil, err
	}

	provider, err := defaults.NewProvider()
	if err != nil {
		kvs.Close()
		return nil, fmt.Errorf("loading default checklists: %w", err)
	}

	checklists := store.Open(kvs, provider.LoadDefaultChecklists,
		store.WithLogger(logger),
		store.WithCatalogLocales(provider.AvailableLocales()...),
	)

	s := &session{
		cfg:      cfg,
		logger:   logger,
		kv:       kvs,
		defaults: provider,
		store:    checklists,
		prefs:    preferences.Open(kvs, logger),
	}
	logger.Debug("session opened", "backend", cfg.Storage.Backend, "checklists", s.store.Count())
	return s, nil
}

func (s *session) Close() error {
	return s.kv.Close()
}

// locale picks the catalog locale: --locale, then the language chosen in
// preferences, then the config file.
func (s *session) locale() string {
	if localeFlag != "" {
		return localeFlag
	}
	if p := s.prefs.Get(); p.HasCompletedOnboarding {
		return string(p.Language)
	}
	return s.cfg.Locale
}

// entitlementCache opens the keyring-backed entitlement cache.
func (s *session) entitlementCache() (*entitlement.Cache, error) {
	secrets, err := openSecrets()
	if err != nil {
		return nil, err
	}
	return entitlement.NewCache(secrets), nil
}

// entitlementState returns the cached subscription state. An unreadable
// keyring counts as the free plan.
func (s *session) entitlementState() *entitlement.State {
	cache, err := s.entitlementCache()
	if err != nil {
		s.logger.Warn("opening keyring", "error", err)
		return nil
	}
	state, err := cache.Load()
	if err != nil {
		s.logger.Warn("loading entitlement state", "error", err)
		return nil
	}
	return state
}

func openKV(cfg model.StorageConfig) (kvCloser, error) {
	switch cfg.Backend {
	case model.StorageMemory:
		return kv.NewMemory(), nil
	case model.StorageSQLite:
		if dir := filepath.Dir(cfg.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating data directory %s: %w", dir, err)
			}
		}
		s, err := kv.NewSQLite(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening storage %s: %w", cfg.Path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func newLogger(w io.Writer, configured string) (*slog.Logger, error) {
	name := configured
	if logLevelFlag != "" {
		name = logLevelFlag
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", name, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// withSession opens a session around fn and closes it afterwards.
func withSession(cmd *cobra.Command, fn func(s *session) error) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return errors.Join(fn(s), s.Close())
}
