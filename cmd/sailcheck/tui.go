package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/sailcheck/internal/app"
	"github.com/nhle/sailcheck/internal/model"
	"github.com/nhle/sailcheck/internal/preferences"
)

// runTUI opens the interactive interface. Logs go to the configured log
// file since the program owns the terminal.
func runTUI(cmd *cobra.Command, _ []string) error {
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	s, err := openSession(logFile)
	if err != nil {
		return err
	}
	defer s.Close()

	if localeFlag != "" {
		lang := preferences.Language(localeFlag)
		if !s.prefs.SetLanguage(lang) {
			return fmt.Errorf("unsupported language %q", localeFlag)
		}
	}

	m := app.New(app.Deps{
		Store:       s.store,
		Preferences: s.prefs,
		Entitlement: s.entitlementState(),
		Locale:      s.locale(),
		Logger:      s.logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}

func openLogFile() (*os.File, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	path := cfg.Log.File
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, nil
}
