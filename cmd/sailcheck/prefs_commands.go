package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/sailcheck/internal/model"
	"github.com/nhle/sailcheck/internal/preferences"
)

var (
	prefsCmd = &cobra.Command{
		Use:   "prefs",
		Short: "Show and change preferences",
	}

	prefsShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the current preferences",
		Args:  cobra.NoArgs,
		RunE:  runPrefsShow,
	}

	prefsLanguageCmd = &cobra.Command{
		Use:       "language <code>",
		Short:     "Set the language used for default checklists",
		Args:      cobra.ExactArgs(1),
		ValidArgs: languageCodes(),
		RunE:      runPrefsLanguage,
	}

	prefsThemeCmd = &cobra.Command{
		Use:       "theme <light|dark|toggle>",
		Short:     "Set the color theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(preferences.ThemeLight), string(preferences.ThemeDark), "toggle"},
		RunE:      runPrefsTheme,
	}

	prefsOnboardingCmd = &cobra.Command{
		Use:       "onboarding <complete|reset>",
		Short:     "Mark onboarding complete, or show it again on next launch",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"complete", "reset"},
		RunE:      runPrefsOnboarding,
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), configPath)
		},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the configuration file",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}

	configKeysCmd = &cobra.Command{
		Use:   "keys",
		Short: "List the keys held by the storage backend",
		Args:  cobra.NoArgs,
		RunE:  runConfigKeys,
	}
)

func init() {
	prefsCmd.AddCommand(prefsShowCmd, prefsLanguageCmd, prefsThemeCmd, prefsOnboardingCmd)
	configCmd.AddCommand(configPathCmd, configInitCmd, configKeysCmd)
	rootCmd.AddCommand(prefsCmd, configCmd)
}

func languageCodes() []string {
	out := make([]string, len(preferences.Languages))
	for i, l := range preferences.Languages {
		out[i] = string(l)
	}
	return out
}

func runPrefsShow(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(s *session) error {
		p := s.prefs.Get()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "language:   %s\n", p.Language)
		fmt.Fprintf(out, "theme:      %s\n", p.ThemeMode)
		fmt.Fprintf(out, "onboarding: %s\n", onboardingLabel(p.HasCompletedOnboarding))
		fmt.Fprintf(out, "locale:     %s\n", s.locale())
		return nil
	})
}

func runPrefsLanguage(cmd *cobra.Command, args []string) error {
	lang := preferences.Language(args[0])
	if !lang.Valid() {
		return fmt.Errorf("unknown language %q (choose from %v)", args[0], languageCodes())
	}
	return withSession(cmd, func(s *session) error {
		s.prefs.SetLanguage(lang)
		fmt.Fprintf(cmd.OutOrStdout(), "Language set to %s. Run 'sailcheck reload-defaults' to refresh default checklists.\n", lang)
		return nil
	})
}

func runPrefsTheme(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		var mode preferences.ThemeMode
		if args[0] == "toggle" {
			mode = s.prefs.ToggleTheme()
		} else {
			mode = preferences.ThemeMode(args[0])
			if !s.prefs.SetTheme(mode) {
				return fmt.Errorf("unknown theme %q", args[0])
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", mode)
		return nil
	})
}

func runPrefsOnboarding(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		switch args[0] {
		case "complete":
			s.prefs.CompleteOnboarding()
		case "reset":
			s.prefs.ResetOnboarding()
		default:
			return fmt.Errorf("unknown action %q (complete or reset)", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Onboarding %s\n", onboardingLabel(s.prefs.Get().HasCompletedOnboarding))
		return nil
	})
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := model.SaveConfig(configPath, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(s *session) error {
		keys, err := s.kv.Keys()
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Nothing stored in %s\n", s.cfg.Storage.Backend)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(keys, "\n"))
		return nil
	})
}

func onboardingLabel(done bool) string {
	if done {
		return "completed"
	}
	return "pending"
}
