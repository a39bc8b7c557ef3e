package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Load the default checklists into an empty store",
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}

	reloadCmd = &cobra.Command{
		Use:   "reload-defaults",
		Short: "Refresh unmodified default checklists and restore deleted ones",
		Long: "Refresh default checklists from the built-in catalog.\n" +
			"Checklists you created or edited are kept as they are.",
		Args: cobra.NoArgs,
		RunE: runReload,
	}

	localesCmd = &cobra.Command{
		Use:   "locales",
		Short: "List the locales the default catalog is available in",
		Args:  cobra.NoArgs,
		RunE:  runLocales,
	}
)

func init() {
	rootCmd.AddCommand(seedCmd, reloadCmd, localesCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(s *session) error {
		out := cmd.OutOrStdout()
		if n := s.store.Count(); n > 0 {
			fmt.Fprintf(out, "Store already holds %d checklists; use reload-defaults instead.\n", n)
			return nil
		}
		locale := s.locale()
		s.store.InitializeSampleData(locale)
		fmt.Fprintf(out, "Loaded %d default checklists (%s)\n", s.store.Count(), locale)
		return nil
	})
}

func runReload(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(s *session) error {
		before := s.store.Count()
		locale := s.locale()
		s.store.ReloadDefaultChecklists(locale)
		fmt.Fprintf(cmd.OutOrStdout(), "Reloaded defaults (%s): %d -> %d checklists\n", locale, before, s.store.Count())
		return nil
	})
}

func runLocales(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(s *session) error {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(s.defaults.AvailableLocales(), "\n"))
		return nil
	})
}
