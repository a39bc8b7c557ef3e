package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/sailcheck/internal/credential"
	"github.com/nhle/sailcheck/internal/entitlement"
)

var (
	subscriptionCmd = &cobra.Command{
		Use:     "subscription",
		Aliases: []string{"sub"},
		Short:   "Inspect and manage the cached subscription state",
	}

	subStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the plan and checklist allowance",
		Args:  cobra.NoArgs,
		RunE:  runSubStatus,
	}

	subActivateCmd = &cobra.Command{
		Use:   "activate [entitlement]...",
		Short: "Record active entitlements (default: premium)",
		RunE:  runSubActivate,
	}

	subClearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Forget the cached subscription state",
		Args:  cobra.NoArgs,
		RunE:  runSubClear,
	}

	subSetKeyCmd = &cobra.Command{
		Use:   "set-key [api-key]",
		Short: "Store the subscription provider API key in the keyring",
		Long:  "Store the subscription provider API key in the keyring. Without an argument the key is read from a prompt.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSubSetKey,
	}
)

// defaultEntitlement is granted by 'subscription activate' with no ids.
const defaultEntitlement = "premium"

func init() {
	subscriptionCmd.AddCommand(subStatusCmd, subActivateCmd, subClearCmd, subSetKeyCmd)
	rootCmd.AddCommand(subscriptionCmd)
}

func runSubStatus(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(s *session) error {
		cache, err := s.entitlementCache()
		if err != nil {
			return err
		}
		state, err := cache.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		count := s.store.Count()
		if entitlement.HasActiveSubscription(state) {
			fmt.Fprintf(out, "plan:         subscribed (%s)\n", strings.Join(entitlement.ActiveEntitlements(state), ", "))
			fmt.Fprintf(out, "checklists:   %d (unlimited)\n", count)
			fmt.Fprintf(out, "updated:      %s\n", state.UpdatedAt.Local().Format("2006-01-02 15:04"))
		} else {
			fmt.Fprintf(out, "plan:         free\n")
			fmt.Fprintf(out, "checklists:   %d of %d\n", count, entitlement.FreeLimit)
		}
		fmt.Fprintf(out, "can create:   %t\n", entitlement.CanCreateChecklist(state, count))
		fmt.Fprintf(out, "provider key: %s\n", configuredLabel(entitlement.IsConfigured(cache.APIKey(s.cfg.Subscription.APIKeyEnv))))
		return nil
	})
}

func runSubActivate(cmd *cobra.Command, args []string) error {
	ids := args
	if len(ids) == 0 {
		ids = []string{defaultEntitlement}
	}

	return withSession(cmd, func(s *session) error {
		cache, err := s.entitlementCache()
		if err != nil {
			return err
		}
		state, err := cache.Activate(ids...)
		if err != nil {
			return err
		}
		s.logger.Info("activated entitlements", "entitlements", state.ActiveEntitlements)
		fmt.Fprintf(cmd.OutOrStdout(), "Active entitlements: %s\n", strings.Join(state.ActiveEntitlements, ", "))
		return nil
	})
}

func runSubClear(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(s *session) error {
		cache, err := s.entitlementCache()
		if err != nil {
			return err
		}
		if err := cache.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Subscription state cleared; free plan limits apply.")
		return nil
	})
}

func runSubSetKey(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		err := huh.NewInput().
			Title("Subscription API key").
			EchoMode(huh.EchoModePassword).
			Value(&key).
			Run()
		if err != nil {
			return fmt.Errorf("reading API key: %w", err)
		}
	}

	key = strings.TrimSpace(key)
	if !entitlement.IsConfigured(key) {
		return errors.New("refusing to store an empty or placeholder API key")
	}

	secrets, err := openSecrets()
	if err != nil {
		return err
	}
	if err := secrets.Set(credential.KeyAPIKey, key); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "API key saved to keyring.")
	return nil
}

func configuredLabel(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
