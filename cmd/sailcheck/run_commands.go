package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/sailcheck/internal/model"
)

var (
	doneCmd = &cobra.Command{
		Use:   "done <checklist> <task>...",
		Short: "Mark tasks completed",
		Long:  "Mark tasks completed. A task is named by its id or its number in 'sailcheck show'.",
		Args:  cobra.MinimumNArgs(2),
		RunE:  setStatus(model.TaskStatusCompleted),
	}

	skipCmd = &cobra.Command{
		Use:   "skip <checklist> <task>...",
		Short: "Mark tasks skipped",
		Args:  cobra.MinimumNArgs(2),
		RunE:  setStatus(model.TaskStatusSkipped),
	}

	pendingCmd = &cobra.Command{
		Use:   "pending <checklist> <task>...",
		Short: "Mark tasks pending again",
		Args:  cobra.MinimumNArgs(2),
		RunE:  setStatus(model.TaskStatusPending),
	}

	resetCmd = &cobra.Command{
		Use:   "reset <checklist>",
		Short: "Reset every task of a checklist to pending",
		Args:  cobra.ExactArgs(1),
		RunE:  runReset,
	}
)

func init() {
	rootCmd.AddCommand(doneCmd, skipCmd, pendingCmd, resetCmd)
}

func setStatus(status model.TaskStatus) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session) error {
			c, err := resolveChecklist(s.store.Checklists(), args[0])
			if err != nil {
				return err
			}

			// Resolve every reference against the same snapshot so task
			// numbers do not shift between updates.
			tasks := make([]model.Task, 0, len(args)-1)
			for _, ref := range args[1:] {
				t, err := resolveTask(c, ref)
				if err != nil {
					return err
				}
				tasks = append(tasks, t)
			}

			out := cmd.OutOrStdout()
			for _, t := range tasks {
				s.store.UpdateTaskStatus(c.ID, t.ID, status)
				fmt.Fprintf(out, "%s %s\n", statusBox(status), t.Title)
			}

			stats, _ := s.store.GetChecklistStats(c.ID)
			fmt.Fprintf(out, "%s: %d/%d (%d%%)\n", c.Name, stats.CompletedTasks, stats.TotalTasks, stats.CompletionPercentage)
			if stats.IsFullyCompleted {
				fmt.Fprintln(out, "All tasks completed.")
			}
			return nil
		})
	}
}

func runReset(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		c, err := resolveChecklist(s.store.Checklists(), args[0])
		if err != nil {
			return err
		}
		s.store.ResetChecklistRun(c.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", c.Name)
		return nil
	})
}
