package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nhle/sailcheck/internal/checklist"
	"github.com/nhle/sailcheck/internal/entitlement"
	"github.com/nhle/sailcheck/internal/model"
	"github.com/nhle/sailcheck/internal/theme"
)

var (
	listCmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List checklists",
		Args:    cobra.NoArgs,
		RunE:    runList,
	}

	showCmd = &cobra.Command{
		Use:   "show <checklist>",
		Short: "Show a checklist and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	statsCmd = &cobra.Command{
		Use:   "stats <checklist>",
		Short: "Show progress statistics for a checklist",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}

	addCmd = &cobra.Command{
		Use:   "add <name>",
		Short: "Create a checklist",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdd,
	}

	addTaskCmd = &cobra.Command{
		Use:   "add-task <checklist> <title>",
		Short: "Append a task to a checklist",
		Args:  cobra.ExactArgs(2),
		RunE:  runAddTask,
	}

	renameCmd = &cobra.Command{
		Use:   "rename <checklist> <name>",
		Short: "Rename a checklist",
		Args:  cobra.ExactArgs(2),
		RunE:  runRename,
	}

	deleteCmd = &cobra.Command{
		Use:     "delete <checklist>",
		Aliases: []string{"rm"},
		Short:   "Delete a checklist",
		Args:    cobra.ExactArgs(1),
		RunE:    runDelete,
	}

	toggleCmd = &cobra.Command{
		Use:   "toggle <checklist>",
		Short: "Activate or deactivate a checklist",
		Args:  cobra.ExactArgs(1),
		RunE:  runToggle,
	}
)

var (
	listAll       bool
	listEmergency bool
	listCategory  string

	addCategory    string
	addDescription string
	addColor       string
	addIcon        string
	addTasks       []string

	taskPriority    string
	taskDescription string
)

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include inactive checklists")
	listCmd.Flags().BoolVarP(&listEmergency, "emergency", "e", false, "only emergency checklists")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "only checklists in this category")

	addCmd.Flags().StringVarP(&addCategory, "category", "c", string(model.CategoryGeneral), "checklist category")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "checklist description")
	addCmd.Flags().StringVar(&addColor, "color", "", "hex color, e.g. #3B82F6")
	addCmd.Flags().StringVar(&addIcon, "icon", "", "icon name")
	addCmd.Flags().StringArrayVarP(&addTasks, "task", "t", nil, "task title (repeatable)")

	addTaskCmd.Flags().StringVarP(&taskPriority, "priority", "p", string(model.TaskPriorityMedium), "low, medium, high or critical")
	addTaskCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "task description")

	rootCmd.AddCommand(listCmd, showCmd, statsCmd, addCmd, addTaskCmd, renameCmd, deleteCmd, toggleCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(s *session) error {
		var category model.Category
		if listCategory != "" {
			category = model.Category(listCategory)
			if !category.Valid() {
				return fmt.Errorf("unknown category %q", listCategory)
			}
		}
		if listEmergency {
			category = model.CategoryEmergency
		}

		out := cmd.OutOrStdout()
		if s.store.Count() == 0 {
			fmt.Fprintln(out, "No checklists. Run 'sailcheck seed' to load the defaults.")
			return nil
		}

		var selected []model.Checklist
		switch {
		case category != "":
			selected = s.store.ByCategory(category)
		case listAll:
			selected = s.store.Checklists()
		default:
			selected = s.store.Active()
		}

		rows := make([][]string, 0, len(selected))
		for _, c := range selected {
			// Emergency checklists stay listed when inactive.
			if category != "" && !listAll && category != model.CategoryEmergency && !c.IsActive {
				continue
			}
			stats := checklist.ComputeStats(c)
			rows = append(rows, []string{
				c.ID,
				c.Name,
				c.Category.Label(),
				fmt.Sprintf("%d/%d", stats.CompletedTasks, stats.TotalTasks),
				fmt.Sprintf("%d%%", stats.CompletionPercentage),
				activeLabel(c.IsActive),
				lastRun(c.LastCompletedAt),
			})
		}

		if len(rows) == 0 {
			fmt.Fprintln(out, "No checklists match.")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorGray)).
			Headers("ID", "NAME", "CATEGORY", "TASKS", "DONE", "ACTIVE", "LAST RUN").
			Rows(rows...)
		fmt.Fprintln(out, t)
		return nil
	})
}

func runShow(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		c, err := resolveChecklist(s.store.Checklists(), args[0])
		if err != nil {
			return err
		}
		printChecklist(cmd.OutOrStdout(), c)
		return nil
	})
}

func runStats(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		c, err := resolveChecklist(s.store.Checklists(), args[0])
		if err != nil {
			return err
		}
		stats, _ := s.store.GetChecklistStats(c.ID)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", c.Name)
		fmt.Fprintf(out, "  total:     %d\n", stats.TotalTasks)
		fmt.Fprintf(out, "  completed: %d\n", stats.CompletedTasks)
		fmt.Fprintf(out, "  pending:   %d\n", stats.PendingTasks)
		fmt.Fprintf(out, "  progress:  %d%%\n", stats.CompletionPercentage)
		fmt.Fprintf(out, "  complete:  %t\n", stats.IsFullyCompleted)
		fmt.Fprintf(out, "  last run:  %s\n", lastRun(c.LastCompletedAt))
		return nil
	})
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return errors.New("checklist name must not be empty")
	}
	category := model.Category(addCategory)
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", addCategory)
	}

	return withSession(cmd, func(s *session) error {
		if !entitlement.CanCreateChecklist(s.entitlementState(), s.store.Count()) {
			return fmt.Errorf("the free plan is limited to %d checklists; run 'sailcheck subscription activate' to upgrade", entitlement.FreeLimit)
		}

		tasks := make([]model.Task, 0, len(addTasks))
		for _, title := range addTasks {
			title = strings.TrimSpace(title)
			if title == "" {
				continue
			}
			tasks = append(tasks, checklist.NewTask(model.CreateTaskInput{Title: title, Order: len(tasks) + 1}))
		}

		id := s.store.AddChecklistWithTasks(model.CreateChecklistInput{
			Name:        name,
			Category:    category,
			Description: addDescription,
			Color:       addColor,
			Icon:        addIcon,
		}, tasks)
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%d tasks)\n", id, len(tasks))
		return nil
	})
}

func runAddTask(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(args[1])
	if title == "" {
		return errors.New("task title must not be empty")
	}
	priority := model.TaskPriority(taskPriority)
	if !priority.Valid() {
		return fmt.Errorf("unknown priority %q", taskPriority)
	}

	return withSession(cmd, func(s *session) error {
		c, err := resolveChecklist(s.store.Checklists(), args[0])
		if err != nil {
			return err
		}

		order := 1
		for _, t := range c.Tasks {
			order = max(order, t.Order+1)
		}
		tasks := append(c.Tasks, checklist.NewTask(model.CreateTaskInput{
			Title:       title,
			Order:       order,
			Description: taskDescription,
			Priority:    priority,
		}))
		s.store.UpdateChecklistTasks(c.ID, tasks)
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", title, c.Name)
		return nil
	})
}

func runRename(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[1])
	if name == "" {
		return errors.New("checklist name must not be empty")
	}

	return withSession(cmd, func(s *session) error {
		c, err := resolveChecklist(s.store.Checklists(), args[0])
		if err != nil {
			return err
		}
		s.store.UpdateChecklist(c.ID, model.ChecklistUpdate{Name: &name})
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", c.ID, name)
		return nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		c, err := resolveChecklist(s.store.Checklists(), args[0])
		if err != nil {
			return err
		}
		s.store.DeleteChecklist(c.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", c.Name)
		return nil
	})
}

func runToggle(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		c, err := resolveChecklist(s.store.Checklists(), args[0])
		if err != nil {
			return err
		}
		s.store.ToggleChecklistActive(c.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", c.Name, activeLabel(!c.IsActive))
		return nil
	})
}

// resolveChecklist finds a checklist by exact id, then case-insensitive
// name, then unique id prefix.
func resolveChecklist(all []model.Checklist, ref string) (model.Checklist, error) {
	for _, c := range all {
		if c.ID == ref {
			return c, nil
		}
	}
	for _, c := range all {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}

	var matches []model.Checklist
	for _, c := range all {
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.Checklist{}, fmt.Errorf("no checklist matches %q", ref)
	default:
		return model.Checklist{}, fmt.Errorf("%q matches %d checklists", ref, len(matches))
	}
}

// resolveTask finds a task by id or by its 1-based position in display
// order.
func resolveTask(c model.Checklist, ref string) (model.Task, error) {
	for _, t := range c.Tasks {
		if t.ID == ref {
			return t, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		sorted := checklist.SortedTasks(c.Tasks)
		if n >= 1 && n <= len(sorted) {
			return sorted[n-1], nil
		}
		return model.Task{}, fmt.Errorf("%s has %d tasks", c.Name, len(sorted))
	}
	return model.Task{}, fmt.Errorf("no task %q in %s", ref, c.Name)
}

func printChecklist(w io.Writer, c model.Checklist) {
	stats := checklist.ComputeStats(c)
	fmt.Fprintf(w, "%s  [%s]  %d%%\n", c.Name, c.Category.Label(), stats.CompletionPercentage)
	if c.Description != "" {
		fmt.Fprintf(w, "%s\n", c.Description)
	}
	fmt.Fprintln(w)
	for i, t := range checklist.SortedTasks(c.Tasks) {
		fmt.Fprintf(w, "%3d. %s %s", i+1, statusBox(t.Status), t.Title)
		if t.Priority == model.TaskPriorityHigh || t.Priority == model.TaskPriorityCritical {
			fmt.Fprintf(w, " (%s)", t.Priority)
		}
		fmt.Fprintln(w)
	}
}

func statusBox(s model.TaskStatus) string {
	switch s {
	case model.TaskStatusCompleted:
		return "[x]"
	case model.TaskStatusSkipped:
		return "[-]"
	default:
		return "[ ]"
	}
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func lastRun(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}
