package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/sailcheck/internal/checklist"
	"github.com/nhle/sailcheck/internal/entitlement"
	"github.com/nhle/sailcheck/internal/preferences"
	"github.com/nhle/sailcheck/internal/theme"
	"github.com/nhle/sailcheck/internal/ui/checklistform"
	"github.com/nhle/sailcheck/internal/ui/onboarding"
	"github.com/nhle/sailcheck/internal/ui/runner"
)

// startOnboardingMsg switches to the onboarding form.
type startOnboardingMsg struct{}

// storeChangedMsg is sent after any store mutation so views reload.
type storeChangedMsg struct {
	notice string
}

// seed fills an empty store with the default catalog for locale. The
// store is hydrated before the program starts, so seeding cannot clobber
// persisted checklists.
func (m Model) seed(locale string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		if s.HasHydrated() {
			s.InitializeSampleData(locale)
		}
		return storeChangedMsg{}
	}
}

// finishOnboarding saves the onboarding choices and seeds the catalog in
// the chosen language.
func (m Model) finishOnboarding(msg onboarding.DoneMsg) tea.Cmd {
	m.prefs.SetLanguage(msg.Language)
	if m.prefs.SetTheme(msg.ThemeMode) {
		theme.Apply(msg.ThemeMode == preferences.ThemeDark)
	}
	m.prefs.CompleteOnboarding()
	return m.seed(string(msg.Language))
}

// createChecklist adds a checklist from the form, re-checking the free
// plan limit in case the count changed while the form was open.
func (m Model) createChecklist(msg checklistform.CreatedMsg) tea.Cmd {
	s := m.store
	state := m.entitlement
	logger := m.logger
	return func() tea.Msg {
		if !entitlement.CanCreateChecklist(state, s.Count()) {
			return storeChangedMsg{notice: theme.WarningStyle.Render("Free plan limit reached.")}
		}
		id := s.AddChecklistWithTasks(msg.Input, msg.Tasks)
		logger.Debug("created checklist", "id", id, "tasks", len(msg.Tasks))
		return storeChangedMsg{notice: fmt.Sprintf("Created %q", msg.Input.Name)}
	}
}

// updateChecklist applies the edited fields and replaces the tasks only
// when they actually changed.
func (m Model) updateChecklist(msg checklistform.UpdatedMsg) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		current, ok := s.GetChecklist(msg.ID)
		if !ok {
			return storeChangedMsg{}
		}
		s.UpdateChecklist(msg.ID, msg.Update)
		if !checklist.TaskArraysEqual(checklist.SortedTasks(current.Tasks), msg.Tasks) {
			s.UpdateChecklistTasks(msg.ID, msg.Tasks)
		}
		return storeChangedMsg{}
	}
}

// deleteChecklist removes a checklist.
func (m Model) deleteChecklist(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.DeleteChecklist(id)
		return storeChangedMsg{notice: "Checklist deleted"}
	}
}

// toggleActive flips a checklist's active flag.
func (m Model) toggleActive(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.ToggleChecklistActive(id)
		return storeChangedMsg{}
	}
}

// setTaskStatus applies a status change from the runner.
func (m Model) setTaskStatus(msg runner.TaskStatusMsg) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.UpdateTaskStatus(msg.ChecklistID, msg.TaskID, msg.Status)
		if stats, ok := s.GetChecklistStats(msg.ChecklistID); ok && stats.IsFullyCompleted {
			return storeChangedMsg{notice: "All tasks completed"}
		}
		return storeChangedMsg{}
	}
}

// resetRun clears a checklist run.
func (m Model) resetRun(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.ResetChecklistRun(id)
		return storeChangedMsg{notice: "Run reset"}
	}
}

// reloadDefaults reconciles the store with the catalog for locale.
func (m Model) reloadDefaults(locale string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		before := s.Count()
		s.ReloadDefaultChecklists(locale)
		return storeChangedMsg{notice: fmt.Sprintf("Default checklists reloaded (%d → %d)", before, s.Count())}
	}
}
