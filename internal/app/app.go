package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/sailcheck/internal/entitlement"
	"github.com/nhle/sailcheck/internal/keys"
	"github.com/nhle/sailcheck/internal/preferences"
	"github.com/nhle/sailcheck/internal/store"
	"github.com/nhle/sailcheck/internal/theme"
	"github.com/nhle/sailcheck/internal/ui"
	"github.com/nhle/sailcheck/internal/ui/checklistform"
	"github.com/nhle/sailcheck/internal/ui/checklists"
	"github.com/nhle/sailcheck/internal/ui/command"
	helpview "github.com/nhle/sailcheck/internal/ui/help"
	"github.com/nhle/sailcheck/internal/ui/onboarding"
	"github.com/nhle/sailcheck/internal/ui/runner"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewRunner
	ViewHelp
	ViewCommand
	ViewCreate
	ViewEdit
	ViewOnboarding
)

// Deps are the collaborators the root model works with.
type Deps struct {
	Store       *store.ChecklistStore
	Preferences *preferences.Store

	// Entitlement is the last known subscription state; nil means free.
	Entitlement *entitlement.State

	// Locale preselects the onboarding language for first-run users.
	Locale string

	Logger *slog.Logger
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the checklist store.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        *store.ChecklistStore
	prefs        *preferences.Store
	entitlement  *entitlement.State
	locale       string
	logger       *slog.Logger
	keys         *keys.KeyMap
	list         checklists.Model
	runner       runner.Model
	helpView     helpview.Model
	commandView  command.Model
	form         checklistform.Model
	onboarding   onboarding.Model

	// pendingDelete holds the id awaiting a second delete key press.
	pendingDelete string
	notice        string
	ready         bool
}

// New creates a new root application model.
func New(d Deps) Model {
	k := keys.DefaultKeyMap()
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return Model{
		currentView: ViewList,
		store:       d.Store,
		prefs:       d.Preferences,
		entitlement: d.Entitlement,
		locale:      d.Locale,
		logger:      logger,
		keys:        k,
		list:        checklists.New(d.Store, k, 80, 24),
		runner:      runner.New(k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		form:        checklistform.New(80, 24),
		onboarding:  onboarding.New(80, 24),
	}
}

// Init applies the saved theme and loads the list. First-run users see the
// onboarding form first and get the default catalog in the language they
// pick; everyone else gets it seeded right away if the store is empty.
func (m Model) Init() tea.Cmd {
	prefs := m.prefs.Get()
	theme.Apply(prefs.ThemeMode == preferences.ThemeDark)

	if !prefs.HasCompletedOnboarding {
		return func() tea.Msg { return startOnboardingMsg{} }
	}
	return m.seed(string(prefs.Language))
}

// onboardingDefaults preselects the configured locale until the user has
// picked a language.
func (m Model) onboardingDefaults() preferences.Preferences {
	prefs := m.prefs.Get()
	if prefs.HasCompletedOnboarding {
		return prefs
	}
	if lang, ok := preferences.ParseLanguage(m.locale); ok {
		prefs.Language = lang
	}
	return prefs
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.list.SetSize(w, h)
		m.runner.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		m.form.SetSize(w, h)
		m.onboarding.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case startOnboardingMsg:
		m.currentView = ViewOnboarding
		cmd := m.onboarding.Start(m.onboardingDefaults())
		return m, cmd

	case onboarding.DoneMsg:
		m.currentView = ViewList
		return m, m.finishOnboarding(msg)

	case onboarding.SkippedMsg:
		m.currentView = ViewList
		m.prefs.CompleteOnboarding()
		return m, m.seed(string(m.prefs.Get().Language))

	case storeChangedMsg:
		if msg.notice != "" {
			m.notice = msg.notice
		}
		cmds := []tea.Cmd{m.list.LoadChecklists()}
		if m.currentView == ViewRunner {
			if c, ok := m.store.GetChecklist(m.runner.ChecklistID()); ok {
				m.runner.Refresh(c)
			} else {
				m.currentView = ViewList
			}
		}
		return m, tea.Batch(cmds...)

	case checklists.ChecklistsLoadedMsg:
		// The list keeps its data fresh even while another view is shown.
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case checklists.SelectedChecklistMsg:
		c, ok := m.store.GetChecklist(msg.ID)
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewRunner
		m.runner.Start(c)
		return m, nil

	case runner.TaskStatusMsg:
		return m, m.setTaskStatus(msg)

	case runner.ResetRunMsg:
		return m, m.resetRun(msg.ChecklistID)

	case runner.BackMsg:
		m.currentView = ViewList
		return m, nil

	case checklistform.CreatedMsg:
		m.currentView = ViewList
		return m, m.createChecklist(msg)

	case checklistform.UpdatedMsg:
		m.currentView = ViewList
		return m, m.updateChecklist(msg)

	case checklistform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(string(msg))
		return m, cmd

	case tea.KeyMsg:
		next, cmd, handled := m.handleGlobalKey(msg)
		if handled {
			return next, cmd
		}
		m = next
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that act outside the focused sub-view.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}

	// Forms and the palette own every other key.
	switch m.currentView {
	case ViewCreate, ViewEdit, ViewOnboarding:
		return m, nil, false
	case ViewCommand:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, nil, false
	}

	if m.currentView == ViewList && m.list.Searching() {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		cmd := m.commandView.Focus()
		return m, cmd, true

	case key.Matches(msg, m.keys.Theme):
		mode := m.prefs.ToggleTheme()
		theme.Apply(mode == preferences.ThemeDark)
		return m, nil, true
	}

	if m.currentView == ViewHelp && key.Matches(msg, m.keys.Back) {
		m.currentView = m.previousView
		return m, nil, true
	}

	if m.currentView != ViewList {
		return m, nil, false
	}

	// Any key other than a second delete cancels a pending delete.
	pending := m.pendingDelete
	m.pendingDelete = ""
	if !key.Matches(msg, m.keys.Delete) {
		m.notice = ""
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.New):
		cmd := m.startCreate()
		return m, cmd, true

	case key.Matches(msg, m.keys.Edit):
		id, ok := m.list.SelectedID()
		if !ok {
			return m, nil, true
		}
		c, ok := m.store.GetChecklist(id)
		if !ok {
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewEdit
		cmd := m.form.StartEdit(c)
		return m, cmd, true

	case key.Matches(msg, m.keys.Delete):
		id, ok := m.list.SelectedID()
		if !ok {
			return m, nil, true
		}
		if pending == id {
			m.notice = ""
			return m, m.deleteChecklist(id), true
		}
		c, _ := m.store.GetChecklist(id)
		m.pendingDelete = id
		m.notice = fmt.Sprintf("Press d again to delete %q", c.Name)
		return m, nil, true

	case key.Matches(msg, m.keys.ToggleActive):
		id, ok := m.list.SelectedID()
		if !ok {
			return m, nil, true
		}
		return m, m.toggleActive(id), true

	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadDefaults(string(m.prefs.Get().Language)), true
	}

	return m, nil, false
}

// startCreate opens the create form unless the free plan is full.
func (m *Model) startCreate() tea.Cmd {
	if !entitlement.CanCreateChecklist(m.entitlement, m.store.Count()) {
		m.notice = theme.WarningStyle.Render(fmt.Sprintf(
			"Free plan limit reached (%d checklists). Delete one or subscribe to add more.",
			entitlement.FreeLimit,
		))
		return nil
	}
	m.previousView = m.currentView
	m.currentView = ViewCreate
	return m.form.StartCreate()
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.list, cmd = m.list.Update(msg)
	case ViewRunner:
		m.runner, cmd = m.runner.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewCreate, ViewEdit:
		m.form, cmd = m.form.Update(msg)
	case ViewOnboarding:
		m.onboarding, cmd = m.onboarding.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	headerStyle := theme.HeaderStyle
	if m.currentView == ViewList && m.list.Filter() == checklists.FilterEmergency {
		headerStyle = theme.EmergencyHeaderStyle
	}

	header := m.layout.RenderHeader(headerStyle, "Sailcheck", m.planSummary())
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.list.View()
	case ViewRunner:
		return m.runner.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewCreate, ViewEdit:
		return m.form.View()
	case ViewOnboarding:
		return m.onboarding.View()
	default:
		return ""
	}
}

// planSummary describes the subscription state for the header.
func (m Model) planSummary() string {
	if entitlement.HasActiveSubscription(m.entitlement) {
		return strings.Join(entitlement.ActiveEntitlements(m.entitlement), ", ")
	}
	return fmt.Sprintf("free %d/%d", min(m.store.Count(), entitlement.FreeLimit), entitlement.FreeLimit)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.notice != "" && (m.currentView == ViewList || m.currentView == ViewRunner) {
		return m.notice
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewRunner:
		return "space done | s skip | u pending | r reset run | j/k move | esc back"
	case ViewCreate, ViewEdit:
		return "enter next | shift+tab back | esc cancel"
	case ViewOnboarding:
		return "enter next | esc skip"
	default:
		return "q quit | ? help | enter run | n new | e edit | d delete | a active | ! emergency | : command"
	}
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	verb, arg, _ := strings.Cut(cmd, " ")

	switch verb {
	case "quit", "q":
		return tea.Quit
	case "new":
		m.currentView = ViewList
		return m.startCreate()
	case "all", "inactive":
		m.currentView = ViewList
		return m.list.SetFilter(checklists.FilterAll)
	case "emergency":
		m.currentView = ViewList
		return m.list.SetFilter(checklists.FilterEmergency)
	case "active", "list":
		m.currentView = ViewList
		return m.list.SetFilter(checklists.FilterActive)
	case "reload":
		return m.reloadDefaults(string(m.prefs.Get().Language))
	case "reset":
		id := m.runner.ChecklistID()
		if m.currentView != ViewRunner {
			id, _ = m.list.SelectedID()
		}
		if id == "" {
			return nil
		}
		return m.resetRun(id)
	case "theme":
		mode := m.prefs.ToggleTheme()
		theme.Apply(mode == preferences.ThemeDark)
		return nil
	case "locale", "language":
		lang := preferences.Language(strings.TrimSpace(arg))
		if !m.prefs.SetLanguage(lang) {
			m.notice = fmt.Sprintf("Unknown language %q", arg)
			return nil
		}
		return m.reloadDefaults(string(lang))
	case "onboarding":
		m.prefs.ResetOnboarding()
		return func() tea.Msg { return startOnboardingMsg{} }
	default:
		m.notice = fmt.Sprintf("Unknown command %q", cmd)
		return nil
	}
}
