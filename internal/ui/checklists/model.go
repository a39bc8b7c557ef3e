// Package checklists is the main screen: every checklist with its
// progress, filterable to the emergency set or to include inactive ones.
package checklists

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sailcheck/internal/keys"
	"github.com/nhle/sailcheck/internal/model"
	"github.com/nhle/sailcheck/internal/theme"
)

// Source supplies the checklists to display.
type Source interface {
	Checklists() []model.Checklist
}

// Filter selects which checklists are listed.
type Filter int

const (
	// FilterActive hides inactive checklists.
	FilterActive Filter = iota
	// FilterEmergency lists only emergency checklists, active or not.
	FilterEmergency
	// FilterAll lists everything.
	FilterAll
)

// String returns the filter name shown in the title.
func (f Filter) String() string {
	switch f {
	case FilterEmergency:
		return "Emergency"
	case FilterAll:
		return "All checklists"
	default:
		return "Checklists"
	}
}

// ChecklistsLoadedMsg is sent when checklists have been read from the store.
type ChecklistsLoadedMsg struct {
	Checklists []model.Checklist
}

// SelectedChecklistMsg is sent when the user opens a checklist.
type SelectedChecklistMsg struct {
	ID string
}

// Model is the checklist list view component.
type Model struct {
	list        list.Model
	source      Source
	keys        *keys.KeyMap
	all         []model.Checklist
	filter      Filter
	query       string
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new checklist list model.
func New(s Source, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, NewItemDelegate(), width, height-2)
	l.Title = FilterActive.String()
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search checklists..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		source:      s,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the checklists.
func (m Model) Init() tea.Cmd {
	return m.LoadChecklists()
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ChecklistsLoadedMsg:
		m.all = msg.Checklists
		return m, m.refresh()

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = strings.TrimSpace(m.searchInput.Value())
		return m, m.refresh()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		id, ok := m.SelectedID()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedChecklistMsg{ID: id}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Emergency):
		if m.filter == FilterEmergency {
			return m, m.SetFilter(FilterActive)
		}
		return m, m.SetFilter(FilterEmergency)

	case key.Matches(msg, m.keys.ShowInactive):
		if m.filter == FilterAll {
			return m, m.SetFilter(FilterActive)
		}
		return m, m.SetFilter(FilterAll)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SetFilter switches the filter and re-renders the list.
func (m *Model) SetFilter(f Filter) tea.Cmd {
	m.filter = f
	m.list.Title = f.String()
	if f == FilterEmergency {
		m.list.Styles.Title = theme.EmergencyHeaderStyle
	} else {
		m.list.Styles.Title = theme.HeaderStyle
	}
	return m.refresh()
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool { return m.searchMode }

// Filter returns the active filter.
func (m Model) Filter() Filter { return m.filter }

// Visible returns the checklists that pass the filter and search query,
// in stored order.
func (m Model) Visible() []model.Checklist {
	q := strings.ToLower(m.query)
	out := make([]model.Checklist, 0, len(m.all))
	for _, c := range m.all {
		switch m.filter {
		case FilterActive:
			if !c.IsActive {
				continue
			}
		case FilterEmergency:
			if c.Category != model.CategoryEmergency {
				continue
			}
		}
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Count returns the number of stored checklists, regardless of filter.
func (m Model) Count() int { return len(m.all) }

func (m *Model) refresh() tea.Cmd {
	visible := m.Visible()
	items := make([]list.Item, len(visible))
	for i, c := range visible {
		items[i] = NewItem(c)
	}
	return m.list.SetItems(items)
}

// SelectedID returns the id of the highlighted checklist.
func (m Model) SelectedID() (string, bool) {
	it, ok := m.list.SelectedItem().(ChecklistItem)
	if !ok {
		return "", false
	}
	return it.Checklist.ID, true
}

// View renders the list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	switch {
	case m.query != "":
		return style.Render("No checklist matches \"" + m.query + "\".\nPress / then esc to clear.")
	case m.filter == FilterEmergency:
		return style.Render("No emergency checklists.\n\nPress : then type 'reload defaults' to restore them.")
	case len(m.all) > 0:
		return style.Render("Every checklist is inactive.\n\nPress H to show them.")
	default:
		return style.Render("No checklists yet.\n\nPress n to create one, or : then 'reload defaults'.")
	}
}

// LoadChecklists returns a tea.Cmd that reads the current collection.
func (m Model) LoadChecklists() tea.Cmd {
	s := m.source
	return func() tea.Msg {
		return ChecklistsLoadedMsg{Checklists: s.Checklists()}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
