// Package runner walks through one checklist task by task. It never
// mutates the store itself; it emits messages the root model applies.
package runner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sailcheck/internal/checklist"
	"github.com/nhle/sailcheck/internal/keys"
	"github.com/nhle/sailcheck/internal/model"
	"github.com/nhle/sailcheck/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// TaskStatusMsg asks the parent to set the status of one task.
type TaskStatusMsg struct {
	ChecklistID string
	TaskID      string
	Status      model.TaskStatus
}

// ResetRunMsg asks the parent to reset the whole run.
type ResetRunMsg struct {
	ChecklistID string
}

// Model is the checklist runner view component.
type Model struct {
	checklist *model.Checklist
	tasks     []model.Task
	stats     model.ChecklistStats
	cursor    int
	viewport  viewport.Model
	bar       progress.Model
	keys      *keys.KeyMap
	width     int
	height    int
}

// New creates a new runner model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-4)
	return Model{
		viewport: vp,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(max(width-8, 10))),
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Start shows c with the cursor on its first pending task.
func (m *Model) Start(c model.Checklist) {
	m.cursor = 0
	m.load(c)
	for i, t := range m.tasks {
		if t.Status == model.TaskStatusPending {
			m.cursor = i
			break
		}
	}
	m.render()
}

// Refresh replaces the displayed checklist after a store change, keeping
// the cursor where it was.
func (m *Model) Refresh(c model.Checklist) {
	m.load(c)
	if m.cursor >= len(m.tasks) {
		m.cursor = max(len(m.tasks)-1, 0)
	}
	m.render()
}

func (m *Model) load(c model.Checklist) {
	m.checklist = &c
	m.tasks = checklist.SortedTasks(c.Tasks)
	m.stats = checklist.ComputeStats(c)
}

// ChecklistID returns the id of the running checklist, or "".
func (m Model) ChecklistID() string {
	if m.checklist == nil {
		return ""
	}
	return m.checklist.ID
}

// Cursor returns the index of the highlighted task in display order.
func (m Model) Cursor() int { return m.cursor }

// Update handles messages for the runner.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.checklist == nil {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(keyMsg, m.keys.Down):
		m.move(1)
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		m.move(-1)
		return m, nil

	case key.Matches(keyMsg, m.keys.Complete):
		return m.setStatus(model.TaskStatusCompleted, true)

	case key.Matches(keyMsg, m.keys.Skip):
		return m.setStatus(model.TaskStatusSkipped, true)

	case key.Matches(keyMsg, m.keys.Pending):
		return m.setStatus(model.TaskStatusPending, false)

	case key.Matches(keyMsg, m.keys.Reset):
		id := m.checklist.ID
		m.cursor = 0
		return m, func() tea.Msg { return ResetRunMsg{ChecklistID: id} }
	}

	return m, nil
}

func (m *Model) move(delta int) {
	if len(m.tasks) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.tasks)-1)
	m.render()
}

func (m Model) setStatus(status model.TaskStatus, advance bool) (Model, tea.Cmd) {
	if len(m.tasks) == 0 {
		return m, nil
	}
	msg := TaskStatusMsg{
		ChecklistID: m.checklist.ID,
		TaskID:      m.tasks[m.cursor].ID,
		Status:      status,
	}
	if advance && m.cursor < len(m.tasks)-1 {
		m.cursor++
	}
	m.render()
	return m, func() tea.Msg { return msg }
}

// View renders the runner.
func (m Model) View() string {
	if m.checklist == nil {
		return ""
	}
	return m.viewport.View()
}

func (m *Model) render() {
	if m.checklist == nil {
		return
	}
	c := m.checklist

	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render(c.Name)
	badge := theme.CategoryStyle(c.Category, c.Color).Render(c.Category.Label())
	b.WriteString(title + " " + badge + "\n")
	if c.Description != "" {
		b.WriteString(theme.HelpStyle.Render(c.Description) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.bar.ViewAs(float64(m.stats.CompletionPercentage) / 100))
	b.WriteString(fmt.Sprintf("  %d/%d done", m.stats.CompletedTasks, m.stats.TotalTasks))
	if m.stats.IsFullyCompleted {
		b.WriteString("  " + theme.StatusStyle(model.TaskStatusCompleted).Render("all clear"))
	}
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(theme.HelpStyle.Render("This checklist has no tasks. Press e on the list to add some."))
	}

	for i, t := range m.tasks {
		line := fmt.Sprintf("%s %s %s",
			theme.StatusStyle(t.Status).Render(theme.StatusGlyph(t.Status)),
			theme.PriorityStyle(t.Priority).Render(priorityMark(t.Priority)),
			t.Title,
		)
		if t.Status != model.TaskStatusPending {
			line = theme.DimmedStyle.Render(line)
		}
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
			if t.Description != "" {
				line += "\n" + theme.ListItemStyle.Render("    "+theme.HelpStyle.Render(t.Description))
			}
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	m.viewport.SetContent(b.String())
}

// priorityMark returns a one-letter priority marker: C, H, M or L.
func priorityMark(p model.TaskPriority) string {
	if p == "" {
		return "-"
	}
	return strings.ToUpper(string(p)[:1])
}

// SetSize updates the runner dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)
	m.bar.Width = max(width-20, 10)
	m.render()
}
