// Package checklistform is the huh form used to create and edit a
// checklist, including its task list entered one task per line.
package checklistform

import (
	"fmt"
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sailcheck/internal/checklist"
	"github.com/nhle/sailcheck/internal/model"
	"github.com/nhle/sailcheck/internal/theme"
)

// CreatedMsg is dispatched when a new checklist is submitted.
type CreatedMsg struct {
	Input model.CreateChecklistInput
	Tasks []model.Task
}

// UpdatedMsg is dispatched when an existing checklist is submitted.
type UpdatedMsg struct {
	ID     string
	Update model.ChecklistUpdate
	Tasks  []model.Task
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name        string
	description string
	category    model.Category
	color       string
	icon        string
	tasks       string
}

// Model is the Bubble Tea model for the checklist create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	original []model.Task
	width    int
	height   int
}

// New creates a new checklist form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{category: model.CategoryGeneral},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new checklist.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.original = nil
	*m.fb = formBindings{category: model.CategoryGeneral}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with the fields of c.
func (m *Model) StartEdit(c model.Checklist) tea.Cmd {
	m.editMode = true
	m.editID = c.ID
	m.original = checklist.SortedTasks(c.Tasks)
	*m.fb = formBindings{
		name:        c.Name,
		description: c.Description,
		category:    c.Category,
		color:       c.Color,
		icon:        c.Icon,
		tasks:       formatTaskLines(m.original),
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Checklist"
	if m.editMode {
		titleText = "Edit Checklist"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	categories := make([]huh.Option[model.Category], len(model.Categories))
	for i, c := range model.Categories {
		categories[i] = huh.NewOption(c.Label(), c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("e.g. Night passage").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewSelect[model.Category]().
				Title("Category").
				Options(categories...).
				Value(&m.fb.category),
			huh.NewInput().
				Title("Color").
				Placeholder("#RRGGBB (optional)").
				Value(&m.fb.color).
				Validate(validateOptionalColor),
			huh.NewInput().
				Title("Icon").
				Placeholder("optional").
				Value(&m.fb.icon),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Tasks").
				Description("One per line. Prefix with ! for high or !! for critical priority.").
				Lines(10).
				Value(&m.fb.tasks),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	name := strings.TrimSpace(m.fb.name)
	description := strings.TrimSpace(m.fb.description)
	category := m.fb.category
	color := strings.TrimSpace(m.fb.color)
	icon := strings.TrimSpace(m.fb.icon)
	tasks := parseTaskLines(m.fb.tasks, m.original)

	if m.editMode {
		id := m.editID
		u := model.ChecklistUpdate{
			Name:        &name,
			Description: &description,
			Category:    &category,
			Color:       &color,
			Icon:        &icon,
		}
		return func() tea.Msg { return UpdatedMsg{ID: id, Update: u, Tasks: tasks} }
	}

	input := model.CreateChecklistInput{
		Name:        name,
		Description: description,
		Category:    category,
		Color:       color,
		Icon:        icon,
	}
	return func() tea.Msg { return CreatedMsg{Input: input, Tasks: tasks} }
}

// formatTaskLines renders tasks in the syntax parseTaskLines reads.
func formatTaskLines(tasks []model.Task) string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		switch t.Priority {
		case model.TaskPriorityCritical:
			lines[i] = "!! " + t.Title
		case model.TaskPriorityHigh:
			lines[i] = "! " + t.Title
		default:
			lines[i] = t.Title
		}
	}
	return strings.Join(lines, "\n")
}

type taskLine struct {
	title    string
	priority model.TaskPriority
}

// parseTaskLines turns the tasks text into tasks ordered from 1. Each line
// keeps the first unused existing task with the same title, with its id,
// description and run state. A line left unmatched takes over the unused
// task at its position as a retitle; anything else becomes a new pending
// task. A kept high or critical task loses that priority when its !
// prefix is removed.
func parseTaskLines(text string, existing []model.Task) []model.Task {
	lines := splitTaskLines(text)
	matched := make([]int, len(lines))
	used := make([]bool, len(existing))

	for i, l := range lines {
		matched[i] = -1
		for j, t := range existing {
			if !used[j] && t.Title == l.title {
				matched[i] = j
				used[j] = true
				break
			}
		}
	}
	for i := range lines {
		if matched[i] < 0 && i < len(existing) && !used[i] {
			matched[i] = i
			used[i] = true
		}
	}

	out := make([]model.Task, 0, len(lines))
	for i, l := range lines {
		order := i + 1
		if matched[i] < 0 {
			out = append(out, checklist.NewTask(model.CreateTaskInput{
				Title:    l.title,
				Order:    order,
				Priority: l.priority,
			}))
			continue
		}

		t := existing[matched[i]]
		t.Title = l.title
		t.Order = order
		if l.priority != "" {
			t.Priority = l.priority
		} else if t.Priority == model.TaskPriorityHigh || t.Priority == model.TaskPriorityCritical {
			t.Priority = model.TaskPriorityMedium
		}
		out = append(out, t)
	}
	return out
}

// splitTaskLines reads one task per non-blank line, stripping the !/!!
// priority prefix.
func splitTaskLines(text string) []taskLine {
	var out []taskLine
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		var priority model.TaskPriority
		switch {
		case strings.HasPrefix(line, "!!"):
			priority = model.TaskPriorityCritical
			line = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "!"):
			priority = model.TaskPriorityHigh
			line = strings.TrimSpace(line[1:])
		}
		if line == "" {
			continue
		}
		out = append(out, taskLine{title: line, priority: priority})
	}
	return out
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func validateOptionalColor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || hexColor.MatchString(s) {
		return nil
	}
	return fmt.Errorf("use a hex color like #1E88E5")
}
