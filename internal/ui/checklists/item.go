package checklists

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sailcheck/internal/checklist"
	"github.com/nhle/sailcheck/internal/model"
	"github.com/nhle/sailcheck/internal/theme"
)

// ChecklistItem wraps a model.Checklist so it can be used in a bubbles/list.
type ChecklistItem struct {
	Checklist model.Checklist
	Stats     model.ChecklistStats
}

// NewItem computes the stats shown next to c.
func NewItem(c model.Checklist) ChecklistItem {
	return ChecklistItem{Checklist: c, Stats: checklist.ComputeStats(c)}
}

// FilterValue returns the string used for fuzzy filtering.
func (i ChecklistItem) FilterValue() string { return i.Checklist.Name }

// Title returns the checklist name for the list.
func (i ChecklistItem) Title() string { return i.Checklist.Name }

// Description returns a short summary line for the list.
func (i ChecklistItem) Description() string {
	parts := []string{
		i.Checklist.Category.Label(),
		fmt.Sprintf("%d/%d", i.Stats.CompletedTasks, i.Stats.TotalTasks),
	}
	if i.Checklist.LastCompletedAt != nil {
		parts = append(parts, "last run "+relativeTime(*i.Checklist.LastCompletedAt))
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering checklist rows.
type ItemDelegate struct {
	bar progress.Model
}

// NewItemDelegate returns a delegate with a compact progress bar.
func NewItemDelegate() ItemDelegate {
	return ItemDelegate{
		bar: progress.New(
			progress.WithWidth(12),
			progress.WithoutPercentage(),
			progress.WithSolidFill(theme.ColorGreen.Dark),
		),
	}
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single checklist row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(ChecklistItem)
	if !ok {
		return
	}

	c := it.Checklist
	prefix := "○"
	if it.Stats.IsFullyCompleted {
		prefix = "✓"
	}

	badge := theme.CategoryStyle(c.Category, c.Color).
		Render(strings.ToUpper(c.Category.Label()))

	pct := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(fmt.Sprintf("%3d%% (%d/%d)", it.Stats.CompletionPercentage, it.Stats.CompletedTasks, it.Stats.TotalTasks))

	last := ""
	if c.LastCompletedAt != nil {
		last = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render("  " + relativeTime(*c.LastCompletedAt))
	}

	line := fmt.Sprintf(
		"%s %s %s %s %s%s",
		prefix, badge, c.Name,
		d.bar.ViewAs(float64(it.Stats.CompletionPercentage)/100),
		pct, last,
	)

	if !c.IsActive {
		line = theme.DimmedStyle.Render(line + " (inactive)")
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw ago", int(d.Hours()/24/7))
	}
}
