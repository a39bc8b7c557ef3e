// Package onboarding is the first-run form: pick a language for the
// default checklists and a theme.
package onboarding

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/sailcheck/internal/preferences"
	"github.com/nhle/sailcheck/internal/theme"
)

// DoneMsg carries the choices made in the form.
type DoneMsg struct {
	Language  preferences.Language
	ThemeMode preferences.ThemeMode
}

// SkippedMsg is sent when the user aborts the form.
type SkippedMsg struct{}

var languageNames = map[preferences.Language]string{
	preferences.LanguageEnglish: "English",
	preferences.LanguageFrench:  "Français",
	preferences.LanguageSpanish: "Español",
	preferences.LanguageGerman:  "Deutsch",
	preferences.LanguageItalian: "Italiano",
}

type bindings struct {
	language preferences.Language
	mode     preferences.ThemeMode
}

// Model is the onboarding form.
type Model struct {
	form   *huh.Form
	b      *bindings
	width  int
	height int
}

// New creates the onboarding model.
func New(width, height int) Model {
	return Model{b: &bindings{}, width: width, height: height}
}

// Start builds the form preselected with current.
func (m *Model) Start(current preferences.Preferences) tea.Cmd {
	m.b.language = current.Language
	m.b.mode = current.ThemeMode

	langs := make([]huh.Option[preferences.Language], len(preferences.Languages))
	for i, l := range preferences.Languages {
		langs[i] = huh.NewOption(languageNames[l], l)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome aboard").
				Description("Sailcheck keeps your pre-departure, navigation and emergency checklists in one place.\n"+
					"Default checklists are loaded in the language you pick; unsupported ones use English."),
			huh.NewSelect[preferences.Language]().
				Title("Language").
				Options(langs...).
				Value(&m.b.language),
			huh.NewSelect[preferences.ThemeMode]().
				Title("Theme").
				Options(
					huh.NewOption("Light", preferences.ThemeLight),
					huh.NewOption("Dark", preferences.ThemeDark),
				).
				Value(&m.b.mode),
		),
	).WithWidth(min(max(m.width-4, 40), 100))

	return m.form.Init()
}

// Update handles messages for the onboarding form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		done := DoneMsg{Language: m.b.language, ThemeMode: m.b.mode}
		m.form = nil
		return m, func() tea.Msg { return done }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return SkippedMsg{} }
	}

	return m, cmd
}

// Selected returns the current choices.
func (m Model) Selected() (preferences.Language, preferences.ThemeMode) {
	return m.b.language, m.b.mode
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Sailcheck setup")
	return lipgloss.NewStyle().Padding(1, 2).Render(title + "\n" + m.form.View())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
