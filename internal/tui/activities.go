package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/a-cup-of-joe/reflection/internal/store"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var activityColors = []string{"#7AA2F7", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#BB9AF7"}

type activitiesModel struct {
	store  *store.Store
	width  int
	height int

	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "activity", "edit_activity"

	// Form field pointers (survive value copies)
	formName  *string
	formColor *string

	editingID string
}

func newActivitiesModel(s *store.Store) activitiesModel {
	name, color := "", activityColors[0]
	return activitiesModel{
		store:     s,
		formName:  &name,
		formColor: &color,
	}
}

func (m *activitiesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m activitiesModel) update(msg tea.Msg) (activitiesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		activities := m.store.Activities()
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(activities)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if m.cursor < len(activities) {
				a := activities[m.cursor]
				return m.showForm(&a)
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(activities) {
				m.store.DeleteActivity(activities[m.cursor].ID)
				if m.cursor > 0 {
					m.cursor--
				}
			}
		}
	}
	return m, nil
}

func (m activitiesModel) showForm(a *store.Activity) (activitiesModel, tea.Cmd) {
	*m.formName = ""
	*m.formColor = activityColors[0]
	m.formType = "activity"
	m.editingID = ""
	if a != nil {
		*m.formName = a.Name
		*m.formColor = a.Color
		m.formType = "edit_activity"
		m.editingID = a.ID
	}

	colorOptions := make([]huh.Option[string], len(activityColors))
	for i, c := range activityColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Activity Name").Value(m.formName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(m.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m activitiesModel) updateForm(msg tea.Msg) (activitiesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		switch m.formType {
		case "activity":
			if *m.formName != "" {
				if err := m.store.AddActivity(store.NewActivity(*m.formName, *m.formColor)); err != nil {
					return m, statusError(err)
				}
			}
		case "edit_activity":
			if a := m.store.GetActivity(m.editingID); a != nil && *m.formName != "" {
				a.Name = *m.formName
				a.Color = *m.formColor
				m.store.UpdateActivity(*a)
			}
		}
	}

	return m, cmd
}

func statusError(err error) tea.Cmd {
	return func() tea.Msg {
		text := fmt.Sprintf("Error: %v", err)
		if errors.Is(err, store.ErrDuplicateName) {
			text = "An activity with that name already exists"
		}
		return statusMsg{text: text, isError: true}
	}
}

func (m activitiesModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Activity")
		if m.formType == "edit_activity" {
			title = titleStyle.Render("Edit Activity")
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4
	title := titleStyle.Render("Activities")
	activities := m.store.Activities()

	if len(activities) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No activities yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, a := range activities {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(a.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-24s", cursor, colorDot, a.Name)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
