package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a-cup-of-joe/reflection/internal/reorder"
	"github.com/a-cup-of-joe/reflection/internal/store"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type planModel struct {
	store  *store.Store
	width  int
	height int

	cursor int

	// Grab-mode reorder state. Each row of keyboard movement feeds one
	// item extent of displacement into the drag.
	drag reorder.Drag
	rows int // rows moved since the grab began

	picking    bool // plan picker overlay
	planCursor int

	formActive bool
	form       *huh.Form
	formType   string // "bar", "edit_bar", "plan"

	// Form field pointers (survive value copies)
	formActivity *string
	formMinutes  *string
	formPlanName *string

	editingBarID string
}

func newPlanModel(s *store.Store) planModel {
	activity, minutes, planName := "", "", ""
	return planModel{
		store:        s,
		formActivity: &activity,
		formMinutes:  &minutes,
		formPlanName: &planName,
	}
}

func (m *planModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m planModel) update(msg tea.Msg) (planModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.picking {
			return m.updatePlanPicker(msg)
		}
		if m.drag.Active() {
			return m.updateGrabbed(msg)
		}
		return m.updateBarList(msg)
	}
	return m, nil
}

func (m planModel) updateBarList(msg tea.KeyMsg) (planModel, tea.Cmd) {
	plan := m.store.CurrentPlan()
	bars := plan.TimeBars

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(bars)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Grab):
		if len(bars) > 1 && m.cursor < len(bars) {
			m.drag.Start(m.cursor, len(bars), reorder.DefaultItemExtent)
			m.rows = 0
		}
	case key.Matches(msg, keys.New):
		return m.showBarForm(nil)
	case key.Matches(msg, keys.Edit):
		if m.cursor < len(bars) {
			bar := bars[m.cursor]
			return m.showBarForm(&bar)
		}
	case key.Matches(msg, keys.Delete):
		if m.cursor < len(bars) {
			m.store.DeleteTimeBar(plan.ID, bars[m.cursor].ID)
			if m.cursor > 0 {
				m.cursor--
			}
		}
	case key.Matches(msg, keys.Plans):
		m.picking = true
		m.planCursor = 0
	}
	return m, nil
}

// updateGrabbed feeds movement into the reorder drag and commits or
// abandons it on enter/escape.
func (m planModel) updateGrabbed(msg tea.KeyMsg) (planModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.rows--
		m.drag.Move(float64(m.rows) * reorder.DefaultItemExtent)
	case key.Matches(msg, keys.Down):
		m.rows++
		m.drag.Move(float64(m.rows) * reorder.DefaultItemExtent)
	case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Grab):
		from, to, commit := m.drag.End()
		if commit {
			plan := m.store.CurrentPlan()
			m.store.MoveTimeBar(plan.ID, from, to)
			m.cursor = to
		}
	case key.Matches(msg, keys.Back):
		m.drag.Reset()
	}
	return m, nil
}

func (m planModel) updatePlanPicker(msg tea.KeyMsg) (planModel, tea.Cmd) {
	plans := m.store.Plans()
	switch {
	case key.Matches(msg, keys.Up):
		if m.planCursor > 0 {
			m.planCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.planCursor < len(plans)-1 {
			m.planCursor++
		}
	case key.Matches(msg, keys.Enter):
		if m.planCursor < len(plans) {
			m.store.SetCurrentPlan(plans[m.planCursor])
			m.picking = false
			m.cursor = 0
		}
	case key.Matches(msg, keys.New):
		m.picking = false
		return m.showPlanForm()
	case key.Matches(msg, keys.Delete):
		if m.planCursor < len(plans) {
			m.store.DeletePlan(plans[m.planCursor].ID)
			if m.planCursor > 0 {
				m.planCursor--
			}
		}
	case key.Matches(msg, keys.Back):
		m.picking = false
	}
	return m, nil
}

func (m planModel) showBarForm(bar *store.TimeBar) (planModel, tea.Cmd) {
	activities := m.store.Activities()
	if len(activities) == 0 {
		return m, func() tea.Msg {
			return statusMsg{text: "No activities yet. Press 3 to create one.", isError: true}
		}
	}

	*m.formActivity = activities[0].ID
	*m.formMinutes = "30"
	m.formType = "bar"
	m.editingBarID = ""
	if bar != nil {
		*m.formActivity = bar.ActivityID
		*m.formMinutes = strconv.FormatInt(bar.Planned/60, 10)
		m.formType = "edit_bar"
		m.editingBarID = bar.ID
	}

	options := make([]huh.Option[string], len(activities))
	for i, a := range activities {
		options[i] = huh.NewOption(fmt.Sprintf("● %s", a.Name), a.ID)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Activity").Options(options...).Value(m.formActivity),
			huh.NewInput().Title("Planned (minutes)").Value(m.formMinutes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m planModel) showPlanForm() (planModel, tea.Cmd) {
	*m.formPlanName = ""
	m.formType = "plan"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Plan Name").Value(m.formPlanName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m planModel) updateForm(msg tea.Msg) (planModel, tea.Cmd) {
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
		plan := m.store.CurrentPlan()
		switch m.formType {
		case "bar":
			if mins, err := strconv.ParseInt(*m.formMinutes, 10, 64); err == nil && mins >= 0 {
				m.store.AddTimeBar(plan.ID, store.NewTimeBar(*m.formActivity, mins*60))
			}
		case "edit_bar":
			if mins, err := strconv.ParseInt(*m.formMinutes, 10, 64); err == nil && mins >= 0 {
				m.store.UpdateTimeBar(plan.ID, store.TimeBar{
					ID:         m.editingBarID,
					ActivityID: *m.formActivity,
					Planned:    mins * 60,
				})
			}
		case "plan":
			if *m.formPlanName != "" {
				m.store.SetCurrentPlan(store.NewPlan(*m.formPlanName))
				m.cursor = 0
			}
		}
	}

	return m, cmd
}

func (m planModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Time Bar")
		if m.formType == "edit_bar" {
			title = titleStyle.Render("Edit Time Bar")
		} else if m.formType == "plan" {
			title = titleStyle.Render("New Plan")
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(m.width - 4).Render(content)
	}

	if m.picking {
		return m.renderPlanPicker()
	}
	return m.renderBarList()
}

func (m planModel) renderBarList() string {
	w := m.width - 4
	plan := m.store.CurrentPlan()
	title := titleStyle.Render(plan.Name)

	if len(plan.TimeBars) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No time bars yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	order := m.displayOrder(len(plan.TimeBars))
	for _, i := range order {
		bar := plan.TimeBars[i]
		rows = append(rows, m.renderBarRow(bar, i))
	}

	rows = append(rows, "")
	if m.drag.Active() {
		rows = append(rows, mutedStyle.Render("  ↑/↓: move  enter: drop  esc: cancel"))
	} else {
		rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  g: grab  p: plans"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// displayOrder returns item indices in their on-screen order, applying
// the in-flight drag's shifts so the grabbed row previews its landing
// position.
func (m planModel) displayOrder(n int) []int {
	order := make([]int, 0, n)
	if !m.drag.Active() {
		for i := 0; i < n; i++ {
			order = append(order, i)
		}
		return order
	}

	origin := m.drag.OriginIndex()
	target := m.drag.TargetIndex()
	for i := 0; i < n; i++ {
		if i == origin {
			continue
		}
		order = append(order, i)
	}
	// Reinsert the grabbed item at its live target slot.
	order = append(order[:target], append([]int{origin}, order[target:]...)...)
	return order
}

func (m planModel) renderBarRow(bar store.TimeBar, i int) string {
	name := "(deleted)"
	color := "#666666"
	if a := m.store.GetActivity(bar.ActivityID); a != nil {
		name = a.Name
		color = a.Color
	}
	colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")

	cursor := "  "
	style := normalItemStyle
	switch {
	case m.drag.Active() && i == m.drag.OriginIndex():
		cursor = "◆ "
		style = grabbedItemStyle
	case !m.drag.Active() && i == m.cursor:
		cursor = "> "
		style = selectedItemStyle
	}

	return style.Render(fmt.Sprintf("%s%s %-20s %s", cursor, colorDot, name, formatSeconds(bar.Planned)))
}

func (m planModel) renderPlanPicker() string {
	w := m.width - 4
	title := titleStyle.Render("Plans")
	current := m.store.CurrentPlan()

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, p := range m.store.Plans() {
		cursor := "  "
		style := normalItemStyle
		if i == m.planCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		marker := " "
		if p.ID == current.ID {
			marker = successStyle.Render("●")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-24s %d bars", cursor, marker, p.Name, len(p.TimeBars))))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: make current  n: new  d: delete  esc: back"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
