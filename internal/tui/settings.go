package tui

import (
	"fmt"

	"github.com/a-cup-of-joe/reflection/internal/store"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form value as pointer (survives value copies)
	confirmClear *bool
}

func newSettingsModel(s *store.Store) settingsModel {
	confirm := false
	return settingsModel{
		store:        s,
		confirmClear: &confirm,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Delete):
			return m.showConfirm()
		}
	}
	return m, nil
}

func (m settingsModel) showConfirm() (settingsModel, tea.Cmd) {
	*m.confirmClear = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear all data?").
				Description("Deletes every activity, plan and recorded session. This cannot be undone.").
				Affirmative("Clear everything").
				Negative("Keep my data").
				Value(m.confirmClear),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
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
		if *m.confirmClear {
			return m, m.clearData()
		}
	}

	return m, cmd
}

// clearData empties the store and reports it on the status line.
func (m settingsModel) clearData() tea.Cmd {
	m.store.ClearAll()
	return func() tea.Msg {
		return statusMsg{text: "All data cleared"}
	}
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Clear Data")
		formView := m.form.View()
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")

	var totalSessions int
	days := m.store.DaySessions()
	for _, d := range days {
		totalSessions += len(d.Sessions)
	}

	rows := []string{
		title,
		"",
		m.renderStat("Activities", len(m.store.Activities())),
		m.renderStat("Plans", len(m.store.Plans())),
		m.renderStat("Recorded days", len(days)),
		m.renderStat("Sessions", totalSessions),
		"",
		mutedStyle.Render("  d: clear all data"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m settingsModel) renderStat(label string, n int) string {
	name := lipgloss.NewStyle().Width(16).Render(label)
	return fmt.Sprintf("  %s %s", name, highlightStyle.Render(fmt.Sprintf("%d", n)))
}
