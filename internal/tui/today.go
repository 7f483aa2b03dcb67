package tui

import (
	"fmt"
	"strings"

	"github.com/a-cup-of-joe/reflection/internal/session"
	"github.com/a-cup-of-joe/reflection/internal/stats"
	"github.com/a-cup-of-joe/reflection/internal/store"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type todayModel struct {
	store  *store.Store
	engine *session.Engine
	agg    *stats.Aggregator
	width  int
	height int

	cursor int
}

func newTodayModel(s *store.Store, eng *session.Engine, agg *stats.Aggregator) todayModel {
	return todayModel{
		store:  s,
		engine: eng,
		agg:    agg,
	}
}

func (m *todayModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.engine.Tick()
		return m, nil

	case tea.KeyMsg:
		bars := m.agg.Today()
		if m.cursor >= len(bars) && len(bars) > 0 {
			m.cursor = len(bars) - 1
		}
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(bars)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Start):
			if len(bars) == 0 {
				return m, func() tea.Msg {
					return statusMsg{text: "No time bars yet. Press 2 to build your plan.", isError: true}
				}
			}
			bar := bars[m.cursor]
			m.engine.Start(bar.ActivityID)
			return m, func() tea.Msg {
				return sessionStartedMsg{activityName: bar.ActivityName}
			}
		case key.Matches(msg, keys.Pause):
			m.engine.Toggle()
			return m, nil
		case key.Matches(msg, keys.Stop):
			if !m.engine.Running() {
				return m, nil
			}
			m.engine.End()
			return m, func() tea.Msg { return sessionEndedMsg{recorded: true} }
		case key.Matches(msg, keys.Cancel):
			if !m.engine.Running() {
				return m, nil
			}
			m.engine.Cancel()
			return m, func() tea.Msg { return sessionEndedMsg{recorded: false} }
		}
	}
	return m, nil
}

func (m todayModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}

	contentWidth := m.width - 4

	timerPanel := m.renderTimerPanel(contentWidth)
	barsPanel := m.renderBarsPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, barsPanel)
}

func (m todayModel) renderTimerPanel(w int) string {
	if m.engine.Running() {
		elapsed := m.engine.Elapsed()
		timeStr := formatDuration(elapsed)

		var timeDisplay, indicator string
		if m.engine.State() == session.Paused {
			timeDisplay = timerPausedStyle.Width(w - 6).Render(timeStr)
			indicator = warningStyle.Render("⏸  PAUSED")
		} else {
			timeDisplay = timerRunningStyle.Width(w - 6).Render(timeStr)
			indicator = successStyle.Render("●  FOCUSING")
		}

		activityLine := highlightStyle.Render(m.activityName(m.engine.ActivityID()))

		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			activityLine,
		)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay := timerStyle.Width(w - 6).Render("00:00:00")
	indicator := mutedStyle.Render("■  IDLE")
	hint := mutedStyle.Render("Press s to start a focus session")

	content := lipgloss.JoinVertical(lipgloss.Center,
		timeDisplay,
		indicator,
		hint,
	)
	return panelStyle.Width(w).Render(content)
}

func (m todayModel) renderBarsPanel(w int) string {
	plan := m.store.CurrentPlan()
	title := titleStyle.Render(plan.Name)
	bars := m.agg.Today()

	if len(bars) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No time bars yet. Press 2 to build your plan."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var total, done int64
	for _, b := range bars {
		total += b.Planned
		done += b.Actual
	}
	header := fmt.Sprintf("%s  %s", title,
		mutedStyle.Render(fmt.Sprintf("%s of %s", formatSeconds(done), formatSeconds(total))))

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")
	for i, b := range bars {
		rows = append(rows, m.renderBar(b, i == m.cursor, w))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  s: focus  space: pause  x: end  c: cancel"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderBar draws one time bar scaled to its planned hours, filled by
// its completion.
func (m todayModel) renderBar(b stats.Bar, selected bool, w int) string {
	maxBar := w - 10
	if maxBar < 8 {
		maxBar = 8
	}
	barWidth := int(b.PlannedWidth(float64(maxBar)))
	if barWidth < 1 {
		barWidth = 1
	}

	fill := b.CompletionRatio
	if fill > 1 {
		fill = 1
	}
	filled := int(fill * float64(barWidth))

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color))
	bar := barStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))

	cursor := "  "
	nameStyle := normalItemStyle
	if selected {
		cursor = "> "
		nameStyle = selectedItemStyle
	}

	pct := ""
	if b.Planned > 0 {
		pct = fmt.Sprintf(" %d%%", int(b.CompletionRatio*100))
	}
	if b.CompletionRatio > 1 {
		pct = successStyle.Render(pct)
	}

	label := fmt.Sprintf("%s%s %s / %s%s",
		cursor,
		nameStyle.Render(fmt.Sprintf("%-16s", b.ActivityName)),
		formatSeconds(b.Actual),
		formatSeconds(b.Planned),
		pct,
	)
	return label + "\n  " + bar
}

func (m todayModel) activityName(id string) string {
	if a := m.store.GetActivity(id); a != nil {
		return a.Name
	}
	return "(deleted)"
}
