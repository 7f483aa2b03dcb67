package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/a-cup-of-joe/reflection/internal/store"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type historyModel struct {
	store  *store.Store
	width  int
	height int

	offset int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newHistoryModel(s *store.Store) historyModel {
	return historyModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (m *historyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset++
			return m, nil
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
			}
			return m, nil
		}
	}
	return m, nil
}

func (m historyModel) dateRange() (time.Time, time.Time) {
	today := store.DayOf(time.Now())
	end := today.AddDate(0, 0, 1-7*m.offset)
	start := end.AddDate(0, 0, -7)
	return start, end
}

func (m *historyModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	from, to := m.dateRange()

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		label := d.Format("Mon 02")

		var values []barchart.BarValue
		if day := m.store.DaySessionOn(d); day != nil {
			for id, secs := range totalsByActivity(day.Sessions) {
				name, color := m.activityLabel(id)
				hours := float64(secs) / 3600.0
				values = append(values, barchart.BarValue{
					Name:  name,
					Value: hours,
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(color)),
				})
			}
		}

		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func totalsByActivity(sessions []store.Session) map[string]int64 {
	totals := make(map[string]int64)
	for _, s := range sessions {
		totals[s.ActivityID] += s.Duration
	}
	return totals
}

func (m historyModel) activityLabel(id string) (string, string) {
	if a := m.store.GetActivity(id); a != nil {
		return a.Name, a.Color
	}
	return "(deleted)", "#666666"
}

func (m historyModel) view() string {
	w := m.width - 4

	from, to := m.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ", dateLabel,
	)

	m.buildChart()
	chartView := m.chart.View()

	tableView := m.renderSummaryTable(w)
	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView, "", nav,
		),
	)
}

func (m historyModel) renderSummaryTable(w int) string {
	from, to := m.dateRange()

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %-20s %10s %9s", "Date", "Activity", "Duration", "Sessions"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 54))))

	empty := true
	for _, day := range m.store.DaySessions() {
		if day.CreatedAt.Before(from) || !day.CreatedAt.Before(to) {
			continue
		}
		counts := make(map[string]int)
		for _, s := range day.Sessions {
			counts[s.ActivityID]++
		}
		for id, secs := range totalsByActivity(day.Sessions) {
			name, color := m.activityLabel(id)
			colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
			rows = append(rows, fmt.Sprintf("  %-12s %s %-18s %10s %9d",
				day.CreatedAt.Format("2006-01-02"), colorDot, name, formatSeconds(secs), counts[id],
			))
			empty = false
		}
	}

	if empty {
		return mutedStyle.Render("  No sessions in this period")
	}
	return strings.Join(rows, "\n")
}
