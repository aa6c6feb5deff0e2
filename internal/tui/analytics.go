package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/zenith/internal/planner"
)

type analyticsModel struct {
	width  int
	height int

	plan   dayPlan
	loaded bool

	chart barchart.Model
}

func newAnalyticsModel() analyticsModel {
	return analyticsModel{
		chart: barchart.New(60, 12),
	}
}

func (a *analyticsModel) setSize(w, h int) {
	a.width = w
	a.height = h
	if a.loaded {
		a.buildChart()
	}
}

func (a analyticsModel) update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case planLoadedMsg:
		a.plan = msg.plan
		a.loaded = true
		a.buildChart()
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.PrevDay):
			return a, func() tea.Msg { return dayShiftMsg{days: -1} }
		case key.Matches(msg, keys.NextDay):
			return a, func() tea.Msg { return dayShiftMsg{days: 1} }
		}
	}
	return a, nil
}

// buildChart draws one bar per category, in hours.
func (a *analyticsModel) buildChart() {
	chartWidth := a.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if a.height > 30 {
		chartHeight = 16
	}

	a.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, cat := range planner.Categories {
		mins := a.plan.summary.Totals[cat]
		bars = append(bars, barchart.BarData{
			Label: string(cat),
			Values: []barchart.BarValue{{
				Name:  string(cat),
				Value: float64(mins) / 60.0,
				Style: categoryStyle(cat),
			}},
		})
	}

	a.chart.PushAll(bars)
	a.chart.Draw()
}

func (a analyticsModel) view() string {
	w := a.width - 4

	if !a.loaded {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading day..."))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Analytics"), "  ",
		mutedStyle.Render(fmt.Sprintf("%s, active day %s", a.plan.key, a.plan.window)),
	)

	sum := a.plan.summary
	stats := fmt.Sprintf("  Tasks done %s   Mood %s",
		highlightStyle.Render(fmt.Sprintf("%d/%d", sum.TasksDone, sum.TasksTotal)),
		highlightStyle.Render(sum.Mood.String()),
	)

	nav := mutedStyle.Render("  ←/→: navigate days")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", a.chart.View(), "", a.renderLegend(), "", stats, "", nav,
		),
	)
}

func (a analyticsModel) renderLegend() string {
	var items []string
	for _, cat := range planner.Categories {
		dot := categoryStyle(cat).Render("●")
		items = append(items, fmt.Sprintf("%s %s %s", dot, cat, formatMinutes(a.plan.summary.Totals[cat])))
	}
	return "  " + strings.Join(items, "   ")
}
