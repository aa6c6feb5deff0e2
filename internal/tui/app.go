package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/sadopc/zenith/internal/export"
	"github.com/sadopc/zenith/internal/store"
)

var exportFormats = []string{"CSV", "JSON", "ICS"}

// App is the root Bubble Tea model.
type App struct {
	store     *store.Store
	exportDir string
	width     int
	height    int

	date time.Time
	plan dayPlan
	now  func() time.Time

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	timeline  timelineModel
	editor    editorModel
	analytics analyticsModel
	settings  settingsModel

	help   help.Model
	status string
	isErr  bool
}

// NewApp opens on today. Exports are written to exportDir.
func NewApp(s *store.Store, exportDir string) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		exportDir:  exportDir,
		date:       time.Now(),
		now:        time.Now,
		activeView: viewTimeline,
		timeline:   newTimelineModel(s),
		editor:     newEditorModel(s),
		analytics:  newAnalyticsModel(),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadPlan(a.store, a.date),
		a.settings.refresh(),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timeline.setSize(a.width, contentHeight)
		a.editor.setSize(a.width, contentHeight)
		a.analytics.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			if a.plan.key == "" {
				return a, nil
			}
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTimeline
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewEditor
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewAnalytics
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			if a.activeView == viewSettings {
				return a, a.settings.refresh()
			}
			return a, nil
		}

	case planLoadedMsg:
		a.plan = msg.plan
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.timeline, cmd = a.timeline.update(msg)
		cmds = append(cmds, cmd)
		a.editor, cmd = a.editor.update(msg)
		cmds = append(cmds, cmd)
		a.analytics, cmd = a.analytics.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case dayShiftMsg:
		if msg.days == 0 {
			a.date = a.now()
		} else {
			a.date = a.date.AddDate(0, 0, msg.days)
		}
		return a, loadPlan(a.store, a.date)

	case reloadMsg:
		return a, loadPlan(a.store, a.date)

	case daySavedMsg:
		a.editor, _ = a.editor.update(msg)
		a.status, a.isErr = "Saved "+msg.key, false
		return a, loadPlan(a.store, a.date)

	case statusMsg:
		a.status, a.isErr = msg.text, msg.isError
		return a, nil

	case exportDoneMsg:
		a.status, a.isErr = "Exported to "+msg.path, false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimeline:
		a.timeline, cmd = a.timeline.update(msg)
	case viewEditor:
		a.editor, cmd = a.editor.update(msg)
	case viewAnalytics:
		a.analytics, cmd = a.analytics.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewEditor:
		return a.editor.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimeline:
		content = a.timeline.view()
	case viewEditor:
		content = a.editor.view()
	case viewAnalytics:
		content = a.analytics.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("zenith")
	day := mutedStyle.Render("  " + a.date.Format("Mon 02 Jan 2006"))
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(day)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, day, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.isErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(status)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export " + a.plan.key)
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// exportPath names the export file after the viewed day's date.
func (a App) exportPath(format int) string {
	ext := []string{"csv", "json", "ics"}[format]
	return filepath.Join(a.exportDir, fmt.Sprintf("zenith-%s.%s", a.plan.date.Format("2006-01-02"), ext))
}

func (a App) doExport(format int) tea.Cmd {
	plan := a.plan
	path := a.exportPath(format)
	return func() tea.Msg {
		var err error
		switch format {
		case 0:
			err = export.ToCSV(plan.result.Timeline, path)
		case 1:
			err = export.ToJSON(plan.key, plan.result, plan.summary, path)
		default:
			err = export.ToICS(plan.date, plan.result.Timeline, path)
		}
		if err != nil {
			log.Error().Err(err).Str("format", exportFormats[format]).Str("path", path).Msg("export")
			return statusMsg{text: fmt.Sprintf("%s error: %v", exportFormats[format], err), isError: true}
		}
		log.Info().Str("format", exportFormats[format]).Str("path", path).Msg("exported day")
		return exportDoneMsg{path: path}
	}
}
