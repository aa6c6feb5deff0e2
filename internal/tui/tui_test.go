package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/zenith/internal/planner"
	"github.com/sadopc/zenith/internal/store"
)

var testDate = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

const testKey = "Sunday 18-10-2026"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedDay stores one class, the three default meals and one task.
func seedDay(t *testing.T, s *store.Store) *store.DayData {
	t.Helper()
	meals, err := s.DefaultMeals()
	if err != nil {
		t.Fatal(err)
	}
	d, err := s.SaveDay(store.DayData{
		Day: store.Day{Key: testKey, Date: "2026-10-18"},
		Classes: []store.FixedEvent{
			{Kind: store.KindClass, Name: "Math", Start: "09:00", End: "10:30"},
		},
		Meals: meals,
		Tasks: []store.Task{
			{Name: "Essay", Duration: 60, Unit: "m", Priority: "High"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func loadTestPlan(t *testing.T, s *store.Store) dayPlan {
	t.Helper()
	plan, err := buildPlan(s, testDate)
	if err != nil {
		t.Fatal(err)
	}
	return plan
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// ============================================================
// Day plan
// ============================================================

func TestBuildPlanEmptyDay(t *testing.T) {
	s := newTestStore(t)
	plan := loadTestPlan(t, s)

	if plan.key != testKey {
		t.Fatalf("key = %q, want %q", plan.key, testKey)
	}
	if plan.data != nil {
		t.Fatal("nothing stored, data should be nil")
	}
	if len(plan.result.Timeline) != 0 {
		t.Fatalf("expected empty timeline, got %d items", len(plan.result.Timeline))
	}
	if len(plan.meals) != 3 {
		t.Fatalf("expected 3 default meals, got %d", len(plan.meals))
	}
	if plan.window != planner.DefaultWindow {
		t.Fatalf("window = %v", plan.window)
	}
	if plan.summary.Totals[planner.CategoryFree] != 900 {
		t.Fatalf("free = %d, want the whole window", plan.summary.Totals[planner.CategoryFree])
	}
}

func TestBuildPlanStoredDay(t *testing.T) {
	s := newTestStore(t)
	seedDay(t, s)
	plan := loadTestPlan(t, s)

	items := plan.result.Timeline
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
	first := items[0]
	if first.Name != "Essay" || first.StartLabel != "08:00" || first.EndLabel != "09:00" {
		t.Fatalf("task should fill the first gap: %+v", first)
	}
	if plan.summary.Mood != planner.MoodChill {
		t.Fatalf("mood = %v", plan.summary.Mood)
	}
	if plan.err != nil {
		t.Fatalf("unexpected strict error: %v", plan.err)
	}
}

func TestBuildPlanStrictMode(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting("strict", "true")
	s.SaveDay(store.DayData{
		Day:   store.Day{Key: testKey},
		Tasks: []store.Task{{Name: "Too long", Duration: 20, Unit: "h", Priority: "Low"}},
	})

	plan := loadTestPlan(t, s)
	if plan.err == nil {
		t.Fatal("strict mode should report the dropped task")
	}
	if len(plan.result.Dropped()) != 1 {
		t.Fatal("result should still list the dropped task")
	}
}

func TestBuildPlanInvalidWindowKeepsStrict(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting("strict", "true")
	s.SetSetting("day_start", "25:00")
	s.SaveDay(store.DayData{
		Day:   store.Day{Key: testKey},
		Tasks: []store.Task{{Name: "Too long", Duration: 20, Unit: "h", Priority: "Low"}},
	})

	plan := loadTestPlan(t, s)
	if plan.window != planner.DefaultWindow {
		t.Fatalf("window = %v, want default", plan.window)
	}
	if plan.err == nil {
		t.Fatal("strict mode should survive the window fallback")
	}
}

func TestDayPlanTask(t *testing.T) {
	s := newTestStore(t)
	stored := seedDay(t, s)
	plan := loadTestPlan(t, s)

	task, ok := plan.task(plan.result.Timeline[0])
	if !ok {
		t.Fatal("first item should map to a stored task")
	}
	if task.ID != stored.Tasks[0].ID {
		t.Fatalf("task id = %d, want %d", task.ID, stored.Tasks[0].ID)
	}

	if _, ok := plan.task(plan.result.Timeline[1]); ok {
		t.Fatal("a class should not map to a task")
	}
	if _, ok := (dayPlan{}).task(planner.TimelineItem{Category: planner.CategoryTask}); ok {
		t.Fatal("an unloaded plan has no tasks")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{0, "0h 0m"},
		{45, "0h 45m"},
		{90, "1h 30m"},
		{705, "11h 45m"},
	}

	for _, tt := range tests {
		if got := formatMinutes(tt.mins); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.mins, got, tt.want)
		}
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != 4 {
		t.Fatalf("expected 4 view names, got %d", len(viewNames))
	}
	if viewNames[viewTimeline] != "Timeline" || viewNames[viewSettings] != "Settings" {
		t.Fatal("view names out of order")
	}
}

func TestValidators(t *testing.T) {
	if validateName("  ") == nil {
		t.Fatal("blank name should fail")
	}
	if validateName("Essay") != nil {
		t.Fatal("name should pass")
	}
	if validateClock("9:00") == nil || validateClock("24:00") == nil {
		t.Fatal("malformed clocks should fail")
	}
	if validateClock("09:00") != nil {
		t.Fatal("09:00 should pass")
	}
	for _, bad := range []string{"", "0", "-5", "1.5", "abc"} {
		if validateDuration(bad) == nil {
			t.Fatalf("duration %q should fail", bad)
		}
	}
	if validateDuration(" 90 ") != nil {
		t.Fatal("90 should pass")
	}
	if validateOptionalClock("") != nil {
		t.Fatal("empty optional clock should pass")
	}
	if validateOptionalClock("25:00") == nil {
		t.Fatal("25:00 should fail")
	}
}

// ============================================================
// Timeline model
// ============================================================

func TestTimelineLoad(t *testing.T) {
	s := newTestStore(t)
	seedDay(t, s)

	tm := newTimelineModel(s)
	tm.setSize(120, 40)
	if !strings.Contains(tm.view(), "Loading") {
		t.Fatal("unloaded timeline should say loading")
	}

	tm.cursor = 99
	tm, _ = tm.update(planLoadedMsg{plan: loadTestPlan(t, s)})
	if !tm.loaded {
		t.Fatal("timeline should be loaded")
	}
	if tm.cursor != 4 {
		t.Fatalf("cursor should clamp to last item, got %d", tm.cursor)
	}

	out := tm.view()
	for _, want := range []string{"Total Events", "Tasks Done", "Day Status", "Essay", "08:00 - 09:00", testKey} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestTimelineToggleTask(t *testing.T) {
	s := newTestStore(t)
	stored := seedDay(t, s)

	tm := newTimelineModel(s)
	tm, _ = tm.update(planLoadedMsg{plan: loadTestPlan(t, s)})

	tm, cmd := tm.update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil {
		t.Fatal("space on a task should return a command")
	}
	if _, ok := cmd().(reloadMsg); !ok {
		t.Fatal("toggle should ask for a reload")
	}

	task, err := s.GetTask(stored.Tasks[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if !task.Completed {
		t.Fatal("task should be completed")
	}
}

func TestTimelineToggleFixedEvent(t *testing.T) {
	s := newTestStore(t)
	seedDay(t, s)

	tm := newTimelineModel(s)
	tm, _ = tm.update(planLoadedMsg{plan: loadTestPlan(t, s)})
	tm.cursor = 1 // Math

	if cmd := tm.toggleSelected(); cmd != nil {
		t.Fatal("toggling a class should do nothing")
	}
}

func TestTimelineDayNavigation(t *testing.T) {
	s := newTestStore(t)
	tm := newTimelineModel(s)

	tests := []struct {
		msg  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, -1},
		{tea.KeyMsg{Type: tea.KeyRight}, 1},
		{keyRune('t'), 0},
	}
	for _, tt := range tests {
		_, cmd := tm.update(tt.msg)
		if cmd == nil {
			t.Fatalf("%s should return a command", tt.msg)
		}
		shift, ok := cmd().(dayShiftMsg)
		if !ok || shift.days != tt.want {
			t.Fatalf("%s: got %+v, want days=%d", tt.msg, shift, tt.want)
		}
	}
}

func TestTimelineUnscheduledPanel(t *testing.T) {
	s := newTestStore(t)
	s.SaveDay(store.DayData{
		Day:   store.Day{Key: testKey},
		Tasks: []store.Task{{Name: "Marathon", Duration: 20, Unit: "h", Priority: "Low"}},
	})

	tm := newTimelineModel(s)
	tm.setSize(120, 40)
	tm, _ = tm.update(planLoadedMsg{plan: loadTestPlan(t, s)})

	out := tm.view()
	if !strings.Contains(out, "Unscheduled (1)") || !strings.Contains(out, "Marathon") {
		t.Fatal("dropped task should be listed")
	}
}

// ============================================================
// Editor model
// ============================================================

func TestDraftFromEmptyPlan(t *testing.T) {
	s := newTestStore(t)
	plan := loadTestPlan(t, s)

	d := draftFromPlan(plan)
	if d.Key != testKey || d.Date != "2026-10-18" {
		t.Fatalf("unexpected day: %+v", d.Day)
	}
	if len(d.Meals) != 3 {
		t.Fatalf("new day should start with default meals, got %d", len(d.Meals))
	}
	for _, m := range d.Meals {
		if m.DayKey != testKey || m.Kind != store.KindMeal {
			t.Fatalf("unexpected meal: %+v", m)
		}
	}
}

func TestDraftDoesNotAliasPlan(t *testing.T) {
	s := newTestStore(t)
	seedDay(t, s)
	plan := loadTestPlan(t, s)

	d := draftFromPlan(plan)
	d.Tasks[0].Name = "Changed"
	if plan.data.Tasks[0].Name != "Essay" {
		t.Fatal("editing the draft changed the loaded plan")
	}
}

func TestEditorApplyForms(t *testing.T) {
	s := newTestStore(t)
	e := newEditorModel(s)
	e, _ = e.update(planLoadedMsg{plan: loadTestPlan(t, s)})

	e.formType = formTask
	*e.formName = " Read "
	*e.formDuration = "2"
	*e.formUnit = "h"
	*e.formPriority = "High"
	if err := e.applyForm(); err != nil {
		t.Fatal(err)
	}

	e.formType = formClass
	*e.formName = "Physics"
	*e.formStart = "11:00"
	*e.formEnd = "12:00"
	if err := e.applyForm(); err != nil {
		t.Fatal(err)
	}

	e.formType = formMeal
	*e.formName = "Snack"
	*e.formStart = "16:00"
	if err := e.applyForm(); err != nil {
		t.Fatal(err)
	}

	if !e.dirty {
		t.Fatal("draft should be dirty")
	}
	if len(e.draft.Tasks) != 1 || e.draft.Tasks[0].Name != "Read" || e.draft.Tasks[0].Unit != "h" {
		t.Fatalf("unexpected tasks: %+v", e.draft.Tasks)
	}
	if len(e.draft.Classes) != 1 || e.draft.Classes[0].Start != "11:00" {
		t.Fatalf("unexpected classes: %+v", e.draft.Classes)
	}
	if len(e.draft.Meals) != 4 {
		t.Fatalf("expected 4 meals, got %d", len(e.draft.Meals))
	}
	if got := len(e.entries()); got != 6 {
		t.Fatalf("expected 6 entries, got %d", got)
	}
}

func TestEditorRejectsInvertedClass(t *testing.T) {
	s := newTestStore(t)
	e := newEditorModel(s)

	e.formType = formClass
	*e.formName = "Backwards"
	*e.formStart = "12:00"
	*e.formEnd = "11:00"
	if err := e.applyForm(); err == nil {
		t.Fatal("class ending before it starts should be rejected")
	}
	if len(e.draft.Classes) != 0 || e.dirty {
		t.Fatal("rejected class should not be added")
	}
}

func TestEditorRemoveEntry(t *testing.T) {
	s := newTestStore(t)
	seedDay(t, s)
	e := newEditorModel(s)
	e, _ = e.update(planLoadedMsg{plan: loadTestPlan(t, s)})

	// classes, then meals, then tasks
	e.cursor = 4
	e, _ = e.update(keyRune('d'))
	if len(e.draft.Tasks) != 0 {
		t.Fatal("task should be removed")
	}
	if e.cursor != 3 {
		t.Fatalf("cursor should move up, got %d", e.cursor)
	}

	e.cursor = 0
	e, _ = e.update(keyRune('d'))
	if len(e.draft.Classes) != 0 {
		t.Fatal("class should be removed")
	}
	if !e.dirty {
		t.Fatal("removal should mark the draft dirty")
	}
}

func TestEditorSave(t *testing.T) {
	s := newTestStore(t)
	e := newEditorModel(s)
	e, _ = e.update(planLoadedMsg{plan: loadTestPlan(t, s)})

	e.draft.Tasks = append(e.draft.Tasks, store.Task{Name: "Essay", Duration: 30, Unit: "m", Priority: "Low"})
	e.dirty = true

	_, cmd := e.update(keyRune('s'))
	saved, ok := cmd().(daySavedMsg)
	if !ok || saved.key != testKey {
		t.Fatalf("expected daySavedMsg, got %#v", saved)
	}

	d, err := s.LoadDay(testKey)
	if err != nil || d == nil {
		t.Fatalf("load saved day: %v", err)
	}
	if len(d.Tasks) != 1 || len(d.Meals) != 3 {
		t.Fatalf("unexpected stored day: %d tasks, %d meals", len(d.Tasks), len(d.Meals))
	}

	e, _ = e.update(saved)
	if e.dirty {
		t.Fatal("draft should be clean after save")
	}
}

func TestEditorKeepsDirtyDraftOnReload(t *testing.T) {
	s := newTestStore(t)
	plan := loadTestPlan(t, s)
	e := newEditorModel(s)
	e, _ = e.update(planLoadedMsg{plan: plan})

	e.draft.Tasks = append(e.draft.Tasks, store.Task{Name: "Pending", Duration: 10, Unit: "m"})
	e.dirty = true

	e, cmd := e.update(planLoadedMsg{plan: plan})
	if cmd != nil || len(e.draft.Tasks) != 1 {
		t.Fatal("reloading the same day should keep unsaved edits")
	}

	other, err := buildPlan(s, testDate.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	e, cmd = e.update(planLoadedMsg{plan: other})
	if cmd == nil {
		t.Fatal("discarding edits should report a status")
	}
	if e.dirty || len(e.draft.Tasks) != 0 || e.draft.Key != "Monday 19-10-2026" {
		t.Fatalf("draft should switch to the new day: %+v", e.draft.Day)
	}
}

func TestEditorPreviewWarnsAboutDrops(t *testing.T) {
	s := newTestStore(t)
	e := newEditorModel(s)
	e.setSize(120, 40)
	e.draft.Key = testKey
	e.draft.Tasks = []store.Task{{Name: "Marathon", Duration: 20, Unit: "h"}}

	if !strings.Contains(e.view(), "will not fit") {
		t.Fatal("preview should warn about the oversized task")
	}
}

// ============================================================
// Analytics model
// ============================================================

func TestAnalyticsLegend(t *testing.T) {
	s := newTestStore(t)
	seedDay(t, s)

	a := newAnalyticsModel()
	a.setSize(120, 40)
	a, _ = a.update(planLoadedMsg{plan: loadTestPlan(t, s)})

	out := a.view()
	for _, want := range []string{"Class 1h 30m", "Task 1h 0m", "Meal 2h 15m", "Free 10h 15m", "1/1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("analytics view missing %q", want)
		}
	}
}

func TestAnalyticsNotLoaded(t *testing.T) {
	a := newAnalyticsModel()
	a.setSize(80, 30)
	if !strings.Contains(a.view(), "Loading") {
		t.Fatal("unloaded analytics should say loading")
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsSave(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)

	*m.dayStart = "10:00"
	*m.dayEnd = "22:00"
	*m.mealBreakfast = ""
	*m.mealLunch = "12:30"
	*m.mealDinner = "19:00"
	*m.strict = true
	if err := m.saveSettings(); err != nil {
		t.Fatal(err)
	}

	w, err := s.Window()
	if err != nil {
		t.Fatal(err)
	}
	if w != (planner.Window{Start: 600, End: 1320}) {
		t.Fatalf("window = %v", w)
	}
	if !s.Strict() {
		t.Fatal("strict should be on")
	}
	meals, _ := s.DefaultMeals()
	if len(meals) != 2 || meals[0].Name != "Lunch" {
		t.Fatalf("breakfast should be skipped: %+v", meals)
	}
}

func TestSettingsRejectInvertedWindow(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)

	*m.dayStart = "22:00"
	*m.dayEnd = "08:00"
	if err := m.saveSettings(); err == nil {
		t.Fatal("inverted window should be rejected")
	}

	v, _ := s.GetSetting("day_start")
	if v != "08:00" {
		t.Fatalf("nothing should be written, day_start = %q", v)
	}
}

func TestSettingsRefresh(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	m.setSize(120, 40)

	m, _ = m.update(m.refresh()())
	if len(m.settings) != 6 {
		t.Fatalf("expected 6 settings, got %d", len(m.settings))
	}
	out := m.view()
	if !strings.Contains(out, "Day starts") || !strings.Contains(out, "off") {
		t.Fatal("settings view should show labels and formatted values")
	}
}

func TestFormatSettingValue(t *testing.T) {
	tests := []struct {
		key, val, want string
	}{
		{"strict", "true", "on"},
		{"strict", "false", "off"},
		{"strict", "garbage", "off"},
		{"meal_lunch", "", "skipped"},
		{"meal_lunch", "13:00", "13:00"},
		{"day_start", "08:00", "08:00"},
	}

	for _, tt := range tests {
		if got := formatSettingValue(tt.key, tt.val); got != tt.want {
			t.Errorf("formatSettingValue(%q, %q) = %q, want %q", tt.key, tt.val, got, tt.want)
		}
	}
}

// ============================================================
// App model
// ============================================================

func newTestApp(t *testing.T, s *store.Store) App {
	t.Helper()
	app := NewApp(s, t.TempDir())
	app.date = testDate
	app.now = func() time.Time { return testDate }
	app.width = 120
	app.height = 40
	return app
}

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())

	if app.activeView != viewTimeline {
		t.Fatal("default view should be timeline")
	}
	if app.showHelp || app.exportPicking {
		t.Fatal("help and export picker should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppPlanLoadedReachesViews(t *testing.T) {
	s := newTestStore(t)
	seedDay(t, s)
	app := newTestApp(t, s)

	m, _ := app.Update(planLoadedMsg{plan: loadTestPlan(t, s)})
	app = m.(App)

	if app.plan.key != testKey {
		t.Fatal("app should keep the plan")
	}
	if !app.timeline.loaded || !app.analytics.loaded {
		t.Fatal("timeline and analytics should be loaded")
	}
	if len(app.editor.draft.Tasks) != 1 {
		t.Fatal("editor draft should be seeded")
	}

	for _, v := range []viewState{viewTimeline, viewEditor, viewAnalytics, viewSettings} {
		app.activeView = v
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppDayShift(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)

	m, cmd := app.Update(dayShiftMsg{days: 1})
	app = m.(App)
	if app.date.Day() != 19 {
		t.Fatalf("date = %v", app.date)
	}
	loaded, ok := cmd().(planLoadedMsg)
	if !ok || loaded.plan.key != "Monday 19-10-2026" {
		t.Fatalf("expected plan for Monday, got %#v", loaded.plan.key)
	}

	m, _ = app.Update(dayShiftMsg{days: -3})
	app = m.(App)
	if app.date.Day() != 16 {
		t.Fatalf("date = %v", app.date)
	}

	m, _ = app.Update(dayShiftMsg{})
	app = m.(App)
	if !app.date.Equal(testDate) {
		t.Fatal("zero shift should jump to today")
	}
}

func TestAppTabSwitching(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)

	m, _ := app.Update(keyRune('3'))
	app = m.(App)
	if app.activeView != viewAnalytics {
		t.Fatal("3 should open analytics")
	}

	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = m.(App)
	if app.activeView != viewSettings {
		t.Fatal("tab should move to settings")
	}

	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = m.(App)
	if app.activeView != viewTimeline {
		t.Fatal("tab should wrap to timeline")
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)

	m, _ := app.Update(statusMsg{text: "boom", isError: true})
	app = m.(App)
	if !app.isErr || !strings.Contains(app.renderFooter(), "boom") {
		t.Fatal("footer should contain the error")
	}

	m, _ = app.Update(daySavedMsg{key: testKey})
	app = m.(App)
	if app.isErr || app.status != "Saved "+testKey {
		t.Fatalf("status = %q", app.status)
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
	if !strings.Contains(header, "Sun 18 Oct 2026") {
		t.Fatal("header should show the viewed day")
	}
}

func TestAppExportPicker(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)

	m, _ := app.Update(keyRune('e'))
	app = m.(App)
	if app.exportPicking {
		t.Fatal("export needs a loaded day")
	}

	app.plan = loadTestPlan(t, s)
	m, _ = app.Update(keyRune('e'))
	app = m.(App)
	if !app.exportPicking {
		t.Fatal("e should open the export picker")
	}

	for range 5 {
		m, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
		app = m.(App)
	}
	if app.exportCursor != len(exportFormats)-1 {
		t.Fatalf("cursor = %d", app.exportCursor)
	}

	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = m.(App)
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestAppExportFormats(t *testing.T) {
	s := newTestStore(t)
	seedDay(t, s)
	app := newTestApp(t, s)
	app.plan = loadTestPlan(t, s)

	for i, ext := range []string{".csv", ".json", ".ics"} {
		msg := app.doExport(i)()
		done, ok := msg.(exportDoneMsg)
		if !ok {
			t.Fatalf("format %d: unexpected %#v", i, msg)
		}
		if filepath.Base(done.path) != "zenith-2026-10-18"+ext {
			t.Fatalf("unexpected path %q", done.path)
		}
		info, err := os.Stat(done.path)
		if err != nil || info.Size() == 0 {
			t.Fatalf("export %s not written: %v", ext, err)
		}
	}
}

func TestAppExportError(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, "/nonexistent/dir")
	app.plan = dayPlan{key: testKey, date: testDate}

	msg, ok := app.doExport(0)().(statusMsg)
	if !ok || !msg.isError {
		t.Fatal("export to a missing directory should report an error")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test, just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"card", func() string { return cardStyle.Render("test") }},
		{"cardValue", func() string { return cardValueStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
	for _, c := range planner.Categories {
		if categoryStyle(c).Render(string(c)) == "" {
			t.Fatalf("category %q rendered empty", c)
		}
	}
}
