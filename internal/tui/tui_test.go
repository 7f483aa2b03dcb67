package tui

import (
	"testing"
	"time"

	"github.com/a-cup-of-joe/reflection/internal/session"
	"github.com/a-cup-of-joe/reflection/internal/stats"
	"github.com/a-cup-of-joe/reflection/internal/store"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.NewMemory()
}

// seedPlan inserts activities and one time bar per activity into the
// current plan, returning the activity ids in bar order.
func seedPlan(t *testing.T, s *store.Store, names ...string) []string {
	t.Helper()
	plan := s.CurrentPlan()
	ids := make([]string, len(names))
	for i, name := range names {
		a := store.NewActivity(name, "#FF0000")
		if err := s.AddActivity(a); err != nil {
			t.Fatalf("add activity %q: %v", name, err)
		}
		s.AddTimeBar(plan.ID, store.NewTimeBar(a.ID, 1800))
		ids[i] = a.ID
	}
	return ids
}

func barOrder(s *store.Store) []string {
	plan := s.CurrentPlan()
	ids := make([]string, len(plan.TimeBars))
	for i, tb := range plan.TimeBars {
		ids[i] = tb.ActivityID
	}
	return ids
}

func keyRune(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
)

// ============================================================
// Plan view: grab-mode reorder
// ============================================================

func TestPlanGrabMovesBar(t *testing.T) {
	s := newTestStore(t)
	ids := seedPlan(t, s, "A", "B", "C")

	m := newPlanModel(s)
	m, _ = m.update(keyRune("g"))
	if !m.drag.Active() {
		t.Fatal("grab should start a drag")
	}

	m, _ = m.update(keyDown)
	m, _ = m.update(keyDown)
	m, _ = m.update(keyEnter)

	if m.drag.Active() {
		t.Fatal("drop should end the drag")
	}
	got := barOrder(s)
	want := []string{ids[1], ids[2], ids[0]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	if m.cursor != 2 {
		t.Fatalf("cursor should follow the dropped bar, got %d", m.cursor)
	}
}

func TestPlanGrabEscapeAbandons(t *testing.T) {
	s := newTestStore(t)
	ids := seedPlan(t, s, "A", "B", "C")

	m := newPlanModel(s)
	m, _ = m.update(keyRune("g"))
	m, _ = m.update(keyDown)
	m, _ = m.update(keyEsc)

	if m.drag.Active() {
		t.Fatal("escape should abandon the drag")
	}
	got := barOrder(s)
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("abandoned drag must not reorder: %v vs %v", ids, got)
		}
	}
}

func TestPlanGrabDropInPlace(t *testing.T) {
	s := newTestStore(t)
	ids := seedPlan(t, s, "A", "B")

	m := newPlanModel(s)
	m, _ = m.update(keyRune("g"))
	m, _ = m.update(keyEnter) // no movement

	got := barOrder(s)
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("drop without movement must not reorder: %v vs %v", ids, got)
		}
	}
}

func TestPlanGrabRequiresTwoBars(t *testing.T) {
	s := newTestStore(t)
	seedPlan(t, s, "A")

	m := newPlanModel(s)
	m, _ = m.update(keyRune("g"))
	if m.drag.Active() {
		t.Fatal("single bar must not be grabbable")
	}
}

func TestPlanDisplayOrderPreview(t *testing.T) {
	s := newTestStore(t)
	seedPlan(t, s, "A", "B", "C")

	m := newPlanModel(s)
	m, _ = m.update(keyRune("g"))
	m, _ = m.update(keyDown)

	order := m.displayOrder(3)
	want := []int{1, 0, 2}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected preview order %v, got %v", want, order)
		}
	}
}

// ============================================================
// Plan view: bar list and plan picker
// ============================================================

func TestPlanDeleteBar(t *testing.T) {
	s := newTestStore(t)
	ids := seedPlan(t, s, "A", "B")

	m := newPlanModel(s)
	m, _ = m.update(keyRune("d"))

	got := barOrder(s)
	if len(got) != 1 || got[0] != ids[1] {
		t.Fatalf("expected only %q left, got %v", ids[1], got)
	}
}

func TestPlanPickerSwitchesCurrent(t *testing.T) {
	s := newTestStore(t)
	second := store.NewPlan("Evenings")
	second.CreatedAt = time.Now().Add(time.Hour) // sorts after the default
	s.AddPlan(second)

	m := newPlanModel(s)
	m, _ = m.update(keyRune("p"))
	if !m.picking {
		t.Fatal("p should open the plan picker")
	}

	m, _ = m.update(keyDown)
	m, _ = m.update(keyEnter)

	if m.picking {
		t.Fatal("enter should close the picker")
	}
	if got := s.CurrentPlan(); got.ID != second.ID {
		t.Fatalf("expected current plan %q, got %q", second.Name, got.Name)
	}
}

// ============================================================
// Activities view
// ============================================================

func TestActivitiesDelete(t *testing.T) {
	s := newTestStore(t)
	a := store.NewActivity("Reading", "#00FF00")
	if err := s.AddActivity(a); err != nil {
		t.Fatal(err)
	}

	m := newActivitiesModel(s)
	m, _ = m.update(keyRune("d"))

	if len(s.Activities()) != 0 {
		t.Fatal("d should delete the selected activity")
	}
}

func TestStatusErrorDuplicateName(t *testing.T) {
	cmd := statusError(store.ErrDuplicateName)
	msg, ok := cmd().(statusMsg)
	if !ok {
		t.Fatalf("expected statusMsg, got %T", cmd())
	}
	if !msg.isError {
		t.Fatal("duplicate name should surface as an error")
	}
	if msg.text != "An activity with that name already exists" {
		t.Fatalf("unexpected message: %q", msg.text)
	}
}

// ============================================================
// Settings view
// ============================================================

func TestSettingsOpensConfirm(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)

	m, _ = m.update(keyRune("d"))
	if !m.formActive {
		t.Fatal("d should open the clear-data confirmation")
	}
}

func TestSettingsEscapeKeepsData(t *testing.T) {
	s := newTestStore(t)
	seedPlan(t, s, "A")

	m := newSettingsModel(s)
	m, _ = m.update(keyRune("d"))
	m, _ = m.update(keyEsc)

	if m.formActive {
		t.Fatal("escape should dismiss the confirmation")
	}
	if len(s.Activities()) != 1 {
		t.Fatal("a dismissed confirmation must not touch the store")
	}
}

func TestSettingsClearData(t *testing.T) {
	s := newTestStore(t)
	seedPlan(t, s, "A", "B")
	s.AddSessionToToday("a1", time.Now(), 60)

	m := newSettingsModel(s)
	cmd := m.clearData()

	if len(s.Activities()) != 0 {
		t.Fatal("clearing must remove all activities")
	}
	if len(s.CurrentPlan().TimeBars) != 0 {
		t.Fatal("clearing must reset the current plan")
	}
	if len(s.DaySessions()) != 0 {
		t.Fatal("clearing must remove recorded days")
	}

	msg, ok := cmd().(statusMsg)
	if !ok {
		t.Fatalf("expected statusMsg, got %T", cmd())
	}
	if msg.text != "All data cleared" {
		t.Fatalf("unexpected message: %q", msg.text)
	}
}

// ============================================================
// App routing
// ============================================================

func newTestApp(t *testing.T) App {
	t.Helper()
	s := store.NewMemory()
	eng := session.NewEngine(s)
	agg := stats.NewAggregator(s, eng)
	app := NewApp(s, eng, agg)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model.(App)
}

func TestAppTabSwitching(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(keyRune("2"))
	app = model.(App)
	if app.activeView != viewPlan {
		t.Fatalf("expected plan view, got %v", app.activeView)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeView != viewActivities {
		t.Fatalf("tab should advance to activities, got %v", app.activeView)
	}

	model, _ = app.Update(keyRune("1"))
	app = model.(App)
	if app.activeView != viewToday {
		t.Fatalf("expected today view, got %v", app.activeView)
	}
}

func TestAppTabWraps(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(keyRune("5"))
	app = model.(App)
	if app.activeView != viewSettings {
		t.Fatalf("expected settings view, got %v", app.activeView)
	}
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeView != viewToday {
		t.Fatalf("tab past the last view should wrap, got %v", app.activeView)
	}
}

func TestAppQuit(t *testing.T) {
	app := newTestApp(t)
	_, cmd := app.Update(keyRune("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Fatalf("expected tea.QuitMsg, got %T", msg)
	}
}

func TestAppViewRendersWithoutSize(t *testing.T) {
	s := store.NewMemory()
	eng := session.NewEngine(s)
	app := NewApp(s, eng, stats.NewAggregator(s, eng))
	if got := app.View(); got != "Loading..." {
		t.Fatalf("zero-width view should show loading, got %q", got)
	}
}

func TestAppExportPicker(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(keyRune("o"))
	app = model.(App)
	if !app.exportPicking {
		t.Fatal("o should open the export picker")
	}

	model, _ = app.Update(keyDown)
	app = model.(App)
	if app.exportCursor != 1 {
		t.Fatalf("down should move the cursor, got %d", app.exportCursor)
	}
	model, _ = app.Update(keyUp)
	app = model.(App)
	if app.exportCursor != 0 {
		t.Fatalf("up should move the cursor back, got %d", app.exportCursor)
	}

	model, _ = app.Update(keyEsc)
	app = model.(App)
	if app.exportPicking {
		t.Fatal("esc should close the export picker")
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{time.Minute, "00:01:00"},
		{time.Hour, "01:00:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
	}
	for _, tt := range tests {
		got := formatDuration(tt.d)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{3600, "01:00:00"},
		{86400, "24:00:00"},
	}
	for _, tt := range tests {
		got := formatSeconds(tt.secs)
		if got != tt.want {
			t.Errorf("formatSeconds(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "0.0h"},
		{1800, "0.5h"},
		{3600, "1.0h"},
		{5400, "1.5h"},
	}
	for _, tt := range tests {
		got := formatHours(tt.secs)
		if got != tt.want {
			t.Errorf("formatHours(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
