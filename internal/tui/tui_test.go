package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/goleak"

	"github.com/javiermolinar/habitcal/internal/config"
	"github.com/javiermolinar/habitcal/internal/dateutil"
	"github.com/javiermolinar/habitcal/internal/habit"
	"github.com/javiermolinar/habitcal/internal/tui/commands"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type memRepo struct {
	records []*habit.Record
	nextID  int64
	err     error
}

func (r *memRepo) LogRecord(ctx context.Context, rec *habit.Record) error {
	return r.LogRecords(ctx, []*habit.Record{rec})
}

func (r *memRepo) LogRecords(_ context.Context, recs []*habit.Record) error {
	if r.err != nil {
		return r.err
	}
	for _, rec := range recs {
		r.nextID++
		rec.ID = r.nextID
		r.records = append(r.records, rec)
	}
	return nil
}

func (r *memRepo) ListRecordsByMonth(_ context.Context, year int, month time.Month) ([]*habit.Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*habit.Record
	for _, rec := range r.records {
		if rec.Date.Year() == year && rec.Date.Month() == month {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memRepo) DeleteRecord(context.Context, int64) error { return nil }

func (r *memRepo) Close() error { return nil }

// fixedNow is Wednesday 2025-01-15 10:00 local time.
func fixedNow() time.Time {
	return time.Date(2025, time.January, 15, 10, 0, 0, 0, time.Local)
}

func newTestModel(t *testing.T, repo *memRepo) Model {
	t.Helper()
	cfg := config.Default()
	return *New(repo, cfg, WithClock(fixedNow))
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_CurrentMonth(t *testing.T) {
	m := newTestModel(t, &memRepo{})
	if m.year != 2025 || m.month != time.January {
		t.Errorf("got %d-%v, want 2025-January", m.year, m.month)
	}
	if !m.loading {
		t.Error("expected model to start loading")
	}
}

func TestInit_LoadsMonth(t *testing.T) {
	repo := &memRepo{}
	_ = repo.LogRecord(context.Background(), &habit.Record{
		Date: time.Date(2025, 1, 3, 0, 0, 0, 0, time.Local), Habit: "run", Value: "5km",
	})
	m := newTestModel(t, repo)

	msg := m.Init()()
	loaded, ok := msg.(commands.MonthLoadedMsg)
	if !ok {
		t.Fatalf("Init produced %T, want MonthLoadedMsg", msg)
	}
	if len(loaded.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(loaded.Records))
	}

	m, _ = update(t, m, loaded)
	if m.loading {
		t.Error("expected loading to be done")
	}
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "2025-01") {
		t.Errorf("view missing month label:\n%s", view)
	}
	if !strings.Contains(view, "run 5km") {
		t.Errorf("view missing logged value:\n%s", view)
	}
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name      string
		keys      []tea.KeyMsg
		wantYear  int
		wantMonth time.Month
	}{
		{"previous across year", []tea.KeyMsg{{Type: tea.KeyLeft}}, 2024, time.December},
		{"next with l", []tea.KeyMsg{runes("l")}, 2025, time.February},
		{"h twice", []tea.KeyMsg{runes("h"), runes("h")}, 2024, time.November},
		{"back to today", []tea.KeyMsg{runes("l"), runes("l"), runes("t")}, 2025, time.January},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, &memRepo{})
			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = update(t, m, k)
			}
			if m.year != tt.wantYear || m.month != tt.wantMonth {
				t.Fatalf("got %d-%v, want %d-%v", m.year, m.month, tt.wantYear, tt.wantMonth)
			}
			if cmd == nil {
				t.Fatal("expected a load command")
			}
			loaded, ok := cmd().(commands.MonthLoadedMsg)
			if !ok || loaded.Year != tt.wantYear || loaded.Month != tt.wantMonth {
				t.Errorf("load command produced %+v", loaded)
			}
		})
	}
}

func TestStaleMonthDropped(t *testing.T) {
	m := newTestModel(t, &memRepo{})
	m, _ = update(t, m, runes("l"))

	stale := commands.MonthLoadedMsg{
		Year: 2025, Month: time.January,
		Records: []*habit.Record{{Date: fixedNow(), Habit: "run", Value: "x"}},
	}
	m, _ = update(t, m, stale)
	if m.records != nil {
		t.Error("stale records should be ignored")
	}
	if !m.loading {
		t.Error("model should still be loading February")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, &memRepo{})
	_, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestLogMode(t *testing.T) {
	repo := &memRepo{}
	m := newTestModel(t, repo)

	m, _ = update(t, m, runes("a"))
	if m.mode != ModeLog {
		t.Fatal("expected log mode")
	}

	m.prompt.SetValue("10 run=5km stretch")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeNormal {
		t.Error("expected normal mode after submit")
	}
	if cmd == nil {
		t.Fatal("expected log command")
	}

	logged, ok := cmd().(commands.RecordsLoggedMsg)
	if !ok || logged.Count != 2 {
		t.Fatalf("got %+v, want 2 records logged", logged)
	}
	if len(repo.records) != 2 {
		t.Fatalf("repo has %d records, want 2", len(repo.records))
	}
	if repo.records[1].Value != habit.DefaultValue {
		t.Errorf("bare habit value = %q, want default", repo.records[1].Value)
	}

	m, _ = update(t, m, logged)
	if !strings.Contains(m.status, "Logged 2") {
		t.Errorf("status = %q", m.status)
	}
	m, _ = update(t, m, commands.ClearStatusMsg{})
	if m.status != "" {
		t.Errorf("status not cleared: %q", m.status)
	}
}

func TestLogMode_Escape(t *testing.T) {
	m := newTestModel(t, &memRepo{})
	m, _ = update(t, m, runes("a"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != ModeNormal || cmd != nil {
		t.Errorf("escape should leave log mode without a command")
	}
}

func TestParseLogLine_Errors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{"no habit", "10", errLogUsage},
		{"empty", "", errLogUsage},
		{"not a day", "x run", dateutil.ErrInvalidDate},
		{"day out of month", "32 run", dateutil.ErrInvalidDate},
		{"future", "16 run", dateutil.ErrDateInFuture},
		{"bad habit", "10 =5", habit.ErrEmptyHabit},
	}

	m := newTestModel(t, &memRepo{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.parseLogLine(tt.line)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("parseLogLine(%q) error = %v, want %v", tt.line, err, tt.wantErr)
			}
		})
	}
}

func TestErrMsg(t *testing.T) {
	m := newTestModel(t, &memRepo{})
	m, _ = update(t, m, commands.ErrMsg{Err: errors.New("disk on fire")})
	if m.loading {
		t.Error("expected loading to stop on error")
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "Error: disk on fire") {
		t.Errorf("view missing error:\n%s", view)
	}
}

func TestLoadMonth_Error(t *testing.T) {
	repo := &memRepo{err: errors.New("locked")}
	msg := commands.LoadMonth(repo, 2025, time.January)()
	if _, ok := msg.(commands.ErrMsg); !ok {
		t.Errorf("got %T, want ErrMsg", msg)
	}
}

func TestCellWidth(t *testing.T) {
	m := newTestModel(t, &memRepo{})

	tests := []struct {
		width int
		want  int
	}{
		{0, 0},
		{40, minCellWidth},
		{94, 12},
		{400, maxCellWidth},
	}
	for _, tt := range tests {
		m, _ = update(t, m, tea.WindowSizeMsg{Width: tt.width, Height: 40})
		if got := m.cellWidth(); got != tt.want {
			t.Errorf("cellWidth() at %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestToday(t *testing.T) {
	m := newTestModel(t, &memRepo{})
	if got := m.today(); got != 15 {
		t.Errorf("today() = %d, want 15", got)
	}
	m, _ = update(t, m, runes("l"))
	if got := m.today(); got != 0 {
		t.Errorf("today() in February = %d, want 0", got)
	}
}

func TestKeyMapHelp(t *testing.T) {
	k := newKeyMap()
	if len(k.ShortHelp()) != 5 {
		t.Errorf("ShortHelp has %d bindings", len(k.ShortHelp()))
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, k.Quit) {
		t.Error("ctrl+c should quit")
	}
}

func TestPopupRender(t *testing.T) {
	p := popup{bg: "#1e1e2e", border: "#cba6f7"}

	width, height := 40, 12
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row

	got := p.Render(base, width, height, "LOG FORM")
	lines := strings.Split(got, "\n")
	if len(lines) != height {
		t.Fatalf("got %d lines, want %d", len(lines), height)
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != width {
			t.Errorf("line %d width = %d, want %d", i, w, width)
		}
	}
	stripped := ansi.Strip(got)
	if !strings.Contains(stripped, "LOG FORM") {
		t.Errorf("popup content missing:\n%s", stripped)
	}
	if !strings.HasPrefix(lines[0], "....") {
		t.Errorf("first line should keep the base: %q", lines[0])
	}
}

func TestPopupRender_NoWindow(t *testing.T) {
	p := popup{}
	if got := p.Render("base", 0, 0, "content"); got != "base" {
		t.Errorf("Render without a window = %q, want base", got)
	}
	if got := p.Render("base", 10, 2, ""); got != "base" {
		t.Errorf("Render without content = %q, want base", got)
	}
}

func TestFitLines(t *testing.T) {
	lines := fitLines("abcdef\nxy", 4, 3)
	want := []string{"abcd", "xy  ", "    "}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLogMode_PopupView(t *testing.T) {
	m := newTestModel(t, &memRepo{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, runes("a"))

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Log habits for January 2025") {
		t.Errorf("log popup missing:\n%s", view)
	}
	if got := len(strings.Split(m.View(), "\n")); got != 30 {
		t.Errorf("popup view has %d lines, want window height 30", got)
	}
}
