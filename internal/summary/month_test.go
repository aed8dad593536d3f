package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/javiermolinar/habitcal/internal/habit"
)

func day(d int) time.Time {
	return time.Date(2025, time.January, d, 0, 0, 0, 0, time.Local)
}

func rec(d int, name string) *habit.Record {
	return &habit.Record{Date: day(d), Habit: name, Value: habit.DefaultValue}
}

func TestSummarizeMonth(t *testing.T) {
	records := []*habit.Record{
		rec(1, "run"), rec(2, "run"), rec(3, "run"),
		rec(10, "run"), rec(14, "run"), rec(15, "run"),
		rec(15, "run"), // same day twice
		rec(2, "mood|M"), rec(15, "mood|M"),
		{Date: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.Local), Habit: "run"},
	}
	now := time.Date(2025, time.January, 15, 18, 0, 0, 0, time.Local)

	got := SummarizeMonth(2025, time.January, records, now)

	want := &MonthSummary{
		Year:    2025,
		Month:   time.January,
		Counted: 15,
		Habits: []HabitStats{
			{Habit: "mood", Days: 2, LongestStreak: 1, CurrentStreak: 1},
			{Habit: "run", Days: 6, LongestStreak: 3, CurrentStreak: 2},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SummarizeMonth() mismatch (-want +got):\n%s", diff)
	}
	if rate := got.Rate(got.Habits[1]); rate != 6.0/15.0 {
		t.Errorf("Rate() = %v, want %v", rate, 6.0/15.0)
	}
}

func TestSummarizeMonth_CountedDays(t *testing.T) {
	now := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"past month", 2024, time.February, 29},
		{"current month", 2025, time.January, 15},
		{"future month", 2025, time.March, 0},
		{"month overflow", 2024, 13, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeMonth(tt.year, tt.month, nil, now)
			if got.Counted != tt.want {
				t.Errorf("Counted = %d, want %d", got.Counted, tt.want)
			}
			if got.Rate(HabitStats{Days: 1}) < 0 {
				t.Error("Rate should never be negative")
			}
		})
	}
}

func TestSummarizeMonth_StreakBrokenToday(t *testing.T) {
	records := []*habit.Record{rec(13, "run"), rec(14, "run")}
	now := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.Local)

	got := SummarizeMonth(2025, time.January, records, now)
	if got.Habits[0].CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 when today is not logged yet", got.Habits[0].CurrentStreak)
	}
	if got.Habits[0].LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", got.Habits[0].LongestStreak)
	}
}

type stubRepo struct {
	habit.Repository
	records []*habit.Record
	err     error
}

func (s stubRepo) ListRecordsByMonth(context.Context, int, time.Month) ([]*habit.Record, error) {
	return s.records, s.err
}

func TestBuildMonthSummary(t *testing.T) {
	now := time.Date(2025, time.February, 3, 9, 0, 0, 0, time.Local)

	got, err := BuildMonthSummary(context.Background(), stubRepo{records: []*habit.Record{rec(31, "run")}}, 2025, time.January, now)
	if err != nil {
		t.Fatalf("BuildMonthSummary() error = %v", err)
	}
	if got.Counted != 31 || len(got.Habits) != 1 || got.Habits[0].CurrentStreak != 1 {
		t.Errorf("BuildMonthSummary() = %+v", got)
	}

	boom := errors.New("boom")
	if _, err := BuildMonthSummary(context.Background(), stubRepo{err: boom}, 2025, time.January, now); !errors.Is(err, boom) {
		t.Errorf("BuildMonthSummary() error = %v, want %v", err, boom)
	}
}
