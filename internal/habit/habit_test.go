package habit

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/javiermolinar/habitcal/internal/calendar"
)

func day(d int) time.Time {
	return time.Date(2024, 2, d, 0, 0, 0, 0, time.UTC)
}

func TestNewRecord(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		habit     string
		value     string
		wantErr   error
		wantValue string
	}{
		{name: "valid", date: day(10), habit: "run", value: "5km", wantValue: "5km"},
		{name: "empty value", date: day(10), habit: "stretch", wantValue: DefaultValue},
		{name: "labelled habit", date: day(10), habit: "mood|M", value: "3", wantValue: "3"},
		{name: "missing date", habit: "run", wantErr: ErrMissingDate},
		{name: "empty habit", date: day(10), habit: "  ", wantErr: ErrEmptyHabit},
		{name: "habit with equals", date: day(10), habit: "a=b", wantErr: ErrInvalidHabitName},
		{name: "habit with newline", date: day(10), habit: "a\nb", wantErr: ErrInvalidHabitName},
		{name: "value with newline", date: day(10), habit: "run", value: "1\n2", wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRecord(tt.date, tt.habit, tt.value, "")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", r.Value, tt.wantValue)
			}
			if r.CreatedAt.IsZero() {
				t.Error("expected CreatedAt to be set")
			}
		})
	}
}

func TestNewRecord_TruncatesDate(t *testing.T) {
	r, err := NewRecord(time.Date(2024, 2, 10, 18, 30, 0, 0, time.UTC), "run", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Date.Equal(day(10)) {
		t.Errorf("Date = %v, want midnight", r.Date)
	}
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		in        string
		wantHabit string
		wantValue string
		wantErr   bool
	}{
		{"run=5km", "run", "5km", false},
		{" mood|M = 3 ", "mood|M", "3", false},
		{"stretch", "stretch", "", false},
		{"note=a=b", "note", "a=b", false},
		{"=5", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			habit, value, err := ParseAssignment(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if habit != tt.wantHabit || value != tt.wantValue {
				t.Errorf("got (%q, %q), want (%q, %q)", habit, value, tt.wantHabit, tt.wantValue)
			}
		})
	}
}

func TestRecordName(t *testing.T) {
	r := &Record{Habit: "mood|M"}
	if got := r.Name(); got != "mood" {
		t.Errorf("Name() = %q, want mood", got)
	}
}

func sampleRecords() []*Record {
	return []*Record{
		{ID: 1, Date: day(10), Habit: "run", Value: "5km", File: "daily/2024-02-10.md"},
		{ID: 2, Date: day(10), Habit: "mood|M", Value: "3"},
		{ID: 3, Date: day(10), Habit: "run", Value: "2km", File: "daily/2024-02-10.md"},
		{ID: 4, Date: day(11), Habit: "run", Value: "3km", File: "notes/long-run.md"},
	}
}

func TestTableFromRecords(t *testing.T) {
	got := TableFromRecords(sampleRecords(), "YYYY-MM-DD")

	want := calendar.TableResult{
		Headers: []string{"File", "mood|M", "run"},
		Rows: [][]calendar.Cell{
			{{Value: "2024-02-10", Path: "daily/2024-02-10.md"}, {}, {Value: "5km, 2km"}},
			{{Value: "2024-02-10"}, {Value: "3"}, {}},
			{{Value: "2024-02-11"}, {}, {Value: "3km"}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TableFromRecords mismatch (-want +got):\n%s", diff)
	}
}

func TestTableFromRecords_Pattern(t *testing.T) {
	records := []*Record{{Date: day(10), Habit: "run", Value: "5km", File: "20240210.md"}}

	got := TableFromRecords(records, "YYYYMMDD")
	want := calendar.Cell{Value: "20240210", Path: "20240210.md"}
	if diff := cmp.Diff(want, got.Rows[0][0]); diff != "" {
		t.Errorf("file cell mismatch (-want +got):\n%s", diff)
	}
}

func TestTableFromRecords_Empty(t *testing.T) {
	got := TableFromRecords(nil, "")
	if diff := cmp.Diff([]string{"File"}, got.Headers); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	if len(got.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(got.Rows))
	}
}

func TestEntriesFromRecords(t *testing.T) {
	got := EntriesFromRecords(sampleRecords(), "YYYY-MM-DD")

	want := calendar.EntryList{
		{Date: "2024-02-10", Content: "run 5km, 2km\nM 3\n", Link: "daily/2024-02-10.md"},
		{Date: "2024-02-11", Content: "run 3km\n"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EntriesFromRecords mismatch (-want +got):\n%s", diff)
	}
}
