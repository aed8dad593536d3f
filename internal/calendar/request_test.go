package calendar

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeRequest_EntryList(t *testing.T) {
	doc := `{
		"year": 2024,
		"month": "2",
		"format": "Markdown",
		"width": "80%",
		"note_pattern": "YYYYMMDD",
		"data": [
			{"date": "20240210", "content": "**ran**", "link": "daily/20240210.md"},
			{"date": "20240211", "content": "rest"}
		]
	}`

	req, err := DecodeRequest([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Request{
		Year:        2024,
		Month:       2,
		Format:      FormatMarkdown,
		Width:       "80%",
		NotePattern: "YYYYMMDD",
		Data: EntryList{
			{Date: "20240210", Content: "**ran**", Link: "daily/20240210.md"},
			{Date: "20240211", Content: "rest"},
		},
	}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Errorf("Request mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRequest_TableResult(t *testing.T) {
	doc := `{
		"year": 2024,
		"month": 2,
		"format": "html",
		"data": {
			"successful": true,
			"value": {
				"type": "table",
				"headers": ["File", "mood|M", "tags", "done"],
				"values": [
					[{"path": "daily/2024-02-10.md", "display": "2024-02-10", "type": "file"}, 3, ["a", "b"], true],
					[{"path": "daily/2024-02-11.md"}, null, [], false]
				]
			}
		}
	}`

	req, err := DecodeRequest([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Data.Kind() != KindTable {
		t.Fatalf("Kind = %v, want table", req.Data.Kind())
	}

	want := TableResult{
		Headers: []string{"File", "mood|M", "tags", "done"},
		Rows: [][]Cell{
			{{Value: "2024-02-10", Path: "daily/2024-02-10.md"}, {Value: "3"}, {Value: "a, b"}, {Value: "true"}},
			{{Value: "daily/2024-02-11.md", Path: "daily/2024-02-11.md"}, {}, {}, {Value: "false"}},
		},
	}
	if diff := cmp.Diff(want, req.Data); diff != "" {
		t.Errorf("TableResult mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRequest_MissingData(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"year": 2024, "month": 2}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Data.Kind() != KindEntries {
		t.Errorf("Kind = %v, want entries", req.Data.Kind())
	}
	if req.Format != FormatText {
		t.Errorf("Format = %q, want text", req.Format)
	}
}

func TestDecodeRequest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"malformed", `{"year": `, ErrInvalidInput},
		{"not an object", `[1, 2]`, ErrInvalidInput},
		{"unknown format", `{"format": "pdf"}`, ErrUnknownFormat},
		{"failed query", `{"data": {"successful": false, "error": "boom"}}`, ErrInvalidInput},
		{"scalar data", `{"data": "2024-02-10"}`, ErrInvalidInput},
		{"non-table result", `{"data": {"successful": true, "value": {"type": "list"}}}`, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRequest([]byte(tt.doc))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeRequestYAML(t *testing.T) {
	doc := `
year: 2024
month: 2
date_pattern: YYYY-MM-DD
data:
  - date: 2024-02-10
    content: ran 5km
    link: daily/2024-02-10.md
`

	req, err := DecodeRequestYAML([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := EntryList{{Date: "2024-02-10", Content: "ran 5km", Link: "daily/2024-02-10.md"}}
	if diff := cmp.Diff(RawData(want), req.Data); diff != "" {
		t.Errorf("Data mismatch (-want +got):\n%s", diff)
	}
	if req.DatePattern != "YYYY-MM-DD" {
		t.Errorf("DatePattern = %q", req.DatePattern)
	}
}

func TestDecodeRequestYAML_Scalars(t *testing.T) {
	doc := `
year: 2024
month: 2
width: 80%
data:
  - &first
    date: 2024-02-01
    content: 42
  - *first
  - date: "2024-02-03"
    content: true
`

	req, err := DecodeRequestYAML([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := EntryList{
		{Date: "2024-02-01", Content: "42"},
		{Date: "2024-02-01", Content: "42"},
		{Date: "2024-02-03", Content: "true"},
	}
	if diff := cmp.Diff(RawData(want), req.Data); diff != "" {
		t.Errorf("Data mismatch (-want +got):\n%s", diff)
	}
	if req.Year != 2024 || req.Month != 2 || req.Width != "80%" {
		t.Errorf("got year %d month %d width %q", req.Year, req.Month, req.Width)
	}

	data := Normalize(req, nil)
	days := BindEntriesToDays(data.Entries, data.Year, data.Month, data.DatePattern, nil)
	if _, ok := days[1]; !ok {
		t.Errorf("day 1 not bound: %v", days)
	}
}

func TestDecodeRequestYAML_Invalid(t *testing.T) {
	for _, doc := range []string{"year: [", "- just\n- a list"} {
		if _, err := DecodeRequestYAML([]byte(doc)); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("DecodeRequestYAML(%q) error = %v, want %v", doc, err, ErrInvalidInput)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{" HTML ", FormatHTML, false},
		{"markdown", FormatMarkdown, false},
		{"md", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
