// Package calendar turns dated habit entries into a month grid: it normalizes
// raw input, computes the month geometry, and binds entries to days.
package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors.
var (
	ErrInvalidMonth  = errors.New("invalid month")
	ErrUnknownFormat = errors.New("format must be 'text', 'html' or 'markdown'")
	ErrInvalidInput  = errors.New("invalid calendar request")
)

// Default request values.
const (
	DefaultWidth       = "100%"
	DefaultDatePattern = "YYYY-MM-DD"
)

// Format selects how entry content is rendered inside a day cell.
type Format string

const (
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format name. An empty name means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatHTML, FormatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("%w, got %q", ErrUnknownFormat, s)
	}
}

// Entry is one day's worth of displayable content plus its navigation target.
type Entry struct {
	Date    string // raw date string, in the request's date pattern
	Content string
	Link    string // may be empty
}

// DataKind discriminates the shapes a request's data can take.
type DataKind int

const (
	KindEntries DataKind = iota
	KindTable
)

func (k DataKind) String() string {
	switch k {
	case KindEntries:
		return "entries"
	case KindTable:
		return "table"
	default:
		return fmt.Sprintf("DataKind(%d)", int(k))
	}
}

// RawData is either an EntryList or a TableResult.
type RawData interface {
	Kind() DataKind
}

// EntryList is request data that is already shaped as entries.
type EntryList []Entry

// Kind implements RawData.
func (EntryList) Kind() DataKind { return KindEntries }

// Cell is one value of a table row. Link cells carry the target path.
type Cell struct {
	Value string
	Path  string
}

// FileName returns the base name of the cell's path without its extension,
// or the cell value when the cell is not a link.
func (c Cell) FileName() string {
	if c.Path == "" {
		return c.Value
	}
	name := c.Path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name
}

// TableResult is a query result shaped as headers plus rows, where the first
// cell of every row links to the note the row was read from.
type TableResult struct {
	Headers []string
	Rows    [][]Cell
}

// Kind implements RawData.
func (TableResult) Kind() DataKind { return KindTable }

// HeaderLabel returns the display label of column i: the text after the last
// "|" of the header, or the whole header when it has no alias.
func (t TableResult) HeaderLabel(i int) string {
	if i < 0 || i >= len(t.Headers) {
		return ""
	}
	h := t.Headers[i]
	if j := strings.LastIndexByte(h, '|'); j >= 0 {
		return h[j+1:]
	}
	return h
}

// Request is the external input of a render call.
type Request struct {
	Year        int
	Month       int // 1-12
	Format      Format
	Width       string
	DatePattern string
	NotePattern string // deprecated alias of DatePattern
	Data        RawData
}

// Data is the canonical, normalized form of a Request.
type Data struct {
	Year        int
	Month       int
	Width       string
	Format      Format
	DatePattern string
	Entries     []Entry
}
