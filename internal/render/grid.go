// Package render draws a calendar.RenderContext as a grid of rows and cells
// and writes that grid as HTML or as a terminal table.
package render

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/javiermolinar/habitcal/internal/calendar"
	"github.com/javiermolinar/habitcal/internal/logging"
)

// Mode is the rendering mode of a cell's content.
type Mode int

const (
	ModeText Mode = iota
	ModeHTML
	ModeMarkdown
)

func (m Mode) String() string {
	switch m {
	case ModeHTML:
		return "html"
	case ModeMarkdown:
		return "markdown"
	default:
		return "text"
	}
}

// RowKind tells header rows apart from week rows.
type RowKind int

const (
	RowTitle RowKind = iota
	RowWeekdays
	RowWeek
)

// Grid is the UI tree produced for one month.
type Grid struct {
	Width string
	Head  []Row
	Body  []Row
	Err   error
}

// Row is one row of the grid.
type Row struct {
	Kind  RowKind
	Cells []Cell
}

// Cell is one cell of the grid. Header cells only use Text and Span.
type Cell struct {
	Text     string // header text, or the day number of a day cell
	Span     int
	Day      int // 0 for padding
	Disabled bool
	Checked  bool
	Href     string // link of the day label, empty for plain text
	Content  Content
}

// Content is the entry content shown under a checked day.
type Content struct {
	Mode   Mode
	Text   string // raw entry content
	Markup string // rendered markup, set in markdown mode
}

// DefaultWeekdays are the column labels used when none are configured.
var DefaultWeekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Options is the settings snapshot a render call works with.
type Options struct {
	Weekdays       [7]string // Sunday first
	DisplayHead    bool
	EnableHTML     bool
	EnableMarkdown bool
	SourcePath     string // path of the note embedding the calendar
	Markup         MarkupRenderer
	Logger         *zap.Logger
}

// WeekdayRow returns the weekday labels ordered from startOfWeek.
func WeekdayRow(labels [7]string, startOfWeek int) [7]string {
	var row [7]string
	for col := range row {
		row[col] = labels[calendar.NormalizeWeekday(col+startOfWeek)]
	}
	return row
}

// Render builds the grid for ctx. It reads nothing but ctx and opts.
func Render(ctx calendar.RenderContext, opts Options) *Grid {
	log := logging.OrNop(opts.Logger)

	g := &Grid{Width: ctx.Width}
	if ctx.Err != nil {
		g.Err = ctx.Err
		return g
	}

	labels := opts.Weekdays
	for i, l := range labels {
		if l == "" {
			labels[i] = DefaultWeekdays[i]
		}
	}

	if opts.DisplayHead {
		g.Head = append(g.Head, Row{
			Kind:  RowTitle,
			Cells: []Cell{{Text: ctx.MonthLabel, Span: calendar.DaysPerWeek}},
		})
	}
	weekdays := Row{Kind: RowWeekdays}
	for _, l := range WeekdayRow(labels, ctx.StartOfWeek) {
		weekdays.Cells = append(weekdays.Cells, Cell{Text: l, Span: 1})
	}
	g.Head = append(g.Head, weekdays)

	mode := contentMode(ctx.Format, opts)
	for _, week := range ctx.Weeks {
		row := Row{Kind: RowWeek}
		for _, day := range week {
			row.Cells = append(row.Cells, dayCell(ctx, day, mode, opts, log))
		}
		g.Body = append(g.Body, row)
	}
	return g
}

func contentMode(f calendar.Format, opts Options) Mode {
	switch {
	case f == calendar.FormatHTML && opts.EnableHTML:
		return ModeHTML
	case f == calendar.FormatMarkdown && opts.EnableMarkdown:
		return ModeMarkdown
	default:
		return ModeText
	}
}

func dayCell(ctx calendar.RenderContext, day int, mode Mode, opts Options, log *zap.Logger) Cell {
	if day == 0 {
		return Cell{Span: 1, Disabled: true}
	}
	c := Cell{Text: strconv.Itoa(day), Span: 1, Day: day}

	e, ok := ctx.Entry(day)
	if !ok {
		return c
	}
	c.Checked = true
	c.Href = e.Link
	if c.Href == "" {
		// Entries without a link navigate to their raw date string. This is
		// rarely a valid target but existing embeds rely on it.
		c.Href = e.Date
	}

	c.Content = Content{Mode: mode, Text: e.Content}
	if mode == ModeMarkdown {
		markup := opts.Markup
		if markup == nil {
			markup = PlainText{}
		}
		out, err := markup.RenderMarkup(e.Content, opts.SourcePath)
		if err != nil {
			log.Warn("markdown rendering failed, falling back to text", zap.Int("day", day), zap.Error(err))
			c.Content.Mode = ModeText
		} else {
			c.Content.Markup = out
		}
	}
	return c
}

// RenderCalendar runs the whole pipeline for one request: normalize, lay out
// the month, bind entries and build the grid.
func RenderCalendar(req calendar.Request, copts calendar.ContextOptions, opts Options) *Grid {
	data := calendar.Normalize(req, opts.Logger)
	ctx := calendar.BuildContext(data, copts, opts.Logger)
	return Render(ctx, opts)
}
