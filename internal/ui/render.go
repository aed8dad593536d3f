package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/habitcal/internal/calendar"
	"github.com/javiermolinar/habitcal/internal/habit"
	"github.com/javiermolinar/habitcal/internal/render"
	"github.com/javiermolinar/habitcal/internal/theme"
)

const (
	outputHTML = "html"
	outputTerm = "term"
)

type renderFlags struct {
	year        int
	month       int
	format      string
	width       string
	datePattern string
	notePattern string
	input       string
	output      string
	source      string
	cellWidth   int
	copy        bool
}

func (a *App) renderCmd() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a month as a calendar",
		Long: `Render one month as a calendar grid.

Without --input, the month is built from the habit log. With --input, the
request document (JSON or YAML) carries the month and its entries; flags
given on the command line override the document.`,
		Example: `  habitcal render
  habitcal render --year 2024 --month 2 --output html --copy
  habitcal render --input month.yaml --format markdown
  cat request.json | habitcal render --input -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := a.buildRequest(cmd, f)
			if err != nil {
				return err
			}
			return a.writeCalendar(cmd.OutOrStdout(), req, f)
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&f.year, "year", now.Year(), "Year to render")
	cmd.Flags().IntVar(&f.month, "month", int(now.Month()), "Month to render (1-12)")
	cmd.Flags().StringVar(&f.format, "format", "", "Entry content format: text, html or markdown")
	cmd.Flags().StringVar(&f.width, "width", "", "Table width for HTML output (default "+calendar.DefaultWidth+")")
	cmd.Flags().StringVar(&f.datePattern, "date-pattern", "", "Pattern of entry dates, e.g. YYYY-MM-DD")
	cmd.Flags().StringVar(&f.notePattern, "note-pattern", "", "Deprecated alias of --date-pattern")
	cmd.Flags().StringVar(&f.input, "input", "", `Request document (JSON or YAML), "-" for stdin`)
	cmd.Flags().StringVar(&f.output, "output", outputTerm, "Output: term or html")
	cmd.Flags().StringVar(&f.source, "source", "", "Path of the note embedding the calendar, for relative links")
	cmd.Flags().IntVar(&f.cellWidth, "cell-width", 0, "Terminal cell width (default fits the terminal)")
	cmd.Flags().BoolVar(&f.copy, "copy", false, "Copy HTML output to the clipboard")
	_ = cmd.Flags().MarkDeprecated("note-pattern", "use --date-pattern")

	return cmd
}

// buildRequest reads the request document or builds one from the habit log,
// then applies explicitly set flags.
func (a *App) buildRequest(cmd *cobra.Command, f renderFlags) (calendar.Request, error) {
	var req calendar.Request
	flags := cmd.Flags()

	if f.input != "" {
		var err error
		req, err = readRequest(f.input, cmd.InOrStdin())
		if err != nil {
			return calendar.Request{}, err
		}
		if req.Year == 0 || flags.Changed("year") {
			req.Year = f.year
		}
		if req.Month == 0 || flags.Changed("month") {
			req.Month = f.month
		}
	} else {
		if err := a.ensureRepo(); err != nil {
			return calendar.Request{}, err
		}
		records, err := a.repo.ListRecordsByMonth(context.Background(), f.year, time.Month(f.month))
		if err != nil {
			return calendar.Request{}, fmt.Errorf("listing records: %w", err)
		}
		pattern := a.config.Calendar.DatePattern
		if f.datePattern != "" {
			pattern = f.datePattern
		}
		req = calendar.Request{
			Year:        f.year,
			Month:       f.month,
			DatePattern: pattern,
			Data:        habit.TableFromRecords(records, pattern),
		}
	}

	if flags.Changed("format") {
		format, err := calendar.ParseFormat(f.format)
		if err != nil {
			return calendar.Request{}, err
		}
		req.Format = format
	}
	if f.width != "" {
		req.Width = f.width
	}
	if f.datePattern != "" {
		req.DatePattern = f.datePattern
	}
	if f.notePattern != "" {
		req.NotePattern = f.notePattern
	}
	if req.DatePattern == "" && req.NotePattern == "" {
		req.DatePattern = a.config.Calendar.DatePattern
	}

	a.log.Debug("render request",
		zap.Int("year", req.Year), zap.Int("month", req.Month),
		zap.String("format", string(req.Format)), zap.Stringer("data", req.Data.Kind()))
	return req, nil
}

func (a *App) writeCalendar(w io.Writer, req calendar.Request, f renderFlags) error {
	grid := render.RenderCalendar(req, a.config.ContextOptions(), a.config.RenderOptions(f.source, a.log))

	switch f.output {
	case outputHTML:
		out, err := render.RenderHTML(grid, a.config.HTMLOptions())
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
		if f.copy {
			if err := clipboard.WriteAll(out); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
			_, _ = fmt.Fprintln(w, formatMuted("Copied to clipboard."))
		}
		return nil

	case outputTerm:
		opts, err := a.termOptions(req, f)
		if err != nil {
			return err
		}
		return render.WriteTerminal(w, grid, opts)

	default:
		return fmt.Errorf("unknown output %q: must be %q or %q", f.output, outputTerm, outputHTML)
	}
}

func (a *App) termOptions(req calendar.Request, f renderFlags) (render.TermOptions, error) {
	t, err := theme.Load(a.config.UI.Theme)
	if err != nil {
		return render.TermOptions{}, err
	}
	styles := theme.NewPalette(t).TermStyles()

	width := f.cellWidth
	if width <= 0 {
		width = (termWidth() - 8) / calendar.DaysPerWeek
	}

	opts := render.TermOptions{CellWidth: width, Styles: &styles}
	if now := time.Now(); now.Year() == req.Year && int(now.Month()) == req.Month {
		opts.Today = now.Day()
	}
	if req.Format == calendar.FormatMarkdown && a.config.Calendar.EnableMarkdown {
		md, err := render.NewTermMarkdown(width, t.GlamourStyle())
		if err != nil {
			return render.TermOptions{}, err
		}
		opts.Markdown = md
	}
	return opts, nil
}
