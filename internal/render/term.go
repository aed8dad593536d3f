package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
)

const (
	defaultCellWidth = 12
	minCellWidth     = 4
	maxContentLines  = 4
)

// TermStyles are the lipgloss styles of the terminal grid.
type TermStyles struct {
	Border   lipgloss.Style
	Title    lipgloss.Style
	Weekday  lipgloss.Style
	Day      lipgloss.Style
	Checked  lipgloss.Style
	Today    lipgloss.Style
	Disabled lipgloss.Style
	Content  lipgloss.Style
	Error    lipgloss.Style
}

// DefaultTermStyles returns uncolored styles.
func DefaultTermStyles() TermStyles {
	return TermStyles{
		Border:   lipgloss.NewStyle(),
		Title:    lipgloss.NewStyle().Bold(true),
		Weekday:  lipgloss.NewStyle().Bold(true),
		Day:      lipgloss.NewStyle(),
		Checked:  lipgloss.NewStyle().Bold(true),
		Today:    lipgloss.NewStyle().Reverse(true),
		Disabled: lipgloss.NewStyle(),
		Content:  lipgloss.NewStyle(),
		Error:    lipgloss.NewStyle(),
	}
}

// TermOptions controls the terminal writer.
type TermOptions struct {
	CellWidth int
	Styles    *TermStyles
	// Today is the day number to highlight, 0 for none.
	Today int
	// Markdown renders markdown content for the terminal. When nil the
	// text of the rendered HTML is shown instead.
	Markdown *TermMarkdown
}

// TermMarkdown renders markdown content with glamour.
type TermMarkdown struct {
	r *glamour.TermRenderer
}

// NewTermMarkdown returns a glamour renderer wrapping at width columns.
func NewTermMarkdown(width int, style string) (*TermMarkdown, error) {
	if width < minCellWidth {
		width = minCellWidth
	}
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &TermMarkdown{r: r}, nil
}

// Render renders markdown text, trimming surrounding blank lines.
func (m *TermMarkdown) Render(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	out, err := m.r.Render(text)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// WriteTerminal writes g as a bordered terminal table.
func WriteTerminal(w io.Writer, g *Grid, opts TermOptions) error {
	_, err := io.WriteString(w, RenderTerminal(g, opts)+"\n")
	return err
}

// RenderTerminal returns g as a bordered terminal table.
func RenderTerminal(g *Grid, opts TermOptions) string {
	styles := DefaultTermStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	width := opts.CellWidth
	if width <= 0 {
		width = defaultCellWidth
	}
	if width < minCellWidth {
		width = minCellWidth
	}

	if g.Err != nil {
		return styles.Error.Render("Error: " + g.Err.Error())
	}

	var title string
	var headers []string
	for _, row := range g.Head {
		switch row.Kind {
		case RowTitle:
			if len(row.Cells) > 0 {
				title = row.Cells[0].Text
			}
		case RowWeekdays:
			for _, c := range row.Cells {
				headers = append(headers, ansi.Truncate(c.Text, width, ""))
			}
		}
	}

	rows := make([][]string, 0, len(g.Body))
	for _, row := range g.Body {
		cells := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			cells = append(cells, termCell(c, width, opts.Today, opts.Markdown, styles))
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(true).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Weekday.Width(width).Align(lipgloss.Center)
			}
			return lipgloss.NewStyle().Width(width)
		})

	grid := t.Render()
	if title == "" {
		return grid
	}
	head := styles.Title.
		Width(lipgloss.Width(grid)).
		Align(lipgloss.Center).
		Render(title)
	return lipgloss.JoinVertical(lipgloss.Left, head, grid)
}

func termCell(c Cell, width, today int, md *TermMarkdown, styles TermStyles) string {
	if c.Disabled {
		return styles.Disabled.Render("·")
	}
	label := styles.Day.Render(c.Text)
	if c.Checked {
		label = styles.Checked.Render(c.Text + " ✓")
	}
	if c.Day == today {
		label = styles.Today.Render(ansi.Strip(label))
	}
	if !c.Checked {
		return label
	}

	lines := []string{label}
	for _, l := range contentLines(c.Content, width, md) {
		lines = append(lines, styles.Content.Render(l))
	}
	return strings.Join(lines, "\n")
}

// contentLines returns the content of a checked cell as at most
// maxContentLines lines no wider than width.
func contentLines(content Content, width int, md *TermMarkdown) []string {
	var text string
	switch content.Mode {
	case ModeHTML:
		text = PlainTextFromHTML(content.Text)
	case ModeMarkdown:
		if md != nil {
			if out, err := md.Render(content.Text); err == nil {
				text = out
				break
			}
		}
		text = PlainTextFromHTML(content.Markup)
	default:
		text = content.Text
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if ansi.Strip(l) == "" {
			continue
		}
		if len(lines) == maxContentLines {
			lines[len(lines)-1] = ansi.Truncate(lines[len(lines)-1], width-1, "") + "…"
			break
		}
		lines = append(lines, ansi.Truncate(l, width, "…"))
	}
	return lines
}
