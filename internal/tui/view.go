package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/habitcal/internal/calendar"
	"github.com/javiermolinar/habitcal/internal/habit"
	"github.com/javiermolinar/habitcal/internal/render"
)

const (
	minCellWidth = 6
	maxCellWidth = 24
)

// View renders the month browser.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(render.RenderTerminal(m.grid(), render.TermOptions{
		CellWidth: m.cellWidth(),
		Styles:    &m.styles,
		Today:     m.today(),
	}))
	b.WriteString("\n")

	switch {
	case m.mode == ModeLog && !m.hasWindow():
		b.WriteString("Log: " + m.prompt.View())
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
	case m.loading:
		b.WriteString(m.styles.Disabled.Render("Loading…"))
	case m.status != "":
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	view := lipgloss.NewStyle().Padding(0, 1).Render(b.String())
	if m.mode == ModeLog && m.hasWindow() {
		return m.popup.Render(view, m.width, m.height, m.logForm())
	}
	return view
}

// logForm is the content of the log popup.
func (m Model) logForm() string {
	title := m.styles.Title.Render(fmt.Sprintf("Log habits for %s %d", m.month, m.year))
	lines := []string{title, "", m.prompt.View(), ""}
	if m.err != nil {
		lines = append(lines, m.styles.Error.Render(m.err.Error()))
	} else {
		lines = append(lines, m.styles.Disabled.Render("enter to save, esc to cancel"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) hasWindow() bool {
	return m.width > 0 && m.height > 0
}

// grid builds the calendar of the shown month from the loaded records.
func (m Model) grid() *render.Grid {
	pattern := m.cfg.Calendar.DatePattern
	req := calendar.Request{
		Year:        m.year,
		Month:       int(m.month),
		DatePattern: pattern,
		Data:        habit.TableFromRecords(m.records, pattern),
	}
	return render.RenderCalendar(req, m.cfg.ContextOptions(), m.cfg.RenderOptions("", m.log))
}

// cellWidth fits seven columns and their borders into the window.
func (m Model) cellWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := (m.width - 2 - 8) / calendar.DaysPerWeek
	if w < minCellWidth {
		return minCellWidth
	}
	if w > maxCellWidth {
		return maxCellWidth
	}
	return w
}

// today returns the current day when the shown month is the current month.
func (m Model) today() int {
	now := m.now()
	if now.Year() == m.year && now.Month() == m.month {
		return now.Day()
	}
	return 0
}
