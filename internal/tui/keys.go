package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/habitcal/internal/dateutil"
	"github.com/javiermolinar/habitcal/internal/habit"
	"github.com/javiermolinar/habitcal/internal/tui/commands"
)

var errLogUsage = errors.New("usage: DAY HABIT[=VALUE]...")

type keyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Today  key.Binding
	Log    key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev month")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next month")),
		Today:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Log:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "log habit")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Log, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Reload}}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.log.Debug("key", zap.String("key", msg.String()), zap.Int("mode", int(m.mode)))

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == ModeLog {
		return m.handleLogKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Prev):
		return m.showMonth(m.year, m.month-1)
	case key.Matches(msg, m.keys.Next):
		return m.showMonth(m.year, m.month+1)
	case key.Matches(msg, m.keys.Today):
		now := m.now()
		return m.showMonth(now.Year(), now.Month())
	case key.Matches(msg, m.keys.Reload):
		return m.showMonth(m.year, m.month)
	case key.Matches(msg, m.keys.Log):
		m.mode = ModeLog
		m.err = nil
		m.prompt.Reset()
		m.prompt.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// handleLogKeys handles keys while typing a log line.
func (m Model) handleLogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.prompt.Blur()
		return m, nil
	case tea.KeyEnter:
		records, err := m.parseLogLine(m.prompt.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.mode = ModeNormal
		m.prompt.Blur()
		m.err = nil
		return m, commands.LogRecords(m.repo, records)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// showMonth switches to the given month, normalizing month overflow.
func (m Model) showMonth(year int, month time.Month) (tea.Model, tea.Cmd) {
	first := dateutil.FirstOfMonth(year, month)
	m.year, m.month = first.Year(), first.Month()
	m.records = nil
	m.loading = true
	return m, commands.LoadMonth(m.repo, m.year, m.month)
}

// parseLogLine parses "DAY HABIT[=VALUE]..." into records for the shown month.
func (m Model) parseLogLine(line string) ([]*habit.Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, errLogUsage
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil || day < 1 || day > dateutil.DaysInMonth(m.year, m.month) {
		return nil, fmt.Errorf("%w: no day %q in %s %d", dateutil.ErrInvalidDate, fields[0], m.month, m.year)
	}

	now := m.now()
	date := time.Date(m.year, m.month, day, 0, 0, 0, 0, now.Location())
	if date.After(dateutil.TruncateToDay(now)) {
		return nil, dateutil.ErrDateInFuture
	}

	records := make([]*habit.Record, 0, len(fields)-1)
	for _, a := range fields[1:] {
		name, value, err := habit.ParseAssignment(a)
		if err != nil {
			return nil, err
		}
		r, err := habit.NewRecord(date, name, value, "")
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}
