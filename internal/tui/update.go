package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/habitcal/internal/tui/commands"
)

const statusTimeout = 3 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case commands.MonthLoadedMsg:
		// A slower load for a month we already left.
		if msg.Year != m.year || msg.Month != m.month {
			m.log.Debug("dropping stale month", zap.Int("year", msg.Year), zap.Stringer("month", msg.Month))
			return m, nil
		}
		m.records = msg.Records
		m.loading = false
		m.err = nil
		return m, nil

	case commands.RecordsLoggedMsg:
		m.status = fmt.Sprintf("Logged %d value(s)", msg.Count)
		m.loading = true
		return m, tea.Batch(
			commands.LoadMonth(m.repo, m.year, m.month),
			commands.ClearStatusAfter(statusTimeout),
		)

	case commands.StatusMsgCmd:
		m.status = msg.Msg
		return m, commands.ClearStatusAfter(statusTimeout)

	case commands.ClearStatusMsg:
		m.status = ""
		return m, nil

	case commands.ErrMsg:
		m.log.Warn("month browser error", zap.Error(msg.Err))
		m.err = msg.Err
		m.loading = false
		return m, nil
	}

	if m.mode == ModeLog {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}
