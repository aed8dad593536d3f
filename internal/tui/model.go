// Package tui provides the month browser for habitcal.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/habitcal/internal/config"
	"github.com/javiermolinar/habitcal/internal/habit"
	"github.com/javiermolinar/habitcal/internal/logging"
	"github.com/javiermolinar/habitcal/internal/render"
	"github.com/javiermolinar/habitcal/internal/theme"
	"github.com/javiermolinar/habitcal/internal/tui/commands"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeLog         // typing "DAY HABIT=VALUE..."
)

// Model is the bubbletea model of the month browser.
type Model struct {
	repo habit.Repository
	cfg  *config.Config
	log  *zap.Logger
	now  func() time.Time

	year    int
	month   time.Month
	records []*habit.Record
	loading bool

	mode   Mode
	prompt textinput.Model
	keys   keyMap
	help   help.Model

	styles render.TermStyles
	popup  popup
	width  int
	height int

	status string
	err    error
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithClock overrides the clock used to find the current month.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) ModelOption {
	return func(m *Model) {
		m.log = logging.OrNop(log)
	}
}

// New creates a month browser showing the current month.
func New(repo habit.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	ti := textinput.New()
	ti.Placeholder = "10 run=5km mood|M=3"
	ti.CharLimit = 256
	ti.Width = 40

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}

	m := &Model{
		repo:   repo,
		cfg:    cfg,
		log:    zap.NewNop(),
		now:    time.Now,
		prompt: ti,
		keys:   newKeyMap(),
		help:   help.New(),
		styles: theme.NewPalette(t).TermStyles(),
		popup:  popup{bg: theme.Color(t.BgHighlight), border: theme.Color(t.Accent)},
	}
	for _, opt := range opts {
		opt(m)
	}

	today := m.now()
	m.year, m.month = today.Year(), today.Month()
	m.loading = true
	return m
}

// Init loads the current month.
func (m Model) Init() tea.Cmd {
	return commands.LoadMonth(m.repo, m.year, m.month)
}

// Run starts the month browser.
func Run(repo habit.Repository, cfg *config.Config, log *zap.Logger) error {
	m := New(repo, cfg, WithLogger(log))
	p := tea.NewProgram(*m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
