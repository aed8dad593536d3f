package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/habitcal/internal/config"
	"github.com/javiermolinar/habitcal/internal/db"
	"github.com/javiermolinar/habitcal/internal/habit"
	"github.com/javiermolinar/habitcal/internal/logging"
	"github.com/javiermolinar/habitcal/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo       habit.Repository
	ownsRepo   bool
	config     *config.Config
	configPath string
	root       *cobra.Command
	debug      bool // Enable debug logging
	log        *zap.Logger
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened from the configured db_path on first use.
func NewApp(repo habit.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, log: zap.NewNop()}

	a.root = &cobra.Command{
		Use:   "habitcal",
		Short: "A habit log rendered as a month calendar",
		Long: `Habitcal keeps a log of daily habit values and renders any month of it
as a calendar grid, in the terminal or as an HTML table.

Run without arguments to browse months interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config, a.log)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugLogPath+")")
	a.root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultConfigPath()+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.renderCmd())
	a.root.AddCommand(a.logCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.statsCmd())

	return a
}

// setup loads an explicit config file and starts the debug log.
func (a *App) setup() error {
	if a.configPath != "" {
		cfg, err := config.LoadFrom(a.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.config = cfg
	}

	log, err := logging.New(a.debug, "")
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// ensureRepo opens the habit log if no repository was provided.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path, db.WithLogger(a.log))
	if err != nil {
		return fmt.Errorf("opening habit log: %w", err)
	}
	a.repo = repo
	a.ownsRepo = true
	return nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "habitcal %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the habit log if the App opened it.
func (a *App) Close() error {
	if a.ownsRepo && a.repo != nil {
		return a.repo.Close()
	}
	return nil
}
