package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/habitcal/internal/config"
	"github.com/javiermolinar/habitcal/internal/dateutil"
	"github.com/javiermolinar/habitcal/internal/theme"
)

var errEmptyField = errors.New("value cannot be empty")

func (a *App) configCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and, on a terminal, opens a form to edit it.

Example:
  habitcal config
  habitcal config --show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConfig(cmd.OutOrStdout(), show || !stdinIsTerminal())
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the configuration without editing")

	return cmd
}

func (a *App) runConfig(w io.Writer, readOnly bool) error {
	path := a.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	_, _ = fmt.Fprintf(w, "Config file: %s\n\n", path)

	cfg := a.config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		_, _ = fmt.Fprintln(w, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		_, _ = fmt.Fprintf(w, "Created %s\n\n", path)
	}

	printConfig(w, cfg)
	if readOnly {
		return nil
	}

	edited := *cfg
	if err := configForm(&edited).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("editing config: %w", err)
	}

	if err := edited.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := edited.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	*a.config = edited

	_, _ = fmt.Fprintln(w, formatStats("\nConfiguration saved!"))
	return nil
}

func configForm(cfg *config.Config) *huh.Form {
	weekdays := [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	weekOptions := make([]huh.Option[string], 0, len(weekdays))
	for i, d := range weekdays {
		weekOptions = append(weekOptions, huh.NewOption(d, fmt.Sprint(i)))
	}

	themeOptions := make([]huh.Option[string], 0, len(theme.Available()))
	for _, name := range theme.Available() {
		themeOptions = append(themeOptions, huh.NewOption(name, name))
	}
	if !theme.IsAvailable(cfg.UI.Theme) {
		cfg.UI.Theme = theme.DefaultName
	}

	calendarGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Start of week").
			Options(weekOptions...).
			Value(&cfg.Calendar.StartOfWeek),
		huh.NewInput().
			Title("Month format").
			Description("Label of the month row, e.g. YYYY-MM or MMMM YYYY").
			Value(&cfg.Calendar.MonthFormat).
			Validate(validatePattern),
		huh.NewInput().
			Title("Date pattern").
			Description("Pattern of note file names, e.g. YYYY-MM-DD").
			Value(&cfg.Calendar.DatePattern).
			Validate(validatePattern),
		huh.NewConfirm().
			Title("Display month row").
			Value(&cfg.Calendar.DisplayHead),
	).Title("Calendar")

	contentGroup := huh.NewGroup(
		huh.NewConfirm().
			Title("Enable HTML content").
			Value(&cfg.Calendar.EnableHTML),
		huh.NewConfirm().
			Title("Enable Markdown content").
			Value(&cfg.Calendar.EnableMarkdown),
		huh.NewConfirm().
			Title("Sanitize HTML").
			Description("Strip scripts and unsafe attributes from entry content").
			Value(&cfg.Calendar.SanitizeHTML),
	).Title("Content")

	storageGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&cfg.UI.Theme),
		huh.NewInput().
			Title("Database path").
			Value(&cfg.Storage.DBPath).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errEmptyField
				}
				return nil
			}),
	).Title("Storage")

	return huh.NewForm(calendarGroup, contentGroup, storageGroup).WithTheme(huh.ThemeDracula())
}

// validatePattern rejects patterns that cannot read back a date they format.
func validatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return errEmptyField
	}
	sample := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	if _, err := dateutil.Parse(dateutil.Format(sample, pattern), pattern); err != nil {
		return fmt.Errorf("%w: %q", dateutil.ErrInvalidPattern, pattern)
	}
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	c := cfg.Calendar
	labels := cfg.WeekdayLabels()
	_, _ = fmt.Fprintln(w, formatHeader("Current configuration:"))
	_, _ = fmt.Fprintln(w, "──────────────────────")
	_, _ = fmt.Fprintln(w, "[calendar]")
	_, _ = fmt.Fprintf(w, "  start_of_week    = %s\n", c.StartOfWeek)
	_, _ = fmt.Fprintf(w, "  month_format     = %s\n", c.MonthFormat)
	_, _ = fmt.Fprintf(w, "  date_pattern     = %s\n", c.DatePattern)
	_, _ = fmt.Fprintf(w, "  display_head     = %t\n", c.DisplayHead)
	_, _ = fmt.Fprintf(w, "  enable_html      = %t\n", c.EnableHTML)
	_, _ = fmt.Fprintf(w, "  enable_markdown  = %t\n", c.EnableMarkdown)
	_, _ = fmt.Fprintf(w, "  sanitize_html    = %t\n", c.SanitizeHTML)
	_, _ = fmt.Fprintf(w, "  labels           = %s\n", strings.Join(labels[:], ", "))
	_, _ = fmt.Fprintln(w, "\n[storage]")
	_, _ = fmt.Fprintf(w, "  db_path          = %s\n", cfg.Storage.DBPath)
	_, _ = fmt.Fprintln(w, "\n[ui]")
	_, _ = fmt.Fprintf(w, "  theme            = %s\n", cfg.UI.Theme)
}
