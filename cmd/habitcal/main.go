package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/javiermolinar/habitcal/internal/config"
	"github.com/javiermolinar/habitcal/internal/ui"
)

func main() {
	if err := run(); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app := ui.NewApp(nil, cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
