package main

import (
	"fmt"
	"os"

	"github.com/javiermolinar/schedwidget/internal/config"
	"github.com/javiermolinar/schedwidget/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Environment overrides may come from a local .env file
	if err := config.LoadDotEnv(""); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app := ui.NewApp(cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
