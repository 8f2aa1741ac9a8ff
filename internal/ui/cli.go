package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/schedwidget/internal/config"
	"github.com/javiermolinar/schedwidget/internal/debuglog"
	"github.com/javiermolinar/schedwidget/internal/export"
	"github.com/javiermolinar/schedwidget/internal/tui"
	"github.com/javiermolinar/schedwidget/internal/widget"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging

	// Flag overrides applied on top of the loaded config.
	dataPath string
	theme    string
	mode     string
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "schedwidget",
		Short: "An interactive schedule widget for multi-day events",
		Long: `Schedwidget renders a multi-day event schedule as an interactive widget.

It validates the schedule document, lets you browse days and activities
in the terminal, and exports the program as an iCalendar file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			a.applyFlags()
			return debuglog.Init(a.debug, "")
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}

	// Add global flags
	flags := a.root.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+debuglog.DefaultPath+")")
	flags.StringVarP(&a.dataPath, "data", "d", "", "Schedule document (overrides [data] path)")
	flags.StringVar(&a.theme, "theme", "", "Widget theme (overrides [widget] theme)")
	flags.StringVar(&a.mode, "mode", "", "Display mode: tabs, accordion, full-scroll or timeline")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.validateCmd())
	a.root.AddCommand(a.renderCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) applyFlags() {
	if a.dataPath != "" {
		a.config.Data.Path = a.dataPath
	}
	if a.theme != "" {
		a.config.Widget.Theme = a.theme
	}
	if a.mode != "" {
		a.config.Widget.DisplayMode = a.mode
	}
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "schedwidget %s (commit: %s)\n", Version, Commit)
		},
	}
}

// runTUI hosts the widget in the terminal until the user quits.
func (a *App) runTUI() error {
	n := tui.NewNotifier()
	s, err := a.mount(widget.Callbacks{OnRender: n.Notify}, &export.File{Dir: a.config.Export.Dir})
	if err != nil {
		return err
	}
	defer s.Close()

	if a.config.Data.Watch {
		if err := s.watch(a.config.Data.Path, nil); err != nil {
			return err
		}
	}
	return tui.Run(s.widget, n, a.config.UI.Palette)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases resources held across commands.
func (a *App) Close() error {
	debuglog.Close()
	return nil
}
