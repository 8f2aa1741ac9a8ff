package ui

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/schedwidget/internal/config"
	"github.com/javiermolinar/schedwidget/internal/tui/theme"
	"github.com/javiermolinar/schedwidget/internal/viewmodel"
	"github.com/javiermolinar/schedwidget/internal/widget"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  schedwidget config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Data.Path = promptValue(reader, "Schedule document", cfg.Data.Path)
	cfg.Widget.Theme = promptChoice(reader, "Widget theme", cfg.Widget.Theme, widget.DefaultThemes)
	cfg.Widget.DisplayMode = promptChoice(reader, "Display mode", cfg.Widget.DisplayMode, modeNames())
	cfg.Options.Language = promptChoice(reader, "Language", cfg.Options.Language, []string{"ro", "en"})
	cfg.Options.TimeFormat = promptChoice(reader, "Time format", cfg.Options.TimeFormat, []string{"24h", "12h"})
	cfg.Export.Dir = promptValue(reader, "Export directory", cfg.Export.Dir)
	cfg.Export.ListenAddr = promptValue(reader, "Serve address", cfg.Export.ListenAddr)
	cfg.Storage.DBPath = promptValue(reader, "Database path (empty keeps preferences in memory)", cfg.Storage.DBPath)
	cfg.UI.Palette = promptTheme(reader, cfg.UI.Palette)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[widget]")
	fmt.Printf("  container_id      = %s\n", cfg.Widget.ContainerID)
	fmt.Printf("  theme             = %s\n", cfg.Widget.Theme)
	fmt.Printf("  display_mode      = %s\n", cfg.Widget.DisplayMode)
	fmt.Println("\n[options]")
	fmt.Printf("  show_search       = %t\n", cfg.Options.ShowSearch)
	fmt.Printf("  enable_export     = %t\n", cfg.Options.EnableExport)
	fmt.Printf("  show_icons        = %t\n", cfg.Options.ShowIcons)
	fmt.Printf("  language          = %s\n", cfg.Options.Language)
	fmt.Printf("  time_format       = %s\n", cfg.Options.TimeFormat)
	fmt.Printf("  highlight_current = %t\n", cfg.Options.HighlightCurrent)
	fmt.Printf("  show_end_times    = %t\n", cfg.Options.ShowEndTimes)
	fmt.Printf("  show_speakers     = %t\n", cfg.Options.ShowSpeakers)
	fmt.Printf("  show_locations    = %t\n", cfg.Options.ShowLocations)
	fmt.Printf("  show_theme_toggle = %t\n", cfg.Options.ShowThemeToggle)
	fmt.Println("\n[data]")
	fmt.Printf("  path              = %s\n", cfg.Data.Path)
	fmt.Printf("  watch             = %t\n", cfg.Data.Watch)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path           = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[export]")
	fmt.Printf("  dir               = %s\n", cfg.Export.Dir)
	fmt.Printf("  listen_addr       = %s\n", cfg.Export.ListenAddr)
	fmt.Println("\n[ui]")
	fmt.Printf("  palette           = %s\n", cfg.UI.Palette)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

// promptChoice asks until the answer is one of options.
func promptChoice(reader *bufio.Reader, label, current string, options []string) string {
	list := strings.Join(options, ", ")
	for {
		value := strings.ToLower(promptValue(reader, fmt.Sprintf("%s (%s)", label, list), current))
		if slices.Contains(options, value) {
			return value
		}
		fmt.Printf("  Invalid value %q. Available: %s\n", value, list)
	}
}

func modeNames() []string {
	var names []string
	for _, m := range viewmodel.Modes() {
		names = append(names, string(m))
	}
	return names
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("Terminal palette, empty follows the widget (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if value == "" || theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
