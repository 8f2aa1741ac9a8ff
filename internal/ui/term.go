package ui

import (
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Success: green check marks
	colorOK = color.New(color.FgGreen, color.Bold)

	// Failures: red so they stand out
	colorError = color.New(color.FgRed, color.Bold)

	// Warnings: yellow, shown but not fatal
	colorWarning = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Day labels: cyan
	colorDay = color.New(color.FgCyan)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatOK(s string) string {
	return colorOK.Sprint(s)
}

func formatError(s string) string {
	return colorError.Sprint(s)
}

func formatWarning(s string) string {
	return colorWarning.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatDay(s string) string {
	return colorDay.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// fit truncates s to width terminal cells.
func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
