package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/schedwidget/internal/dateutil"
	"github.com/javiermolinar/schedwidget/internal/schedule"
	"github.com/javiermolinar/schedwidget/internal/summary"
)

func (a *App) validateCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a schedule document",
		Long: `Validate a schedule document and print a summary of its days.

Without an argument the configured data path is checked.

Example:
  schedwidget validate retreat.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				DisableColor()
			}
			path := a.config.Data.Path
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(cmd.OutOrStdout(), path, a.config.Options.Language, termWidth())
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func runValidate(out io.Writer, path, lang string, width int) error {
	doc, err := schedule.LoadFile(path)
	if err != nil {
		fmt.Fprintf(out, "%s %s\n", formatError("✗"), err)
		return err
	}
	if err := schedule.Validate(doc); err != nil {
		fmt.Fprintf(out, "%s %s\n", formatError("✗"), path)
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(out, "  field: %s\n", verr.Field)
		}
		fmt.Fprintf(out, "  %s\n", formatMuted(err.Error()))
		return err
	}

	sum := summary.Summarize(doc)
	fmt.Fprintf(out, "%s %s\n\n", formatOK("✓"), formatHeader(sum.Title))
	for _, day := range sum.Days {
		date := dateutil.FormatShortDate(day.Date, lang)
		line := fmt.Sprintf("  %-12s %-8s %2d activities", day.Label, date, day.Activities)
		if day.First != "" {
			line += fmt.Sprintf("  %s-%s  %s", day.First, day.Last, summary.FormatDuration(day.ScheduledMinutes))
		}
		if d, ok := doc.DayByID(day.DayID); ok && d.Theme != "" {
			line += "  " + d.Theme
		}
		fmt.Fprintln(out, fit(formatDay(line), width))
	}

	var types []string
	for _, tc := range sum.Types {
		types = append(types, fmt.Sprintf("%s %d", tc.Type, tc.Count))
	}
	fmt.Fprintf(out, "\n%s\n", formatMuted(fmt.Sprintf("%d days, %d activities (%d optional), %s scheduled",
		len(sum.Days), sum.Activities, sum.Optional, summary.FormatDuration(sum.ScheduledMinutes))))
	if len(types) > 0 {
		fmt.Fprintln(out, fit(formatMuted("Types: "+strings.Join(types, ", ")), width))
	}
	if busiest, ok := sum.BusiestDay(); ok && busiest.ScheduledMinutes > 0 {
		fmt.Fprintln(out, formatMuted("Busiest day: "+busiest.Label))
	}
	for _, o := range summary.Overlaps(doc) {
		fmt.Fprintln(out, fit(formatWarning("! ")+o.String(), width))
	}
	return nil
}
