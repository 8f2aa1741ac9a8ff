package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/schedwidget/internal/export"
	"github.com/javiermolinar/schedwidget/internal/widget"
)

func (a *App) exportCmd() *cobra.Command {
	var dir string
	var toClipboard bool
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the schedule as an iCalendar file",
		Long: `Generate an .ics file with one event per activity.

The file is named after the event title and written to the export
directory. Use --clipboard to also copy it, or --stdout to print it.

Example:
  schedwidget export --out ~/Downloads --clipboard`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = a.config.Export.Dir
			}
			return a.runExport(cmd.OutOrStdout(), dir, toClipboard, toStdout)
		},
	}

	cmd.Flags().StringVarP(&dir, "out", "o", "", "Export directory (overrides [export] dir)")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "Also copy the calendar to the clipboard")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the calendar instead of writing a file")
	return cmd
}

// writerExporter prints the calendar.
type writerExporter struct {
	w io.Writer
}

func (e writerExporter) Export(_ string, content []byte) error {
	_, err := e.w.Write(content)
	return err
}

func (a *App) runExport(out io.Writer, dir string, toClipboard, toStdout bool) error {
	file := &export.File{Dir: dir}
	var targets export.Multi
	if toStdout {
		targets = append(targets, writerExporter{w: out})
	} else {
		targets = append(targets, file)
	}
	if toClipboard {
		targets = append(targets, export.Clipboard{})
	}

	s, err := a.mount(widget.Callbacks{}, targets)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.widget.Export(); err != nil {
		return err
	}
	if !toStdout {
		fmt.Fprintf(out, "%s Exported %s\n", formatOK("✓"), file.Written)
	}
	if toClipboard {
		fmt.Fprintf(out, "%s Copied to clipboard\n", formatOK("✓"))
	}
	return nil
}
