package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/schedwidget/internal/widget"
)

func (a *App) renderCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the widget markup",
		Long: `Mount the widget and print the HTML of its initial tree.

When the schedule is invalid the inline error block is printed instead
and the command fails.

Example:
  schedwidget render --mode accordion --out schedule.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			return a.runRender(w)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}

func (a *App) runRender(out io.Writer) error {
	s, err := a.mount(widget.Callbacks{}, nil)
	if err != nil {
		var merr *mountError
		if errors.As(err, &merr) {
			if root, lookupErr := merr.host.GetElementByID(a.config.Widget.ContainerID); lookupErr == nil {
				fmt.Fprintln(out, root.HTML())
			}
		}
		return err
	}
	defer s.Close()

	_, err = fmt.Fprintln(out, s.widget.HTML())
	return err
}
