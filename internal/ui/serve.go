package ui

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/schedwidget/internal/debuglog"
	"github.com/javiermolinar/schedwidget/internal/export"
	"github.com/javiermolinar/schedwidget/internal/widget"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar over HTTP",
		Long: `Publish the schedule's iCalendar file over HTTP.

Routes: /calendar.ics, /<event-file>.ics, /healthz and /metrics.
With [data] watch enabled the calendar is republished whenever the
schedule file changes.

Example:
  schedwidget serve --addr :8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.config.Export.ListenAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.runServe(ctx, cmd.OutOrStdout(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides [export] listen_addr)")
	return cmd
}

func (a *App) runServe(ctx context.Context, out io.Writer, addr string) error {
	srv := export.NewServer()
	s, err := a.mount(widget.Callbacks{}, srv)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.widget.Export(); err != nil {
		return fmt.Errorf("publishing calendar: %w", err)
	}
	if a.config.Data.Watch {
		republish := func() {
			if err := s.widget.Export(); err != nil {
				debuglog.Error("republish", err)
			}
		}
		if err := s.watch(a.config.Data.Path, republish); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Serving %s on http://%s/calendar.ics\n", formatHeader(srv.Filename()), addr)
	return srv.ListenAndServe(ctx, addr)
}
