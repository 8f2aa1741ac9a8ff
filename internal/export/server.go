package export

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/javiermolinar/schedwidget/internal/calendar"
)

var (
	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "schedwidget_exports_total",
		Help: "Total number of calendar exports by target and result.",
	}, []string{"target", "result"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "schedwidget_http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, []string{"method", "route", "status"})
)

// Server publishes the most recent export over HTTP. It is an Exporter, so a
// widget export refreshes what clients download.
type Server struct {
	mu       sync.RWMutex
	filename string
	content  []byte
	updated  time.Time
}

// NewServer creates a server with nothing published yet.
func NewServer() *Server {
	return &Server{}
}

// Export replaces the published calendar.
func (s *Server) Export(filename string, content []byte) error {
	if err := checkFilename(filename); err != nil {
		return err
	}
	s.mu.Lock()
	s.filename = filename
	s.content = append([]byte(nil), content...)
	s.updated = time.Now()
	s.mu.Unlock()

	exportsTotal.WithLabelValues("http", "ok").Inc()
	return nil
}

// Filename returns the currently published file name.
func (s *Server) Filename() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filename
}

// Handler wires the HTTP routes:
//
//	GET /healthz         liveness
//	GET /metrics         Prometheus metrics
//	GET /calendar.ics    the published calendar under a stable name
//	GET /{file}          the published calendar under its own name
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(countRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	r.Get("/calendar.ics", s.serveCalendar)
	r.Get("/{file}", s.serveCalendar)

	return r
}

func (s *Server) serveCalendar(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	filename, content, updated := s.filename, s.content, s.updated
	s.mu.RUnlock()

	if filename == "" {
		http.Error(w, "no calendar published yet", http.StatusNotFound)
		return
	}
	if file := chi.URLParam(r, "file"); file != "" && file != filename {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", calendar.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Last-Modified", updated.UTC().Format(http.TimeFormat))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// ListenAndServe serves Handler on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving exports: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down export server: %w", err)
		}
		return nil
	}
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
	})
}
