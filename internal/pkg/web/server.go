// Package web serves the dashboard UI and the JSON API the pages poll. The
// rendering surface is the browser: handlers only hand it chart definitions
// and delta instructions, and take back pan/zoom ranges.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/sensorscope/sensorscope/internal/pkg/constants"
	"github.com/sensorscope/sensorscope/internal/pkg/engine"
	"github.com/sensorscope/sensorscope/internal/pkg/logger"
	"github.com/sensorscope/sensorscope/internal/pkg/metrics"
	"github.com/sensorscope/sensorscope/internal/pkg/settings"
	"github.com/sensorscope/sensorscope/internal/pkg/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Options configure the dashboard server.
type Options struct {
	Addr         string
	Engine       *engine.Engine
	Store        *store.SampleStore
	Registry     *settings.Registry
	Metrics      *metrics.Metrics
	TickInterval time.Duration

	// Now stamps export filenames; defaults to time.Now.
	Now func() time.Time
}

// Server handles the HTTP interface: pages, polled JSON API, CSV export and
// Prometheus metrics.
type Server struct {
	addr          string
	engine        *engine.Engine
	store         *store.SampleStore
	registry      *settings.Registry
	metrics       *metrics.Metrics
	tickInterval  time.Duration
	tmpl          *template.Template
	exportLimiter *rate.Limiter
	server        *http.Server
	now           func() time.Time
}

// NewServer creates a dashboard server with the provided configuration.
func NewServer(opts Options) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	addr := opts.Addr
	if addr == "" {
		addr = constants.DefaultListenAddr
	}
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = constants.DefaultTickInterval
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Server{
		addr:          addr,
		engine:        opts.Engine,
		store:         opts.Store,
		registry:      opts.Registry,
		metrics:       opts.Metrics,
		tickInterval:  tickInterval,
		tmpl:          tmpl,
		exportLimiter: rate.NewLimiter(rate.Limit(constants.ExportRatePerSecond), constants.ExportBurst),
		now:           now,
	}
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  constants.HTTPReadTimeout,
		WriteTimeout: constants.HTTPWriteTimeout,
	}
	return s, nil
}

// routes configures the HTTP mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Pages. "/" doubles as the catch-all, so it dispatches to the
	// dashboard, a sensor detail page, or the not-found page.
	mux.HandleFunc("/", s.handlePage)

	// Polled JSON API.
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/capture/toggle", s.handleToggle)
	mux.HandleFunc("/api/dashboard/charts", s.handleDashboardCharts)
	mux.HandleFunc("/api/sensor/", s.handleSensorUpdate)
	mux.HandleFunc("/api/settings/", s.handleSettings)
	mux.HandleFunc("/api/relayout/", s.handleRelayout)
	mux.HandleFunc("/api/export", s.handleExport)

	mux.HandleFunc("/healthz", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	mux.Handle("/static/", http.FileServer(http.FS(staticFS)))
	return mux
}

// Start runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("dashboard listening", "addr", s.addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed, closing", "error", err)
		return s.server.Close()
	}
	logger.Info("dashboard stopped")
	return nil
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
