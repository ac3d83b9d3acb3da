// Package dashboard serves the invoice status dashboard over HTTP.
package dashboard

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/sheet"
)

//go:embed templates/*.html
var templateFS embed.FS

// Source provides the workbook snapshot.
type Source interface {
	Table() (*sheet.Table, error)
	Reload() (*sheet.Table, error)
}

// RequestObserver records handled requests.
type RequestObserver interface {
	ObserveRequest(route string, status int, elapsed time.Duration)
}

// Options configure a Server.
type Options struct {
	// Gatherer backs /metrics. The endpoint is not registered when nil.
	Gatherer prometheus.Gatherer
	// Requests is told about every request when set.
	Requests RequestObserver
	// FileName is the workbook name shown in messages.
	FileName string
}

// Server is the dashboard HTTP server.
type Server struct {
	source   Source
	requests RequestObserver
	engine   *gin.Engine
	fileName string
}

// New builds the server and its routes.
func New(source Source, opts Options) (*Server, error) {
	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)

	s := &Server{
		source:   source,
		requests: opts.Requests,
		engine:   engine,
		fileName: opts.FileName,
	}

	engine.Use(gin.Recovery(), s.logRequests())
	s.routes(opts.Gatherer)

	return s, nil
}

func (s *Server) routes(gatherer prometheus.Gatherer) {
	s.engine.GET("/", s.handleDashboard)
	s.engine.GET("/charts/status", s.handleStatusChart)
	s.engine.GET("/charts/category", s.handleCategoryChart)
	s.engine.GET("/charts/progress", s.handleProgressChart)
	s.engine.GET("/api/summary", s.handleSummary)
	s.engine.POST("/reload", s.handleReload)
	s.engine.GET("/healthz", s.handleHealth)

	if gatherer != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Dashboard listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dashboard server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down dashboard: %w", err)
	}
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()

		if s.requests != nil {
			s.requests.ObserveRequest(route, status, elapsed)
		}

		level := slog.LevelDebug
		if status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		slog.Log(c.Request.Context(), level, "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"elapsed", elapsed)
	}
}
