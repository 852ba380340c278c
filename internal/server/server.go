// Package server serves the rendered itinerary page and its data over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexanderramin/tripboard/internal/render"
	"github.com/alexanderramin/tripboard/internal/search"
	"github.com/alexanderramin/tripboard/internal/service"
)

// Options configures a Server.
type Options struct {
	// AllowedOrigins enables CORS for these origins. Empty disables CORS.
	AllowedOrigins []string
	// LoadError is the message shown when the document cannot be loaded.
	LoadError string
}

// state is one successfully rendered version of the document.
type state struct {
	report *service.Report
	html   []byte
	index  *search.Index
	loaded time.Time
}

// Server holds the latest rendered document and swaps it on Reload.
type Server struct {
	trips  service.TripService
	source string
	opts   Options
	logger *zap.Logger
	engine *gin.Engine

	mu      sync.RWMutex
	current *state
	lastErr error
}

func New(trips service.TripService, source string, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		trips:  trips,
		source: source,
		opts:   opts,
		logger: logger.Named("server"),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Reload rebuilds the page from the source. On failure the previous page is
// dropped so clients see the load error rather than stale data.
func (s *Server) Reload(ctx context.Context) error {
	report, err := s.trips.Build(ctx, s.source)
	if err == nil {
		var st *state
		st, err = newState(report)
		if err == nil {
			s.mu.Lock()
			s.current, s.lastErr = st, nil
			s.mu.Unlock()
			s.logger.Info("loaded",
				zap.String("source", s.source),
				zap.Int("days", report.Summary.DayCount),
				zap.Int("findings", len(report.Findings)))
			return nil
		}
	}

	s.mu.Lock()
	s.current, s.lastErr = nil, err
	s.mu.Unlock()
	s.logger.Error("load failed", zap.String("source", s.source), zap.Error(err))
	return err
}

func newState(report *service.Report) (*state, error) {
	var buf bytes.Buffer
	if err := render.Page(&buf, report.Page); err != nil {
		return nil, err
	}
	idx, err := search.NewIndex(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}
	return &state{report: report, html: buf.Bytes(), index: idx, loaded: time.Now().UTC()}, nil
}

func (s *Server) snapshot() (*state, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		err := s.lastErr
		if err == nil {
			err = errors.New("not loaded")
		}
		return nil, err
	}
	return s.current, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), requestLogger(s.logger), gin.Recovery())
	if len(s.opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: s.opts.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Accept", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}
	if err := r.SetTrustedProxies(nil); err != nil {
		s.logger.Warn("setting trusted proxies", zap.Error(err))
	}

	r.GET("/", s.handlePage)
	r.GET("/index.html", s.handlePage)
	r.GET("/data.json", s.handleData)
	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/summary", s.handleSummary)
		api.GET("/search", s.handleSearch)
		api.GET("/findings", s.handleFindings)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "path": c.Request.URL.Path})
	})
	return r
}

func (s *Server) handlePage(c *gin.Context) {
	st, err := s.snapshot()
	if err != nil {
		var buf bytes.Buffer
		if rerr := render.Failure(&buf, s.opts.LoadError); rerr != nil {
			c.String(http.StatusInternalServerError, rerr.Error())
			return
		}
		c.Data(http.StatusServiceUnavailable, "text/html; charset=utf-8", buf.Bytes())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", st.html)
}

func (s *Server) handleData(c *gin.Context) {
	st, err := s.snapshot()
	if err != nil {
		s.unavailable(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", st.report.Raw)
}

func (s *Server) handleSummary(c *gin.Context) {
	st, err := s.snapshot()
	if err != nil {
		s.unavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, st.report.Summary)
}

func (s *Server) handleSearch(c *gin.Context) {
	st, err := s.snapshot()
	if err != nil {
		s.unavailable(c, err)
		return
	}
	q := c.Query("q")
	c.JSON(http.StatusOK, gin.H{"query": q, "matches": st.index.Filter(q)})
}

func (s *Server) handleFindings(c *gin.Context) {
	st, err := s.snapshot()
	if err != nil {
		s.unavailable(c, err)
		return
	}
	msgs := make([]string, 0, len(st.report.Findings))
	for _, f := range st.report.Findings {
		msgs = append(msgs, f.Error())
	}
	c.JSON(http.StatusOK, gin.H{"findings": msgs})
}

func (s *Server) handleHealth(c *gin.Context) {
	st, err := s.snapshot()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"source": s.source,
		"days":   st.report.Summary.DayCount,
		"loaded": st.loaded.Format(time.RFC3339),
	})
}

func (s *Server) unavailable(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": s.loadErrorMessage()})
}

func (s *Server) loadErrorMessage() string {
	if s.opts.LoadError != "" {
		return s.opts.LoadError
	}
	return render.DefaultLoadError
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serving on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
