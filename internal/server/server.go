// Package server serves the built portfolio site and generates résumés on
// request.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	cvpdf "github.com/jason7337/go-cvpdf"
	"github.com/jason7337/go-cvpdf/internal/resume"
)

// Server timeouts. Generation runs inside the handler, so there is no
// write timeout.
const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 2 * time.Second
)

// DefaultShutdownTimeout bounds graceful shutdown when Config leaves it zero.
const DefaultShutdownTimeout = 10 * time.Second

// Sentinel errors for server construction.
var (
	ErrNoGenerator = errors.New("server: generator is required")
	ErrNoCatalog   = errors.New("server: catalog is required")
)

// Generator renders the résumé for a catalog language.
type Generator interface {
	Generate(ctx context.Context, lang string) (*cvpdf.Result, error)
}

// Config holds server dependencies and settings.
type Config struct {
	Addr            string
	DistDir         string // Built site: index.html, assets/, images/
	Name            string // Reported by health probes on /
	ShutdownTimeout time.Duration
	Catalog         *resume.Catalog
	Generator       Generator
	Logger          *zap.Logger
	Now             func() time.Time
}

// Server is the HTTP front end.
type Server struct {
	cfg     Config
	engine  *gin.Engine
	log     *zap.Logger
	now     func() time.Time
	started time.Time
	flight  singleflight.Group
}

// New builds the router. It does not start listening.
func New(cfg Config) (*Server, error) {
	if cfg.Generator == nil {
		return nil, ErrNoGenerator
	}
	if cfg.Catalog == nil {
		return nil, ErrNoCatalog
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	s := &Server{
		cfg:     cfg,
		log:     cfg.Logger,
		now:     cfg.Now,
		started: cfg.Now(),
	}
	s.engine = s.routes()
	return s, nil
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(recovery(s.log), requestLogger(s.log), securityHeaders())

	r.GET("/health", s.health)
	r.GET("/api/cv", s.cv)
	r.GET("/", s.root)

	dist := s.cfg.DistDir
	assets := r.Group("/assets", cacheFor("public, max-age=31536000, immutable"))
	assets.Static("/", filepath.Join(dist, "assets"))
	images := r.Group("/images", cacheFor("public, max-age=86400"))
	images.Static("/", filepath.Join(dist, "images"))

	r.NoRoute(s.fallback)
	return r
}

// Run listens on cfg.Addr until ctx is cancelled, then shuts down and waits
// up to ShutdownTimeout for in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	s.checkBuild()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("dist", s.cfg.DistDir),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listening on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down", zap.Duration("timeout", s.cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("server shutdown failed", zap.Error(err))
	}

	if err := <-errCh; err != nil {
		return err
	}
	s.log.Info("shutdown complete")
	return nil
}

// checkBuild logs whether the site build is present.
func (s *Server) checkBuild() {
	info, err := os.Stat(s.indexPath())
	if err != nil {
		s.log.Warn("site build missing, pages will fail until it exists",
			zap.String("index", s.indexPath()),
		)
		return
	}
	s.log.Info("site build verified", zap.Int64("index_bytes", info.Size()))
}

func (s *Server) indexPath() string {
	return filepath.Join(s.cfg.DistDir, "index.html")
}
