// Package server serves the catalog page, the JSON API, and the admin
// write-back surface.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"plycat/internal/admin"
	"plycat/internal/config"
	"plycat/internal/source"
	"plycat/pkg/catalog"
	"plycat/pkg/catalog/models"
)

// Server holds the in-memory catalog snapshot and the HTTP surface over it.
type Server struct {
	cfg   config.Config
	log   *zap.Logger
	src   source.Source
	admin *admin.Client
	tmpl  *template.Template

	mu        sync.RWMutex
	cat       *models.Catalog
	refreshed time.Time
	lastErr   error
}

// New wires a Server from the configuration.
func New(cfg config.Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	src, err := source.FromConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse catalog template: %w", err)
	}
	return &Server{
		cfg:   cfg,
		log:   log,
		src:   src,
		admin: admin.NewClient(cfg.Admin, log),
		tmpl:  tmpl,
		cat:   &models.Catalog{},
	}, nil
}

// Run serves until ctx is done. The catalog is loaded once up front, then
// refreshed on the configured schedule; a failed refresh keeps the last
// good snapshot.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("initial catalog load failed, serving empty catalog", zap.Error(err))
	}

	if s.cfg.Server.RefreshSchedule != "" {
		c := cron.New()
		_, err := c.AddFunc(s.cfg.Server.RefreshSchedule, func() {
			if err := s.Refresh(context.Background()); err != nil {
				s.log.Warn("scheduled catalog refresh failed", zap.Error(err))
			}
		})
		if err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", s.cfg.Server.RefreshSchedule, err)
		}
		c.Start()
		defer c.Stop()
	}

	if fs, ok := s.src.(*source.FileSource); ok && s.cfg.Source.Watch {
		err := fs.Watch(ctx, func() {
			if err := s.Refresh(context.Background()); err != nil {
				s.log.Warn("catalog reload failed", zap.Error(err))
			}
		})
		if err != nil {
			return err
		}
	}

	httpServer := &http.Server{
		Addr:    s.cfg.Server.Listen,
		Handler: s.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("catalog server listening",
			zap.String("addr", s.cfg.Server.Listen),
			zap.String("source", s.src.Describe()))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Routes builds the HTTP mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /api/products", s.handleProducts)
	mux.HandleFunc("GET /api/products/all", s.handleAllProducts)
	mux.HandleFunc("POST /admin/api/rows", s.handleAppendRow)
	mux.HandleFunc("PUT /admin/api/rows/{id}", s.handleUpdateRow)
	mux.HandleFunc("DELETE /admin/api/rows/{id}", s.handleDeleteRow)
	return mux
}

// Refresh loads the source and swaps the snapshot. Hidden rows are kept in
// the snapshot; visibility filtering happens per surface.
func (s *Server) Refresh(ctx context.Context) error {
	data, err := s.src.Load(ctx)
	if err != nil {
		s.setErr(err)
		return err
	}

	include := true
	cat, err := catalog.Load(data, catalog.Options{
		Format:        s.src.Format(),
		IncludeHidden: &include,
	})
	if err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	s.cat = cat
	s.refreshed = time.Now()
	s.lastErr = nil
	s.mu.Unlock()

	s.log.Info("catalog refreshed",
		zap.Int("rows", len(cat.Table.Records)),
		zap.Int("products", len(cat.Products)))
	return nil
}

func (s *Server) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Server) snapshot() (*models.Catalog, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat, s.refreshed
}
