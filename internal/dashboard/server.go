// Package dashboard serves the action views of the latest snapshot as JSON
// and pushes snapshot changes over server-sent events.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/threadline/internal/config"
	"github.com/zulandar/threadline/internal/reportactions"
	"github.com/zulandar/threadline/internal/store"
	"gorm.io/gorm"
)

// StartOpts holds configuration for the view server.
type StartOpts struct {
	DB     *gorm.DB
	Config *config.Config
	Port   int
	Out    io.Writer
}

// Start loads the first snapshot and launches the HTTP server. It blocks
// until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("dashboard: db is required")
	}
	if opts.Config == nil {
		return fmt.Errorf("dashboard: config is required")
	}
	if opts.Port <= 0 {
		opts.Port = opts.Config.Server.Port
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	s := NewServer(opts.DB, opts.Config)
	if _, err := s.Refresh(); err != nil {
		return fmt.Errorf("dashboard: initial load: %w", err)
	}
	if err := s.startRefresh(ctx, opts.Config.Server.Refresh); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: s.Router(),
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Threadline serving snapshot %s at http://localhost:%d\n", s.Snapshot().Version, opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

type viewKey struct {
	reportID string
	version  string
	view     string
}

// Server holds the current snapshot and the views derived from it. Views
// are memoized per (report, snapshot version, view) and dropped whenever a
// new snapshot is installed.
type Server struct {
	db  *gorm.DB
	cfg *config.Config

	mu    sync.RWMutex
	snap  *reportactions.Snapshot
	views map[viewKey]any
}

// NewServer returns a server with no snapshot loaded.
func NewServer(db *gorm.DB, cfg *config.Config) *Server {
	return &Server{db: db, cfg: cfg, views: make(map[viewKey]any)}
}

// Router builds the gin engine serving s.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	registerRoutes(router, s)
	return router
}

// Snapshot returns the snapshot currently being served, or nil.
func (s *Server) Snapshot() *reportactions.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// SetSnapshot installs snap and drops every memoized view.
func (s *Server) SetSnapshot(snap *reportactions.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.views = make(map[viewKey]any)
}

// Refresh reloads the snapshot when the stored data changed. It reports
// whether a new snapshot was installed.
func (s *Server) Refresh() (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("dashboard: db is required")
	}
	version, err := store.Version(s.db)
	if err != nil {
		return false, err
	}
	if cur := s.Snapshot(); cur != nil && cur.Version == version {
		return false, nil
	}
	snap, err := store.Load(s.db, s.cfg)
	if err != nil {
		return false, err
	}
	s.SetSnapshot(snap)
	log.Printf("dashboard: loaded snapshot %s (%d reports)", snap.Version, len(snap.Reports))
	return true, nil
}

// memo returns the cached view for key, building it from snap on a miss.
// A view built from a snapshot that was replaced meanwhile is returned but
// not cached.
func (s *Server) memo(snap *reportactions.Snapshot, reportID, view string, build func() any) any {
	key := viewKey{reportID: reportID, version: snap.Version, view: view}

	s.mu.RLock()
	v, ok := s.views[key]
	s.mu.RUnlock()
	if ok {
		return v
	}

	v = build()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == snap {
		s.views[key] = v
	}
	return v
}

func (s *Server) cachedViews() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.views)
}
