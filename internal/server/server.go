package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/smart-kitchen/backend/config"
	"github.com/pageza/smart-kitchen/backend/internal/logger"
	"github.com/pageza/smart-kitchen/backend/internal/service"
)

// pruneInterval is how often idle sessions are dropped.
const pruneInterval = 10 * time.Minute

// Server represents the HTTP server
type Server struct {
	http     *http.Server
	sessions *service.SessionStore
	maxIdle  time.Duration

	ctx     context.Context
	stop    context.CancelFunc
	done    chan struct{}
	started atomic.Bool
}

// New creates a new server instance. Sessions idle for longer than the
// session token lifetime are pruned while the server runs.
func New(cfg *config.Config, handler http.Handler, sessions *service.SessionStore) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		sessions: sessions,
		maxIdle:  cfg.SessionTTL,
		ctx:      ctx,
		stop:     cancel,
		done:     make(chan struct{}),
	}
}

// Start serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	if s.started.CompareAndSwap(false, true) {
		go s.pruneSessions(s.ctx)
	}

	logger.L().Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.stop()
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and the pruning loop
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.stop()
	if s.started.Load() {
		<-s.done
	}
	return err
}

func (s *Server) pruneSessions(ctx context.Context) {
	defer close(s.done)
	if s.sessions == nil || s.maxIdle <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Prune(s.maxIdle); n > 0 {
				logger.L().Info("pruned idle sessions", zap.Int("removed", n), zap.Int("remaining", s.sessions.Len()))
			}
		}
	}
}
