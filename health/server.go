package health

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"rolepanel/database"
)

// Server exposes liveness and readiness probes over HTTP.
type Server struct {
	httpServer *http.Server
	db         *database.DB
	ready      atomic.Bool
}

// NewServer creates a health server listening on the given port.
func NewServer(port int, db *database.DB) *Server {
	s := &Server{db: db}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleLiveness)
	mux.HandleFunc("/readyz", s.handleReadiness)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return s
}

// SetReady marks the gateway connection state. Readiness reports
// failure until this is set and the database answers pings.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Start begins serving probes in the background.
func (s *Server) Start() {
	go func() {
		log.Infof("Health server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Health server error: %v", err)
		}
	}()
}

// Shutdown stops the health server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		http.Error(w, "gateway not connected", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.db.Ping(ctx); err != nil {
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
