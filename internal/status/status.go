// Package status exposes liveness and counters over HTTP.
package status

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Metrics are the process counters reported by /status.
type Metrics struct {
	StartedAt time.Time `json:"started_at"`

	CommandsProcessed int `json:"commands_processed"`
	CommandErrors     int `json:"command_errors"`
	GroupsCreated     int `json:"groups_created"`
	GroupsDeleted     int `json:"groups_deleted"`

	LastError   string `json:"last_error,omitempty"`
	LastErrorAt string `json:"last_error_at,omitempty"`
}

// Server tracks metrics and serves them. A nil *Server is a no-op recorder,
// so callers don't have to guard every Note call.
type Server struct {
	mu        sync.RWMutex
	metrics   Metrics
	queueSize func() int
}

// NewServer creates a status server. queueSize reports the pending inbound
// queue and may be nil.
func NewServer(queueSize func() int) *Server {
	return &Server{
		metrics:   Metrics{StartedAt: time.Now().UTC()},
		queueSize: queueSize,
	}
}

// NoteCommand records one processed command and its outcome.
func (s *Server) NoteCommand(err error) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.CommandsProcessed++
	if err != nil {
		s.metrics.CommandErrors++
		s.metrics.LastError = err.Error()
		s.metrics.LastErrorAt = time.Now().UTC().Format(time.RFC3339)
	}
}

// NoteGroupCreated records a successful group creation.
func (s *Server) NoteGroupCreated() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.GroupsCreated++
}

// NoteGroupDeleted records a successful group deletion.
func (s *Server) NoteGroupDeleted() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.GroupsDeleted++
}

// Snapshot returns a copy of the current metrics.
func (s *Server) Snapshot() Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics
}

// Handler returns the HTTP handler with /healthz and /status.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := map[string]any{
			"ok":      true,
			"metrics": s.Snapshot(),
		}
		if s.queueSize != nil {
			body["inbound_queue"] = s.queueSize()
		}
		_ = json.NewEncoder(w).Encode(body)
	})
	return mux
}
