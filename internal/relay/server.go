package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
)

// Server exposes a Hub over HTTP
type Server struct {
	hub  *Hub
	addr string
	srv  *http.Server
}

// NewServer creates a relay server listening on 127.0.0.1:port
func NewServer(port int, hub *Hub) *Server {
	s := &Server{
		hub:  hub,
		addr: fmt.Sprintf("127.0.0.1:%d", port),
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/health", s.handleHealth)
	s.srv = &http.Server{Handler: mux}
	return s
}

// Start listens and serves until Shutdown is called (blocking)
func (s *Server) Start() error {
	ln, err := net.Listen("tcp4", s.addr)
	if err != nil {
		return fmt.Errorf("relay listen on %s: %w", s.addr, err)
	}
	log.Printf("Relay: Serving mouse events on ws://%s/ws", s.addr)

	if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"clients": s.hub.ClientCount(),
		"dropped": s.hub.Dropped(),
	})
}
