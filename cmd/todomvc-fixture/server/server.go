// Package server provides an importable HTTP server hosting a TodoMVC
// application. E2E tests start and stop it programmatically so the suites
// have a deterministic target without depending on a public deployment.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pion/logging"

	"github.com/thesyncim/todomvc-e2e/internal/logger"
)

// Config holds server configuration options.
type Config struct {
	Addr         string        // Listen address (e.g., ":8080" or ":0" for random port)
	ReadTimeout  time.Duration // HTTP read timeout
	WriteTimeout time.Duration // HTTP write timeout

	// LoggerFactory receives request and lifecycle logs. Nil discards them.
	LoggerFactory logging.LoggerFactory
}

// DefaultConfig returns a configuration suitable for testing.
// Uses ":0" to bind to a random available port.
func DefaultConfig() Config {
	return Config{
		Addr:         ":0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server serves the TodoMVC fixture application.
//
// A Server may be started again after Shutdown; each Start serves on a fresh
// http.Server.
type Server struct {
	cfg        Config
	handler    http.Handler
	httpServer *http.Server
	log        logging.LeveledLogger
	addr       string
	mu         sync.Mutex
	running    bool
}

// NewServer creates a new server with the given configuration.
// The server is not started until Start() is called.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Addr == "" {
		return nil, errors.New("server: empty listen address")
	}
	f := cfg.LoggerFactory
	if f == nil {
		f = logger.Discard()
	}
	log := f.NewLogger(logger.ScopeFixture)

	return &Server{
		cfg:     cfg,
		handler: NewRouter(log),
		log:     log,
	}, nil
}

// Start begins listening and serving HTTP requests.
// Returns the actual address the server is listening on (useful when port is 0).
// This method is non-blocking - the server runs in a goroutine.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s.addr, nil
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	// http.Server cannot Serve again once shut down.
	hs := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	s.httpServer = hs
	s.addr = ln.Addr().String()
	s.running = true
	s.log.Infof("serving TodoMVC on %s", s.addr)

	go func() {
		if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("serve: %v", err)
		}
	}()

	return s.addr, nil
}

// URL returns the application URL for the running server, using the
// loopback host when the listener is bound to every interface.
func (s *Server) URL() string {
	addr := s.Addr()
	if addr == "" {
		return ""
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + "/#/"
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/#/"
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	s.addr = ""
	s.log.Info("shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
// Returns empty string if server is not running.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}
