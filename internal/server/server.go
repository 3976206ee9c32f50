// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeranaias/talentdesk/internal/logging"
	"github.com/jeranaias/talentdesk/internal/storage"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is where the development server listens.
	DefaultAddr = "127.0.0.1:5000"

	// MaxUploadSize bounds one upload request (16 MB).
	// SECURITY: Prevents memory exhaustion from oversized uploads.
	MaxUploadSize = 16 * 1024 * 1024

	// MaxRequestBodySize bounds JSON and form bodies (1 MB).
	MaxRequestBodySize = 1 * 1024 * 1024
)

// ============================================================================
// SERVER
// ============================================================================

// Options configures a Server. Zero values select defaults.
type Options struct {
	// Addr is the listen address for Start.
	Addr string

	// Replier answers chat messages. Defaults to EchoReplier.
	Replier storage.Replier

	// Analyzer scores resumes. Defaults to KeywordAnalyzer.
	Analyzer Analyzer

	// Now is the clock for timestamps. Defaults to time.Now.
	Now func() time.Time

	// BcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
	BcryptCost int

	// LoginLimiter throttles /login and /register. Defaults to
	// DefaultLoginLimiter.
	LoginLimiter *RateLimiter
}

// Server is the development HTTP server.
type Server struct {
	addr     string
	replier  storage.Replier
	analyzer Analyzer
	now      func() time.Time
	limiter  *RateLimiter

	state   *state
	handler http.Handler

	mu     sync.Mutex
	server *http.Server
}

// NewServer creates a Server with its routes mounted.
func NewServer(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Replier == nil {
		opts.Replier = EchoReplier()
	}
	if opts.Analyzer == nil {
		opts.Analyzer = KeywordAnalyzer{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.LoginLimiter == nil {
		opts.LoginLimiter = DefaultLoginLimiter()
	}

	s := &Server{
		addr:     opts.Addr,
		replier:  opts.Replier,
		analyzer: opts.Analyzer,
		now:      opts.Now,
		limiter:  opts.LoginLimiter,
		state:    newState(opts.Now, opts.BcryptCost),
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(recoverer)
	r.Use(securityHeaders)

	r.Get("/", s.handleIndex)
	r.Get("/logout", s.handleLogout)
	r.Post("/get", s.handleLegacyGet)

	r.Group(func(r chi.Router) {
		r.Use(rateLimit(s.limiter))
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/get-conversations", s.handleListConversations)
		r.Post("/new-conversation", s.handleNewConversation)
		r.Get("/load-conversation/{id}", s.handleLoadConversation)
		r.Post("/send-message", s.handleSendMessage)
		r.Post("/upload-resume", s.handleUploadResume)
		r.Post("/download-csv", s.handleDownloadCSV)
		r.Get("/get-resume-history", s.handleResumeHistory)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start listens on the configured address and serves until Shutdown.
// It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()

	logger().WithField("addr", s.addr).Info("SERVER_START")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	logger().Info("SERVER_SHUTDOWN")
	return srv.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

func logger() *logrus.Entry {
	return logging.For("server")
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger().WithError(err).Warn("failed to encode response")
	}
}

// writeSuccess writes {"success": true} merged with fields.
func writeSuccess(w http.ResponseWriter, fields map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

// writeFailure writes {"success": false, "message": message}.
func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	return json.NewDecoder(r.Body).Decode(v)
}
