// Package httpapi exposes the library service over HTTP with JSON bodies.
package httpapi

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"libraryManagement/internal/auth"
	"libraryManagement/internal/config"
	"libraryManagement/internal/lending"
	"libraryManagement/repository"
)

// Server bundles dependencies for the HTTP handlers.
type Server struct {
	Log     *zap.Logger
	DB      *sql.DB
	Users   *repository.UserRepository
	Books   *repository.BookRepository
	Borrows *repository.BorrowRepository
	Returns *repository.ReturnRepository
	Lending *lending.Service

	JWTSecret string
	TokenTTL  time.Duration
}

// Handler builds the route table. Token-guarded routes run through the auth
// middleware; admin routes additionally re-check the admin flag against the
// account store.
func (s *Server) Handler() http.Handler {
	m := &auth.Middleware{Secret: s.JWTSecret, Users: s.Users}
	guarded := func(h http.HandlerFunc) http.Handler { return m.Authenticate(h) }
	admin := func(h http.HandlerFunc) http.Handler { return m.Authenticate(m.RequireAdmin(h)) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.Handle("GET /books", guarded(s.handleListBooks))
	mux.Handle("POST /books", admin(s.handleCreateBook))
	mux.Handle("PUT /books/{id}", admin(s.handleUpdateBook))
	mux.Handle("GET /users", admin(s.handleListUsers))
	mux.Handle("POST /borrow", guarded(s.handleBorrow))
	mux.Handle("POST /return", guarded(s.handleReturn))
	mux.Handle("GET /loans", guarded(s.handleListLoans))
	mux.Handle("GET /returns", admin(s.handleListReturns))

	if s.Log == nil {
		return mux
	}
	return s.logRequests(mux)
}

// StartHTTP starts the HTTP server on the configured address and returns a
// shutdown function.
func StartHTTP(cfg *config.Config, s *Server) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	addr := cfg.HTTP.Address
	if addr == "" {
		addr = ":3000"
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() { _ = srv.Serve(lis) }()

	return func(ctx context.Context) error {
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.Log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("took", time.Since(start)),
		)
	})
}
