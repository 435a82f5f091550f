// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the pipeline over HTTP. Every task is a POST of a
// JSON object to "/" whose "task" field selects the stage.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/pdiddy/content-engine/internal/credstore"
	"github.com/pdiddy/content-engine/internal/pipeline"
	"github.com/pdiddy/content-engine/internal/provider"
	"github.com/pdiddy/content-engine/pkg/types"
)

// maxBodyBytes bounds a task request body.
const maxBodyBytes = 1 << 20

// Runner executes a pipeline task.
type Runner interface {
	Execute(ctx context.Context, req types.TaskRequest) (any, error)
}

// Authenticator checks login credentials.
type Authenticator interface {
	CheckLogin(ctx context.Context, username, password string) error
}

// Server is the HTTP front end of the pipeline.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	runner     Runner
	auth       Authenticator
	cfg        types.ServerConfig
	log        zerolog.Logger
}

// New builds a server. auth may be nil, in which case login requests fail.
func New(runner Runner, auth Authenticator, cfg types.ServerConfig, log zerolog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		runner: runner,
		auth:   auth,
		cfg:    cfg,
		log:    log,
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	s.router.Post("/", s.handleTask)
	s.router.Options("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("starting HTTP server")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return <-errCh
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	var req types.TaskRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Task == types.TaskLogin {
		s.handleLogin(w, r, req)
		return
	}

	res, err := s.runner.Execute(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		ev := log.Error()
		if status < http.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Err(err).Str("task", req.Task).Int("status", status).Msg("task failed")
		writeError(w, status, errorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, req types.TaskRequest) {
	if s.auth == nil {
		writeError(w, http.StatusServiceUnavailable, "login is not configured")
		return
	}
	err := s.auth.CheckLogin(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		zerolog.Ctx(r.Context()).Info().Str("user", req.Username).Msg("login succeeded")
		writeJSON(w, http.StatusOK, types.LoginResult{Success: true})
	case errors.Is(err, credstore.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, credstore.ErrUnknownUser), errors.Is(err, credstore.ErrWrongPassword):
		zerolog.Ctx(r.Context()).Warn().Str("user", req.Username).Err(err).Msg("login rejected")
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("login check failed")
		writeError(w, http.StatusInternalServerError, "login check failed")
	}
}

// statusFor maps a pipeline error to an HTTP status.
func statusFor(err error) int {
	var inErr *pipeline.InputError
	switch {
	case errors.As(err, &inErr),
		errors.Is(err, pipeline.ErrUnknownTask),
		errors.Is(err, provider.ErrUnknownProvider):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	if errors.Is(err, pipeline.ErrUnknownTask) {
		return "unknown task"
	}
	return err.Error()
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
