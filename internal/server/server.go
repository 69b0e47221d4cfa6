package server

import (
	"context"
	"net/http"
	"time"

	"github.com/mindmosaic/backend/internal/auth"
	"github.com/mindmosaic/backend/internal/config"
	"github.com/mindmosaic/backend/internal/http/handlers"
	"github.com/mindmosaic/backend/internal/middleware"
	"github.com/mindmosaic/backend/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// Stores groups the persistence handles the handlers need.
type Stores struct {
	Users storage.UserStore
	Posts storage.PostStore
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, stores Stores) *Server {
	mux := http.NewServeMux()

	health := handlers.NewHealthHandler(time.Now())
	health.Register(mux)

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authHandler := handlers.NewAuthHandler(stores.Users, tokenManager)
	authHandler.Register(mux)
	postsHandler := handlers.NewPostsHandler(stores.Posts, tokenManager)
	postsHandler.Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
