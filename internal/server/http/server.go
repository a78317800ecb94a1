// Package http exposes the user directory over a REST API built on gin.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type UserDirectory interface {
	Register(ctx context.Context, r services.Registration) (*models.User, error)
	GetByPublicID(ctx context.Context, publicID string) (*models.User, error)
	Update(ctx context.Context, publicID string, u services.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, publicID string) error
	List(ctx context.Context, page, pageSize int) ([]*models.User, error)
}

type LoginFlow interface {
	Login(ctx context.Context, email, password string) (token string, publicID string, err error)
}

type TokenVerifier interface {
	Verify(token string) (string, error)
}

// ServerConfig configures the HTTP server. Only TrustedProxies may set the
// client IP through X-Forwarded-For; nil trusts no proxy.
type ServerConfig struct {
	Address           string
	LoginRateLimitRPM int
	ShutdownTimeout   time.Duration
	TrustedProxies    []string
}

type HTTPServer struct {
	config  ServerConfig
	logger  logging.Logger
	users   UserDirectory
	login   LoginFlow
	tokens  TokenVerifier
	limiter *RateLimiter
	engine  *gin.Engine
}

func NewHTTPServer(cfg ServerConfig, l logging.Logger, users UserDirectory, login LoginFlow, tokens TokenVerifier) *HTTPServer {
	s := &HTTPServer{
		config:  cfg,
		logger:  l.With("module", "http_server"),
		users:   users,
		login:   login,
		tokens:  tokens,
		limiter: NewRateLimiter(cfg.LoginRateLimitRPM),
	}
	s.engine = s.newRouter()
	return s
}

// Handler returns the router, for tests and for embedding.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully within
// ShutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		timeout := s.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
