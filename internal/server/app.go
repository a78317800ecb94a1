// Package server wires configuration, storage and the HTTP API into a
// runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/config"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"

	hs "github.com/dmitrijs2005/userkeeper/internal/server/http"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// ginMode keeps gin's debug output for debug logging only.
func ginMode(logLevel string) string {
	if logging.ParseLevel(logLevel) <= slog.LevelDebug {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, logging.ParseLevel(c.LogLevel))
	gin.SetMode(ginMode(c.LogLevel))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: repomanager.NewPostgresRepositoryManager(),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) newHTTPServer() *hs.HTTPServer {
	users := services.NewUserService(app.db, app.repomanager, auth.NewBcryptHasher(app.config.BcryptCost), app.logger)
	tokens := auth.NewTokenService([]byte(app.config.SecretKey))
	login := auth.NewAuthenticator(users, auth.NewBcryptHasher(app.config.BcryptCost), tokens, app.config.TokenValidityDuration)

	return hs.NewHTTPServer(hs.ServerConfig{
		Address:           app.config.EndpointAddrHTTP,
		LoginRateLimitRPM: app.config.LoginRateLimitRPM,
		ShutdownTimeout:   app.config.ShutdownTimeout,
		TrustedProxies:    app.config.TrustedProxies,
	}, app.logger, users, login, tokens)
}

// Run migrates the schema and serves HTTP until ctx is cancelled or a
// termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	if err := app.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	if err := app.newHTTPServer().Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
