// Package app wires configuration, the database connection and the HTTP
// pipeline into one runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seoforge/seo-api/config"
	"github.com/seoforge/seo-api/database"
	"github.com/seoforge/seo-api/handlers"
	"github.com/seoforge/seo-api/routes"
)

const shutdownTimeout = 10 * time.Second

type Application struct {
	Echo *echo.Echo
	cfg  config.Config
	conn *database.Connection
}

// New builds the server with the default article and seo modules.
func New(cfg config.Config, conn *database.Connection) *Application {
	return NewWithModules(cfg, conn, handlers.NewArticles(cfg, conn), handlers.NewSEO(conn))
}

// NewWithModules registers all middleware and routes before returning, so
// nothing is served until the pipeline is complete.
func NewWithModules(cfg config.Config, conn *database.Connection, articles, seo routes.Module) *Application {
	e := echo.New()
	e.HideBanner = true

	// CORS must be the FIRST middleware to handle preflight OPTIONS requests
	routes.ConfigureCORS(e)
	routes.ConfigureMiddleware(e, cfg.BodyLimit)
	routes.RegisterRoutes(e, articles, seo)

	return &Application{Echo: e, cfg: cfg, conn: conn}
}

// Run binds the port, starts the database attempt and serves until ctx is
// cancelled. A bind failure is returned immediately; database failures are
// only logged.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to bind port %d: %w", a.cfg.Port, err)
	}
	a.Echo.Listener = ln

	dbName := database.DatabaseName(a.cfg.MongodbUri, a.cfg.MongodbDatabase)
	dbDone, err := a.conn.Start(ctx, a.cfg.MongodbUri, dbName)
	if err != nil {
		log.Printf("⚠️  Database connection not started: %v", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- a.Echo.Start(ln.Addr().String())
	}()
	log.Printf("🚀 Server listening on port %d", ln.Addr().(*net.TCPAddr).Port)

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Println("🛑 Shutting down server")
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if dbDone != nil {
		select {
		case <-dbDone:
		case <-shutdownCtx.Done():
			log.Println("⚠️  Database attempt still running at shutdown")
		}
	}
	if err := a.conn.Close(shutdownCtx); err != nil {
		log.Printf("⚠️  Failed to disconnect MongoDB: %v", err)
	}
	return nil
}
