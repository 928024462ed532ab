// Package server initializes and runs the main application server.
// It opens the database, applies migrations, bootstraps the ops account,
// and starts the HTTP server, shutting everything down gracefully.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/docshare/internal/logging"
	"github.com/dmitrijs2005/docshare/internal/server/config"
	"github.com/dmitrijs2005/docshare/internal/server/httpapi"
	"github.com/dmitrijs2005/docshare/internal/server/mail"
	"github.com/dmitrijs2005/docshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/docshare/internal/server/services"
	"github.com/dmitrijs2005/docshare/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	blobs, err := storage.NewS3BlobStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	notifier := mail.NewSMTPNotifier(c)

	us := services.NewUserService(db, rm, notifier, logger, c)
	fs := services.NewFileService(db, rm, blobs)
	ds := services.NewDownloadService(db, rm, c)

	if err := us.EnsureOpsUser(ctx, c.OpsEmail, []byte(c.OpsPassword)); err != nil {
		return nil, fmt.Errorf("ops user bootstrap error: %w", err)
	}

	srv := httpapi.NewServer(c.EndpointAddrHTTP, logger, us, fs, ds)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close error", "error", err.Error())
	}
}
