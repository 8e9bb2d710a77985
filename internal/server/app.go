// Package server wires configuration, storage, the dataset loader and the
// chatbot into the HTTP server and runs it until a termination signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/aqidash/internal/chatbot"
	"github.com/dmitrijs2005/aqidash/internal/common"
	"github.com/dmitrijs2005/aqidash/internal/dataset"
	"github.com/dmitrijs2005/aqidash/internal/logging"
	"github.com/dmitrijs2005/aqidash/internal/server/config"
	"github.com/dmitrijs2005/aqidash/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/aqidash/internal/server/services"
	"github.com/dmitrijs2005/aqidash/internal/server/sessions"
	"github.com/dmitrijs2005/aqidash/internal/server/web"
)

var (
	openPostgres = func(ctx context.Context, dsn string) (*sql.DB, repomanager.RepositoryManager, error) {
		return repomanager.OpenPostgres(ctx, dsn)
	}

	logOutput io.Writer = os.Stdout
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *web.HTTPServer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger, err := logging.New(c.LogFormat, logOutput)
	if err != nil {
		return nil, err
	}

	if c.SecretKey == "" {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("secret key: %w", err)
		}
		c.SecretKey = key
		logger.Warn(ctx, "no secret key configured, sessions will not survive a restart")
	}

	var (
		db *sql.DB
		m  repomanager.RepositoryManager
	)
	if c.DatabaseDSN != "" {
		db, m, err = openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		logger.Info(ctx, "using PostgreSQL credential store")
	} else {
		m = repomanager.NewMemoryRepositoryManager()
		logger.Info(ctx, "using in-memory credential store")
	}

	chat, err := chatbot.Load(c.ChatRepliesPath)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	loader := dataset.NewLoader(c.DatasetPath, dataset.S3Options{
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		User:         c.S3RootUser,
		Password:     c.S3RootPassword,
	})

	as := services.NewAuthService(db, m, c)
	store := sessions.NewStore(c.MaxSessions, c.SessionValidityDuration)

	srv, err := web.NewHTTPServer(c, logger, as, store, loader, chat)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
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

// Run blocks until ctx is cancelled, a termination signal arrives or the
// server fails, then releases the database and flushes the logger.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "dataset", app.config.DatasetPath)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	closeDB(app.db)

	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	app.logger.Info(context.Background(), "App stopped")
}
