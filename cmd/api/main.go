package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"researchpub/internal/config"
	"researchpub/internal/hook"
	"researchpub/internal/logging"
	"researchpub/internal/plugin"
	"researchpub/internal/publication"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load(config.FilePath())
	if err != nil {
		fatal("config", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("config", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fatal("logger", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := openDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("cannot open database", zap.String("dsn", redactDSN(cfg.DB.DSN)), zap.Error(err))
	}
	defer dbPool.Close()
	logger.Info("database connection OK")

	hooks := hook.NewRegistry()
	cfg.InstallLabels(hooks)

	host := plugin.NewRegistry()
	p := plugin.New(hooks)
	if err := p.Init(host); err != nil {
		logger.Fatal("plugin init", zap.Error(err))
	}
	if err := p.Activate(host); err != nil {
		logger.Fatal("plugin activate", zap.Error(err))
	}
	defer p.Deactivate(host)

	group := p.FieldGroup()
	repo := publication.NewPostgresRepo(dbPool, cfg.DB.Timeout, group)
	renderer := publication.NewRenderer(repo, hooks)
	service := publication.NewService(repo, renderer, group)

	handler := newRouter(ctx, cfg, logger, routes{
		publications: publication.NewHTTPHandler(service, host),
		registry:     plugin.NewHTTPHandler(host),
		ready: func(ctx context.Context) error {
			return dbPool.Ping(ctx)
		},
	})

	httpServer := &http.Server{
		Addr:         cfg.App.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("addr", cfg.App.Addr))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func fatal(what string, err error) {
	_, _ = os.Stderr.WriteString(what + ": " + err.Error() + "\n")
	os.Exit(1)
}

func openDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
