package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"noticeboard/internal/config"
	"noticeboard/internal/content"
	"noticeboard/internal/db"
	"noticeboard/internal/logger"
	"noticeboard/internal/metrics"
	"noticeboard/internal/notify"
	"noticeboard/internal/router"
	"noticeboard/internal/session"
	"noticeboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	m := metrics.New("noticeboard")

	kv, closeKV, err := openStorage(cfg, zlog)
	if err != nil {
		return err
	}
	defer closeKV()

	dir, err := session.NewDirectory(session.SeedCredentials(), cfg.BcryptCost, m)
	if err != nil {
		return err
	}

	sessionOpts := session.Options{Logger: zlog.Named("session"), Metrics: m}
	contentOpts := content.Options{
		SearchCacheSize: cfg.SearchCacheSize,
		Notifier:        notify.NewLogger(zlog.Named("notify")),
		Logger:          zlog.Named("content"),
		Metrics:         m,
	}
	if cfg.SimulateLatency {
		sessionOpts.Latency = session.DefaultLatency
		contentOpts.Latency = content.DefaultLatency
		contentOpts.LikeLatency = content.DefaultLikeLatency
	}

	posts, err := content.New(kv, session.ContextActor{}, contentOpts)
	if err != nil {
		return err
	}

	// Pages render a loading state until the collection is ready.
	loadErr := make(chan error, 1)
	go func() {
		loadErr <- posts.Load(context.Background())
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := router.NewEngine(router.Deps{
		Directory:      dir,
		Posts:          posts,
		SessionOptions: sessionOpts,
		Metrics:        m,
		Logger:         zlog,
		SessionSecret:  cfg.SessionSecret,
		SecureCookie:   cfg.IsProduction(),
		TemplatesDir:   cfg.TemplatesDir,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("notice board server starting", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	return supervise(srv, zlog, errCh, loadErr, quit)
}

// supervise blocks until the server fails, the posts fail to load, or a stop signal arrives.
func supervise(srv *http.Server, zlog *zap.Logger, errCh, loadErr <-chan error, quit <-chan os.Signal) error {
	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return err
			}
			return nil
		case err := <-loadErr:
			if err != nil {
				_ = shutdown(srv, zlog)
				return fmt.Errorf("load posts: %w", err)
			}
			// loaded; stop watching
			loadErr = nil
		case <-quit:
			return shutdown(srv, zlog)
		}
	}
}

func shutdown(srv *http.Server, zlog *zap.Logger) error {
	zlog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// openStorage picks the backend holding the shared posts collection.
func openStorage(cfg *config.Config, zlog *zap.Logger) (storage.KV, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverRedis:
		kv, err := storage.NewRedisKV(cfg.RedisURL, "noticeboard:", zlog)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { _ = kv.Close() }, nil
	case config.DriverPostgres:
		conn, err := db.Open(cfg.DatabaseURL, zlog)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := conn.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return storage.NewGormKV(conn), closeFn, nil
	case config.DriverMemory:
		return storage.NewMemoryKV(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
