package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bryanwahyu/checkops/internal/application"
	"github.com/bryanwahyu/checkops/internal/application/console"
	"github.com/bryanwahyu/checkops/internal/application/dashboard"
	"github.com/bryanwahyu/checkops/internal/application/uploads"
	"github.com/bryanwahyu/checkops/internal/config"
	"github.com/bryanwahyu/checkops/internal/domain/query"
	"github.com/bryanwahyu/checkops/internal/domain/screening"
	rediscache "github.com/bryanwahyu/checkops/internal/infra/cache/redis"
	mysqlp "github.com/bryanwahyu/checkops/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/checkops/internal/infra/db/postgres"
	"github.com/bryanwahyu/checkops/internal/infra/httpserver"
	"github.com/bryanwahyu/checkops/internal/infra/memory"
	minioStore "github.com/bryanwahyu/checkops/internal/infra/storage"
	"github.com/bryanwahyu/checkops/internal/logger"
	"github.com/bryanwahyu/checkops/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	lg, err := logger.NewStructured(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	if err := run(cfg, lg); err != nil {
		lg.WithError(err).Error("server stopped", nil)
		_ = lg.Sync()
		os.Exit(1)
	}
	_ = lg.Sync()
}

func run(cfg *config.Config, lg logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := memory.DefaultSeed()
	store := memory.NewStore(seed)
	checkers := map[string]middleware.HealthChecker{}

	history, closeHistory, err := openHistory(ctx, cfg, seed)
	if err != nil {
		return err
	}
	defer closeHistory()
	checkers["history"] = middleware.CheckFunc(history.Ping)

	var cache screening.RecommendationCache = memory.NewRecommendationCache()
	if cfg.Cache.Driver == "redis" {
		rc := rediscache.New(rediscache.Options{
			Address:  cfg.Cache.Address,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer rc.Close()
		if err := rc.Check(ctx); err != nil {
			lg.WithError(err).Warn("redis not reachable, recommendations will be rebuilt per request", map[string]any{"address": cfg.Cache.Address})
		}
		cache = rc
		checkers["cache"] = rc
	}

	up := &uploads.Service{Clock: application.SystemClock{}}
	if cfg.MinioEnabled() {
		ms, err := minioStore.New(ctx, minioStore.Options{
			Endpoint:   cfg.Minio.Endpoint,
			Region:     cfg.Minio.Region,
			BucketName: cfg.Minio.BucketName,
			AccessKey:  cfg.Minio.AccessKey,
			SecretKey:  cfg.Minio.SecretKey,
			UseSSL:     cfg.Minio.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("minio init: %w", err)
		}
		up.Store = ms
		checkers["storage"] = ms
	} else {
		lg.Info("minio not configured, uploads disabled", nil)
	}

	engineOpts := []query.Option{query.WithLocation(cfg.Location())}
	if cfg.Console.TimeLayout != "" {
		engineOpts = append(engineOpts, query.WithTimeLayout(cfg.Console.TimeLayout))
	}

	dash := &dashboard.Service{
		Provider:    store,
		Applicants:  store,
		History:     history,
		Cache:       cache,
		Clock:       application.SystemClock{},
		Logger:      lg.With(map[string]any{"component": "dashboard"}),
		CacheTTL:    cfg.Cache.TTL,
		DefaultUser: cfg.Console.DefaultUser,
	}
	metrics := middleware.NewMetrics()
	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.RefillRate)
	defer limiter.Stop()

	handler := httpserver.NewRouter(httpserver.Services{
		Dashboard: dash,
		Console: &console.Service{
			Provider: store,
			Engine:   query.NewEngine(engineOpts...),
			Recorder: dash,
			Observer: metrics,
			Clock:    application.SystemClock{},
			Logger:   lg.With(map[string]any{"component": "console"}),
		},
		Uploads: up,
	}, httpserver.Options{
		Logger:         lg,
		Metrics:        metrics,
		RateLimiter:    limiter,
		HealthCheckers: checkers,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DefaultUser:    cfg.Console.DefaultUser,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server listening", map[string]any{"addr": addr, "history": cfg.History.Driver, "cache": cfg.Cache.Driver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openHistory selects the history backend; memory is the default.
func openHistory(ctx context.Context, cfg *config.Config, seed memory.Seed) (screening.HistoryRepository, func(), error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.History.Driver {
	case "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("mysql connect: %w", err)
		}
		return mysqlp.NewHistoryRepository(db), func() { db.Close() }, nil
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		return postgresp.NewHistoryRepository(db), func() { db.Close() }, nil
	default:
		return memory.NewHistoryStore(seed.History), func() {}, nil
	}
}
