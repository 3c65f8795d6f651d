package main

import (
	"context"
	"errors"
	"flag"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/fluency/internal/cache"
	"github.com/dropDatabas3/fluency/internal/config"
	apphttp "github.com/dropDatabas3/fluency/internal/http"
	"github.com/dropDatabas3/fluency/internal/http/controllers"
	"github.com/dropDatabas3/fluency/internal/http/middlewares"
	"github.com/dropDatabas3/fluency/internal/http/router"
	"github.com/dropDatabas3/fluency/internal/http/services"
	"github.com/dropDatabas3/fluency/internal/observability/logger"
	"github.com/dropDatabas3/fluency/internal/policy"
	"github.com/dropDatabas3/fluency/internal/rate"
	"github.com/dropDatabas3/fluency/internal/store"
	"github.com/dropDatabas3/fluency/internal/store/pg"
	"github.com/dropDatabas3/fluency/internal/token"

	"github.com/jackc/pgx/v5/pgxpool"
	rdb "github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using system environment: %v", err)
	}

	configPath := flag.String("config", "config.yaml", "ruta del archivo de configuración")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ValidateSecret(); err != nil {
		log.Fatal("JWT_SECRET is required; refusing to start")
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "fluency",
	})
	defer func() { _ = logger.Sync() }()
	logg := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ──────────────────────────────────────────────
	// Record store
	// ──────────────────────────────────────────────
	repo, err := store.New(ctx, store.Options{
		Driver: cfg.Storage.Driver,
		DSN:    cfg.Storage.DSN,
		PG: pg.Config{
			MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
			MinIdleConns:    cfg.Storage.Postgres.MinIdleConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		},
	})
	if err != nil {
		logg.Fatal("store init failed", logger.Err(err), logger.Driver(cfg.Storage.Driver))
	}
	defer repo.Close()

	// ──────────────────────────────────────────────
	// Cache (roles)
	// ──────────────────────────────────────────────
	cacheClient, err := cache.New(cache.Config{
		Driver:     cfg.Cache.Kind,
		Addr:       cfg.Cache.Redis.Addr,
		Password:   cfg.Cache.Redis.Password,
		DB:         cfg.Cache.Redis.DB,
		Prefix:     cfg.Cache.Redis.Prefix,
		DefaultTTL: cfg.MemoryCacheTTL(),
	})
	if err != nil {
		logg.Fatal("cache init failed", logger.Err(err), logger.Driver(cfg.Cache.Kind))
	}
	defer func() { _ = cacheClient.Close() }()

	roles := &policy.CachedRoleSource{
		Inner: policy.StoreRoleSource{Users: repo},
		Cache: cacheClient,
		TTL:   cfg.RoleTTL(),
	}

	// ──────────────────────────────────────────────
	// Token codec
	// ──────────────────────────────────────────────
	codec, err := token.New(cfg.JWT.Secret, cfg.AccessTTL())
	if err != nil {
		logg.Fatal("token codec init failed", logger.Err(err))
	}

	// ──────────────────────────────────────────────
	// Services + controllers + router
	// ──────────────────────────────────────────────
	var poolFn func() *pgxpool.Pool
	if pgStore, ok := repo.(*pg.Store); ok {
		poolFn = pgStore.Pool
	}
	metricsHandler, err := middlewares.RegisterMetrics(middlewares.MetricsConfig{Pool: poolFn})
	if err != nil {
		logg.Warn("metrics registration failed", logger.Err(err))
	}

	var tokenLimit middlewares.Middleware
	if cfg.RateLimit.Enabled {
		var limiter rate.Limiter
		if cfg.Cache.Kind == "redis" {
			rc := rdb.NewClient(&rdb.Options{
				Addr:     cfg.Cache.Redis.Addr,
				Password: cfg.Cache.Redis.Password,
				DB:       cfg.Cache.Redis.DB,
			})
			defer func() { _ = rc.Close() }()
			limiter = rate.NewRedisLimiter(rc, "rl:", cfg.RateLimit.Max, cfg.RateWindow())
		} else {
			limiter = rate.NewMemoryLimiter(cfg.RateLimit.Max, cfg.RateWindow())
		}
		tokenLimit = middlewares.WithRateLimit(limiter)
	}

	handler := router.New(router.Deps{
		Codec:              codec,
		Health:             controllers.NewHealthController(repo),
		Tokens:             controllers.NewTokenController(services.NewTokenService(codec)),
		Users:              controllers.NewUsersController(services.NewUsersService(repo, roles)),
		Classes:            controllers.NewClassesController(services.NewClassesService(repo)),
		Cart:               controllers.NewCartController(services.NewCartService(repo)),
		Metrics:            metricsHandler,
		TokenRateLimit:     tokenLimit,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	srv := apphttp.NewServer(cfg.Server.Addr, handler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logg.Info("server listening", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logg.Info("shutting down", logger.Duration(cfg.ShutdownTimeout()))
		return apphttp.Shutdown(srv, cfg.ShutdownTimeout())
	})

	if err := g.Wait(); err != nil {
		logg.Error("server exited with error", logger.Err(err))
		os.Exit(1)
	}
	logg.Info("server stopped")
}
