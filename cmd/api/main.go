package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/routes"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/angelmondragon/storefront/internal/sessions"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/env"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/migrate"
	"github.com/angelmondragon/storefront/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		closers   []func() error
		readiness []controllers.ReadinessCheck
		limiter   redis.RateLimiter
	)
	defer func() {
		var closeErr error
		for i := len(closers) - 1; i >= 0; i-- {
			closeErr = multierr.Append(closeErr, closers[i]())
		}
		if closeErr != nil {
			logg.Error(context.Background(), "error releasing resources", closeErr)
		}
	}()

	var cat *catalog.Catalog
	if cfg.Catalog.UsesDB() {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		closers = append(closers, dbClient.Close)
		readiness = append(readiness, controllers.ReadinessCheck{Name: "database", Pinger: dbClient})

		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run dev migrations", err)
			os.Exit(1)
		}

		cat, err = catalog.NewRepository(dbClient.DB()).Load(ctx)
		if err != nil {
			logg.Error(ctx, "failed to load catalog from database", err)
			os.Exit(1)
		}
	} else {
		cat, err = catalog.NewSeedCatalog()
		if err != nil {
			logg.Error(ctx, "failed to load seed catalog", err)
			os.Exit(1)
		}
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"source":   cfg.Catalog.Source,
		"products": cat.Len(),
	}), "catalog loaded")

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
		readiness = append(readiness, controllers.ReadinessCheck{Name: "redis", Pinger: redisClient})
		limiter = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, cart rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sessionRegistry, err := sessions.NewRegistry(sessions.Params{
		Logger:    logg,
		Metrics:   metrics.NewSessionMetrics(registry),
		IdleTTL:   cfg.Sessions.IdleTTL,
		MaxActive: cfg.Sessions.MaxActive,
	})
	if err != nil {
		logg.Error(ctx, "failed to create session registry", err)
		os.Exit(1)
	}

	svc, err := storefront.NewService(storefront.ServiceParams{
		Catalog:  cat,
		Sessions: sessionRegistry,
		Policy: pricing.ShippingPolicy{
			FreeThreshold: cfg.Pricing.FreeShippingThreshold,
			FlatFee:       cfg.Pricing.ShippingFlatFee,
		},
	})
	if err != nil {
		logg.Error(ctx, "failed to create storefront service", err)
		os.Exit(1)
	}

	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		if err := sessionRegistry.Run(ctx, cfg.Sessions.SweepInterval); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "session sweeper stopped", err)
		}
	}()

	addr := ":" + env.Get("PORT", cfg.App.Port)
	id := env.First("local", "DYNO", "HOSTNAME")
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, svc, limiter, routes.Observability{
			Gatherer:    registry,
			HTTPMetrics: metrics.NewHTTPMetrics(registry),
		}, readiness...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(serverCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(serverCtx, "api server stopped unexpectedly", err)
			stop()
			<-sweeperDone
			return
		}
	case <-ctx.Done():
	}

	logg.Info(serverCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(serverCtx, "graceful shutdown failed", err)
	}
	<-sweeperDone
	logg.Info(serverCtx, "api server stopped")
}
