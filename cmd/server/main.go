package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	archiveService "perspective/internal/archive"
	archiveHandler "perspective/internal/archive/handler"
	archiveStore "perspective/internal/archive/store"
	"perspective/internal/deck"
	"perspective/internal/delivery"
	"perspective/internal/gen"
	"perspective/internal/gen/gemini"
	"perspective/internal/identity"
	identityHandler "perspective/internal/identity/handler"
	identityStore "perspective/internal/identity/store"
	"perspective/internal/platform/config"
	"perspective/internal/platform/health"
	"perspective/internal/platform/httpserver"
	"perspective/internal/platform/logger"
	"perspective/internal/platform/metrics"
	"perspective/internal/platform/postgres"
	platformRedis "perspective/internal/platform/redis"
	readingHandler "perspective/internal/reading/handler"
	readingStore "perspective/internal/reading/store"
	"perspective/internal/reading/service"
	"perspective/internal/spread"
	"perspective/internal/spread/proposer"
)

// main wires the dependency graph and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var checks []health.Check

	redisClient, err := platformRedis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		checks = append(checks, health.Check{Name: "redis", Probe: redisClient.Health})
	}

	db, err := postgres.Open(ctx, cfg.PostgresURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		checks = append(checks, health.Check{Name: "postgres", Probe: db.PingContext})
	}

	var identStore identity.Store = identityStore.NewMemory()
	if redisClient != nil {
		identStore = identityStore.NewRedis(redisClient.Client)
	}
	identitySvc := identity.NewService(identStore,
		identity.WithLogger(log),
		identity.WithMetrics(m),
	)
	if err := identitySvc.Restore(ctx); err != nil {
		log.Warn("identity restore failed", "error", err)
	}

	var generator gen.Generator = gen.Disabled{}
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.New(ctx, cfg.GeminiAPIKey,
			gemini.WithModel(cfg.GeminiModel),
			gemini.WithLogger(log),
		)
		if err != nil {
			log.Error("gemini client init failed", "error", err)
			os.Exit(1)
		}
		generator = client
	} else {
		log.Warn("no generation API key configured, spreads and interpretations fall back to local defaults")
	}

	proposerSvc := proposer.New(generator, spread.Catalog(),
		proposer.WithLogger(log),
		proposer.WithMetrics(m),
	)

	var archStore archiveService.Store = archiveStore.NewMemory()
	if db != nil {
		archStore = archiveStore.NewPostgres(db)
	}
	archiveSvc := archiveService.New(archStore, archiveService.WithLogger(log))

	readings := service.New(
		readingStore.NewMemory(),
		proposerSvc,
		generator,
		identitySvc,
		deck.Catalog(),
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithInterpretationFloor(cfg.InterpretationFloor),
		service.WithArchiver(archiveSvc),
		service.WithSender(delivery.NewLogSender(log)),
	)

	router := chi.NewRouter()
	readingHandler.New(readings, identitySvc, log, m).Register(router)
	identityHandler.New(readings, identitySvc, log, m).Register(router)
	archiveHandler.New(archiveSvc, identitySvc, log, m).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", health.Liveness())
	router.Get("/readyz", health.Readiness(cfg.ShutdownTimeout, checks...))

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting perspective server", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
