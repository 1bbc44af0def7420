package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"wmoracle/internal/admin"
	"wmoracle/internal/artifact"
	httpapi "wmoracle/internal/http"
	"wmoracle/internal/platform/config"
	"wmoracle/internal/platform/httpserver"
	"wmoracle/internal/platform/logger"
	platformmetrics "wmoracle/internal/platform/metrics"
	"wmoracle/internal/platform/postgres"
	platformredis "wmoracle/internal/platform/redis"
	"wmoracle/internal/ratelimit"
	"wmoracle/internal/verify"
	verifyhandler "wmoracle/internal/verify/handler"
	verifymetrics "wmoracle/internal/verify/metrics"
	"wmoracle/internal/watermark"
	"wmoracle/pkg/platform/audit"
	"wmoracle/pkg/platform/audit/publisher"
	memorystore "wmoracle/pkg/platform/audit/store/memory"
	postgresstore "wmoracle/pkg/platform/audit/store/postgres"
	"wmoracle/pkg/platform/audit/worker"
	adminmw "wmoracle/pkg/platform/middleware/admin"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal services packages. Redis, Postgres, and Kafka
// are all optional: with none configured the service runs standalone with
// in-memory stores.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	pool, err := postgres.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres setup failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
	}

	var auditStore audit.Store
	if pool != nil {
		pgStore := postgresstore.New(pool.Pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Error("audit schema setup failed", "error", err)
			os.Exit(1)
		}
		auditStore = pgStore
	} else {
		auditStore = memorystore.New(0)
	}

	var sink worker.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := publisher.NewKafka(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("kafka setup failed", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		sink = kafka
	}

	emitter := audit.NewEmitter(cfg.AuditBufferSize, log)

	var limiter ratelimit.Store = ratelimit.NewInMemoryStore()
	if redisClient != nil {
		limiter = ratelimit.NewRedisStore(redisClient.Client)
	}

	registry := artifact.NewRegistry(cfg.ModelRoot, cfg.ArtifactExt)
	service := verify.New(
		registry,
		watermark.NewBlakeDeriver(),
		emitter,
		verifymetrics.New(),
		log,
		otel.Tracer("wmoracle"),
	)

	var adminTokens *adminmw.TokenService
	if cfg.AdminJWTKey != "" {
		adminTokens = adminmw.NewTokenService(cfg.AdminJWTKey, "wmoracle")
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:          log,
		Verify:          verifyhandler.New(service, log),
		HTTPMetrics:     platformmetrics.NewHTTP(),
		Admin:           admin.New(auditStore, emitter, log),
		AdminTokens:     adminTokens,
		RateLimitStore:  limiter,
		RateLimit:       cfg.RateLimitPerWindow,
		RateLimitWindow: cfg.RateLimitWindow,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := worker.New(auditStore, sink, emitter.Inbox(), log).Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting wmoracle",
			"addr", cfg.Addr,
			"model_root", cfg.ModelRoot,
			"rate_limit", cfg.RateLimitPerWindow,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete", "audit_dropped", emitter.Dropped())
}
