// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal workflow packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"razeflow/internal/audit"
	auditkafka "razeflow/internal/audit/kafka"
	"razeflow/internal/jwtauth"
	"razeflow/internal/platform/config"
	"razeflow/internal/platform/httpserver"
	"razeflow/internal/platform/lock"
	"razeflow/internal/platform/logger"
	"razeflow/internal/platform/metrics"
	platformredis "razeflow/internal/platform/redis"
	"razeflow/internal/workflow/handler"
	"razeflow/internal/workflow/service"
	"razeflow/internal/workflow/store"
	memstore "razeflow/internal/workflow/store/memory"
	pgstore "razeflow/internal/workflow/store/postgres"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var workflowStore store.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pgstore.Migrate(ctx, pool); err != nil {
			log.Error("postgres migration failed", "error", err)
			os.Exit(1)
		}
		workflowStore = pgstore.New(pool)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory store")
		workflowStore = memstore.New()
	}

	var locker lock.Locker = lock.NewMutexLocker()
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		locker = lock.NewRedisLocker(redisClient.Client, cfg.LockTTL)
	}

	var sink audit.Sink = audit.NewMemorySink()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := auditkafka.New(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("kafka connect failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	}
	publisher := audit.NewChannelPublisher(1024, log)
	worker := audit.NewWorker(sink, publisher.Inbox(), log)

	workflowMetrics := metrics.New()
	workflow, err := service.New(workflowStore, locker,
		service.WithLogger(log),
		service.WithAuditPublisher(publisher),
		service.WithMetrics(workflowMetrics),
	)
	if err != nil {
		log.Error("service wiring failed", "error", err)
		os.Exit(1)
	}

	jwtService := jwtauth.NewService(cfg.JWTSigningKey, "razeflow", "razeflow-api")

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	handler.New(workflow, log, jwtService).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting razeflow", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		if err := worker.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("shutdown with error", "error", err)
		os.Exit(1)
	}
	log.Info("razeflow stopped")
}
