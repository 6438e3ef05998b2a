package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"sgc/internal/audit"
	auditmem "sgc/internal/audit/store/memory"
	auditpg "sgc/internal/audit/store/postgres"
	jwttoken "sgc/internal/jwt_token"
	"sgc/internal/platform/config"
	"sgc/internal/platform/httpserver"
	"sgc/internal/platform/logger"
	platformmetrics "sgc/internal/platform/metrics"
	platformredis "sgc/internal/platform/redis"
	httptransport "sgc/internal/transport/http"
	"sgc/internal/workflow/cache"
	"sgc/internal/workflow/evaluator"
	"sgc/internal/workflow/handler"
	workflowmetrics "sgc/internal/workflow/metrics"
	"sgc/internal/workflow/ports"
	"sgc/internal/workflow/registry"
	"sgc/internal/workflow/service"
	storemem "sgc/internal/workflow/store/memory"
	storepg "sgc/internal/workflow/store/postgres"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, err := registry.New()
	if err != nil {
		log.Error("invalid transition tables", "error", err)
		os.Exit(1)
	}
	eval := evaluator.New(reg)

	var (
		entityStore ports.EntityStore
		auditStore  audit.Store
		outbox      audit.OutboxSource
		checks      []httptransport.HealthCheck
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		entityStore = storepg.New(db)
		auditPG := auditpg.New(db)
		auditStore = auditPG
		outbox = auditPG
		checks = append(checks, httptransport.HealthCheck{Name: "postgres", Check: db.PingContext})
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		entityStore = storemem.New()
		auditStore = auditmem.New()
	}

	auditPublisher := audit.NewPublisher(auditStore)

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(workflowmetrics.New()),
		service.WithAuditPublisher(auditPublisher),
		service.WithHistoryReader(auditPublisher),
		service.WithBulkFanOut(cfg.BulkFanOut),
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, service.WithSummaryCache(cache.New(redisClient.Client, cfg.SummaryCacheTTL, log)))
		checks = append(checks, httptransport.HealthCheck{Name: "redis", Check: redisClient.Health})
	}

	svc, err := service.New(entityStore, reg, eval, opts...)
	if err != nil {
		log.Error("failed to build workflow service", "error", err)
		os.Exit(1)
	}

	// The outbox worker relays audit events to Kafka. It only runs with a
	// durable outbox behind it.
	if outbox != nil && len(cfg.Kafka.Brokers) > 0 {
		producer, err := audit.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			log.Error("failed to build kafka producer", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		worker := audit.NewWorker(outbox, producer, log, cfg.Kafka.PollInterval, 100)
		go worker.Run(ctx)
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	workflowHandler := handler.New(svc, log, platformmetrics.New(), jwttoken.NewJWTServiceAdapter(jwtService))

	router := httptransport.NewRouter([]httptransport.Registrar{workflowHandler}, checks...)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting sgc workflow service", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
