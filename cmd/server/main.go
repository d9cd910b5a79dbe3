package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lunchgate/internal/advisory"
	"lunchgate/internal/platform/config"
	"lunchgate/internal/platform/httpserver"
	"lunchgate/internal/platform/logger"
	platformredis "lunchgate/internal/platform/redis"
	"lunchgate/internal/review"
	reviewhandler "lunchgate/internal/review/handler"
	reviewmetrics "lunchgate/internal/review/metrics"
	"lunchgate/pkg/platform/audit/publisher"
	memorystore "lunchgate/pkg/platform/audit/store/memory"
	postgresstore "lunchgate/pkg/platform/audit/store/postgres"
	redisstore "lunchgate/pkg/platform/audit/store/redis"
	"lunchgate/pkg/platform/middleware/metadata"
	"lunchgate/pkg/platform/middleware/requestid"
)

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	metrics := reviewmetrics.New()

	// Advisory stage. Missing configuration is not fatal; the assessor
	// falls back to rule-only classification on every run.
	var consulter review.AdvisoryConsulter
	if advisoryClient := buildAdvisoryClient(cfg, log); advisoryClient.Configured() {
		consulter = advisoryClient
		log.Info("advisory service configured", "base_url", cfg.AdvisoryBaseURL)
	} else {
		log.Info("advisory service not configured, rule-only assessment in effect")
	}

	// Audit trail backend.
	store, cleanup, err := buildAuditStore(cfg)
	if err != nil {
		log.Error("audit store initialization failed", "store", cfg.AuditStore, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	auditPublisher := publisher.NewPublisher(store, publisher.WithAsyncBuffer(256))
	defer auditPublisher.Close()

	assessor := review.NewAssessor(consulter,
		review.WithAssessorLogger(log),
		review.WithAssessorMetrics(metrics),
	)

	svc, err := review.New(assessor, cfg.RatePerPerson, cfg.BudgetLimit(),
		review.WithLogger(log),
		review.WithMetrics(metrics),
		review.WithAuditPublisher(auditPublisher),
	)
	if err != nil {
		log.Error("review service initialization failed", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(requestid.RequestID)
	router.Use(metadata.ClientMetadata)

	reviewhandler.New(svc, log).Register(router)
	reviewhandler.NewAdmin(auditPublisher, log).Register(router)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting lunchgate",
		"addr", cfg.Addr,
		"audit_store", cfg.AuditStore,
		"rate_per_person", cfg.RatePerPerson,
		"budget_limit", cfg.BudgetLimit(),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("lunchgate stopped")
}

func buildAdvisoryClient(cfg config.Server, log *slog.Logger) *advisory.Client {
	static := advisory.NewStaticTokenSource(cfg.AdvisoryToken)
	tokens, err := advisory.NewCachingTokenSource(static)
	if err != nil {
		// Only reachable with a nil source; fall back to the static one.
		log.Warn("token caching disabled", "error", err)
		return advisory.New(cfg.AdvisoryBaseURL, cfg.AdvisoryAgentID, static,
			advisory.WithLogger(log))
	}
	return advisory.New(cfg.AdvisoryBaseURL, cfg.AdvisoryAgentID, tokens,
		advisory.WithLogger(log))
}

// buildAuditStore selects the audit backend from configuration. The cleanup
// function closes whatever connection the backend holds.
func buildAuditStore(cfg config.Server) (publisher.Store, func(), error) {
	switch cfg.AuditStore {
	case "", "memory":
		return memorystore.NewInMemoryStore(), func() {}, nil

	case "redis":
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if client == nil {
			return nil, nil, fmt.Errorf("AUDIT_STORE=redis requires REDIS_URL")
		}
		return redisstore.New(client.Client), func() { _ = client.Close() }, nil

	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("AUDIT_STORE=postgres requires DATABASE_URL")
		}
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		store := postgresstore.New(db)
		if err := store.EnsureSchema(context.Background()); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown AUDIT_STORE %q", cfg.AuditStore)
	}
}
