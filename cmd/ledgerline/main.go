// ledgerline - personal finance ledger service
//
// Single binary: opens the embedded SQLite store, wires the entity
// services behind the shared resilient executor, and serves the ops
// endpoints (health, metrics).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.ledgerline.dev/internal/common/health"
	"go.ledgerline.dev/internal/common/lifecycle"
	"go.ledgerline.dev/internal/common/metrics"
	"go.ledgerline.dev/internal/common/sqlite"
	"go.ledgerline.dev/internal/config"
	"go.ledgerline.dev/internal/finance/account"
	"go.ledgerline.dev/internal/finance/category"
	"go.ledgerline.dev/internal/finance/description"
	"go.ledgerline.dev/internal/finance/medicalexpense"
	"go.ledgerline.dev/internal/finance/parameter"
	"go.ledgerline.dev/internal/finance/payment"
	"go.ledgerline.dev/internal/finance/transaction"
	"go.ledgerline.dev/internal/finance/transfer"
	"go.ledgerline.dev/internal/resilience"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	setupLogging()

	slog.Info("Starting ledgerline",
		"version", version,
		"build_time", buildTime)

	ctx := context.Background()

	// ========================================
	// 1. INFRASTRUCTURE INITIALIZATION
	// ========================================
	app, cleanup, err := lifecycle.Initialize(ctx, lifecycle.AppOptions{
		NeedsStore: true,
	})
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// ========================================
	// 2. RESILIENCE SETUP
	// ========================================
	sink := metrics.NewSink()
	executor, pool := setupExecutor(app.Config.Resilience, sink)

	// ========================================
	// 3. COMPONENT WIRING
	// ========================================
	ledger := wireLedger(app.Store, executor, sink)
	logLedgerSnapshot(ctx, ledger)

	// Health checker
	healthChecker := health.NewChecker()
	healthChecker.AddReadinessCheck(health.SQLiteCheck(func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return app.Store.Ping(pingCtx)
	}))
	if pool != nil {
		healthChecker.AddReadinessCheck(health.CircuitBreakerCheck("store", func() string {
			return executor.State().String()
		}))
		healthChecker.AddLivenessCheck(health.WorkerPoolCheck(
			pool.Name(), pool.QueueDepth, pool.QueueCapacity, pool.ActiveWorkers))
	}

	// HTTP Router
	httpRouter := setupHTTPRouter(app.Config, healthChecker)

	// HTTP Server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.Config.HTTP.Port),
		Handler:      httpRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ========================================
	// 4. SERVICE STARTUP
	// ========================================
	var services []lifecycle.Service

	if pool != nil {
		services = append(services, newPoolService(pool))
	}

	httpService := lifecycle.NewHTTPService("ops-server", httpServer)
	services = append(services, httpService)

	slog.Info("ledgerline ready",
		"port", app.Config.HTTP.Port,
		"database", app.Store.Path(),
		"resilience", app.Config.Resilience.Enabled)

	// ========================================
	// 5. RUN UNTIL SHUTDOWN
	// ========================================
	if err := lifecycle.Run(ctx, services...); err != nil {
		slog.Error("Service error", "error", err)
		os.Exit(1)
	}

	slog.Info("ledgerline stopped")
}

// setupLogging configures the slog default logger.
func setupLogging() {
	logLevel := slog.LevelInfo
	if os.Getenv("LEDGERLINE_DEV") == "true" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}

// setupExecutor builds the shared resilient executor and its worker pool.
// With resilience disabled the executor degrades to direct execution and
// no pool is created.
func setupExecutor(rcfg config.ResilienceConfig, sink metrics.Sink) (*resilience.Executor, *resilience.WorkerPool) {
	cfg := resilience.Config{
		Enabled:              rcfg.Enabled,
		FailureRateThreshold: rcfg.FailureRateThreshold,
		MinRequests:          uint32(rcfg.MinRequests),
		CountingInterval:     rcfg.CountingInterval,
		OpenCooldown:         rcfg.OpenCooldown,
		MaxRetries:           rcfg.MaxRetries,
		RetryBackoff:         rcfg.RetryBackoff,
		CallTimeout:          rcfg.CallTimeout,
		PoolSize:             rcfg.PoolSize,
		QueueCapacity:        rcfg.QueueCapacity,
		RatePerMinute:        rcfg.RatePerMinute,
	}

	if !cfg.Enabled {
		return resilience.New("store", cfg, nil, sink), nil
	}

	pool := resilience.NewWorkerPool("executor", cfg.PoolSize, cfg.QueueCapacity)
	executor := resilience.New("store", cfg, pool, sink)

	return executor, pool
}

// newPoolService adapts the worker pool to the lifecycle Service interface.
func newPoolService(pool *resilience.WorkerPool) lifecycle.Service {
	return lifecycle.NewServiceFunc("executor-pool",
		func(ctx context.Context) error {
			pool.Start()
			<-ctx.Done()
			return nil
		},
		func(ctx context.Context) error {
			pool.Shutdown()
			return nil
		})
}

// ledger bundles the entity services behind one wiring point.
type ledger struct {
	accounts     *account.Service
	categories   *category.Service
	descriptions *description.Service
	parameters   *parameter.Service
	transactions *transaction.Service
	payments     *payment.Service
	transfers    *transfer.Service
	medical      *medicalexpense.Service
}

// wireLedger constructs every repository and service against the store.
// The account repository doubles as the transaction service's account
// verifier.
func wireLedger(store *sqlite.Store, executor *resilience.Executor, sink metrics.Sink) *ledger {
	accountRepo := account.NewRepository(store)

	return &ledger{
		accounts:     account.NewService(accountRepo, executor, sink),
		categories:   category.NewService(category.NewRepository(store), sink),
		descriptions: description.NewService(description.NewRepository(store), sink),
		parameters:   parameter.NewService(parameter.NewRepository(store), sink),
		transactions: transaction.NewService(transaction.NewRepository(store), accountRepo, executor, sink),
		payments:     payment.NewService(payment.NewRepository(store), sink),
		transfers:    transfer.NewService(transfer.NewRepository(store), sink),
		medical:      medicalexpense.NewService(medicalexpense.NewRepository(store), executor, sink),
	}
}

// logLedgerSnapshot reports what the store holds at startup. An empty or
// unreadable ledger must not block boot, so failures are logged and
// dropped.
func logLedgerSnapshot(ctx context.Context, l *ledger) {
	accounts := l.accounts.SelectActive(ctx)
	if !accounts.IsSuccess() {
		slog.Warn("Ledger snapshot unavailable", "error", accounts.Message())
		return
	}

	transactionCount := 0
	for _, a := range accounts.Value() {
		if byAccount := l.transactions.SelectByAccount(ctx, a.AccountNameOwner); byAccount.IsSuccess() {
			transactionCount += len(byAccount.Value())
		}
	}

	totals := l.accounts.Totals(ctx).OrElse(account.Totals{})

	slog.Info("Ledger snapshot",
		"accounts", len(accounts.Value()),
		"transactions", transactionCount,
		"categories", len(l.categories.SelectActive(ctx).OrElse(nil)),
		"descriptions", len(l.descriptions.SelectActive(ctx).OrElse(nil)),
		"parameters", len(l.parameters.SelectAll(ctx).OrElse(nil)),
		"payments", len(l.payments.SelectAll(ctx).OrElse(nil)),
		"transfers", len(l.transfers.SelectAll(ctx).OrElse(nil)),
		"openClaims", len(l.medical.SelectOpenClaims(ctx).OrElse(nil)),
		"cleared", totals.Cleared.String(),
		"outstanding", totals.Outstanding.String(),
		"future", totals.Future.String())
}

// setupHTTPRouter creates the ops HTTP router with health and metrics
// endpoints.
func setupHTTPRouter(cfg *config.Config, healthChecker *health.Checker) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(opsMetrics)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health endpoints
	r.Get("/health", healthChecker.HandleHealth)
	r.Get("/health/live", healthChecker.HandleLive)
	r.Get("/health/ready", healthChecker.HandleReady)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// opsMetrics records request counts and latency for the ops endpoints.
func opsMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method, r.URL.Path, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}
