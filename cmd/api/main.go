package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/alert"
	"github.com/MrJamesThe3rd/fuelbook/internal/anomaly"
	anomalyMem "github.com/MrJamesThe3rd/fuelbook/internal/anomaly/memstore"
	anomalyStore "github.com/MrJamesThe3rd/fuelbook/internal/anomaly/store"
	"github.com/MrJamesThe3rd/fuelbook/internal/billing"
	"github.com/MrJamesThe3rd/fuelbook/internal/config"
	"github.com/MrJamesThe3rd/fuelbook/internal/database"
	fuelHttp "github.com/MrJamesThe3rd/fuelbook/internal/http"
	anomalyHandler "github.com/MrJamesThe3rd/fuelbook/internal/http/anomaly"
	billingHandler "github.com/MrJamesThe3rd/fuelbook/internal/http/billing"
	inventoryHandler "github.com/MrJamesThe3rd/fuelbook/internal/http/inventory"
	ledgerHandler "github.com/MrJamesThe3rd/fuelbook/internal/http/ledger"
	readingsHandler "github.com/MrJamesThe3rd/fuelbook/internal/http/readings"
	"github.com/MrJamesThe3rd/fuelbook/internal/inventory"
	inventoryMem "github.com/MrJamesThe3rd/fuelbook/internal/inventory/memstore"
	inventoryStore "github.com/MrJamesThe3rd/fuelbook/internal/inventory/store"
	"github.com/MrJamesThe3rd/fuelbook/internal/ledger"
	ledgerMem "github.com/MrJamesThe3rd/fuelbook/internal/ledger/memstore"
	ledgerStore "github.com/MrJamesThe3rd/fuelbook/internal/ledger/store"
	"github.com/MrJamesThe3rd/fuelbook/internal/observability"
	"github.com/MrJamesThe3rd/fuelbook/internal/paytype"
	"github.com/MrJamesThe3rd/fuelbook/internal/readings"
	readingsMem "github.com/MrJamesThe3rd/fuelbook/internal/readings/memstore"
	readingsStore "github.com/MrJamesThe3rd/fuelbook/internal/readings/store"
	"github.com/MrJamesThe3rd/fuelbook/internal/threshold"
)

func main() {
	// Local development only; the file is optional.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

type repositories struct {
	inventory inventory.Repository
	anomaly   anomaly.Repository
	ledger    ledger.Repository
	readings  readings.Repository
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repositories, func(), error) {
	if cfg.App.Store == "memory" {
		logger.Warn("using in-memory stores; data is lost on restart")

		shifts := anomalyMem.New()

		return &repositories{
			inventory: inventoryMem.New(),
			anomaly:   shifts,
			ledger:    ledgerMem.New(),
			readings:  readingsMem.New(shifts),
		}, func() {}, nil
	}

	db, err := database.New(ctx, cfg.ConnectionString(), database.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	lockTimeout := cfg.DB.LockTimeout

	return &repositories{
		inventory: inventoryStore.New(db, lockTimeout),
		anomaly:   anomalyStore.New(db, lockTimeout),
		ledger:    ledgerStore.New(db, lockTimeout),
		readings:  readingsStore.New(db, lockTimeout),
	}, func() { db.Close() }, nil
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Tracing ---
	shutdownTracer, err := observability.InitTracer(ctx, cfg.Telemetry.OTLPEndpoint, cfg.App.Name)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer shutdownTracer(context.Background())

	metrics := observability.NewMetrics()

	// --- Policy ---
	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return fmt.Errorf("load policy: %w", err)
	}

	thresholds := threshold.NewSource(policy.Thresholds)
	payTypes := paytype.NewClassifier(policy.PayTypes)

	if cfg.PolicyFile != "" {
		go func() {
			err := config.WatchPolicy(ctx, cfg.PolicyFile, func(p *config.Policy) {
				thresholds.Store(p.Thresholds)
				payTypes.Store(p.PayTypes)
			}, logger)
			if err != nil {
				logger.Error("policy watcher stopped", zap.Error(err))
			}
		}()
	}

	// --- Stores ---
	repos, closeRepos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	// --- Notifications ---
	notifiers := []alert.Notifier{alert.NewLogNotifier(logger)}
	if cfg.Alert.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewWebhookNotifier(cfg.Alert.WebhookURL, cfg.Alert.WebhookTimeout, metrics))
	}

	notifier := alert.NewMulti(notifiers...)

	// --- Services ---
	var (
		inventoryService = inventory.NewService(repos.inventory, inventory.Policy{
			AllowNegativeSales:       cfg.Inventory.AllowNegativeSales,
			AllowNegativeCorrections: cfg.Inventory.AllowNegativeCorrections,
		}, notifier, metrics, logger)
		anomalyService = anomaly.NewService(repos.anomaly, thresholds, payTypes, notifier, metrics, logger)
		ledgerService  = ledger.NewService(repos.ledger, payTypes, ledger.Config{
			AllowOverpayment: cfg.Ledger.AllowOverpayment,
		}, metrics, logger)
		orchestrator    = billing.NewOrchestrator(ledgerService, cfg.Billing.Concurrency, metrics, logger)
		readingsService = readings.NewService(repos.readings, logger)
	)

	router := fuelHttp.New(fuelHttp.Handlers{
		Inventory: inventoryHandler.NewHandler(inventoryService, logger),
		Anomaly:   anomalyHandler.NewHandler(anomalyService, logger),
		Ledger:    ledgerHandler.NewHandler(ledgerService, logger),
		Billing:   billingHandler.NewHandler(orchestrator, logger),
		Readings:  readingsHandler.NewHandler(readingsService, logger),
	}, cfg.Server.CORSOrigins, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("server starting", zap.Int("port", cfg.App.Port), zap.String("store", cfg.App.Store))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info("server stopped")

	return nil
}
