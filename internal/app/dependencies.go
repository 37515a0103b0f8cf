package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/checkout/internal/health"
	"github.com/vladislavdragonenkov/checkout/internal/service/payment"
	"github.com/vladislavdragonenkov/checkout/internal/service/stock"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
	"github.com/vladislavdragonenkov/checkout/internal/storage/postgres"
)

// runtimeDependencies — коллабораторы чекаута, собранные по конфигурации.
type runtimeDependencies struct {
	customers domain.CustomerRepository
	carts     domain.CartRepository
	stock     domain.StockService
	payments  domain.PaymentService
	timeline  domain.TimelineRepository

	// store и storageChecker заполнены только для postgres.
	store          *postgres.Store
	storageChecker healthcheck.Checker
}

// initRuntimeDependencies собирает хранилище, склад и платёжный адаптер.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	deps, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	payments, err := initPayments(cfg, logger)
	if err != nil {
		deps.close(logger)
		return nil, err
	}
	deps.payments = payments

	return deps, nil
}

func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		customers := memory.NewCustomerRepository()
		carts := memory.NewCartRepository()
		seedDemoCatalog(customers, carts)
		logger.Info("using in-memory storage with demo catalog")

		return &runtimeDependencies{
			customers: customers,
			carts:     carts,
			stock:     stock.NewMockService(),
			timeline:  memory.NewTimelineRepository(),
		}, nil
	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres dsn is required for storage driver %q", cfg.StorageDriver)
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply postgres migrations: %w", err)
			}
		}
		logger.Info("using postgres storage")

		return &runtimeDependencies{
			customers:      postgres.NewCustomerRepository(store),
			carts:          postgres.NewCartRepository(store),
			stock:          postgres.NewStockService(store),
			timeline:       postgres.NewTimelineRepository(store),
			store:          store,
			storageChecker: healthcheck.NewPingChecker("postgres", store),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func initPayments(cfg Config, logger *log.Entry) (domain.PaymentService, error) {
	switch cfg.PaymentProvider {
	case PaymentProviderMock, "":
		logger.Warn("using mock payment service, every payment is authorized")
		return payment.NewMockService(), nil
	case PaymentProviderStripe:
		svc, err := payment.NewStripeService(payment.StripeConfig{
			APIKey:        cfg.StripeAPIKey,
			Currency:      cfg.Currency,
			PaymentMethod: cfg.StripePaymentMethod,
			Logger:        logger.WithField("component", "payment-stripe"),
		})
		if err != nil {
			return nil, fmt.Errorf("init stripe payments: %w", err)
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unsupported payment provider %q", cfg.PaymentProvider)
	}
}

// close освобождает ресурсы хранилища.
func (d *runtimeDependencies) close(logger *log.Entry) {
	if d == nil || d.store == nil {
		return
	}
	if err := d.store.Close(); err != nil {
		logger.WithError(err).Warn("failed to close postgres store")
		return
	}
	logger.Info("postgres store closed")
}
