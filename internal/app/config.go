package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/checkout/internal/service/payment"
)

// StorageDriver определяет backend хранилища каталога и склада.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverPostgres StorageDriver = "postgres"
)

// PaymentProvider определяет платёжный адаптер.
type PaymentProvider string

const (
	PaymentProviderMock   PaymentProvider = "mock"
	PaymentProviderStripe PaymentProvider = "stripe"
)

// Config описывает настройки запуска приложения.
type Config struct {
	GRPCAddr string
	HTTPAddr string

	StorageDriver       StorageDriver
	PostgresDSN         string
	PostgresAutoMigrate bool

	PaymentProvider     PaymentProvider
	StripeAPIKey        string
	StripePaymentMethod string
	Currency            string

	// KafkaBrokers пустой — события чекаута не публикуются.
	KafkaBrokers []string
	KafkaTopic   string

	ShutdownTimeout time.Duration
}

// DefaultConfig возвращает конфигурацию для локального запуска на памяти и моках.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:            ":50051",
		HTTPAddr:            ":8080",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		PaymentProvider:     PaymentProviderMock,
		StripePaymentMethod: payment.DefaultStripePaymentMethod,
		Currency:            "usd",
		KafkaTopic:          kafka.TopicCheckoutEvents,
		ShutdownTimeout:     5 * time.Second,
	}
}

// Validate проверяет согласованность настроек до запуска зависимостей.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.GRPCAddr) == "" {
		errs = append(errs, errors.New("grpc address is required"))
	}
	if strings.TrimSpace(c.HTTPAddr) == "" {
		errs = append(errs, errors.New("http address is required"))
	}

	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			errs = append(errs, errors.New("postgres dsn is required for postgres storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.StorageDriver))
	}

	switch c.PaymentProvider {
	case PaymentProviderMock:
	case PaymentProviderStripe:
		if strings.TrimSpace(c.StripeAPIKey) == "" {
			errs = append(errs, errors.New("stripe api key is required for stripe payments"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported payment provider %q", c.PaymentProvider))
	}

	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be > 0"))
	}

	return errors.Join(errs...)
}
