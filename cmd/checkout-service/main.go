package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/app"
	"github.com/vladislavdragonenkov/checkout/internal/version"
)

const (
	envGRPCAddr            = "CHECKOUT_GRPC_ADDR"
	envHTTPAddr            = "CHECKOUT_HTTP_ADDR"
	envStorageDriver       = "CHECKOUT_STORAGE_DRIVER"
	envPostgresDSN         = "CHECKOUT_POSTGRES_DSN"
	envPostgresAutoMigrate = "CHECKOUT_POSTGRES_AUTO_MIGRATE"
	envPaymentProvider     = "CHECKOUT_PAYMENT_PROVIDER"
	envStripeAPIKey        = "CHECKOUT_STRIPE_API_KEY"
	envStripePaymentMethod = "CHECKOUT_STRIPE_PAYMENT_METHOD"
	envCurrency            = "CHECKOUT_CURRENCY"
	envKafkaBrokers        = "KAFKA_BROKERS"
	envKafkaTopic          = "CHECKOUT_KAFKA_TOPIC"
	envLogLevel            = "CHECKOUT_LOG_LEVEL"
	envShutdownTimeout     = "CHECKOUT_SHUTDOWN_TIMEOUT"
)

// envLookup совпадает по сигнатуре с os.LookupEnv.
type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger(lookup envLookup) []string {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, warning := readLogLevel(lookup)
	log.SetLevel(level)
	if warning != "" {
		return []string{warning}
	}
	return nil
}

func readLogLevel(lookup envLookup) (log.Level, string) {
	raw, ok := lookup(envLogLevel)
	if !ok || strings.TrimSpace(raw) == "" {
		return log.InfoLevel, ""
	}
	level, err := log.ParseLevel(strings.TrimSpace(raw))
	if err != nil {
		return log.InfoLevel, fmt.Sprintf("%s: %v, using %s", envLogLevel, err, log.InfoLevel)
	}
	return level, ""
}

// readConfigFromEnv накладывает переменные окружения на app.DefaultConfig.
// Некорректные значения не применяются: вместо них возвращается предупреждение.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string
	warn := func(key string, err error) {
		warnings = append(warnings, fmt.Sprintf("%s: %v, using default", key, err))
	}

	if v, ok := nonEmpty(lookup, envGRPCAddr); ok {
		cfg.GRPCAddr = v
	}
	if v, ok := nonEmpty(lookup, envHTTPAddr); ok {
		cfg.HTTPAddr = v
	}

	if v, ok := nonEmpty(lookup, envStorageDriver); ok {
		switch driver := app.StorageDriver(strings.ToLower(v)); driver {
		case app.StorageDriverMemory, app.StorageDriverPostgres:
			cfg.StorageDriver = driver
		default:
			warn(envStorageDriver, fmt.Errorf("unsupported storage driver %q", v))
		}
	}
	if v, ok := nonEmpty(lookup, envPostgresDSN); ok {
		cfg.PostgresDSN = v
	}
	if v, ok := nonEmpty(lookup, envPostgresAutoMigrate); ok {
		if parsed, err := parseBool(v); err != nil {
			warn(envPostgresAutoMigrate, err)
		} else {
			cfg.PostgresAutoMigrate = parsed
		}
	}

	if v, ok := nonEmpty(lookup, envPaymentProvider); ok {
		switch provider := app.PaymentProvider(strings.ToLower(v)); provider {
		case app.PaymentProviderMock, app.PaymentProviderStripe:
			cfg.PaymentProvider = provider
		default:
			warn(envPaymentProvider, fmt.Errorf("unsupported payment provider %q", v))
		}
	}
	if v, ok := nonEmpty(lookup, envStripeAPIKey); ok {
		cfg.StripeAPIKey = v
	}
	if v, ok := nonEmpty(lookup, envStripePaymentMethod); ok {
		cfg.StripePaymentMethod = v
	}
	if v, ok := nonEmpty(lookup, envCurrency); ok {
		if currency, err := parseCurrency(v); err != nil {
			warn(envCurrency, err)
		} else {
			cfg.Currency = currency
		}
	}

	if v, ok := nonEmpty(lookup, envKafkaBrokers); ok {
		cfg.KafkaBrokers = splitList(v)
	}
	if v, ok := nonEmpty(lookup, envKafkaTopic); ok {
		cfg.KafkaTopic = v
	}

	if v, ok := nonEmpty(lookup, envShutdownTimeout); ok {
		if parsed, err := parseDuration(v, func(d time.Duration) bool { return d > 0 }, "must be > 0"); err != nil {
			warn(envShutdownTimeout, err)
		} else {
			cfg.ShutdownTimeout = parsed
		}
	}

	return cfg, warnings
}

func nonEmpty(lookup envLookup, key string) (string, bool) {
	raw, ok := lookup(key)
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(raw)
	return value, value != ""
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

func parseDuration(raw string, valid func(time.Duration) bool, constraint string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	if !valid(value) {
		return 0, fmt.Errorf("duration %s %s", value, constraint)
	}
	return value, nil
}

// parseCurrency принимает трёхбуквенный код ISO 4217 в любом регистре.
func parseCurrency(raw string) (string, error) {
	currency := strings.ToLower(strings.TrimSpace(raw))
	if len(currency) != 3 {
		return "", fmt.Errorf("invalid currency %q", raw)
	}
	for _, r := range currency {
		if r < 'a' || r > 'z' {
			return "", fmt.Errorf("invalid currency %q", raw)
		}
	}
	return currency, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func main() {
	warnings := setupLogger(os.LookupEnv)
	cfg, configWarnings := readConfigFromEnv(os.LookupEnv)
	for _, warning := range append(warnings, configWarnings...) {
		log.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"grpc_addr":        cfg.GRPCAddr,
		"http_addr":        cfg.HTTPAddr,
		"storage_driver":   cfg.StorageDriver,
		"payment_provider": cfg.PaymentProvider,
		"kafka_enabled":    len(cfg.KafkaBrokers) > 0,
		"build":            version.Current().String(),
	}).Info("запускаем CheckoutService")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("CheckoutService остановлен")
}
