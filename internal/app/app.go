// Package app собирает сервис чекаута: хранилище, коллабораторов, gRPC и HTTP серверы.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	healthcheck "github.com/vladislavdragonenkov/checkout/internal/health"
	"github.com/vladislavdragonenkov/checkout/internal/metrics"
	"github.com/vladislavdragonenkov/checkout/internal/pricing"
	"github.com/vladislavdragonenkov/checkout/internal/service/checkout"
	grpcsvc "github.com/vladislavdragonenkov/checkout/internal/service/grpc"
	httpapi "github.com/vladislavdragonenkov/checkout/internal/transport/http"
	"github.com/vladislavdragonenkov/checkout/internal/version"
)

const readHeaderTimeout = 5 * time.Second

// Run поднимает сервис и блокируется до отмены ctx или падения одного из серверов.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close(logger)

	// Ошибка уже залогирована: без Kafka сервис работает, события не публикуются.
	events, _ := initEventPipeline(cfg, logger)
	defer events.close(logger)

	checkoutSvc := newCheckoutService(deps, events, logger)

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if deps.storageChecker != nil {
		healthHandler.RegisterChecker("postgres", deps.storageChecker)
	}
	if events != nil {
		healthHandler.RegisterOptional("kafka", events.checker())
	}

	grpcServer, healthServer := newGRPCServer(checkoutSvc, logger)
	httpServer := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(httpapi.Config{
			Checkout: checkoutSvc,
			Quoter:   pricing.NewCalculator(),
			Timeline: deps.timeline,
			Health:   healthHandler,
			Logger:   logger.WithField("layer", "http"),
		}),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	httpLis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = grpcLis.Close()
		return fmt.Errorf("listen http: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Infof("gRPC сервер слушает %s", grpcLis.Addr())
		errCh <- grpcServer.Serve(grpcLis)
	}()
	go func() {
		logger.Infof("HTTP сервер слушает %s (checkout, /metrics, /healthz, /livez, /readyz)", httpLis.Addr())
		if err := httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем серверы")
		stopGRPC(grpcServer, healthServer, cfg.ShutdownTimeout, logger)
		shutdownHTTP(httpServer, cfg.ShutdownTimeout, logger)
		return ctx.Err()
	case err := <-errCh:
		stopGRPC(grpcServer, healthServer, cfg.ShutdownTimeout, logger)
		shutdownHTTP(httpServer, cfg.ShutdownTimeout, logger)
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

// newCheckoutService связывает оркестратор с метриками, timeline и (опционально) Kafka.
func newCheckoutService(deps *runtimeDependencies, events *eventPipeline, logger *log.Entry) *checkout.Service {
	opts := []checkout.Option{
		checkout.WithLogger(logger.WithField("layer", "checkout")),
		checkout.WithMetrics(metrics.NewCheckoutMetrics()),
		checkout.WithTimeline(deps.timeline),
	}
	if events != nil {
		opts = append(opts, checkout.WithPublisher(events.publisher))
	}
	return checkout.NewService(deps.customers, deps.carts, deps.stock, deps.payments, opts...)
}

// newGRPCServer создаёт сервер с prometheus-интерсептором, reflection и grpc health.
func newGRPCServer(finalizer checkout.Finalizer, logger *log.Entry) (*grpc.Server, *health.Server) {
	grpcMetrics := promgrpc.NewServerMetrics()
	if err := prometheus.Register(grpcMetrics); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*promgrpc.ServerMetrics); ok {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()))
	grpcsvc.NewCheckoutService(finalizer, logger.WithField("layer", "grpc")).Register(grpcServer)
	grpcMetrics.InitializeMetrics(grpcServer)

	reflection.Register(grpcServer)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(grpcsvc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	return grpcServer, healthServer
}

// stopGRPC ждёт завершения активных RPC не дольше timeout, затем останавливает принудительно.
func stopGRPC(srv *grpc.Server, healthServer *health.Server, timeout time.Duration, logger *log.Entry) {
	healthServer.Shutdown()

	stoppedCh := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stoppedCh)
	}()

	select {
	case <-stoppedCh:
	case <-time.After(timeout):
		logger.Warn("graceful stop превысил таймаут, принудительно останавливаем")
		srv.Stop()
	}
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, timeout time.Duration, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
