// Command loadtest нагружает checkout.v1.CheckoutService/FinalizeCheckout
// и печатает сводку по кодам ответа и задержкам.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/checkout/internal/version"
	checkoutv1 "github.com/vladislavdragonenkov/checkout/proto/checkout/v1"
)

const finalizeMethod = "FinalizeCheckout"

// target — пара (корзина, клиент), по которой вызывается чекаут.
type target struct {
	cartID     int64
	customerID int64
}

type config struct {
	addr        string
	total       int
	totalSet    bool
	duration    time.Duration
	concurrency int
	connections int
	timeout     time.Duration
	targets     []target
	// acceptRejections засчитывает FailedPrecondition (нет стока, отказ платежа) как ожидаемый исход.
	acceptRejections bool
	outputPath       string
}

// checkoutCaller — часть checkoutv1.CheckoutServiceClient, нужная генератору нагрузки.
type checkoutCaller interface {
	FinalizeCheckout(ctx context.Context, req *checkoutv1.FinalizeCheckoutRequest, opts ...grpc.CallOption) (*checkoutv1.FinalizeCheckoutResponse, error)
}

func parseConfig(args []string) (config, error) {
	var cfg config
	var targetsValue string

	fs := flag.NewFlagSet("loadtest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.addr, "addr", "localhost:50051", "gRPC target address")
	fs.IntVar(&cfg.total, "total", 400, "total scenarios in count mode; in duration mode only used when explicitly set")
	fs.DurationVar(&cfg.duration, "duration", 0, "optional time-based run duration (e.g. 1m)")
	fs.IntVar(&cfg.concurrency, "concurrency", 40, "number of concurrent workers")
	fs.IntVar(&cfg.connections, "connections", 10, "number of gRPC client connections")
	fs.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "per-RPC timeout")
	fs.StringVar(&targetsValue, "targets", "1:1,2:1,3:2", "comma separated cart:customer pairs, used round robin")
	fs.BoolVar(&cfg.acceptRejections, "accept-rejections", true, "count FailedPrecondition responses as expected outcomes")
	fs.StringVar(&cfg.outputPath, "output", "", "optional JSON report output file path")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "total" {
			cfg.totalSet = true
		}
	})

	targets, err := parseTargets(targetsValue)
	if err != nil {
		return cfg, err
	}
	cfg.targets = targets

	switch {
	case cfg.duration < 0:
		return cfg, errors.New("duration must be >= 0")
	case cfg.duration == 0 && cfg.total <= 0:
		return cfg, errors.New("total must be > 0 when duration is not set")
	case cfg.duration > 0 && cfg.totalSet && cfg.total <= 0:
		return cfg, errors.New("total must be > 0 when explicitly set with duration")
	case cfg.concurrency <= 0:
		return cfg, errors.New("concurrency must be > 0")
	case cfg.connections <= 0:
		return cfg, errors.New("connections must be > 0")
	case cfg.timeout <= 0:
		return cfg, errors.New("timeout must be > 0")
	}

	return cfg, nil
}

func parseTargets(value string) ([]target, error) {
	var targets []target
	for _, raw := range strings.Split(value, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		cartRaw, customerRaw, ok := strings.Cut(raw, ":")
		if !ok {
			return nil, fmt.Errorf("invalid target %q: expected cart:customer", raw)
		}
		cartID, err := strconv.ParseInt(strings.TrimSpace(cartRaw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cart id in target %q: %w", raw, err)
		}
		customerID, err := strconv.ParseInt(strings.TrimSpace(customerRaw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid customer id in target %q: %w", raw, err)
		}
		targets = append(targets, target{cartID: cartID, customerID: customerID})
	}
	if len(targets) == 0 {
		return nil, errors.New("at least one target is required")
	}
	return targets, nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	conns := make([]*grpc.ClientConn, 0, cfg.connections)
	clients := make([]checkoutCaller, 0, cfg.connections)
	for i := 0; i < cfg.connections; i++ {
		conn, dialErr := grpc.NewClient(
			cfg.addr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithUserAgent(version.Current().UserAgent("loadtest")),
		)
		if dialErr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to create grpc client connection: %v\n", dialErr)
			os.Exit(1)
		}
		conns = append(conns, conn)
		clients = append(clients, checkoutv1.NewCheckoutServiceClient(conn))
	}

	result := runLoad(clients, cfg)
	for _, conn := range conns {
		_ = conn.Close()
	}

	printReport(os.Stdout, result, cfg)
	if cfg.outputPath != "" {
		if err := writeJSONReport(cfg.outputPath, result); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
	}

	if result.FailedScenarios > 0 {
		os.Exit(1)
	}
}

// runLoad раздаёт сценарии воркерам и собирает отчёт.
func runLoad(clients []checkoutCaller, cfg config) report {
	startedAt := time.Now()
	col := newCollector()

	jobs := make(chan int, cfg.concurrency*2)
	var wg sync.WaitGroup
	for workerID := 0; workerID < cfg.concurrency; workerID++ {
		wg.Add(1)
		go func(client checkoutCaller) {
			defer wg.Done()
			for idx := range jobs {
				runScenario(client, cfg, idx, col)
			}
		}(clients[workerID%len(clients)])
	}

	dispatchJobs(jobs, cfg)
	wg.Wait()

	return col.buildReport(startedAt, time.Since(startedAt))
}

func dispatchJobs(jobs chan<- int, cfg config) {
	defer close(jobs)

	if cfg.duration <= 0 {
		for i := 0; i < cfg.total; i++ {
			jobs <- i
		}
		return
	}

	timer := time.NewTimer(cfg.duration)
	defer timer.Stop()

	for i := 0; ; i++ {
		if cfg.totalSet && i >= cfg.total {
			return
		}

		select {
		case <-timer.C:
			return
		case jobs <- i:
		}
	}
}

func runScenario(client checkoutCaller, cfg config, index int, col *collector) {
	t := cfg.targets[index%len(cfg.targets)]

	req := &checkoutv1.FinalizeCheckoutRequest{CartId: t.cartID, CustomerId: t.customerID}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	_, err := client.FinalizeCheckout(ctx, req)
	cancel()
	latency := time.Since(start)

	code := status.Code(err)
	ok := isExpected(code, cfg.acceptRejections)
	col.record(finalizeMethod, latency, code, ok)
	col.record(scenarioMethod, latency, code, ok)
}

func isExpected(code codes.Code, acceptRejections bool) bool {
	return code == codes.OK || (acceptRejections && code == codes.FailedPrecondition)
}
