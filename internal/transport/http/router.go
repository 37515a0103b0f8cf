// Package httpapi публикует чекаут и расчёт стоимости по HTTP поверх chi,
// вместе с эндпоинтами метрик и health.
package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/checkout/internal/health"
	"github.com/vladislavdragonenkov/checkout/internal/service/checkout"
)

const defaultRequestTimeout = 30 * time.Second

// Quoter считает разбивку стоимости корзины.
type Quoter interface {
	Quote(cart *domain.Cart) (domain.Quote, error)
}

// Config описывает зависимости роутера. Checkout и Quoter обязательны.
type Config struct {
	Checkout checkout.Finalizer
	Quoter   Quoter
	// Timeline опционален: без него GET /v1/carts/{cartID}/timeline отвечает 404.
	Timeline domain.TimelineRepository
	Health   *healthcheck.Handler
	Gatherer prometheus.Gatherer
	Logger   *log.Entry
	Timeout  time.Duration
}

// NewRouter собирает chi-роутер сервиса.
func NewRouter(cfg Config) chi.Router {
	if cfg.Logger == nil {
		cfg.Logger = log.New().WithField("component", "http")
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRequestTimeout
	}

	h := &handlers{
		checkout: cfg.Checkout,
		quoter:   cfg.Quoter,
		timeline: cfg.Timeline,
		logger:   cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusNotFound, errorCodeRouteNotFound, fmt.Sprintf("no route for %s", req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusMethodNotAllowed, errorCodeMethodNotAllowed,
			fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path))
	})

	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/livez", healthcheck.LivenessHandler)
	if cfg.Health != nil {
		r.Get("/healthz", cfg.Health.ServeHTTP)
		r.Get("/readyz", cfg.Health.ReadinessHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.Timeout))
		r.Post("/customers/{customerID}/carts/{cartID}/checkout", h.finalizeCheckout)
		r.Post("/quote", h.quote)
		r.Get("/carts/{cartID}/timeline", h.cartTimeline)
	})

	return r
}

// requestLogger пишет одну запись logrus на запрос.
func requestLogger(logger *log.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.WithFields(log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"duration_ms": time.Since(started).Milliseconds(),
				"request_id":  middleware.GetReqID(r.Context()),
			}).Debug("http request")
		})
	}
}
