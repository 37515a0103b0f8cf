package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/metrics"
	"github.com/vladislavdragonenkov/checkout/internal/pricing"
)

// Finalizer описывает сценарий финализации покупки.
type Finalizer interface {
	FinalizeCheckout(ctx context.Context, cartID, customerID int64) (domain.CheckoutResult, error)
}

// TotalCalculator считает итог корзины.
type TotalCalculator interface {
	ComputeTotal(cart *domain.Cart) (decimal.Decimal, error)
}

const (
	compensationSucceeded = "succeeded"
	compensationFailed    = "failed"
	reasonInternal        = "internal"
)

// Options задаёт необязательные зависимости сервиса.
type Options struct {
	Logger     *log.Entry
	Metrics    *metrics.CheckoutMetrics
	Timeline   domain.TimelineRepository
	Publisher  domain.EventPublisher
	Calculator TotalCalculator
	Now        func() time.Time
}

// Option настраивает Service.
type Option func(*Options)

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithMetrics включает метрики Prometheus.
func WithMetrics(m *metrics.CheckoutMetrics) Option {
	return func(opts *Options) {
		opts.Metrics = m
	}
}

// WithTimeline включает запись истории попыток.
func WithTimeline(repo domain.TimelineRepository) Option {
	return func(opts *Options) {
		opts.Timeline = repo
	}
}

// WithPublisher включает публикацию событий чекаута.
func WithPublisher(publisher domain.EventPublisher) Option {
	return func(opts *Options) {
		opts.Publisher = publisher
	}
}

// WithCalculator подменяет калькулятор стоимости.
func WithCalculator(calc TotalCalculator) Option {
	return func(opts *Options) {
		opts.Calculator = calc
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(opts *Options) {
		opts.Now = now
	}
}

// Service реализует последовательность: lookup → stock check → pricing → payment → stock debit.
// При неудачном списании авторизованный платёж отменяется.
type Service struct {
	customers domain.CustomerRepository
	carts     domain.CartRepository
	stock     domain.StockService
	payments  domain.PaymentService

	calculator TotalCalculator
	timeline   domain.TimelineRepository
	publisher  domain.EventPublisher
	metrics    *metrics.CheckoutMetrics
	logger     *log.Entry
	now        func() time.Time
}

// NewService создаёт сервис финализации покупок.
func NewService(
	customers domain.CustomerRepository,
	carts domain.CartRepository,
	stock domain.StockService,
	payments domain.PaymentService,
	opts ...Option,
) *Service {
	cfg := Options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New().WithField("component", "checkout")
	}
	if cfg.Calculator == nil {
		cfg.Calculator = pricing.NewCalculator()
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}

	return &Service{
		customers:  customers,
		carts:      carts,
		stock:      stock,
		payments:   payments,
		calculator: cfg.Calculator,
		timeline:   cfg.Timeline,
		publisher:  cfg.Publisher,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
		now:        cfg.Now,
	}
}

// attempt хранит контекст одной попытки чекаута.
type attempt struct {
	id         string
	cartID     int64
	customerID int64
	// cartResolved выставляется после успешного поиска корзины: до этого timeline не пишется.
	cartResolved bool
	logger       *log.Entry
}

// FinalizeCheckout проводит покупку корзины клиента. Доменные отказы возвращаются
// как *domain.Error, сбои коллабораторов оборачиваются и возвращаются как есть.
func (s *Service) FinalizeCheckout(ctx context.Context, cartID, customerID int64) (domain.CheckoutResult, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.RecordCheckoutStarted()
		defer func() {
			s.metrics.RecordCheckoutFinished(time.Since(start))
		}()
	}

	a := &attempt{
		id:         uuid.NewString(),
		cartID:     cartID,
		customerID: customerID,
	}
	a.logger = s.logger.WithFields(log.Fields{
		"attempt_id":  a.id,
		"cart_id":     cartID,
		"customer_id": customerID,
	})

	// 1-2. Клиент и корзина.
	stepStart := time.Now()
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return s.fail(ctx, a, lookupError(err, domain.ErrCustomerNotFound, "find customer"))
	}
	cart, err := s.carts.FindByIDAndCustomer(ctx, cartID, customer)
	if err != nil {
		return s.fail(ctx, a, lookupError(err, domain.ErrCartNotFound, "find cart"))
	}
	s.observeStep(domain.CheckoutStepLookup, stepStart)
	a.cartResolved = true
	s.record(ctx, a, domain.TimelineCheckoutStarted, "")

	// 3. Наличие на складе. Позиции без товара отклоняются до внешних вызовов.
	productIDs, quantities, err := cart.StockRequest()
	if err != nil {
		return s.fail(ctx, a, err)
	}
	stepStart = time.Now()
	availability, err := s.stock.CheckAvailability(ctx, productIDs, quantities)
	s.observeStep(domain.CheckoutStepStock, stepStart)
	if err != nil {
		return s.fail(ctx, a, fmt.Errorf("check stock availability: %w", err))
	}
	if !availability.Available {
		a.logger.WithField("unavailable", availability.Unavailable).Info("items out of stock")
		s.record(ctx, a, domain.TimelineStockUnavailable, domain.ErrOutOfStock.Error())
		return s.fail(ctx, a, domain.ErrOutOfStock)
	}

	// 4. Расчёт итога.
	stepStart = time.Now()
	total, err := s.calculator.ComputeTotal(&cart)
	s.observeStep(domain.CheckoutStepPricing, stepStart)
	if err != nil {
		return s.fail(ctx, a, err)
	}
	a.logger = a.logger.WithField("total", total.StringFixed(2))

	// 5. Авторизация платежа.
	stepStart = time.Now()
	auth, err := s.payments.Authorize(ctx, customer.ID, total)
	s.observeStep(domain.CheckoutStepPayment, stepStart)
	if err != nil {
		return s.fail(ctx, a, fmt.Errorf("authorize payment: %w", err))
	}
	if !auth.Authorized {
		a.logger.Info("payment declined")
		s.record(ctx, a, domain.TimelinePaymentDeclined, domain.ErrPaymentNotAuthorized.Error())
		return s.fail(ctx, a, domain.ErrPaymentNotAuthorized)
	}
	a.logger = a.logger.WithField("transaction_id", auth.TransactionID)
	s.record(ctx, a, domain.TimelinePaymentAuthorized, "")

	// 6-7. Списание со склада, при отказе отменяем платёж.
	stepStart = time.Now()
	debit, err := s.stock.Debit(ctx, productIDs, quantities)
	s.observeStep(domain.CheckoutStepDebit, stepStart)
	if err != nil {
		s.record(ctx, a, domain.TimelineStockDebitFailed, err.Error())
		s.compensate(ctx, a, customer.ID, auth.TransactionID)
		return s.fail(ctx, a, fmt.Errorf("debit stock: %w", err))
	}
	if !debit.Success {
		s.record(ctx, a, domain.TimelineStockDebitFailed, domain.ErrStockDebit.Error())
		s.compensate(ctx, a, customer.ID, auth.TransactionID)
		return s.fail(ctx, a, domain.ErrStockDebit)
	}

	// 8. Успех.
	result := domain.CheckoutResult{
		Success:       true,
		TransactionID: auth.TransactionID,
		Message:       domain.CheckoutSuccessMessage,
		Total:         total,
	}
	s.record(ctx, a, domain.TimelineCheckoutCompleted, "")
	s.publish(ctx, a, domain.CheckoutEvent{
		Type:          domain.EventCheckoutCompleted,
		TransactionID: auth.TransactionID,
		Total:         total.StringFixed(2),
	})
	if s.metrics != nil {
		s.metrics.RecordCheckoutCompleted()
	}
	a.logger.Info("checkout completed")

	return result, nil
}

// compensate отменяет авторизованный платёж. Ошибка отмены только логируется:
// клиент получает исходную причину отказа.
func (s *Service) compensate(ctx context.Context, a *attempt, customerID int64, transactionID string) {
	// Отмена не должна срываться из-за отменённого клиентом запроса.
	ctx = context.WithoutCancel(ctx)

	stepStart := time.Now()
	err := s.payments.Cancel(ctx, customerID, transactionID)
	s.observeStep(domain.CheckoutStepCancel, stepStart)

	if err != nil {
		a.logger.WithError(err).Warn("payment cancel failed, manual reconciliation required")
		if s.metrics != nil {
			s.metrics.RecordCompensation(compensationFailed)
		}
		return
	}

	a.logger.Info("payment canceled after stock debit failure")
	if s.metrics != nil {
		s.metrics.RecordCompensation(compensationSucceeded)
	}
	s.record(ctx, a, domain.TimelinePaymentCanceled, "")
	s.publish(ctx, a, domain.CheckoutEvent{
		Type:          domain.EventCheckoutCompensated,
		TransactionID: transactionID,
	})
}

// fail фиксирует неудачную попытку и возвращает ошибку вызывающему.
func (s *Service) fail(ctx context.Context, a *attempt, err error) (domain.CheckoutResult, error) {
	reason := string(domain.KindOf(err))
	if reason == "" {
		reason = reasonInternal
	}

	entry := a.logger.WithError(err).WithField("reason", reason)
	if reason == reasonInternal {
		entry.Error("checkout failed")
	} else {
		entry.Info("checkout rejected")
	}

	if s.metrics != nil {
		s.metrics.RecordCheckoutFailed(reason)
	}
	if a.cartResolved {
		s.record(ctx, a, domain.TimelineCheckoutFailed, err.Error())
		s.publish(ctx, a, domain.CheckoutEvent{
			Type:   domain.EventCheckoutFailed,
			Reason: err.Error(),
		})
	}

	return domain.CheckoutResult{}, err
}

func (s *Service) record(ctx context.Context, a *attempt, eventType, reason string) {
	if s.timeline == nil || !a.cartResolved {
		return
	}
	event := domain.TimelineEvent{
		CartID:    a.cartID,
		AttemptID: a.id,
		Type:      eventType,
		Reason:    reason,
		Occurred:  s.now(),
	}
	if err := s.timeline.Append(context.WithoutCancel(ctx), event); err != nil {
		a.logger.WithError(err).WithField("event", eventType).Warn("append timeline event failed")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordTimelineEvent()
	}
}

func (s *Service) publish(ctx context.Context, a *attempt, event domain.CheckoutEvent) {
	if s.publisher == nil {
		return
	}
	event.AttemptID = a.id
	event.CartID = a.cartID
	event.CustomerID = a.customerID
	event.Timestamp = s.now()

	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		a.logger.WithError(err).WithField("event", event.Type).Warn("publish checkout event failed")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordEventPublished()
	}
}

func (s *Service) observeStep(step domain.CheckoutStep, started time.Time) {
	if s.metrics != nil {
		s.metrics.RecordStepDuration(string(step), time.Since(started))
	}
}

// lookupError сводит «не найдено» из репозитория к доменной ошибке, остальное оборачивает.
func lookupError(err, notFound error, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
