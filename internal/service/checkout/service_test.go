package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/metrics"
	"github.com/vladislavdragonenkov/checkout/internal/service/payment"
	"github.com/vladislavdragonenkov/checkout/internal/service/stock"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.CheckoutEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.CheckoutEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []domain.CheckoutEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]domain.CheckoutEventType, 0, len(p.events))
	for _, e := range p.events {
		result = append(result, e.Type)
	}
	return result
}

type failingCustomers struct{ err error }

func (f failingCustomers) FindByID(context.Context, int64) (domain.Customer, error) {
	return domain.Customer{}, f.err
}

type fixture struct {
	customers *memory.CustomerRepository
	carts     *memory.CartRepository
	stock     *stock.MockService
	payments  *payment.MockService
	timeline  domain.TimelineRepository
	publisher *recordingPublisher
	service   *Service
}

const (
	testCustomerID int64 = 1
	testCartID     int64 = 10
)

func newFixture(t *testing.T, items ...*domain.LineItem) *fixture {
	t.Helper()

	f := &fixture{
		customers: memory.NewCustomerRepository(),
		carts:     memory.NewCartRepository(),
		stock:     stock.NewMockService(),
		payments:  payment.NewMockService(),
		timeline:  memory.NewTimelineRepository(),
		publisher: &recordingPublisher{},
	}
	f.customers.Save(domain.Customer{ID: testCustomerID, Name: "Ana", Region: domain.RegionSouth, Tier: domain.TierSilver})
	if len(items) == 0 {
		items = []*domain.LineItem{lineItem(100, "100.00", "1.00", 1, false)}
	}
	f.carts.Save(domain.Cart{ID: testCartID, CustomerID: testCustomerID, Items: items})

	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	f.service = NewService(f.customers, f.carts, f.stock, f.payments,
		WithLogger(logger.WithField("component", "checkout-test")),
		WithTimeline(f.timeline),
		WithPublisher(f.publisher),
	)
	return f
}

func lineItem(productID int64, price, weight string, qty int64, fragile bool) *domain.LineItem {
	return &domain.LineItem{
		ID: productID * 10,
		Product: &domain.Product{
			ID:       productID,
			Name:     "product",
			Price:    domain.Price(price),
			Weight:   domain.Price(weight),
			Category: domain.CategoryElectronics,
			Fragile:  fragile,
		},
		Quantity: qty,
	}
}

func (f *fixture) timelineTypes(t *testing.T) []string {
	t.Helper()
	events, err := f.timeline.List(context.Background(), testCartID)
	require.NoError(t, err)
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}

func TestFinalizeCheckout_Success(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.NoError(t, err)

	require.True(t, result.Success)
	require.Equal(t, payment.DefaultMockTransactionID, result.TransactionID)
	require.Equal(t, domain.CheckoutSuccessMessage, result.Message)
	require.True(t, result.Total.Equal(decimal.RequireFromString("100.00")))

	require.True(t, f.payments.LastAmount.Equal(decimal.RequireFromString("100.00")))
	require.Equal(t, testCustomerID, f.payments.LastCustomerID)

	check, debit := f.stock.Calls()
	require.Equal(t, 1, check)
	require.Equal(t, 1, debit)
	authorize, cancel := f.payments.Calls()
	require.Equal(t, 1, authorize)
	require.Equal(t, 0, cancel)

	require.Equal(t, []string{
		domain.TimelineCheckoutStarted,
		domain.TimelinePaymentAuthorized,
		domain.TimelineCheckoutCompleted,
	}, f.timelineTypes(t))
	require.Equal(t, []domain.CheckoutEventType{domain.EventCheckoutCompleted}, f.publisher.types())

	event := f.publisher.events[0]
	require.Equal(t, testCartID, event.CartID)
	require.Equal(t, testCustomerID, event.CustomerID)
	require.Equal(t, "100.00", event.Total)
	require.Equal(t, payment.DefaultMockTransactionID, event.TransactionID)
	require.NotEmpty(t, event.AttemptID)
}

func TestFinalizeCheckout_FragileItem(t *testing.T) {
	f := newFixture(t, lineItem(100, "10.00", "1.00", 1, true))

	result, err := f.service.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.NoError(t, err)
	require.True(t, result.Total.Equal(decimal.RequireFromString("15.00")))
	require.True(t, f.payments.LastAmount.Equal(decimal.RequireFromString("15.00")))
}

func TestFinalizeCheckout_HeavyParcel(t *testing.T) {
	f := newFixture(t, lineItem(100, "50.01", "50.01", 1, false))

	result, err := f.service.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.NoError(t, err)
	require.Equal(t, "400.08", result.Total.StringFixed(2))
}

func TestFinalizeCheckout_PassesStockRequestInItemOrder(t *testing.T) {
	f := newFixture(t,
		lineItem(30, "1.00", "0.00", 2, false),
		lineItem(10, "1.00", "0.00", 5, false),
		lineItem(20, "1.00", "0.00", 1, false),
	)

	_, err := f.service.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.NoError(t, err)
	require.Equal(t, []int64{30, 10, 20}, f.stock.LastProductIDs)
	require.Equal(t, []int64{2, 5, 1}, f.stock.LastQuantities)
}

func TestFinalizeCheckout_CustomerNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.FinalizeCheckout(context.Background(), testCartID, 404)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
	require.Equal(t, "Customer not found", err.Error())

	check, _ := f.stock.Calls()
	require.Zero(t, check)
	authorize, _ := f.payments.Calls()
	require.Zero(t, authorize)
	require.Empty(t, f.timelineTypes(t))
	require.Empty(t, f.publisher.types())
}

func TestFinalizeCheckout_CartNotFound(t *testing.T) {
	tests := []struct {
		name   string
		cartID int64
		setup  func(f *fixture)
	}{
		{name: "missing cart", cartID: 404},
		{name: "cart of another customer", cartID: 20, setup: func(f *fixture) {
			f.customers.Save(domain.Customer{ID: 2})
			f.carts.Save(domain.Cart{ID: 20, CustomerID: 2, Items: []*domain.LineItem{lineItem(1, "1.00", "1.00", 1, false)}})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.service.FinalizeCheckout(context.Background(), tt.cartID, testCustomerID)
			require.ErrorIs(t, err, domain.ErrCartNotFound)
			require.Equal(t, domain.KindNotFound, domain.KindOf(err))

			check, _ := f.stock.Calls()
			require.Zero(t, check)
		})
	}
}

func TestFinalizeCheckout_RepositoryFailureIsWrapped(t *testing.T) {
	f := newFixture(t)
	dbErr := errors.New("connection refused")
	f.service.customers = failingCustomers{err: dbErr}

	_, err := f.service.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.ErrorIs(t, err, dbErr)
	require.Empty(t, domain.KindOf(err))
}

func TestFinalizeCheckout_OutOfStock(t *testing.T) {
	f := newFixture(t)
	f.stock.SetAvailable(false)

	_, err := f.service.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.ErrorIs(t, err, domain.ErrOutOfStock)
	require.Equal(t, "Items out of stock", err.Error())

	authorize, cancel := f.payments.Calls()
	require.Zero(t, authorize)
	require.Zero(t, cancel)
	_, debit := f.stock.Calls()
	require.Zero(t, debit)

	require.Equal(t, []string{
		domain.TimelineCheckoutStarted,
		domain.TimelineStockUnavailable,
		domain.TimelineCheckoutFailed,
	}, f.timelineTypes(t))
	require.Equal(t, []domain.CheckoutEventType{domain.EventCheckoutFailed}, f.publisher.types())
}

func TestFinalizeCheckout_InvalidCartAfterStockCheck(t *testing.T) {
	item := lineItem(100, "10.00", "1.00", 1, false)
	item.Product.Price = decimal.NullDecimal{}
	f := newFixture(t, item)

	_, err := f.service.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	authorize, _ := f.payments.Calls()
	require.Zero(t, authorize)
}

func TestFinalizeCheckout_MalformedItemRejectedBeforeStockCheck(t *testing.T) {
	f := newFixture(t,
		lineItem(100, "10.00", "1.00", 1, false),
		&domain.LineItem{ID: 2000, Product: nil, Quantity: 3},
	)

	_, err := f.service.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	require.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	check, debit := f.stock.Calls()
	require.Zero(t, check)
	require.Zero(t, debit)
	authorize, cancel := f.payments.Calls()
	require.Zero(t, authorize)
	require.Zero(t, cancel)
}

func TestFinalizeCheckout_PaymentDeclined(t *testing.T) {
	f := newFixture(t)
	f.payments.SetAuthorized(false)

	_, err := f.service.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.ErrorIs(t, err, domain.ErrPaymentNotAuthorized)
	require.Equal(t, "Payment not authorized", err.Error())

	check, debit := f.stock.Calls()
	require.Equal(t, 1, check)
	require.Zero(t, debit)
	_, cancel := f.payments.Calls()
	require.Zero(t, cancel)

	require.Equal(t, []string{
		domain.TimelineCheckoutStarted,
		domain.TimelinePaymentDeclined,
		domain.TimelineCheckoutFailed,
	}, f.timelineTypes(t))
}

func TestFinalizeCheckout_DebitFailureCancelsPayment(t *testing.T) {
	f := newFixture(t)
	f.stock.SetDebitFails(true)

	_, err := f.service.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.ErrorIs(t, err, domain.ErrStockDebit)
	require.Equal(t, "Stock debit error", err.Error())

	authorize, cancel := f.payments.Calls()
	require.Equal(t, 1, authorize)
	require.Equal(t, 1, cancel)
	require.Equal(t, []string{payment.DefaultMockTransactionID}, f.payments.Canceled)

	require.Equal(t, []string{
		domain.TimelineCheckoutStarted,
		domain.TimelinePaymentAuthorized,
		domain.TimelineStockDebitFailed,
		domain.TimelinePaymentCanceled,
		domain.TimelineCheckoutFailed,
	}, f.timelineTypes(t))
	require.Equal(t, []domain.CheckoutEventType{
		domain.EventCheckoutCompensated,
		domain.EventCheckoutFailed,
	}, f.publisher.types())
}

func TestFinalizeCheckout_CancelFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.stock.SetDebitFails(true)
	f.payments.CancelErr = errors.New("provider unreachable")

	_, err := f.service.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.ErrorIs(t, err, domain.ErrStockDebit)
	require.NotContains(t, err.Error(), "provider unreachable")

	_, cancel := f.payments.Calls()
	require.Equal(t, 1, cancel)
	require.NotContains(t, f.timelineTypes(t), domain.TimelinePaymentCanceled)
}

func TestFinalizeCheckout_DebitTransportErrorCancelsPayment(t *testing.T) {
	f := newFixture(t)
	f.stock.DebitErr = errors.New("stock timeout")

	_, err := f.service.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "stock timeout")
	require.Empty(t, domain.KindOf(err))

	_, cancel := f.payments.Calls()
	require.Equal(t, 1, cancel)
}

func TestFinalizeCheckout_CollaboratorErrorsAreWrapped(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture, cause error)
	}{
		{name: "stock check", setup: func(f *fixture, cause error) { f.stock.CheckErr = cause }},
		{name: "authorize", setup: func(f *fixture, cause error) { f.payments.AuthorizeErr = cause }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cause := errors.New("unreachable")
			tt.setup(f, cause)

			_, err := f.service.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
			require.ErrorIs(t, err, cause)

			_, cancel := f.payments.Calls()
			require.Zero(t, cancel)
			_, debit := f.stock.Calls()
			require.Zero(t, debit)
		})
	}
}

func TestFinalizeCheckout_CompensationSurvivesCanceledContext(t *testing.T) {
	f := newFixture(t)
	f.stock.SetDebitFails(true)

	ctx, cancel := context.WithCancel(context.Background())
	canceling := &cancelingPayments{MockService: f.payments, cancel: cancel}
	f.service.payments = canceling

	_, err := f.service.FinalizeCheckout(ctx, testCartID, testCustomerID)
	require.ErrorIs(t, err, domain.ErrStockDebit)
	require.NoError(t, canceling.cancelCtxErr)
}

// cancelingPayments отменяет контекст запроса сразу после авторизации.
type cancelingPayments struct {
	*payment.MockService
	cancel       context.CancelFunc
	cancelCtxErr error
}

func (c *cancelingPayments) Authorize(ctx context.Context, customerID int64, amount decimal.Decimal) (domain.PaymentAuthorization, error) {
	auth, err := c.MockService.Authorize(ctx, customerID, amount)
	c.cancel()
	return auth, err
}

func (c *cancelingPayments) Cancel(ctx context.Context, customerID int64, transactionID string) error {
	c.cancelCtxErr = ctx.Err()
	return c.MockService.Cancel(ctx, customerID, transactionID)
}

type failingTimeline struct {
	mu      sync.Mutex
	appends int
}

func (f *failingTimeline) Append(context.Context, domain.TimelineEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends++
	return errors.New("timeline storage down")
}

func (f *failingTimeline) List(context.Context, int64) ([]domain.TimelineEvent, error) {
	return nil, errors.New("timeline storage down")
}

func TestFinalizeCheckout_TimelineAndPublisherFailuresDoNotAbort(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")
	timeline := &failingTimeline{}

	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	svc := NewService(f.customers, f.carts, f.stock, f.payments,
		WithLogger(logger.WithField("component", "checkout-test")),
		WithTimeline(timeline),
		WithPublisher(f.publisher),
	)

	result, err := svc.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotEmpty(t, result.TransactionID)

	timeline.mu.Lock()
	appends := timeline.appends
	timeline.mu.Unlock()
	require.Positive(t, appends)
	require.Equal(t, []domain.CheckoutEventType{domain.EventCheckoutCompleted}, f.publisher.types())

	_, debit := f.stock.Calls()
	require.Equal(t, 1, debit)
}

func TestFinalizeCheckout_WithoutOptionalDependencies(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.customers, f.carts, f.stock, f.payments)

	result, err := svc.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.NoError(t, err)
	require.True(t, result.Success)
}

func TestFinalizeCheckout_RecordsMetrics(t *testing.T) {
	f := newFixture(t)
	reg := prometheus.NewRegistry()
	m := metrics.NewCheckoutMetricsWithRegisterer(reg)
	svc := NewService(f.customers, f.carts, f.stock, f.payments, WithMetrics(m))

	_, err := svc.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.NoError(t, err)

	f.stock.SetDebitFails(true)
	_, err = svc.FinalizeCheckout(context.Background(), testCartID, testCustomerID)
	require.ErrorIs(t, err, domain.ErrStockDebit)

	expected := `
# HELP checkout_started_total Total number of checkout attempts started
# TYPE checkout_started_total counter
checkout_started_total 2
# HELP checkout_completed_total Total number of checkout attempts completed successfully
# TYPE checkout_completed_total counter
checkout_completed_total 1
# HELP checkout_failed_total Total number of checkout attempts failed, by reason
# TYPE checkout_failed_total counter
checkout_failed_total{reason="domain"} 1
# HELP checkout_compensations_total Total number of payment cancellations issued as compensation, by result
# TYPE checkout_compensations_total counter
checkout_compensations_total{result="succeeded"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"checkout_started_total",
		"checkout_completed_total",
		"checkout_failed_total",
		"checkout_compensations_total",
	))
}
