package checkout

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/service/payment"
	"github.com/vladislavdragonenkov/checkout/internal/service/stock"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
)

// CheckoutLifecycleSuite прогоняет сценарии покупки на in-memory адаптерах.
type CheckoutLifecycleSuite struct {
	suite.Suite

	customers *memory.CustomerRepository
	carts     *memory.CartRepository
	stock     *stock.MockService
	payments  *payment.MockService
	service   *Service
}

func TestCheckoutLifecycleSuite(t *testing.T) {
	suite.Run(t, new(CheckoutLifecycleSuite))
}

func (s *CheckoutLifecycleSuite) SetupTest() {
	s.customers = memory.NewCustomerRepository()
	s.carts = memory.NewCartRepository()
	s.stock = stock.NewMockService()
	s.payments = payment.NewMockService()

	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	s.service = NewService(s.customers, s.carts, s.stock, s.payments,
		WithLogger(logger.WithField("component", "checkout-suite")))

	s.customers.Save(domain.Customer{ID: 7, Name: "Bruno", Region: domain.RegionNortheast, Tier: domain.TierBronze})
}

func (s *CheckoutLifecycleSuite) saveCart(id int64, items ...*domain.LineItem) {
	s.carts.Save(domain.Cart{ID: id, CustomerID: 7, Items: items})
}

func (s *CheckoutLifecycleSuite) TestRetryAfterDecline() {
	s.saveCart(1, lineItem(1, "250.00", "3.00", 2, false))

	s.payments.SetAuthorized(false)
	_, err := s.service.FinalizeCheckout(context.Background(), 1, 7)
	s.Require().ErrorIs(err, domain.ErrPaymentNotAuthorized)

	s.payments.SetAuthorized(true)
	result, err := s.service.FinalizeCheckout(context.Background(), 1, 7)
	s.Require().NoError(err)
	// 500.00 - 10% + 6 кг * 2.00
	s.True(result.Total.Equal(decimal.RequireFromString("462.00")), "total %s", result.Total)

	authorize, cancel := s.payments.Calls()
	s.Equal(2, authorize)
	s.Equal(0, cancel)
}

func (s *CheckoutLifecycleSuite) TestMixedCartWithDiscountAndFragile() {
	s.saveCart(2,
		lineItem(1, "900.00", "20.00", 1, false),
		lineItem(2, "100.00", "1.00", 2, true),
	)

	result, err := s.service.FinalizeCheckout(context.Background(), 2, 7)
	s.Require().NoError(err)
	// подытог 1100, скидка 220, вес 22 кг * 4.00 = 88, хрупкие 2 * 5.00
	s.Equal("978.00", result.Total.StringFixed(2))
	s.True(s.payments.LastAmount.Equal(result.Total))
}

func (s *CheckoutLifecycleSuite) TestCompensationThenSuccess() {
	s.saveCart(3, lineItem(1, "10.00", "1.00", 1, false))

	s.stock.SetDebitFails(true)
	_, err := s.service.FinalizeCheckout(context.Background(), 3, 7)
	s.Require().ErrorIs(err, domain.ErrStockDebit)
	s.Equal([]string{payment.DefaultMockTransactionID}, s.payments.Canceled)

	s.stock.SetDebitFails(false)
	result, err := s.service.FinalizeCheckout(context.Background(), 3, 7)
	s.Require().NoError(err)
	s.True(result.Success)
	s.Len(s.payments.Canceled, 1)
}
