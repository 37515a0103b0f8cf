package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// DefaultStripePaymentMethod — тестовая карта Stripe для окружений без реальных методов оплаты.
const DefaultStripePaymentMethod = "pm_card_visa"

// minorUnitPlaces — сдвиг суммы в минимальные единицы валюты (центы/копейки).
const minorUnitPlaces = 2

type stripeIntentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Cancel(id string, params *stripe.PaymentIntentCancelParams) (*stripe.PaymentIntent, error)
}

// StripeConfig задаёт параметры StripeService.
type StripeConfig struct {
	APIKey        string
	Currency      string
	PaymentMethod string
	Backends      *stripe.Backends
	Logger        *log.Entry

	intents stripeIntentAPI
}

// StripeService авторизует платежи через PaymentIntent с ручным списанием
// (capture_method=manual): деньги резервируются, отмена снимает резерв.
type StripeService struct {
	intents       stripeIntentAPI
	currency      string
	paymentMethod string
	logger        *log.Entry
}

// NewStripeService создаёт Stripe-адаптер PaymentService.
func NewStripeService(cfg StripeConfig) (*StripeService, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" && cfg.intents == nil {
		return nil, errors.New("stripe: api key is required")
	}

	intents := cfg.intents
	if intents == nil {
		intents = client.New(apiKey, cfg.Backends).PaymentIntents
	}

	currency := strings.ToLower(strings.TrimSpace(cfg.Currency))
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	paymentMethod := strings.TrimSpace(cfg.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = DefaultStripePaymentMethod
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New().WithField("component", "payment-stripe")
	}

	return &StripeService{
		intents:       intents,
		currency:      currency,
		paymentMethod: paymentMethod,
		logger:        logger,
	}, nil
}

// Authorize создаёт и подтверждает PaymentIntent. Платёж считается авторизованным,
// когда intent ждёт capture. Отказ карты не является ошибкой: возвращается Authorized=false.
// Сумма меньше одной минимальной единицы тоже отклоняется без обращения к Stripe.
func (s *StripeService) Authorize(ctx context.Context, customerID int64, amount decimal.Decimal) (domain.PaymentAuthorization, error) {
	minor := toMinorUnits(amount)
	if minor <= 0 {
		s.logger.WithFields(log.Fields{
			"customer_id": customerID,
			"amount":      amount.StringFixed(minorUnitPlaces),
		}).Warn("stripe cannot authorize non-positive amount")
		return domain.PaymentAuthorization{}, nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(minor),
		Currency:           stripe.String(s.currency),
		CaptureMethod:      stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		Confirm:            stripe.Bool(true),
		PaymentMethod:      stripe.String(s.paymentMethod),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.AddMetadata("customer_id", strconv.FormatInt(customerID, 10))

	intent, err := s.intents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			s.logger.WithFields(log.Fields{
				"customer_id": customerID,
				"code":        stripeErr.Code,
			}).Info("stripe card declined")
			return domain.PaymentAuthorization{}, nil
		}
		return domain.PaymentAuthorization{}, fmt.Errorf("stripe: create payment intent: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"customer_id":    customerID,
		"payment_intent": intent.ID,
		"status":         intent.Status,
	}).Debug("stripe payment intent created")

	if intent.Status != stripe.PaymentIntentStatusRequiresCapture {
		return domain.PaymentAuthorization{}, nil
	}
	return domain.PaymentAuthorization{Authorized: true, TransactionID: intent.ID}, nil
}

// Cancel отменяет PaymentIntent и освобождает резерв на карте.
func (s *StripeService) Cancel(ctx context.Context, customerID int64, transactionID string) error {
	if strings.TrimSpace(transactionID) == "" {
		return errors.New("stripe: transaction id is required")
	}
	params := &stripe.PaymentIntentCancelParams{
		CancellationReason: stripe.String("abandoned"),
	}
	params.Context = ctx

	intent, err := s.intents.Cancel(transactionID, params)
	if err != nil {
		return fmt.Errorf("stripe: cancel payment intent %s: %w", transactionID, err)
	}
	s.logger.WithFields(log.Fields{
		"customer_id":    customerID,
		"payment_intent": intent.ID,
		"status":         intent.Status,
	}).Info("stripe payment intent canceled")
	return nil
}

func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(minorUnitPlaces).Round(0).IntPart()
}

var _ domain.PaymentService = (*StripeService)(nil)
