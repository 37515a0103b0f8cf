package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutSuccessMessage возвращается клиенту при успешном завершении покупки.
const CheckoutSuccessMessage = "Purchase completed successfully"

// CheckoutResult — итог финализации покупки.
type CheckoutResult struct {
	Success bool
	// TransactionID — непрозрачный идентификатор транзакции платёжного провайдера.
	TransactionID string
	Message       string
	Total         decimal.Decimal
}

// StockAvailability — ответ склада на проверку наличия.
type StockAvailability struct {
	Available   bool
	Unavailable []int64
}

// StockDebit — ответ склада на списание.
type StockDebit struct {
	Success bool
}

// PaymentAuthorization — ответ платёжного провайдера. TransactionID заполнен только при Authorized.
type PaymentAuthorization struct {
	Authorized    bool
	TransactionID string
}

// CheckoutStep задаёт константы шагов для метрик/логов.
type CheckoutStep string

const (
	CheckoutStepLookup  CheckoutStep = "lookup"
	CheckoutStepStock   CheckoutStep = "stock_check"
	CheckoutStepPricing CheckoutStep = "pricing"
	CheckoutStepPayment CheckoutStep = "payment"
	CheckoutStepDebit   CheckoutStep = "stock_debit"
	CheckoutStepCancel  CheckoutStep = "payment_cancel"
)

// Типы событий timeline чекаута.
const (
	TimelineCheckoutStarted   = "CheckoutStarted"
	TimelineStockUnavailable  = "StockUnavailable"
	TimelinePaymentAuthorized = "PaymentAuthorized"
	TimelinePaymentDeclined   = "PaymentDeclined"
	TimelineStockDebitFailed  = "StockDebitFailed"
	TimelinePaymentCanceled   = "PaymentCanceled"
	TimelineCheckoutCompleted = "CheckoutCompleted"
	TimelineCheckoutFailed    = "CheckoutFailed"
)

// TimelineEvent описывает событие в истории попыток чекаута корзины.
type TimelineEvent struct {
	CartID    int64
	AttemptID string
	Type      string
	Reason    string
	Occurred  time.Time
}

// CheckoutEventType — тип внешнего события чекаута.
type CheckoutEventType string

const (
	EventCheckoutCompleted   CheckoutEventType = "checkout.completed"
	EventCheckoutFailed      CheckoutEventType = "checkout.failed"
	EventCheckoutCompensated CheckoutEventType = "checkout.compensated"
)

// CheckoutEvent публикуется наружу по итогам попытки чекаута.
type CheckoutEvent struct {
	Type          CheckoutEventType `json:"event_type"`
	AttemptID     string            `json:"attempt_id"`
	CartID        int64             `json:"cart_id"`
	CustomerID    int64             `json:"customer_id"`
	TransactionID string            `json:"transaction_id,omitempty"`
	Total         string            `json:"total,omitempty"`
	Reason        string            `json:"reason,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}
