package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CustomerRepository разрешает клиента по идентификатору.
type CustomerRepository interface {
	// FindByID возвращает клиента или ErrCustomerNotFound.
	FindByID(ctx context.Context, id int64) (Customer, error)
}

// CartRepository разрешает корзину с проверкой владельца.
type CartRepository interface {
	// FindByIDAndCustomer возвращает корзину клиента или ErrCartNotFound,
	// если корзины нет или она принадлежит другому клиенту.
	FindByIDAndCustomer(ctx context.Context, id int64, customer Customer) (Cart, error)
}

// StockService описывает взаимодействие со складом.
// productIDs и quantities — параллельные списки в порядке позиций корзины.
type StockService interface {
	// CheckAvailability проверяет наличие товаров.
	CheckAvailability(ctx context.Context, productIDs, quantities []int64) (StockAvailability, error)
	// Debit списывает товары со склада.
	Debit(ctx context.Context, productIDs, quantities []int64) (StockDebit, error)
}

// PaymentService описывает взаимодействие с платёжным провайдером.
type PaymentService interface {
	// Authorize резервирует сумму у провайдера.
	Authorize(ctx context.Context, customerID int64, amount decimal.Decimal) (PaymentAuthorization, error)
	// Cancel отменяет ранее авторизованный платёж (компенсация).
	Cancel(ctx context.Context, customerID int64, transactionID string) error
}

// EventPublisher публикует события чекаута наружу.
type EventPublisher interface {
	Publish(ctx context.Context, event CheckoutEvent) error
}

// TimelineRepository хранит историю попыток чекаута по корзине.
type TimelineRepository interface {
	Append(ctx context.Context, event TimelineEvent) error
	List(ctx context.Context, cartID int64) ([]TimelineEvent, error)
}
