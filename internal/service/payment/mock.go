package payment

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// DefaultMockTransactionID — идентификатор транзакции, который mock выдаёт по умолчанию.
const DefaultMockTransactionID = "999"

// MockService — конфигурируемая заглушка PaymentService.
type MockService struct {
	mu sync.Mutex

	Authorized    bool
	TransactionID string
	AuthorizeErr  error
	CancelErr     error

	AuthorizeCalls int
	CancelCalls    int

	LastCustomerID int64
	LastAmount     decimal.Decimal
	// Canceled — идентификаторы транзакций, по которым пришла отмена.
	Canceled []string
}

// NewMockService возвращает mock, авторизующий любой платёж.
func NewMockService() *MockService {
	return &MockService{
		Authorized:    true,
		TransactionID: DefaultMockTransactionID,
	}
}

// SetAuthorized переключает ответ авторизации.
func (m *MockService) SetAuthorized(authorized bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Authorized = authorized
}

// Authorize возвращает настроенный результат и запоминает сумму.
func (m *MockService) Authorize(_ context.Context, customerID int64, amount decimal.Decimal) (domain.PaymentAuthorization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AuthorizeCalls++
	m.LastCustomerID = customerID
	m.LastAmount = amount
	if m.AuthorizeErr != nil {
		return domain.PaymentAuthorization{}, m.AuthorizeErr
	}
	if !m.Authorized {
		return domain.PaymentAuthorization{}, nil
	}
	return domain.PaymentAuthorization{Authorized: true, TransactionID: m.TransactionID}, nil
}

// Cancel запоминает отменённую транзакцию и возвращает настроенную ошибку.
func (m *MockService) Cancel(_ context.Context, _ int64, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CancelCalls++
	m.Canceled = append(m.Canceled, transactionID)
	return m.CancelErr
}

// Calls возвращает счётчики вызовов под блокировкой.
func (m *MockService) Calls() (authorize, cancel int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.AuthorizeCalls, m.CancelCalls
}

var _ domain.PaymentService = (*MockService)(nil)
