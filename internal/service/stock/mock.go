package stock

import (
	"context"
	"slices"
	"sync"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// MockService — конфигурируемая заглушка StockService.
// Запоминает последние полученные идентификаторы и количества.
type MockService struct {
	mu sync.Mutex

	// Unavailable — товары, которых «нет» на складе.
	Unavailable []int64
	DebitFails  bool
	CheckErr    error
	DebitErr    error

	CheckCalls int
	DebitCalls int

	LastProductIDs []int64
	LastQuantities []int64
}

// NewMockService возвращает mock с успешным сценарием по умолчанию.
func NewMockService() *MockService {
	return &MockService{}
}

// SetAvailable переключает наличие: false делает недоступными все запрошенные товары.
func (m *MockService) SetAvailable(available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if available {
		m.Unavailable = nil
		return
	}
	m.Unavailable = []int64{}
}

// SetDebitFails включает отказ при списании.
func (m *MockService) SetDebitFails(fails bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DebitFails = fails
}

// CheckAvailability возвращает настроенный ответ и считает вызовы.
func (m *MockService) CheckAvailability(_ context.Context, productIDs, quantities []int64) (domain.StockAvailability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CheckCalls++
	m.remember(productIDs, quantities)
	if m.CheckErr != nil {
		return domain.StockAvailability{}, m.CheckErr
	}
	if m.Unavailable == nil {
		return domain.StockAvailability{Available: true}, nil
	}

	// Пустой (не nil) список означает «ничего нет».
	if len(m.Unavailable) == 0 {
		return domain.StockAvailability{Unavailable: slices.Clone(productIDs)}, nil
	}
	var missing []int64
	for _, id := range productIDs {
		if slices.Contains(m.Unavailable, id) {
			missing = append(missing, id)
		}
	}
	return domain.StockAvailability{Available: len(missing) == 0, Unavailable: missing}, nil
}

// Debit возвращает настроенный ответ и считает вызовы.
func (m *MockService) Debit(_ context.Context, productIDs, quantities []int64) (domain.StockDebit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DebitCalls++
	m.remember(productIDs, quantities)
	if m.DebitErr != nil {
		return domain.StockDebit{}, m.DebitErr
	}
	return domain.StockDebit{Success: !m.DebitFails}, nil
}

// Calls возвращает счётчики вызовов под блокировкой.
func (m *MockService) Calls() (check, debit int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CheckCalls, m.DebitCalls
}

func (m *MockService) remember(productIDs, quantities []int64) {
	m.LastProductIDs = slices.Clone(productIDs)
	m.LastQuantities = slices.Clone(quantities)
}

var _ domain.StockService = (*MockService)(nil)
