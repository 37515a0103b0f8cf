package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// CustomerRepository — in-memory реализация domain.CustomerRepository.
type CustomerRepository struct {
	mu    sync.RWMutex
	items map[int64]domain.Customer
}

// NewCustomerRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{items: make(map[int64]domain.Customer)}
}

// Save создаёт или перезаписывает клиента.
func (r *CustomerRepository) Save(customer domain.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[customer.ID] = customer
}

// FindByID возвращает клиента или ErrCustomerNotFound.
func (r *CustomerRepository) FindByID(_ context.Context, id int64) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

var _ domain.CustomerRepository = (*CustomerRepository)(nil)
