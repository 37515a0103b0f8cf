package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// CartRepository — in-memory реализация domain.CartRepository.
// Хранит и отдаёт глубокие копии, чтобы вызывающий не мутировал состояние.
type CartRepository struct {
	mu    sync.RWMutex
	items map[int64]domain.Cart
}

// NewCartRepository возвращает in-memory репозиторий корзин.
func NewCartRepository() *CartRepository {
	return &CartRepository{items: make(map[int64]domain.Cart)}
}

// Save создаёт или перезаписывает корзину.
func (r *CartRepository) Save(cart domain.Cart) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[cart.ID] = cloneCart(cart)
}

// FindByIDAndCustomer возвращает корзину, только если она принадлежит клиенту.
func (r *CartRepository) FindByIDAndCustomer(_ context.Context, id int64, customer domain.Customer) (domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.items[id]
	if !ok || cart.CustomerID != customer.ID {
		return domain.Cart{}, domain.ErrCartNotFound
	}
	return cloneCart(cart), nil
}

func cloneCart(cart domain.Cart) domain.Cart {
	clone := cart
	if cart.Items == nil {
		return clone
	}
	clone.Items = make([]*domain.LineItem, len(cart.Items))
	for i, item := range cart.Items {
		if item == nil {
			continue
		}
		copied := *item
		if item.Product != nil {
			product := *item.Product
			copied.Product = &product
		}
		clone.Items[i] = &copied
	}
	return clone
}

var _ domain.CartRepository = (*CartRepository)(nil)
