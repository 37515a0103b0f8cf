package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
)

func newCart() domain.Cart {
	return domain.Cart{
		ID:         10,
		CustomerID: 1,
		Items: []*domain.LineItem{{
			ID:       100,
			Quantity: 2,
			Product: &domain.Product{
				ID:       1000,
				Name:     "Laptop",
				Price:    domain.Price("100.00"),
				Weight:   domain.Price("1.00"),
				Category: domain.CategoryElectronics,
			},
		}},
	}
}

func TestCustomerRepository_FindByID(t *testing.T) {
	repo := memory.NewCustomerRepository()
	repo.Save(domain.Customer{ID: 1, Name: "Ana", Region: domain.RegionSoutheast, Tier: domain.TierGold})

	customer, err := repo.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if customer.Name != "Ana" {
		t.Fatalf("unexpected customer: %+v", customer)
	}

	if _, err := repo.FindByID(context.Background(), 2); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCartRepository_FindByIDAndCustomer(t *testing.T) {
	repo := memory.NewCartRepository()
	repo.Save(newCart())
	ctx := context.Background()

	cart, err := repo.FindByIDAndCustomer(ctx, 10, domain.Customer{ID: 1})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Product.ID != 1000 {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	if _, err := repo.FindByIDAndCustomer(ctx, 10, domain.Customer{ID: 2}); !errors.Is(err, domain.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound for foreign customer, got %v", err)
	}
	if _, err := repo.FindByIDAndCustomer(ctx, 11, domain.Customer{ID: 1}); !errors.Is(err, domain.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound for missing cart, got %v", err)
	}
}

func TestCartRepository_ReturnsCopies(t *testing.T) {
	repo := memory.NewCartRepository()
	original := newCart()
	repo.Save(original)
	original.Items[0].Quantity = 99

	ctx := context.Background()
	cart, err := repo.FindByIDAndCustomer(ctx, 10, domain.Customer{ID: 1})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("stored cart mutated through caller reference: qty=%d", cart.Items[0].Quantity)
	}

	cart.Items[0].Product.Name = "changed"
	again, _ := repo.FindByIDAndCustomer(ctx, 10, domain.Customer{ID: 1})
	if again.Items[0].Product.Name != "Laptop" {
		t.Fatalf("stored product mutated through returned cart: %q", again.Items[0].Product.Name)
	}
}

func TestTimelineRepository_AppendList(t *testing.T) {
	repo := memory.NewTimelineRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	events := []domain.TimelineEvent{
		{CartID: 10, AttemptID: "a", Type: domain.TimelineCheckoutCompleted, Occurred: now.Add(2 * time.Second)},
		{CartID: 10, AttemptID: "a", Type: domain.TimelineCheckoutStarted, Occurred: now},
		{CartID: 11, AttemptID: "b", Type: domain.TimelineCheckoutStarted, Occurred: now},
	}
	for _, event := range events {
		if err := repo.Append(ctx, event); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	list, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 events, got %d", len(list))
	}
	if list[0].Type != domain.TimelineCheckoutStarted || list[1].Type != domain.TimelineCheckoutCompleted {
		t.Fatalf("events not in chronological order: %+v", list)
	}

	empty, err := repo.List(ctx, 99)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no events, got %d", len(empty))
	}
}
