package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

func seedCatalog(t *testing.T, store *Store) (*CustomerRepository, *CartRepository) {
	t.Helper()
	ctx := context.Background()

	customers := NewCustomerRepository(store)
	carts := NewCartRepository(store)

	if err := customers.Save(ctx, domain.Customer{ID: 1, Name: "Ana", Region: domain.RegionSouth, Tier: domain.TierGold}); err != nil {
		t.Fatalf("save customer: %v", err)
	}
	if err := customers.Save(ctx, domain.Customer{ID: 2, Name: "Bruno", Region: domain.RegionNorth, Tier: domain.TierBronze}); err != nil {
		t.Fatalf("save customer: %v", err)
	}

	cart := domain.Cart{
		ID:         10,
		CustomerID: 1,
		Items: []*domain.LineItem{
			{ID: 101, Quantity: 2, Product: &domain.Product{
				ID: 1001, Name: "Vase", Price: domain.Price("49.90"), Weight: domain.Price("1.250"),
				Category: domain.CategoryFurniture, Fragile: true,
			}},
			{ID: 100, Quantity: 1, Product: &domain.Product{
				ID: 1000, Name: "Laptop", Price: domain.Price("3500.00"), Weight: domain.Price("2.000"),
				Category: domain.CategoryElectronics,
			}},
		},
	}
	if err := carts.Save(ctx, cart); err != nil {
		t.Fatalf("save cart: %v", err)
	}
	return customers, carts
}

func TestCustomerRepository_PostgresFindByID(t *testing.T) {
	store := migratedTestStore(t)
	customers, _ := seedCatalog(t, store)
	ctx := context.Background()

	customer, err := customers.FindByID(ctx, 1)
	if err != nil {
		t.Fatalf("find customer: %v", err)
	}
	if customer.Name != "Ana" || customer.Region != domain.RegionSouth || customer.Tier != domain.TierGold {
		t.Fatalf("unexpected customer: %+v", customer)
	}

	if _, err := customers.FindByID(ctx, 999); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCartRepository_PostgresFindByIDAndCustomer(t *testing.T) {
	store := migratedTestStore(t)
	_, carts := seedCatalog(t, store)
	ctx := context.Background()

	cart, err := carts.FindByIDAndCustomer(ctx, 10, domain.Customer{ID: 1})
	if err != nil {
		t.Fatalf("find cart: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(cart.Items))
	}
	// порядок позиций сохраняется
	vase := cart.Items[0]
	if vase.ID != 101 || vase.Product.ID != 1001 || !vase.Product.Fragile {
		t.Fatalf("unexpected first item: %+v", vase)
	}
	if !vase.Product.Price.Valid || vase.Product.Price.Decimal.StringFixed(2) != "49.90" {
		t.Fatalf("unexpected price: %+v", vase.Product.Price)
	}
	if vase.Product.Category != domain.CategoryFurniture {
		t.Fatalf("unexpected category: %q", vase.Product.Category)
	}

	if _, err := carts.FindByIDAndCustomer(ctx, 10, domain.Customer{ID: 2}); !errors.Is(err, domain.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound for foreign customer, got %v", err)
	}
	if _, err := carts.FindByIDAndCustomer(ctx, 11, domain.Customer{ID: 1}); !errors.Is(err, domain.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound for missing cart, got %v", err)
	}
}

func TestCartRepository_PostgresMissingPriceIsNull(t *testing.T) {
	store := migratedTestStore(t)
	_, carts := seedCatalog(t, store)
	ctx := context.Background()

	if err := carts.Save(ctx, domain.Cart{ID: 20, CustomerID: 2, Items: []*domain.LineItem{
		{ID: 200, Quantity: 1, Product: &domain.Product{ID: 2000, Name: "Draft"}},
	}}); err != nil {
		t.Fatalf("save cart: %v", err)
	}

	cart, err := carts.FindByIDAndCustomer(ctx, 20, domain.Customer{ID: 2})
	if err != nil {
		t.Fatalf("find cart: %v", err)
	}
	product := cart.Items[0].Product
	if product.Price.Valid || product.Weight.Valid || product.Category != "" {
		t.Fatalf("expected absent price, weight and category, got %+v", product)
	}
}

func TestCartRepository_PostgresUnknownCustomer(t *testing.T) {
	store := migratedTestStore(t)
	carts := NewCartRepository(store)

	err := carts.Save(context.Background(), domain.Cart{ID: 30, CustomerID: 404})
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}
