package app

import (
	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
)

// Демо-каталог для запуска на памяти:
//
//	клиент 1, корзина 1 — телефон за 100.00, итог 100.00;
//	клиент 1, корзина 2 — хрупкая ваза, итог 15.00;
//	клиент 2, корзина 3 — тяжёлая посылка, итог 400.08.
func seedDemoCatalog(customers *memory.CustomerRepository, carts *memory.CartRepository) {
	customers.Save(domain.Customer{ID: 1, Name: "Maria Silva", Region: domain.RegionSoutheast, Tier: domain.TierGold})
	customers.Save(domain.Customer{ID: 2, Name: "Joao Souza", Region: domain.RegionNorth, Tier: domain.TierBronze})

	phone := &domain.Product{ID: 1, Name: "Smartphone", Price: domain.Price("100.00"), Weight: domain.Price("0.50"), Category: domain.CategoryElectronics}
	vase := &domain.Product{ID: 2, Name: "Ceramic vase", Price: domain.Price("10.00"), Weight: domain.Price("1.00"), Category: domain.CategoryFurniture, Fragile: true}
	weights := &domain.Product{ID: 3, Name: "Dumbbell set", Price: domain.Price("50.01"), Weight: domain.Price("50.01"), Category: domain.CategoryClothing}

	carts.Save(domain.Cart{ID: 1, CustomerID: 1, Items: []*domain.LineItem{{ID: 1, Product: phone, Quantity: 1}}})
	carts.Save(domain.Cart{ID: 2, CustomerID: 1, Items: []*domain.LineItem{{ID: 2, Product: vase, Quantity: 1}}})
	carts.Save(domain.Cart{ID: 3, CustomerID: 2, Items: []*domain.LineItem{{ID: 3, Product: weights, Quantity: 1}}})
}
