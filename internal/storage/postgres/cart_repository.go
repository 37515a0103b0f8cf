package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// CartRepository — PostgreSQL-реализация domain.CartRepository.
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository создаёт репозиторий корзин.
func NewCartRepository(store *Store) *CartRepository {
	return &CartRepository{db: store.DB()}
}

// FindByIDAndCustomer загружает корзину клиента вместе с позициями и товарами.
// Позиции возвращаются в порядке position, затем id.
func (r *CartRepository) FindByIDAndCustomer(ctx context.Context, id int64, customer domain.Customer) (domain.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cart := domain.Cart{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id
		FROM carts
		WHERE id = $1 AND customer_id = $2
	`, id, customer.ID).Scan(&cart.ID, &cart.CustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, fmt.Errorf("select cart: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.id, ci.quantity, p.id, p.name, p.price, p.weight, p.category, p.fragile
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.position ASC, ci.id ASC
	`, cart.ID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("select cart items: %w", err)
	}
	defer rows.Close()

	cart.Items = make([]*domain.LineItem, 0)
	for rows.Next() {
		var (
			item     domain.LineItem
			product  domain.Product
			category sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &item.Quantity,
			&product.ID, &product.Name, &product.Price, &product.Weight, &category, &product.Fragile,
		); err != nil {
			return domain.Cart{}, fmt.Errorf("scan cart item: %w", err)
		}
		product.Category = domain.Category(category.String)
		item.Product = &product
		cart.Items = append(cart.Items, &item)
	}
	if err := rows.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("iterate cart items: %w", err)
	}

	return cart, nil
}

// Save сохраняет корзину целиком: товары upsert-ом, позиции перезаписываются.
func (r *CartRepository) Save(ctx context.Context, cart domain.Cart) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO carts (id, customer_id)
			VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET customer_id = EXCLUDED.customer_id
		`, cart.ID, cart.CustomerID); err != nil {
			if pgErrorCode(err) == sqlStateForeignKeyViolation {
				return domain.ErrCustomerNotFound
			}
			return fmt.Errorf("upsert cart: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
			return fmt.Errorf("clear cart items: %w", err)
		}

		for position, item := range cart.Items {
			if item == nil || item.Product == nil {
				continue
			}
			if err := upsertProduct(ctx, tx, *item.Product); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO cart_items (id, cart_id, product_id, quantity, position)
				VALUES ($1, $2, $3, $4, $5)
			`, item.ID, cart.ID, item.Product.ID, item.Quantity, position); err != nil {
				return fmt.Errorf("insert cart item %d: %w", item.ID, err)
			}
		}
		return nil
	})
}

func upsertProduct(ctx context.Context, tx *sql.Tx, product domain.Product) error {
	var category sql.NullString
	if product.Category != "" {
		category = sql.NullString{String: string(product.Category), Valid: true}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO products (id, name, price, weight, category, fragile)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			price = EXCLUDED.price,
			weight = EXCLUDED.weight,
			category = EXCLUDED.category,
			fragile = EXCLUDED.fragile
	`, product.ID, product.Name, product.Price, product.Weight, category, product.Fragile); err != nil {
		return fmt.Errorf("upsert product %d: %w", product.ID, err)
	}
	return nil
}

var _ domain.CartRepository = (*CartRepository)(nil)
