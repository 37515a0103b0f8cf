package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// CustomerRepository — PostgreSQL-реализация domain.CustomerRepository.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт репозиторий клиентов.
func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{db: store.DB()}
}

// FindByID возвращает клиента или ErrCustomerNotFound.
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		customer domain.Customer
		region   string
		tier     string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, region, tier
		FROM customers
		WHERE id = $1
	`, id).Scan(&customer.ID, &customer.Name, &region, &tier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}
	customer.Region = domain.Region(region)
	customer.Tier = domain.Tier(tier)

	return customer, nil
}

// Save создаёт или обновляет клиента.
func (r *CustomerRepository) Save(ctx context.Context, customer domain.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, region, tier)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, region = EXCLUDED.region, tier = EXCLUDED.tier
	`, customer.ID, customer.Name, string(customer.Region), string(customer.Tier)); err != nil {
		return fmt.Errorf("upsert customer: %w", err)
	}
	return nil
}

var _ domain.CustomerRepository = (*CustomerRepository)(nil)
