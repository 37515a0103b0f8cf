package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// StockService — складской адаптер поверх таблицы stock_levels.
type StockService struct {
	db *sql.DB
}

// NewStockService создаёт складской адаптер.
func NewStockService(store *Store) *StockService {
	return &StockService{db: store.DB()}
}

// CheckAvailability проверяет, что для каждого товара остаток не меньше запрошенного.
// Товар без строки в stock_levels считается отсутствующим.
func (s *StockService) CheckAvailability(ctx context.Context, productIDs, quantities []int64) (domain.StockAvailability, error) {
	requested, err := aggregateStockRequest(productIDs, quantities)
	if err != nil {
		return domain.StockAvailability{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	ids := make([]int64, 0, len(requested))
	for _, line := range requested {
		ids = append(ids, line.productID)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, quantity
		FROM stock_levels
		WHERE product_id = ANY($1)
	`, ids)
	if err != nil {
		return domain.StockAvailability{}, fmt.Errorf("select stock levels: %w", err)
	}
	defer rows.Close()

	levels := make(map[int64]int64, len(requested))
	for rows.Next() {
		var productID, quantity int64
		if err := rows.Scan(&productID, &quantity); err != nil {
			return domain.StockAvailability{}, fmt.Errorf("scan stock level: %w", err)
		}
		levels[productID] = quantity
	}
	if err := rows.Err(); err != nil {
		return domain.StockAvailability{}, fmt.Errorf("iterate stock levels: %w", err)
	}

	var unavailable []int64
	for _, line := range requested {
		level, ok := levels[line.productID]
		if !ok || level < line.quantity {
			unavailable = append(unavailable, line.productID)
		}
	}

	return domain.StockAvailability{Available: len(unavailable) == 0, Unavailable: unavailable}, nil
}

// Debit атомарно списывает остатки: либо все позиции, либо ни одной.
func (s *StockService) Debit(ctx context.Context, productIDs, quantities []int64) (domain.StockDebit, error) {
	requested, err := aggregateStockRequest(productIDs, quantities)
	if err != nil {
		return domain.StockDebit{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, line := range requested {
			res, err := tx.ExecContext(ctx, `
				UPDATE stock_levels
				SET quantity = quantity - $2, updated_at = NOW()
				WHERE product_id = $1 AND quantity >= $2
			`, line.productID, line.quantity)
			if err != nil {
				if pgErrorCode(err) == sqlStateCheckViolation {
					return errInsufficientStock
				}
				return fmt.Errorf("debit product %d: %w", line.productID, err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("debit product %d rows affected: %w", line.productID, err)
			}
			if affected == 0 {
				return errInsufficientStock
			}
		}
		return nil
	})
	if errors.Is(err, errInsufficientStock) {
		return domain.StockDebit{Success: false}, nil
	}
	if err != nil {
		return domain.StockDebit{}, err
	}
	return domain.StockDebit{Success: true}, nil
}

// SetLevel выставляет остаток товара (заведение склада, тесты).
func (s *StockService) SetLevel(ctx context.Context, productID, quantity int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO stock_levels (product_id, quantity, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (product_id) DO UPDATE
		SET quantity = EXCLUDED.quantity, updated_at = NOW()
	`, productID, quantity); err != nil {
		return fmt.Errorf("set stock level: %w", err)
	}
	return nil
}

// Level возвращает текущий остаток товара.
func (s *StockService) Level(ctx context.Context, productID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var quantity int64
	err := s.db.QueryRowContext(ctx, `SELECT quantity FROM stock_levels WHERE product_id = $1`, productID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("select stock level: %w", err)
	}
	return quantity, nil
}

var errInsufficientStock = errors.New("insufficient stock")

type stockLine struct {
	productID int64
	quantity  int64
}

// aggregateStockRequest суммирует количества по товару, сохраняя порядок первого появления.
func aggregateStockRequest(productIDs, quantities []int64) ([]stockLine, error) {
	if len(productIDs) != len(quantities) {
		return nil, fmt.Errorf("stock request: %d product ids but %d quantities", len(productIDs), len(quantities))
	}

	index := make(map[int64]int, len(productIDs))
	lines := make([]stockLine, 0, len(productIDs))
	for i, id := range productIDs {
		if pos, ok := index[id]; ok {
			lines[pos].quantity += quantities[i]
			continue
		}
		index[id] = len(lines)
		lines = append(lines, stockLine{productID: id, quantity: quantities[i]})
	}
	return lines, nil
}

var _ domain.StockService = (*StockService)(nil)
