package domain

import "github.com/shopspring/decimal"

// Category — категория товара.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryFood        Category = "food"
	CategoryBook        Category = "book"
	CategoryFurniture   Category = "furniture"
)

// Valid проверяет, что категория относится к поддерживаемым значениям.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryFood, CategoryBook, CategoryFurniture:
		return true
	default:
		return false
	}
}

// Product описывает товар каталога.
type Product struct {
	ID   int64
	Name string
	// Price — цена за единицу. Valid=false означает, что цена не задана.
	Price decimal.NullDecimal
	// Weight — физический вес единицы в килограммах. Valid=false означает, что вес не задан.
	Weight   decimal.NullDecimal
	Category Category
	Fragile  bool
}

// LineItem — позиция корзины: товар и количество.
type LineItem struct {
	ID       int64
	Product  *Product
	Quantity int64
}

// Cart — корзина клиента. Порядок позиций значим: он передаётся складу как есть.
type Cart struct {
	ID         int64
	CustomerID int64
	Items      []*LineItem
}

// StockRequest возвращает параллельные списки ID товаров и количеств в порядке позиций.
// Позиция без товара делает запрос невозможным: возвращается InvalidInput.
func (c *Cart) StockRequest() (productIDs, quantities []int64, err error) {
	if c == nil {
		return nil, nil, InvalidInput("cart must not be nil")
	}
	productIDs = make([]int64, 0, len(c.Items))
	quantities = make([]int64, 0, len(c.Items))
	for idx, item := range c.Items {
		if item == nil || item.Product == nil {
			return nil, nil, InvalidInput("item[%d]: line item and product must not be nil", idx)
		}
		productIDs = append(productIDs, item.Product.ID)
		quantities = append(quantities, item.Quantity)
	}
	return productIDs, quantities, nil
}

// Price — удобный конструктор заданной цены/веса из строки, например "10.00".
// Паникует на некорректном литерале, поэтому предназначен для констант и тестов.
func Price(value string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(value))
}

// Quote — разбивка итоговой стоимости корзины.
type Quote struct {
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Weight     decimal.Decimal
	Shipping   decimal.Decimal
	FragileFee decimal.Decimal
	Total      decimal.Decimal
}
