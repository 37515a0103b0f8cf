// Package pricing рассчитывает итоговую стоимость корзины:
// подытог, скидку за объём, доставку по весу и сбор за хрупкие товары.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

var (
	// Пороги скидки — включительные нижние границы.
	highDiscountThreshold = decimal.RequireFromString("1000.00")
	highDiscountRate      = decimal.RequireFromString("0.20")
	lowDiscountThreshold  = decimal.RequireFromString("500.00")
	lowDiscountRate       = decimal.RequireFromString("0.10")

	// Границы весовых тарифов — включительные верхние границы.
	freeShippingWeight = decimal.RequireFromString("5.00")
	lightParcelWeight  = decimal.RequireFromString("10.00")
	mediumParcelWeight = decimal.RequireFromString("50.00")
	lightParcelRate    = decimal.RequireFromString("2.00")
	mediumParcelRate   = decimal.RequireFromString("4.00")
	heavyParcelRate    = decimal.RequireFromString("7.00")
	fragileFeePerUnit  = decimal.RequireFromString("5.00")
)

// roundingPlaces — точность итоговой суммы (копейки/центы).
const roundingPlaces = 2

// Calculator — чистый калькулятор стоимости корзины без состояния.
type Calculator struct{}

// NewCalculator создаёт калькулятор.
func NewCalculator() Calculator {
	return Calculator{}
}

// ComputeTotal возвращает итог корзины, округлённый до 2 знаков (half-up).
func (c Calculator) ComputeTotal(cart *domain.Cart) (decimal.Decimal, error) {
	quote, err := c.Quote(cart)
	if err != nil {
		return decimal.Zero, err
	}
	return quote.Total, nil
}

// Quote валидирует корзину и возвращает полную разбивку стоимости.
func (c Calculator) Quote(cart *domain.Cart) (domain.Quote, error) {
	if err := validate(cart); err != nil {
		return domain.Quote{}, err
	}

	subtotal := decimal.Zero
	weight := decimal.Zero
	fragileUnits := decimal.Zero
	for _, item := range cart.Items {
		qty := decimal.NewFromInt(item.Quantity)
		subtotal = subtotal.Add(item.Product.Price.Decimal.Mul(qty))
		weight = weight.Add(item.Product.Weight.Decimal.Mul(qty))
		if item.Product.Fragile {
			fragileUnits = fragileUnits.Add(qty)
		}
	}

	discount := volumeDiscount(subtotal)
	fragileFee := fragileFeePerUnit.Mul(fragileUnits)
	shipping := shippingBase(weight).Add(fragileFee)
	total := subtotal.Sub(discount).Add(shipping).Round(roundingPlaces)

	return domain.Quote{
		Subtotal:   subtotal,
		Discount:   discount,
		Weight:     weight,
		Shipping:   shipping,
		FragileFee: fragileFee,
		Total:      total,
	}, nil
}

func volumeDiscount(subtotal decimal.Decimal) decimal.Decimal {
	switch {
	case subtotal.GreaterThanOrEqual(highDiscountThreshold):
		return subtotal.Mul(highDiscountRate)
	case subtotal.GreaterThanOrEqual(lowDiscountThreshold):
		return subtotal.Mul(lowDiscountRate)
	default:
		return decimal.Zero
	}
}

func shippingBase(weight decimal.Decimal) decimal.Decimal {
	switch {
	case weight.LessThanOrEqual(freeShippingWeight):
		return decimal.Zero
	case weight.LessThanOrEqual(lightParcelWeight):
		return weight.Mul(lightParcelRate)
	case weight.LessThanOrEqual(mediumParcelWeight):
		return weight.Mul(mediumParcelRate)
	default:
		return weight.Mul(heavyParcelRate)
	}
}

func validate(cart *domain.Cart) error {
	if cart == nil {
		return domain.InvalidInput("cart must not be nil")
	}
	if len(cart.Items) == 0 {
		return domain.InvalidInput("cart must contain at least one item")
	}

	for idx, item := range cart.Items {
		if item == nil || item.Product == nil {
			return domain.InvalidInput("item[%d]: line item and product must not be nil", idx)
		}
		p := item.Product
		if item.Quantity <= 0 {
			return domain.InvalidInput("invalid quantity for product %q: %d", p.Name, item.Quantity)
		}
		if !p.Price.Valid || p.Price.Decimal.IsNegative() {
			return domain.InvalidInput("invalid price for product %q", p.Name)
		}
		if p.Category == "" {
			return domain.InvalidInput("category is required for product %q", p.Name)
		}
		if !p.Category.Valid() {
			return domain.InvalidInput("unknown category %q for product %q", p.Category, p.Name)
		}
		if !p.Weight.Valid || p.Weight.Decimal.IsNegative() {
			return domain.InvalidInput("invalid weight for product %q", p.Name)
		}
	}

	return nil
}
