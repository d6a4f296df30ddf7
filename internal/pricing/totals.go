package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/internal/cart"
)

// ShippingPolicy waives the flat fee once the subtotal strictly exceeds
// FreeThreshold.
type ShippingPolicy struct {
	FreeThreshold decimal.Decimal
	FlatFee       decimal.Decimal
}

func DefaultPolicy() ShippingPolicy {
	return ShippingPolicy{
		FreeThreshold: decimal.NewFromInt(999),
		FlatFee:       decimal.NewFromInt(99),
	}
}

// Shipping returns the fee charged for a cart with the given subtotal.
// An empty cart still pays the flat fee.
func (p ShippingPolicy) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.FlatFee
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// PriceLookup resolves a product's unit price.
type PriceLookup interface {
	Price(productID string) (decimal.Decimal, bool)
}

// ComputeTotals prices the cart lines. Products the lookup does not know
// contribute nothing to the subtotal.
func ComputeTotals(items []cart.Item, lookup PriceLookup, policy ShippingPolicy) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		price, ok := lookup.Price(item.ProductID)
		if !ok {
			continue
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return totalsFor(subtotal, policy)
}

func totalsFor(subtotal decimal.Decimal, policy ShippingPolicy) Totals {
	shipping := policy.Shipping(subtotal)
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
