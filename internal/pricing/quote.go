package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
)

// ProductLookup resolves full product records for quote lines.
type ProductLookup interface {
	Get(productID string) (catalog.Product, bool)
}

// Line is one priced cart entry.
type Line struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Quote is the priced view of a cart.
type Quote struct {
	Lines     []Line `json:"lines"`
	ItemCount int    `json:"item_count"`
	Totals
}

// BuildQuote prices every cart line the lookup knows. Unknown products are
// left out of the lines and the subtotal but still count toward ItemCount,
// matching the cart badge.
func BuildQuote(items []cart.Item, lookup ProductLookup, policy ShippingPolicy) Quote {
	q := Quote{Lines: make([]Line, 0, len(items))}
	subtotal := decimal.Zero

	for _, item := range items {
		q.ItemCount += item.Quantity

		product, ok := lookup.Get(item.ProductID)
		if !ok {
			continue
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		q.Lines = append(q.Lines, Line{
			Product:   product,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			LineTotal: lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	q.Totals = totalsFor(subtotal, policy)
	return q
}
