package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/enums"
)

var (
	DefaultPriceMin = decimal.Zero
	DefaultPriceMax = decimal.NewFromInt(5000)
)

// PriceRange is inclusive on both ends.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

// FilterState is the shopper's current browse selection.
type FilterState struct {
	SearchQuery string                  `json:"search_query"`
	PriceRange  PriceRange              `json:"price_range"`
	Categories  []enums.ProductCategory `json:"categories"`
	SortBy      enums.ProductSort       `json:"sort_by"`
}

// DefaultFilterState matches a fresh catalog page: no query, every category,
// prices 0-5000, featured order.
func DefaultFilterState() FilterState {
	return FilterState{
		PriceRange: PriceRange{Min: DefaultPriceMin, Max: DefaultPriceMax},
		SortBy:     enums.ProductSortFeatured,
	}
}

// Normalize swaps an inverted price range.
func (f FilterState) Normalize() FilterState {
	if f.PriceRange.Min.GreaterThan(f.PriceRange.Max) {
		f.PriceRange.Min, f.PriceRange.Max = f.PriceRange.Max, f.PriceRange.Min
	}
	return f
}

// DeriveView filters products by name, category and price, then orders them
// with a stable sort. The input slice is never modified.
func DeriveView(products []Product, state FilterState) []Product {
	state = state.Normalize()
	query := strings.ToLower(state.SearchQuery)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if len(state.Categories) > 0 && !slices.Contains(state.Categories, p.Category) {
			continue
		}
		if !state.PriceRange.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}

	switch state.SortBy {
	case enums.ProductSortPriceLow:
		slices.SortStableFunc(out, func(a, b Product) int { return a.Price.Cmp(b.Price) })
	case enums.ProductSortPriceHigh:
		slices.SortStableFunc(out, func(a, b Product) int { return b.Price.Cmp(a.Price) })
	case enums.ProductSortRating:
		slices.SortStableFunc(out, func(a, b Product) int { return cmp.Compare(b.Rating, a.Rating) })
	}
	return out
}
