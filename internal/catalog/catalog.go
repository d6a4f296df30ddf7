package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/enums"
)

// Catalog is the read-only product set. It is built once and never mutated,
// so it can be shared across goroutines without locking.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New validates products and builds a catalog preserving their order.
func New(products []Product) (*Catalog, error) {
	if err := Validate(products); err != nil {
		return nil, err
	}

	owned := make([]Product, len(products))
	copy(owned, products)

	byID := make(map[string]int, len(owned))
	for i, p := range owned {
		byID[p.ID] = i
	}
	return &Catalog{products: owned, byID: byID}, nil
}

// All returns every product in catalog order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Price looks up the unit price of a product.
func (c *Catalog) Price(id string) (decimal.Decimal, bool) {
	p, ok := c.Get(id)
	if !ok {
		return decimal.Zero, false
	}
	return p.Price, true
}

// Featured returns the first n products in catalog order.
func (c *Catalog) Featured(n int) []Product {
	if n <= 0 {
		return []Product{}
	}
	n = min(n, len(c.products))
	out := make([]Product, n)
	copy(out, c.products[:n])
	return out
}

// Categories lists the categories shoppers can filter by.
func (c *Catalog) Categories() []enums.ProductCategory {
	return enums.ProductCategories()
}

// Browse derives a filtered and sorted view of the catalog.
func (c *Catalog) Browse(state FilterState) []Product {
	return DeriveView(c.products, state)
}
