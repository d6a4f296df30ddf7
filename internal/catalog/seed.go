package catalog

import (
	_ "embed"
)

//go:embed seed/products.json
var seedProducts []byte

// SeedProducts returns the bundled furniture dataset.
func SeedProducts() ([]Product, error) {
	return Parse(seedProducts)
}

// NewSeedCatalog builds a catalog from the bundled dataset.
func NewSeedCatalog() (*Catalog, error) {
	products, err := SeedProducts()
	if err != nil {
		return nil, err
	}
	return New(products)
}
