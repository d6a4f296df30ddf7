package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/enums"
)

func testProduct(id, name string, category enums.ProductCategory, price int64, rating float64) Product {
	return Product{
		ID:          id,
		Name:        name,
		Category:    category,
		Price:       decimal.NewFromInt(price),
		Description: name + " description",
		Images:      []string{fmt.Sprintf("https://cdn.example.com/%s.jpg", id)},
		Features:    []string{"Sturdy"},
		Dimensions:  Dimensions{Width: 10, Height: 10, Depth: 10},
		InStock:     true,
		Rating:      rating,
	}
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
