package enums

import "fmt"

// ProductSort selects the ordering of a derived catalog view.
type ProductSort string

const (
	ProductSortFeatured  ProductSort = "featured"
	ProductSortPriceLow  ProductSort = "price-low"
	ProductSortPriceHigh ProductSort = "price-high"
	ProductSortRating    ProductSort = "rating"
)

var validProductSorts = []ProductSort{
	ProductSortFeatured,
	ProductSortPriceLow,
	ProductSortPriceHigh,
	ProductSortRating,
}

// ProductSorts returns the accepted sort keys.
func ProductSorts() []ProductSort {
	out := make([]ProductSort, len(validProductSorts))
	copy(out, validProductSorts)
	return out
}

// String implements fmt.Stringer.
func (s ProductSort) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductSort.
func (s ProductSort) IsValid() bool {
	for _, candidate := range validProductSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductSort converts raw input into a ProductSort. Empty input means featured.
func ParseProductSort(value string) (ProductSort, error) {
	if value == "" {
		return ProductSortFeatured, nil
	}
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product sort %q", value)
}
