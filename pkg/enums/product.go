package enums

import "fmt"

// ProductCategory represents the room-based categories supported by the catalog.
type ProductCategory string

const (
	ProductCategoryLivingRoom ProductCategory = "living-room"
	ProductCategoryBedroom    ProductCategory = "bedroom"
	ProductCategoryDining     ProductCategory = "dining"
	ProductCategoryOffice     ProductCategory = "office"
	ProductCategoryOutdoor    ProductCategory = "outdoor"
)

var validProductCategories = []ProductCategory{
	ProductCategoryLivingRoom,
	ProductCategoryBedroom,
	ProductCategoryDining,
	ProductCategoryOffice,
	ProductCategoryOutdoor,
}

// ProductCategories returns the categories in display order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
