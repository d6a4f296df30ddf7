package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/enums"
)

// Dimensions are expressed in centimetres.
type Dimensions struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
	Depth  float64 `json:"depth" validate:"gt=0"`
}

// Product is an immutable catalog record. Slices are shared between copies
// handed out by the catalog and must not be modified.
type Product struct {
	ID          string                `json:"id" validate:"required"`
	Name        string                `json:"name" validate:"required"`
	Category    enums.ProductCategory `json:"category" validate:"required,product_category"`
	Price       decimal.Decimal       `json:"price"`
	Description string                `json:"description"`
	Images      []string              `json:"images" validate:"required,min=1,dive,required,url"`
	Features    []string              `json:"features" validate:"dive,required"`
	Dimensions  Dimensions            `json:"dimensions"`
	InStock     bool                  `json:"in_stock"`
	Rating      float64               `json:"rating" validate:"gte=0,lte=5"`
}
