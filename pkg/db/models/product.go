package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/types"
)

// Product is the persisted catalog row. Position carries catalog order.
type Product struct {
	ID          string                `gorm:"column:id;type:text;primaryKey"`
	Position    int                   `gorm:"column:position;not null;index:idx_products_position"`
	Name        string                `gorm:"column:name;type:text;not null"`
	Category    enums.ProductCategory `gorm:"column:category;type:text;not null"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	Description string                `gorm:"column:description;type:text;not null"`
	Images      types.StringList      `gorm:"column:images;type:text;not null"`
	Features    types.StringList      `gorm:"column:features;type:text;not null"`
	Width       float64               `gorm:"column:width_cm;not null"`
	Height      float64               `gorm:"column:height_cm;not null"`
	Depth       float64               `gorm:"column:depth_cm;not null"`
	InStock     bool                  `gorm:"column:in_stock;not null"`
	Rating      float64               `gorm:"column:rating;not null"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
