package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/types"
)

// Repository reads and writes the products table.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every stored product in catalog order.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Order("position ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromModel(row))
	}
	return out, nil
}

// Upsert writes products, using their slice index as catalog position.
// Existing rows with the same id are overwritten.
func (r *Repository) Upsert(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	if err := Validate(products); err != nil {
		return fmt.Errorf("upsert products: %w", err)
	}

	rows := make([]models.Product, 0, len(products))
	for i, p := range products {
		rows = append(rows, toModel(i, p))
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"position", "name", "category", "price", "description", "images",
				"features", "width_cm", "height_cm", "depth_cm", "in_stock", "rating", "updated_at",
			}),
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("upsert products: %w", err)
	}
	return nil
}

// Load reads and validates the stored catalog.
func (r *Repository) Load(ctx context.Context) (*Catalog, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return New(products)
}

func fromModel(row models.Product) Product {
	return Product{
		ID:          row.ID,
		Name:        row.Name,
		Category:    row.Category,
		Price:       row.Price,
		Description: row.Description,
		Images:      []string(row.Images),
		Features:    []string(row.Features),
		Dimensions: Dimensions{
			Width:  row.Width,
			Height: row.Height,
			Depth:  row.Depth,
		},
		InStock: row.InStock,
		Rating:  row.Rating,
	}
}

func toModel(position int, p Product) models.Product {
	return models.Product{
		ID:          p.ID,
		Position:    position,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		Images:      types.StringList(p.Images),
		Features:    types.StringList(p.Features),
		Width:       p.Dimensions.Width,
		Height:      p.Dimensions.Height,
		Depth:       p.Dimensions.Depth,
		InStock:     p.InStock,
		Rating:      p.Rating,
	}
}
