package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/enums"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewRepository(conn)
}

func TestRepositoryRoundTripKeepsCatalogOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	products := browseFixture()
	products[2].Price = decimal.RequireFromString("499.99")
	products[2].Features = []string{"Lumbar support", "Mesh back"}
	require.NoError(t, repo.Upsert(ctx, products))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids(products), ids(got))

	chair := got[2]
	assert.True(t, chair.Price.Equal(decimal.RequireFromString("499.99")))
	assert.Equal(t, []string{"Lumbar support", "Mesh back"}, chair.Features)
	assert.Equal(t, products[2].Images, chair.Images)
	assert.Equal(t, products[2].Dimensions, chair.Dimensions)
	assert.Equal(t, enums.ProductCategoryOffice, chair.Category)
}

func TestRepositoryUpsertOverwrites(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	products := browseFixture()
	require.NoError(t, repo.Upsert(ctx, products))

	products[0].Name = "Modern Leather Sofa II"
	products[0].InStock = false
	require.NoError(t, repo.Upsert(ctx, products[:1]))

	c, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(products), c.Len())

	sofa, ok := c.Get("sofa")
	require.True(t, ok)
	assert.Equal(t, "Modern Leather Sofa II", sofa.Name)
	assert.False(t, sofa.InStock)
}

func TestRepositoryUpsertValidates(t *testing.T) {
	repo := newTestRepository(t)

	bad := testProduct("x", "", enums.ProductCategoryOffice, 1, 1)
	err := repo.Upsert(context.Background(), []Product{bad})
	require.Error(t, err)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRepositoryStoresSeedCatalog(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seed, err := SeedProducts()
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, seed))

	c, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids(seed), ids(c.All()))

	outOfStock := 0
	for _, want := range seed {
		got, ok := c.Get(want.ID)
		require.True(t, ok)
		assert.Equal(t, want.InStock, got.InStock, "product %s in_stock", want.ID)
		if !want.InStock {
			outOfStock++
		}
	}
	assert.Positive(t, outOfStock, "seed should carry an out-of-stock product")
}

func TestRepositoryStoresOutOfStockOnInsert(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	lamp := testProduct("lamp", "Arc Floor Lamp", enums.ProductCategoryLivingRoom, 189, 4.1)
	lamp.InStock = false
	require.NoError(t, repo.Upsert(ctx, []Product{lamp}))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].InStock)
}
