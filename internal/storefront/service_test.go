package storefront

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/angelmondragon/storefront/internal/sessions"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	cat, err := catalog.NewSeedCatalog()
	require.NoError(t, err)
	reg, err := sessions.NewRegistry(sessions.Params{Logger: logger.Nop()})
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{Catalog: cat, Sessions: reg, Policy: pricing.DefaultPolicy()})
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)
}

func TestCartFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	view, err := svc.Cart(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.Equal(decimal.NewFromInt(99)))

	view, err = svc.AddToCart(ctx, sess.ID, "1", 1)
	require.NoError(t, err)
	view, err = svc.AddToCart(ctx, sess.ID, "1", 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 2, view.ItemCount)
	assert.True(t, view.Subtotal.Equal(decimal.NewFromInt(2598)))
	assert.True(t, view.Shipping.IsZero())

	view, err = svc.UpdateCartItem(ctx, sess.ID, "1", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Items[0].Quantity, "quantities below one clamp to one")
	assert.True(t, view.Total.Equal(decimal.NewFromInt(1299)))

	view, err = svc.UpdateCartItem(ctx, sess.ID, "missing", 3)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	view, err = svc.RemoveCartItem(ctx, sess.ID, "1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = svc.AddToCart(ctx, sess.ID, "3", 2)
	require.NoError(t, err)
	view, err = svc.ClearCart(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.ItemCount)
}

func TestAddToCartRejectsUnknownProductAndBadQuantity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, sess.ID, "ghost", 1)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	_, err = svc.AddToCart(ctx, sess.ID, "1", 0)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	view, err := svc.Cart(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestUnknownSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := "8c3b1a2e-7d4f-4a51-9a0e-2b6f1c9d3e70"

	_, err := svc.Cart(ctx, id)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
	_, err = svc.ToggleTheme(ctx, id)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
	assert.True(t, pkgerrors.HasCode(svc.EndSession(ctx, id), pkgerrors.CodeNotFound))
}

func TestThemeAndEndSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sess, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	assert.False(t, sess.Theme.IsDark)

	theme, err := svc.ToggleTheme(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, theme.IsDark)
	theme, err = svc.Theme(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, theme.IsDark)

	require.NoError(t, svc.EndSession(ctx, sess.ID))
	_, err = svc.Theme(ctx, sess.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestCatalogQueries(t *testing.T) {
	svc := newTestService(t)

	assert.Len(t, svc.Categories(), 5)
	assert.Len(t, svc.Featured(3), 3)

	p, err := svc.Product("2")
	require.NoError(t, err)
	assert.Equal(t, "Minimalist Dining Table", p.Name)

	_, err = svc.Product("ghost")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	state := catalog.DefaultFilterState()
	state.Categories = []enums.ProductCategory{enums.ProductCategoryDining}
	for _, p := range svc.Browse(state) {
		assert.Equal(t, enums.ProductCategoryDining, p.Category)
	}
}
