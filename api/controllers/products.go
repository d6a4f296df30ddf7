package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const (
	maxSearchQueryLen = 100
	maxFeaturedLimit  = 24
)

type productListResponse struct {
	Products []catalog.Product   `json:"products"`
	Count    int                 `json:"count"`
	Filters  catalog.FilterState `json:"filters"`
}

// ListCategories returns the fixed category list shoppers filter by.
func ListCategories(svc storefront.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"categories": svc.Categories()})
	}
}

// ListProducts serves the filtered, sorted catalog view.
func ListProducts(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := parseFilterState(r, nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeProductList(w, svc, state)
	}
}

// ListCategoryProducts serves the catalog view with the route's category
// preselected, the way a category landing link opens the catalog page.
func ListCategoryProducts(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := requiredURLParam(r, "category")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found").WithDetails(map[string]any{"category": raw}))
			return
		}

		state, err := parseFilterState(r, []enums.ProductCategory{category})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeProductList(w, svc, state)
	}
}

// FeaturedProducts returns the first products in catalog order.
func FeaturedProducts(svc storefront.Service, defaultLimit int, logg *logger.Logger) http.HandlerFunc {
	defaultLimit = min(max(defaultLimit, 1), maxFeaturedLimit)
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultLimit, 1, maxFeaturedLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products := svc.Featured(limit)
		responses.WriteSuccess(w, map[string]any{"products": products, "count": len(products)})
	}
}

// GetProduct returns a single product.
func GetProduct(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := requiredURLParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Product(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func writeProductList(w http.ResponseWriter, svc storefront.Service, state catalog.FilterState) {
	products := svc.Browse(state)
	responses.WriteSuccess(w, productListResponse{
		Products: products,
		Count:    len(products),
		Filters:  state.Normalize(),
	})
}

// parseFilterState reads q, category, price_min, price_max and sort. Route
// categories are merged ahead of query categories.
func parseFilterState(r *http.Request, preselected []enums.ProductCategory) (catalog.FilterState, error) {
	state := catalog.DefaultFilterState()
	state.SearchQuery = validators.SanitizeString(r.URL.Query().Get("q"), maxSearchQueryLen)

	state.Categories = append(state.Categories, preselected...)
	for _, raw := range validators.ParseQueryList(r, "category") {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return catalog.FilterState{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category").
				WithDetails(map[string]any{"field": "category", "value": raw})
		}
		if !containsCategory(state.Categories, category) {
			state.Categories = append(state.Categories, category)
		}
	}

	minPrice, err := validators.ParseQueryDecimal(r, "price_min", catalog.DefaultPriceMin)
	if err != nil {
		return catalog.FilterState{}, err
	}
	maxPrice, err := validators.ParseQueryDecimal(r, "price_max", catalog.DefaultPriceMax)
	if err != nil {
		return catalog.FilterState{}, err
	}
	state.PriceRange = catalog.PriceRange{Min: minPrice, Max: maxPrice}

	sortBy, err := enums.ParseProductSort(r.URL.Query().Get("sort"))
	if err != nil {
		return catalog.FilterState{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown sort").
			WithDetails(map[string]any{"field": "sort", "allowed": enums.ProductSorts()})
	}
	state.SortBy = sortBy
	return state, nil
}

func containsCategory(list []enums.ProductCategory, c enums.ProductCategory) bool {
	for _, existing := range list {
		if existing == c {
			return true
		}
	}
	return false
}
