package catalog

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront/pkg/enums"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	if err := v.RegisterValidation("product_category", func(fl validator.FieldLevel) bool {
		return enums.ProductCategory(fl.Field().String()).IsValid()
	}); err != nil {
		panic(fmt.Sprintf("register product_category validation: %v", err))
	}
	return v
}

// Validate checks every product and the uniqueness of ids. All problems are
// reported together; a nil error means the list can back a Catalog.
func Validate(products []Product) error {
	var errs error
	seen := make(map[string]int, len(products))

	for i, p := range products {
		label := fmt.Sprintf("product[%d]", i)
		if p.ID != "" {
			label = fmt.Sprintf("product[%d] %q", i, p.ID)
		}

		if err := validate.Struct(p); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %s", label, describe(err)))
		}
		if p.Price.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("%s: price must not be negative", label))
		}
		if p.ID == "" {
			continue
		}
		if prev, ok := seen[p.ID]; ok {
			errs = multierr.Append(errs, fmt.Errorf("%s: duplicate id, first seen at product[%d]", label, prev))
			continue
		}
		seen[p.ID] = i
	}
	return errs
}

// Parse decodes a JSON array of products and validates it.
func Parse(data []byte) ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := Validate(products); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return products, nil
}

func describe(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s %s", fieldPath(fe), rule(fe)))
	}
	return strings.Join(parts, "; ")
}

// fieldPath drops the struct name prefix: "Product.dimensions.width" -> "dimensions.width".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func rule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "url":
		return "must be a valid url"
	case "product_category":
		return "must be a known category"
	}
	return "is invalid"
}
