package enums

import "testing"

func TestParseProductCategory(t *testing.T) {
	for _, c := range ProductCategories() {
		got, err := ParseProductCategory(c.String())
		if err != nil || got != c {
			t.Fatalf("expected %q to parse, got %q err=%v", c, got, err)
		}
	}
	if _, err := ParseProductCategory("kitchen"); err == nil {
		t.Fatalf("expected unknown category to fail")
	}
	if ProductCategory("Living-Room").IsValid() {
		t.Fatalf("categories are case sensitive")
	}
}

func TestProductCategoriesReturnsCopy(t *testing.T) {
	cats := ProductCategories()
	if len(cats) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(cats))
	}
	cats[0] = "garage"
	if ProductCategories()[0] != ProductCategoryLivingRoom {
		t.Fatalf("mutating the returned slice must not leak")
	}
}

func TestParseProductSort(t *testing.T) {
	got, err := ParseProductSort("")
	if err != nil || got != ProductSortFeatured {
		t.Fatalf("empty sort should default to featured, got %q err=%v", got, err)
	}
	if got, err := ParseProductSort("price-high"); err != nil || got != ProductSortPriceHigh {
		t.Fatalf("unexpected parse result %q err=%v", got, err)
	}
	if _, err := ParseProductSort("newest"); err == nil {
		t.Fatalf("expected unknown sort to fail")
	}
}
