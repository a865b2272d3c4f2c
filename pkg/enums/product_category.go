package enums

import "fmt"

// ProductCategory describes the allowed values for the `category` column in products.
type ProductCategory string

const (
	ProductCategoryFlower      ProductCategory = "flower"
	ProductCategoryPreroll     ProductCategory = "preroll"
	ProductCategoryEdible      ProductCategory = "edible"
	ProductCategoryVape        ProductCategory = "vape"
	ProductCategoryConcentrate ProductCategory = "concentrate"
	ProductCategoryAccessory   ProductCategory = "accessory"
)

var validProductCategories = []ProductCategory{
	ProductCategoryFlower,
	ProductCategoryPreroll,
	ProductCategoryEdible,
	ProductCategoryVape,
	ProductCategoryConcentrate,
	ProductCategoryAccessory,
}

// IsValid reports whether the value matches the canonical product category enum.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts the raw string to ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductCategories lists every valid category, for validation messages and
// admin tooling.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}
