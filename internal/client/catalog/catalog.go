package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mlapshin/storefront/internal/client/models"
)

//go:embed products.json
var productsJSON []byte

// Load decodes the embedded product catalog. The returned slice is owned
// by the caller; the catalog itself is static, already-validated input.
func Load() ([]models.Product, error) {
	var products []models.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("failed to decode embedded catalog: %w", err)
	}
	return products, nil
}

// SortOptions returns the sort-mode descriptors presented next to the
// catalog.
func SortOptions() []models.SortOption {
	return []models.SortOption{
		{Value: models.SortFeatured, Label: "Featured"},
		{Value: models.SortPriceLow, Label: "Price: Low to High"},
		{Value: models.SortPriceHigh, Label: "Price: High to Low"},
		{Value: models.SortRating, Label: "Highest Rated"},
		{Value: models.SortName, Label: "Name: A to Z"},
	}
}
