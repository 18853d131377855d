package models

// SortBy selects the comparator applied after filtering.
type SortBy string

const (
	SortFeatured  SortBy = "featured"
	SortPriceLow  SortBy = "price-low"
	SortPriceHigh SortBy = "price-high"
	SortRating    SortBy = "rating"
	SortName      SortBy = "name"
)

// CategoryAll is the wildcard category matching every product.
const CategoryAll = "All"

// FilterState is the set of criteria applied to the catalog. It is owned
// by the UI layer and passed into the query engine; any change must reset
// the pagination cursor to the first page.
type FilterState struct {
	Category    string
	PriceRange  [2]float64
	Rating      float64
	InStock     bool
	SearchQuery string
	SortBy      SortBy
}

// DefaultFilters returns the initial filter state: every category, the
// full price range, no rating floor, out-of-stock included, featured sort.
func DefaultFilters() FilterState {
	return FilterState{
		Category:   CategoryAll,
		PriceRange: [2]float64{0, 10000},
		SortBy:     SortFeatured,
	}
}
