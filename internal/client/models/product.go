package models

// Product is one item of the externally supplied, immutable catalog.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	InStock     bool     `json:"inStock"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
}

// SortOption is a sort-mode descriptor supplied by the catalog provider
// for presentation alongside the products.
type SortOption struct {
	Value SortBy `json:"value"`
	Label string `json:"label"`
}
