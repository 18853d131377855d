// Package catalog supplies the immutable product catalog and the pure
// query pipeline (filter, sort, paginate) applied to it.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mlapshin/storefront/internal/client/models"
)

// PageSize is the fixed number of products per result page.
const PageSize = 8

// Page is one paginated view of the filtered, sorted catalog.
type Page struct {
	Items         []models.Product
	CurrentPage   int
	TotalPages    int
	FilteredCount int
}

// Query runs the full pipeline over the catalog. It is referentially
// transparent: the same products, filters and page always produce the
// same result, and the input slice is never mutated.
func Query(products []models.Product, filters models.FilterState, page int) Page {
	filtered := Filter(products, filters)
	Sort(filtered, filters.SortBy)
	return paginate(filtered, page)
}

// Filter returns the products satisfying every criterion: category (with
// the "All" wildcard), inclusive price range, rating floor, stock flag
// (only constrains when set), and a case-insensitive substring search
// over name, description and tags.
func Filter(products []models.Product, f models.FilterState) []models.Product {
	query := strings.ToLower(f.SearchQuery)

	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Category != models.CategoryAll && p.Category != f.Category {
			continue
		}
		if p.Price < f.PriceRange[0] || p.Price > f.PriceRange[1] {
			continue
		}
		if p.Rating < f.Rating {
			continue
		}
		if f.InStock && !p.InStock {
			continue
		}
		if query != "" && !matchesSearch(p, query) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func matchesSearch(p models.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// Sort orders products in place with a stable comparator. Featured mode
// puts featured products strictly first and breaks ties by rating
// descending; name mode uses locale-aware collation.
func Sort(products []models.Product, mode models.SortBy) {
	switch mode {
	case models.SortFeatured:
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].Featured != products[j].Featured {
				return products[i].Featured
			}
			return products[i].Rating > products[j].Rating
		})
	case models.SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case models.SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case models.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case models.SortName:
		c := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}

// paginate slices out the 1-based page of PageSize items. A page beyond
// the end yields no items; an empty result has zero pages.
func paginate(products []models.Product, page int) Page {
	if page < 1 {
		page = 1
	}

	count := len(products)
	totalPages := (count + PageSize - 1) / PageSize

	start := (page - 1) * PageSize
	if start > count {
		start = count
	}
	end := start + PageSize
	if end > count {
		end = count
	}

	items := make([]models.Product, end-start)
	copy(items, products[start:end])

	return Page{
		Items:         items,
		CurrentPage:   page,
		TotalPages:    totalPages,
		FilteredCount: count,
	}
}
