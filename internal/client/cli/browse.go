package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mlapshin/storefront/internal/client/catalog"
	"github.com/mlapshin/storefront/internal/client/models"
)

// List renders the current page of the filtered, sorted catalog. Saved
// products are marked with an asterisk.
func (a *App) List(ctx context.Context) {
	page := catalog.Query(a.products, a.filters, a.page)

	if page.FilteredCount == 0 {
		fmt.Fprintln(a.out, "No products match the current filters.")
		return
	}

	for _, p := range page.Items {
		marker := " "
		if a.wishlist.IsInWishlist(p.ID) {
			marker = "*"
		}
		stock := ""
		if !p.InStock {
			stock = "  [out of stock]"
		}
		fmt.Fprintf(a.out, "%s %-4s %-42s $%8.2f  %.1f (%d reviews)%s\n",
			marker, p.ID, p.Name, p.Price, p.Rating, p.Reviews, stock)
	}
	fmt.Fprintf(a.out, "Page %d of %d, %d products\n", page.CurrentPage, page.TotalPages, page.FilteredCount)
}

// Filter interactively edits the filter criteria. Empty input keeps the
// current value; any change resets the cursor to page 1.
func (a *App) Filter(ctx context.Context) {
	f := a.filters

	category, err := GetSimpleText(a.reader, fmt.Sprintf("Category [%s]", f.Category), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if category != "" {
		f.Category = category
	}

	if v, ok := a.promptFloat(fmt.Sprintf("Min price [%.2f]", f.PriceRange[0])); ok {
		f.PriceRange[0] = v
	}
	if v, ok := a.promptFloat(fmt.Sprintf("Max price [%.2f]", f.PriceRange[1])); ok {
		f.PriceRange[1] = v
	}
	if f.PriceRange[0] > f.PriceRange[1] {
		fmt.Fprintln(a.out, "Min price must not exceed max price.")
		return
	}

	if v, ok := a.promptFloat(fmt.Sprintf("Min rating [%.1f]", f.Rating)); ok {
		f.Rating = v
	}

	inStock, err := GetSimpleText(a.reader, fmt.Sprintf("In stock only? y/n [%s]", yesNo(f.InStock)), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	switch inStock {
	case "y", "yes":
		f.InStock = true
	case "n", "no":
		f.InStock = false
	}

	a.updateFilters(f)
	a.List(ctx)
}

// Search sets the search query. An empty argument clears it.
func (a *App) Search(ctx context.Context, query string) {
	f := a.filters
	f.SearchQuery = query
	a.updateFilters(f)
	a.List(ctx)
}

// SortMode switches the sort order.
func (a *App) SortMode(ctx context.Context, mode string) {
	for _, opt := range catalog.SortOptions() {
		if string(opt.Value) == mode {
			f := a.filters
			f.SortBy = opt.Value
			a.updateFilters(f)
			a.List(ctx)
			return
		}
	}
	fmt.Fprintln(a.out, "Unknown sort mode:", mode)
}

// SetPage moves the cursor to the given 1-based page.
func (a *App) SetPage(ctx context.Context, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		fmt.Fprintln(a.out, "Page must be a positive number.")
		return
	}
	a.page = a.clampPage(n)
	a.List(ctx)
}

// NextPage advances the cursor by one page.
func (a *App) NextPage(ctx context.Context) {
	a.page = a.clampPage(a.page + 1)
	a.List(ctx)
}

// PrevPage moves the cursor back by one page.
func (a *App) PrevPage(ctx context.Context) {
	a.page = a.clampPage(a.page - 1)
	a.List(ctx)
}

// clampPage keeps the cursor within [1, totalPages] for the current
// filters. An empty result clamps to page 1.
func (a *App) clampPage(n int) int {
	total := catalog.Query(a.products, a.filters, 1).TotalPages
	if total < 1 {
		total = 1
	}
	if n < 1 {
		return 1
	}
	if n > total {
		return total
	}
	return n
}

func (a *App) promptFloat(prompt string) (float64, bool) {
	s, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil || s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Not a number:", s)
		return 0, false
	}
	return v, true
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func (a *App) findProduct(id string) (models.Product, bool) {
	for _, p := range a.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
