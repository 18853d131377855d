package cli

import (
	"context"
	"fmt"
)

// Wish dispatches the wishlist subcommands: add, rm, list, clear.
func (a *App) Wish(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: wish <add|rm|list|clear> [id]")
		return
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: wish add <id>")
			return
		}
		a.wishAdd(ctx, args[1])

	case "rm", "remove":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: wish rm <id>")
			return
		}
		if err := a.wishlist.RemoveItem(ctx, args[1]); err != nil {
			fmt.Fprintln(a.out, "error:", err)
			return
		}
		fmt.Fprintln(a.out, "Removed.")

	case "list":
		a.wishList()

	case "clear":
		if err := a.wishlist.Clear(ctx); err != nil {
			fmt.Fprintln(a.out, "error:", err)
			return
		}
		fmt.Fprintln(a.out, "Wishlist cleared.")

	default:
		fmt.Fprintln(a.out, "Unknown wish command:", args[0])
	}
}

func (a *App) wishAdd(ctx context.Context, id string) {
	product, ok := a.findProduct(id)
	if !ok {
		fmt.Fprintln(a.out, "No product with id", id)
		return
	}
	if err := a.wishlist.AddItem(ctx, product); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintf(a.out, "Saved %s.\n", product.Name)
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Note: sign in to keep your wishlist across sessions.")
	}
}

func (a *App) wishList() {
	items := a.wishlist.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Your wishlist is empty.")
		return
	}
	for _, p := range items {
		fmt.Fprintf(a.out, "%-4s %-42s $%8.2f\n", p.ID, p.Name, p.Price)
	}
}
