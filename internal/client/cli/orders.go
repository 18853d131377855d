package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mlapshin/storefront/internal/client/orders"
	"github.com/mlapshin/storefront/internal/common"
)

// Orders lists the user's orders from the external order API.
func (a *App) Orders(ctx context.Context) {
	list, err := a.orders.GetOrders(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Failed to fetch orders:", err)
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No orders yet.")
		return
	}
	for _, o := range list {
		fmt.Fprintf(a.out, "%-6d %-14s %-10s $%8.2f  %s\n",
			o.ID, o.OrderNumber, o.Status, o.TotalAmount, o.CreatedAt)
	}
}

// Order shows a single order with its lines.
func (a *App) Order(ctx context.Context, arg string) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Order id must be a number.")
		return
	}

	o, err := a.orders.GetOrder(ctx, id)
	if errors.Is(err, common.ErrOrderNotFound) {
		fmt.Fprintln(a.out, "No such order.")
		return
	}
	if err != nil {
		fmt.Fprintln(a.out, "Failed to fetch order:", err)
		return
	}

	fmt.Fprintf(a.out, "%s  %s  $%.2f\n", o.OrderNumber, o.Status, o.TotalAmount)
	for _, item := range o.Items {
		fmt.Fprintf(a.out, "  %dx %-42s $%8.2f\n", item.Quantity, item.Product.Name, item.Price)
	}
}

// Checkout prompts for addresses and places an order.
func (a *App) Checkout(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Sign in to place an order.")
		return
	}

	shipping, err := GetSimpleText(a.reader, "Shipping address", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	billing, err := GetSimpleText(a.reader, fmt.Sprintf("Billing address [%s]", shipping), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if billing == "" {
		billing = shipping
	}

	o, err := a.orders.CreateOrder(ctx, orders.CreateOrderRequest{
		ShippingAddress: shipping,
		BillingAddress:  billing,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Checkout failed:", err)
		return
	}
	fmt.Fprintf(a.out, "Order %s placed.\n", o.OrderNumber)
}
