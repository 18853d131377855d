package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	state := a.session.State()
	if state.User == nil {
		return ""
	}
	return fmt.Sprintf("(%s) ", state.User.Name)
}

// Root runs the command loop: it reads a line, parses the first token as
// the command, and dispatches to methods on App. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the storefront CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "shop %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.printHelp()

		case "register":
			a.Register(ctx)

		case "login":
			a.Login(ctx)

		case "logout":
			a.Logout(ctx)

		case "profile":
			a.Profile(ctx)

		case "l", "list":
			a.List(ctx)

		case "filter":
			a.Filter(ctx)

		case "search":
			a.Search(ctx, strings.Join(args, " "))

		case "sort":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: sort <featured|price-low|price-high|rating|name>")
				continue
			}
			a.SortMode(ctx, args[0])

		case "page":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: page <n>")
				continue
			}
			a.SetPage(ctx, args[0])

		case "next":
			a.NextPage(ctx)

		case "prev":
			a.PrevPage(ctx)

		case "wish":
			a.Wish(ctx, args)

		case "orders":
			a.Orders(ctx)

		case "order":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: order <id>")
				continue
			}
			a.Order(ctx, args[0])

		case "checkout":
			a.Checkout(ctx)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, "Catalog:  (l)ist, filter, search <text>, sort <mode>, page <n>, next, prev")
	fmt.Fprintln(a.out, "Wishlist: wish add <id>, wish rm <id>, wish list, wish clear")
	fmt.Fprintln(a.out, "Orders:   orders, order <id>, checkout")
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Account:  profile, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Account:  register, login, exit")
	}
}
