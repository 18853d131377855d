// Package cli implements the interactive storefront REPL: auth commands,
// catalog browsing with filters, wishlist management, and orders.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"

	"github.com/mlapshin/storefront/internal/client/catalog"
	"github.com/mlapshin/storefront/internal/client/config"
	"github.com/mlapshin/storefront/internal/client/db"
	"github.com/mlapshin/storefront/internal/client/models"
	"github.com/mlapshin/storefront/internal/client/orders"
	"github.com/mlapshin/storefront/internal/client/repositories/kv"
	"github.com/mlapshin/storefront/internal/client/stores"
	"github.com/mlapshin/storefront/internal/logging"
)

// App wires the stores, the catalog and the order client behind the REPL.
// It owns the UI state the query engine is driven with: the current
// filters and the pagination cursor.
type App struct {
	config   *config.Config
	log      logging.Logger
	conn     *sql.DB
	session  *stores.SessionStore
	wishlist *stores.WishlistStore
	orders   *orders.Client
	products []models.Product

	filters models.FilterState
	page    int

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database, hydrates the stores and loads the
// embedded catalog.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	conn, err := db.Init(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	repo := kv.NewSQLiteRepository(conn)
	session := stores.NewSessionStore(ctx, repo, log, cfg.AuthLatency)
	wishlist := stores.NewWishlistStore(repo, log)
	wishlist.Bind(ctx, session)

	products, err := catalog.Load()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &App{
		config:   cfg,
		log:      log,
		conn:     conn,
		session:  session,
		wishlist: wishlist,
		orders:   orders.NewClient(cfg.OrderAPIAddr, cfg.OrderAPITimeout),
		products: products,
		filters:  models.DefaultFilters(),
		page:     1,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run drives the REPL until the user exits, then releases resources.
func (a *App) Run(ctx context.Context) {
	defer a.conn.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.State().IsAuthenticated
}

// updateFilters replaces the filter state and resets the pagination
// cursor to the first page.
func (a *App) updateFilters(f models.FilterState) {
	a.filters = f
	a.page = 1
}
