package stores

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mlapshin/storefront/internal/client/models"
	"github.com/mlapshin/storefront/internal/client/repositories/kv"
	"github.com/mlapshin/storefront/internal/logging"
)

func wishlistKey(userID string) string {
	return "wishlist_" + userID
}

// WishlistStore owns the saved-products collection of the currently
// authenticated user. It reacts to session user changes: on a new user it
// loads that user's persisted wishlist, on logout it resets the in-memory
// collection without touching the previous user's persisted entry.
type WishlistStore struct {
	repo kv.Repository
	log  logging.Logger

	user  *models.User
	items []models.Product
}

// NewWishlistStore constructs an empty wishlist store.
func NewWishlistStore(repo kv.Repository, log logging.Logger) *WishlistStore {
	return &WishlistStore{repo: repo, log: log.With("store", "wishlist"), items: []models.Product{}}
}

// Bind subscribes the store to session user changes and syncs it with the
// session's current user.
func (w *WishlistStore) Bind(ctx context.Context, session *SessionStore) {
	session.Subscribe(w.onUserChange)
	w.onUserChange(ctx, session.State().User)
}

func (w *WishlistStore) onUserChange(ctx context.Context, user *models.User) {
	w.user = user
	if user == nil {
		w.items = []models.Product{}
		return
	}
	w.items = w.load(ctx, user.ID)
}

// load reads the persisted wishlist for a user. A missing or malformed
// entry falls back to empty; decode failures are logged, never surfaced.
func (w *WishlistStore) load(ctx context.Context, userID string) []models.Product {
	data, err := w.repo.Get(ctx, wishlistKey(userID))
	if err != nil {
		w.log.Error(ctx, "failed to read persisted wishlist", "user_id", userID, "error", err)
		return []models.Product{}
	}
	if data == nil {
		return []models.Product{}
	}

	var items []models.Product
	if err := json.Unmarshal(data, &items); err != nil {
		w.log.Error(ctx, "malformed persisted wishlist, starting empty", "user_id", userID, "error", err)
		return []models.Product{}
	}
	if items == nil {
		items = []models.Product{}
	}
	return items
}

// AddItem appends a product unless one with the same id is already
// present, preserving insertion order.
func (w *WishlistStore) AddItem(ctx context.Context, product models.Product) error {
	if w.IsInWishlist(product.ID) {
		return nil
	}
	w.items = append(w.items, product)
	return w.persist(ctx)
}

// RemoveItem removes the product with the given id; no-op when absent.
func (w *WishlistStore) RemoveItem(ctx context.Context, id string) error {
	for i := range w.items {
		if w.items[i].ID == id {
			w.items = append(w.items[:i], w.items[i+1:]...)
			return w.persist(ctx)
		}
	}
	return nil
}

// Clear empties the collection.
func (w *WishlistStore) Clear(ctx context.Context) error {
	if len(w.items) == 0 {
		return nil
	}
	w.items = []models.Product{}
	return w.persist(ctx)
}

// IsInWishlist reports whether a product with the given id is saved.
func (w *WishlistStore) IsInWishlist(id string) bool {
	for i := range w.items {
		if w.items[i].ID == id {
			return true
		}
	}
	return false
}

// Items returns a copy of the saved products in insertion order.
func (w *WishlistStore) Items() []models.Product {
	out := make([]models.Product, len(w.items))
	copy(out, w.items)
	return out
}

// persist writes the collection for the current user, including when it
// is empty, so an emptied wishlist stays empty on next load. Without an
// authenticated user mutations stay in memory only.
func (w *WishlistStore) persist(ctx context.Context) error {
	if w.user == nil {
		return nil
	}
	data, err := json.Marshal(w.items)
	if err != nil {
		return fmt.Errorf("failed to encode wishlist: %w", err)
	}
	if err := w.repo.Set(ctx, wishlistKey(w.user.ID), data); err != nil {
		return fmt.Errorf("failed to persist wishlist: %w", err)
	}
	return nil
}
