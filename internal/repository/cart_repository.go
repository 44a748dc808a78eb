package repository

import (
	"tradepost/internal/model"
	"tradepost/internal/storage"
)

// CartRepository manages per-user cart and purchase-history entries as a
// status-tagged log in a single collection.
type CartRepository struct {
	store *storage.Store[model.Entry]
}

func NewCartRepository(store *storage.Store[model.Entry]) *CartRepository {
	return &CartRepository{store: store}
}

// Add appends a cart entry holding a value-copy snapshot of the listing.
// Later edits to the listing do not reach entries already in a cart. No
// dedup: adding the same listing twice yields two entries.
func (r *CartRepository) Add(user string, product model.Listing) error {
	return r.store.Update(func(entries []model.Entry) ([]model.Entry, error) {
		return append(entries, model.Entry{
			User:    user,
			Product: product,
			Status:  model.StatusCart,
		}), nil
	})
}

// Cart returns the user's cart entries in storage order.
func (r *CartRepository) Cart(user string) ([]model.Entry, error) {
	return r.byStatus(user, model.StatusCart)
}

// Purchases returns the user's purchased entries in storage order, which
// approximates chronological order since entries are never reordered.
func (r *CartRepository) Purchases(user string) ([]model.Entry, error) {
	return r.byStatus(user, model.StatusPurchased)
}

func (r *CartRepository) byStatus(user, status string) ([]model.Entry, error) {
	entries, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	var out []model.Entry
	for _, e := range entries {
		if e.User == user && e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

// Remove deletes the entry at the zero-based position among the user's
// current cart entries, not the global collection index. Out-of-range
// positions are a silent no-op. Purchased entries are never removable.
func (r *CartRepository) Remove(user string, position int) error {
	return r.store.Update(func(entries []model.Entry) ([]model.Entry, error) {
		seen := 0
		for i, e := range entries {
			if e.User != user || e.Status != model.StatusCart {
				continue
			}
			if seen == position {
				return append(entries[:i], entries[i+1:]...), nil
			}
			seen++
		}
		return entries, nil
	})
}

// Purchase flips every cart entry belonging to user to purchased in a single
// persisted write. Entries of other users are untouched; an empty cart is a
// no-op.
func (r *CartRepository) Purchase(user string) error {
	return r.store.Update(func(entries []model.Entry) ([]model.Entry, error) {
		for i := range entries {
			if entries[i].User == user && entries[i].Status == model.StatusCart {
				entries[i].Status = model.StatusPurchased
			}
		}
		return entries, nil
	})
}

// CountByStatus reports how many entries currently carry each status.
func (r *CartRepository) CountByStatus() (carted, purchased int, err error) {
	entries, err := r.store.Load()
	if err != nil {
		return 0, 0, err
	}
	for _, e := range entries {
		switch e.Status {
		case model.StatusCart:
			carted++
		case model.StatusPurchased:
			purchased++
		}
	}
	return carted, purchased, nil
}
