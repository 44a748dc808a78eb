package repository

import (
	"strings"

	"tradepost/internal/model"
	"tradepost/internal/storage"
)

// ProductRepository manages listings keyed by an auto-incrementing integer
// id, scoped by owner.
type ProductRepository struct {
	store *storage.Store[model.Listing]
}

func NewProductRepository(store *storage.Store[model.Listing]) *ProductRepository {
	return &ProductRepository{store: store}
}

func nextID(listings []model.Listing) int {
	max := 0
	for _, l := range listings {
		if l.ID > max {
			max = l.ID
		}
	}
	return max + 1
}

// Add assigns the next id and appends the listing. The id is computed inside
// the store lock, so concurrent adds cannot collide.
func (r *ProductRepository) Add(owner, title, category, description, price, image string) (int, error) {
	var id int
	err := r.store.Update(func(listings []model.Listing) ([]model.Listing, error) {
		id = nextID(listings)
		return append(listings, model.Listing{
			ID:          id,
			Owner:       owner,
			Title:       title,
			Category:    category,
			Description: description,
			Price:       price,
			Image:       image,
		}), nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Get returns the listing with the given id, or nil.
func (r *ProductRepository) Get(id int) (*model.Listing, error) {
	listings, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for _, l := range listings {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, nil
}

// ByOwner returns all listings created by owner, in storage order.
func (r *ProductRepository) ByOwner(owner string) ([]model.Listing, error) {
	listings, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	var out []model.Listing
	for _, l := range listings {
		if l.Owner == owner {
			out = append(out, l)
		}
	}
	return out, nil
}

// ListingUpdate is a partial listing mutation. An empty string means "leave
// the current value unchanged"; this is a deliberate sentinel policy carried
// over from the edit form, where untouched fields arrive empty.
type ListingUpdate struct {
	Title       string
	Category    string
	Description string
	Price       string
}

// Update overwrites each non-empty field of upd on the matching listing.
// No-op if the id is unknown.
func (r *ProductRepository) Update(id int, upd ListingUpdate) error {
	return r.store.Update(func(listings []model.Listing) ([]model.Listing, error) {
		for i := range listings {
			if listings[i].ID != id {
				continue
			}
			if upd.Title != "" {
				listings[i].Title = upd.Title
			}
			if upd.Category != "" {
				listings[i].Category = upd.Category
			}
			if upd.Description != "" {
				listings[i].Description = upd.Description
			}
			if upd.Price != "" {
				listings[i].Price = upd.Price
			}
			break
		}
		return listings, nil
	})
}

// Delete removes the listing only when both id and owner match. A silent
// no-op otherwise, so non-owners learn nothing about a listing's existence.
func (r *ProductRepository) Delete(id int, owner string) error {
	return r.store.Update(func(listings []model.Listing) ([]model.Listing, error) {
		out := listings[:0]
		for _, l := range listings {
			if l.ID == id && l.Owner == owner {
				continue
			}
			out = append(out, l)
		}
		return out, nil
	})
}

// Search filters listings by a case-insensitive substring match on the title
// and a case-insensitive exact match on the category. Both filters are
// conjunctive; an empty argument imposes no constraint. Results keep storage
// order.
func (r *ProductRepository) Search(query, category string) ([]model.Listing, error) {
	listings, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	var out []model.Listing
	q := strings.ToLower(query)
	for _, l := range listings {
		if q != "" && !strings.Contains(strings.ToLower(l.Title), q) {
			continue
		}
		if category != "" && !strings.EqualFold(l.Category, category) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// Count reports the number of listings.
func (r *ProductRepository) Count() (int, error) {
	listings, err := r.store.Load()
	if err != nil {
		return 0, err
	}
	return len(listings), nil
}
