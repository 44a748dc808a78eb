package service

import (
	"strconv"
	"strings"

	"tradepost/internal/model"
	"tradepost/internal/repository"
)

// ListingService validates and authorizes listing operations.
type ListingService struct {
	products *repository.ProductRepository
}

func NewListingService(products *repository.ProductRepository) *ListingService {
	return &ListingService{products: products}
}

func validPrice(price string) bool {
	v, err := strconv.ParseFloat(price, 64)
	return err == nil && v >= 0
}

// NewListing carries the listing submission form fields.
type NewListing struct {
	Title       string
	Category    string
	Description string
	Price       string
	Image       string
}

// Create validates the submission and persists a new listing owned by owner,
// returning the assigned id. Category membership is deliberately not
// enforced; the set in model.Categories is what the UI offers.
func (s *ListingService) Create(owner string, in NewListing) (int, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	in.Price = strings.TrimSpace(in.Price)
	if in.Title == "" || in.Category == "" || in.Description == "" || in.Price == "" {
		return 0, validationError("title, category, description and price are required")
	}
	if !validPrice(in.Price) {
		return 0, validationError("price must be a non-negative number")
	}
	if in.Image == "" {
		in.Image = model.DefaultListingImage
	}
	return s.products.Add(owner, in.Title, in.Category, in.Description, in.Price, in.Image)
}

// Get returns the listing or ErrNotFound.
func (s *ListingService) Get(id int) (*model.Listing, error) {
	l, err := s.products.Get(id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrNotFound
	}
	return l, nil
}

// Mine returns all listings owned by owner, in storage order.
func (s *ListingService) Mine(owner string) ([]model.Listing, error) {
	return s.products.ByOwner(owner)
}

// Edit applies upd to the listing. An absent listing and a foreign owner
// both yield ErrNotFound. Empty fields in upd leave the current value
// unchanged; a non-empty price must still parse.
func (s *ListingService) Edit(id int, owner string, upd repository.ListingUpdate) error {
	l, err := s.products.Get(id)
	if err != nil {
		return err
	}
	if l == nil || l.Owner != owner {
		return ErrNotFound
	}
	if upd.Price != "" && !validPrice(upd.Price) {
		return validationError("price must be a non-negative number")
	}
	return s.products.Update(id, upd)
}

// Delete removes the listing when owner matches. A mismatch is a silent
// no-op, mirroring the ownership-enforced delete in the repository.
func (s *ListingService) Delete(id int, owner string) error {
	return s.products.Delete(id, owner)
}

// Search filters listings by title substring and category.
func (s *ListingService) Search(query, category string) ([]model.Listing, error) {
	return s.products.Search(strings.TrimSpace(query), strings.TrimSpace(category))
}
