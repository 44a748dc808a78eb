package service

import (
	"strconv"

	"tradepost/internal/model"
	"tradepost/internal/repository"
)

// CartService orchestrates cart and purchase operations. The snapshot of the
// listing is taken here, at add time, by passing the listing by value.
type CartService struct {
	products *repository.ProductRepository
	cart     *repository.CartRepository
}

func NewCartService(products *repository.ProductRepository, cart *repository.CartRepository) *CartService {
	return &CartService{products: products, cart: cart}
}

// Add puts a snapshot of the listing into the user's cart. ErrNotFound if
// the listing does not exist.
func (s *CartService) Add(user string, productID int) error {
	l, err := s.products.Get(productID)
	if err != nil {
		return err
	}
	if l == nil {
		return ErrNotFound
	}
	return s.cart.Add(user, *l)
}

// Items returns the user's cart entries and their total price, computed from
// the snapshot prices.
func (s *CartService) Items(user string) ([]model.Entry, float64, error) {
	entries, err := s.cart.Cart(user)
	if err != nil {
		return nil, 0, err
	}
	var total float64
	for _, e := range entries {
		if v, err := strconv.ParseFloat(e.Product.Price, 64); err == nil {
			total += v
		}
	}
	return entries, total, nil
}

// Remove drops the entry at the zero-based position within the user's cart.
// Out-of-range positions are a silent no-op.
func (s *CartService) Remove(user string, position int) error {
	return s.cart.Remove(user, position)
}

// Checkout marks everything in the user's cart as purchased. An empty cart
// is a no-op, not an error.
func (s *CartService) Checkout(user string) error {
	return s.cart.Purchase(user)
}

// History returns the user's purchased entries in storage order.
func (s *CartService) History(user string) ([]model.Entry, error) {
	return s.cart.Purchases(user)
}
