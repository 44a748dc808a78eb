package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"tradepost/internal/repository"
)

// Stats is a point-in-time overview of the marketplace.
type Stats struct {
	Accounts    int `json:"accounts"`
	Listings    int `json:"listings"`
	CartEntries int `json:"cart_entries"`
	Purchases   int `json:"purchases"`
}

// StatsService aggregates counts across the three collections.
type StatsService struct {
	users    *repository.UserRepository
	products *repository.ProductRepository
	cart     *repository.CartRepository
}

func NewStatsService(users *repository.UserRepository, products *repository.ProductRepository, cart *repository.CartRepository) *StatsService {
	return &StatsService{users: users, products: products, cart: cart}
}

// Overview loads the three collections concurrently and returns their
// counts.
func (s *StatsService) Overview(ctx context.Context) (Stats, error) {
	var st Stats
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.users.Count()
		st.Accounts = n
		return err
	})
	g.Go(func() error {
		n, err := s.products.Count()
		st.Listings = n
		return err
	})
	g.Go(func() error {
		carted, purchased, err := s.cart.CountByStatus()
		st.CartEntries, st.Purchases = carted, purchased
		return err
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return st, nil
}
