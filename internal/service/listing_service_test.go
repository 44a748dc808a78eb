package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradepost/internal/model"
	"tradepost/internal/repository"
	"tradepost/internal/service"
	"tradepost/internal/storage"
)

type fixtures struct {
	listings *service.ListingService
	cart     *service.CartService
	stats    *service.StatsService
	users    *repository.UserRepository
}

func newFixtures(t *testing.T) fixtures {
	t.Helper()
	dir := t.TempDir()

	userStore, err := storage.Open[model.Account](filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	productStore, err := storage.Open[model.Listing](filepath.Join(dir, "products.json"))
	require.NoError(t, err)
	cartStore, err := storage.Open[model.Entry](filepath.Join(dir, "purchases.json"))
	require.NoError(t, err)

	users := repository.NewUserRepository(userStore)
	products := repository.NewProductRepository(productStore)
	cart := repository.NewCartRepository(cartStore)

	return fixtures{
		listings: service.NewListingService(products),
		cart:     service.NewCartService(products, cart),
		stats:    service.NewStatsService(users, products, cart),
		users:    users,
	}
}

func chair() service.NewListing {
	return service.NewListing{Title: "Chair", Category: "Home", Description: "Wood chair", Price: "10.00", Image: "x.png"}
}

func TestCreate_Validation(t *testing.T) {
	f := newFixtures(t)

	in := chair()
	in.Title = ""
	_, err := f.listings.Create("a@x.com", in)
	assert.ErrorIs(t, err, service.ErrValidation)

	in = chair()
	in.Price = "ten bucks"
	_, err = f.listings.Create("a@x.com", in)
	assert.ErrorIs(t, err, service.ErrValidation)

	in = chair()
	in.Price = "-5"
	_, err = f.listings.Create("a@x.com", in)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCreate_DefaultImage(t *testing.T) {
	f := newFixtures(t)

	in := chair()
	in.Image = ""
	id, err := f.listings.Create("a@x.com", in)
	require.NoError(t, err)

	l, err := f.listings.Get(id)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultListingImage, l.Image)
	assert.Equal(t, "a@x.com", l.Owner)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixtures(t)

	_, err := f.listings.Get(42)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestEdit_OwnershipAndNotFoundIndistinguishable(t *testing.T) {
	f := newFixtures(t)
	id, err := f.listings.Create("a@x.com", chair())
	require.NoError(t, err)

	errMissing := f.listings.Edit(999, "a@x.com", repository.ListingUpdate{Title: "New"})
	errForeign := f.listings.Edit(id, "intruder@x.com", repository.ListingUpdate{Title: "New"})
	assert.ErrorIs(t, errMissing, service.ErrNotFound)
	assert.ErrorIs(t, errForeign, service.ErrNotFound)

	l, err := f.listings.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Chair", l.Title)
}

func TestEdit_PriceStillValidated(t *testing.T) {
	f := newFixtures(t)
	id, err := f.listings.Create("a@x.com", chair())
	require.NoError(t, err)

	err = f.listings.Edit(id, "a@x.com", repository.ListingUpdate{Price: "not-a-number"})
	assert.ErrorIs(t, err, service.ErrValidation)

	// Empty price is the no-change sentinel, not a validation failure.
	err = f.listings.Edit(id, "a@x.com", repository.ListingUpdate{Title: "Armchair"})
	require.NoError(t, err)
}

func TestCartService_Flow(t *testing.T) {
	f := newFixtures(t)

	id1, err := f.listings.Create("seller@x.com", chair())
	require.NoError(t, err)
	in := chair()
	in.Title = "Lamp"
	in.Price = "5.50"
	id2, err := f.listings.Create("seller@x.com", in)
	require.NoError(t, err)

	assert.ErrorIs(t, f.cart.Add("a@x.com", 999), service.ErrNotFound)

	require.NoError(t, f.cart.Add("a@x.com", id1))
	require.NoError(t, f.cart.Add("a@x.com", id2))

	items, total, err := f.cart.Items("a@x.com")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.InDelta(t, 15.50, total, 1e-9)

	require.NoError(t, f.cart.Remove("a@x.com", 0))
	items, total, err = f.cart.Items("a@x.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Lamp", items[0].Product.Title)
	assert.InDelta(t, 5.50, total, 1e-9)

	require.NoError(t, f.cart.Checkout("a@x.com"))
	history, err := f.cart.History("a@x.com")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestStatsOverview(t *testing.T) {
	f := newFixtures(t)

	require.NoError(t, f.users.Add("a@x.com", "pw", "alice"))
	id, err := f.listings.Create("a@x.com", chair())
	require.NoError(t, err)
	require.NoError(t, f.cart.Add("a@x.com", id))
	require.NoError(t, f.cart.Add("a@x.com", id))
	require.NoError(t, f.cart.Checkout("a@x.com"))
	require.NoError(t, f.cart.Add("a@x.com", id))

	stats, err := f.stats.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, service.Stats{
		Accounts:    1,
		Listings:    1,
		CartEntries: 1,
		Purchases:   2,
	}, stats)
}
