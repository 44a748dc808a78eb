package model

// Categories is the closed set of listing categories shared by listing
// creation, editing and search filtering.
var Categories = []string{"Clothing", "Electronics", "Books", "Home", "Sports", "Other"}

const DefaultAvatar = "static/avatar_placeholder.png"

const DefaultListingImage = "static/placeholder.png"

// Account is a marketplace user, keyed by lowercase email.
type Account struct {
	Email    string `json:"email"`
	Password string `json:"password"` // plain text, prototype semantics preserved
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

// Listing is a product for sale, owned by exactly one account.
type Listing struct {
	ID          int    `json:"id"`
	Owner       string `json:"owner"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       string `json:"price"` // decimal kept as string
	Image       string `json:"image"`
}

// Entry statuses.
const (
	StatusCart      = "cart"
	StatusPurchased = "purchased"
)

// Entry links a user to a snapshot of a listing. The snapshot is a value
// copy taken when the listing is added to the cart, so later edits to the
// listing do not affect entries already in a cart or purchase history.
type Entry struct {
	User    string  `json:"user"`
	Product Listing `json:"product"`
	Status  string  `json:"status"`
}
