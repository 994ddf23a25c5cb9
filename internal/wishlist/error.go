package wishlist

import "github.com/go-faster/errors"

var (
	ErrMissingKey        = errors.New("no user or session to scope the wishlist")
	ErrWishlistNotFound  = errors.New("wishlist not found")
	ErrNotInWishlist     = errors.New("product is not in the wishlist")
	ErrProductNotFound   = errors.New("product not found")
	ErrAlreadyInWishlist = errors.New("product already in wishlist")

	PgUniqueViolation = "23505"
)
