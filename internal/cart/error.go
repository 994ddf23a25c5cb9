package cart

import "github.com/go-faster/errors"

var (
	// -- Validation & Input --
	ErrMissingCartKey  = errors.New("no user or session to scope the cart")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidSize     = errors.New("size is not offered for this product")

	// -- Resource State --
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrProductNotFound  = errors.New("product not found")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
