package product

import "github.com/go-faster/errors"

var (
	ErrProductNotFound = errors.New("product not found")

	ErrNameRequired        = errors.New("product name is required")
	ErrDescriptionRequired = errors.New("product description is required")
	ErrInvalidPrice        = errors.New("price cannot be negative")
	ErrInvalidCategory     = errors.New("category must be one of Men, Women, Kids, Accessories")
	ErrInvalidSize         = errors.New("sizes must be among XS, S, M, L, XL, XXL")
	ErrInvalidStock        = errors.New("stock cannot be negative")
	ErrInvalidShippingFee  = errors.New("shipping fee cannot be negative")

	// ErrStockExhausted is returned when a decrement would take stock below zero.
	ErrStockExhausted = errors.New("stock would become negative")
)

const pgCheckViolation = "23514"
