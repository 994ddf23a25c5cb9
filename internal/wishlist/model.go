package wishlist

import (
	"time"

	"sheenclassics/internal/cart"
	"sheenclassics/internal/product"

	"github.com/google/uuid"
)

// Key scopes a wishlist the same way a cart is scoped.
type Key = cart.Key

type Entry struct {
	ProductID uuid.UUID `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}

type Line struct {
	Entry
	Product         *product.Product `json:"product,omitempty"`
	ProductNotFound bool             `json:"productNotFound"`
}

type View struct {
	Items []Line `json:"items"`
}
