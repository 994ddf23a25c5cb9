package cart

import (
	"fmt"
	"time"

	"sheenclassics/internal/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Key identifies whose cart is meant: a logged-in user or, failing that, an
// anonymous session. UserID wins when both are set.
type Key struct {
	UserID    uint
	SessionID string
}

func (k Key) IsZero() bool {
	return k.UserID == 0 && k.SessionID == ""
}

func (k Key) IsUser() bool {
	return k.UserID != 0
}

func (k Key) String() string {
	if k.IsUser() {
		return fmt.Sprintf("user:%d", k.UserID)
	}
	return "session:" + k.SessionID
}

type Cart struct {
	ID        uuid.UUID `json:"id"`
	UserID    *uint     `json:"userId,omitempty"`
	SessionID *string   `json:"-"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// find returns the line holding the same product, size and color.
func (c *Cart) find(productID uuid.UUID, size, color string) *Item {
	for i := range c.Items {
		it := &c.Items[i]
		if it.ProductID == productID && it.Size == size && it.Color == color {
			return it
		}
	}
	return nil
}

type Item struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	Size        string    `json:"size"`
	Color       string    `json:"color"`
	AddedAt     time.Time `json:"addedAt"`
}

type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Size      string
	Color     string
}

// Line is a cart item joined with the product it points to at read time.
type Line struct {
	Item
	Product         *product.Product `json:"product,omitempty"`
	ProductNotFound bool             `json:"productNotFound"`
	StockWarning    bool             `json:"stockWarning"`
	LineTotal       decimal.Decimal  `json:"lineTotal"`
}

type View struct {
	Lines     []Line          `json:"items"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
