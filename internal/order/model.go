package order

import (
	"time"

	"sheenclassics/internal/cart"
	"sheenclassics/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether an order in this status may still be cancelled.
func (s Status) Cancellable() bool {
	return s == StatusPending || s == StatusProcessing
}

type PaymentMethod string

// PaymentWhatsApp is the only accepted method: the order is confirmed by
// contacting the customer on the number they leave.
const PaymentWhatsApp PaymentMethod = "whatsapp"

type PaymentDetails struct {
	WhatsAppNumber string `json:"whatsappNumber"`
}

type ShippingAddress struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

// Item is a line frozen at purchase time. Price never follows later product
// edits.
type Item struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
}

type StatusEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	UserID          uint            `json:"userId"`
	Items           []Item          `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	DeliveryCharge  decimal.Decimal `json:"deliveryCharge"`
	CouponCode      *string         `json:"couponCode"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentDetails  PaymentDetails  `json:"paymentDetails"`
	Status          Status          `json:"status"`
	StatusHistory   []StatusEntry   `json:"statusHistory"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Actor is whoever asks for an order operation.
type Actor struct {
	UserID  uint
	IsAdmin bool
}

func (a Actor) owns(o *Order) bool {
	return a.UserID != 0 && a.UserID == o.UserID
}

type CreateOrderInput struct {
	ShippingAddress ShippingAddress
	CouponCode      string
	PaymentMethod   string
	ContactNumber   string
}

type Summary struct {
	Items []cart.Line `json:"items"`
	pricing.Breakdown
}

type CouponResult struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	pricing.Breakdown
}

type ListOptions struct {
	UserID uint
	Status Status
	Limit  int
	Page   int
}

type Stats struct {
	OrderCount      int             `json:"orderCount"`
	Revenue         decimal.Decimal `json:"revenue"`
	ActiveCustomers int             `json:"activeCustomers"`
}
