package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryMen         Category = "Men"
	CategoryWomen       Category = "Women"
	CategoryKids        Category = "Kids"
	CategoryAccessories Category = "Accessories"
)

var Categories = []Category{CategoryMen, CategoryWomen, CategoryKids, CategoryAccessories}

func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryKids, CategoryAccessories:
		return true
	}
	return false
}

type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

func (s Size) Valid() bool {
	switch s {
	case SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL:
		return true
	}
	return false
}

type Product struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	Category      Category            `json:"category"`
	Images        []string            `json:"images"`
	Sizes         []Size              `json:"sizes"`
	Colors        []string            `json:"colors"`
	Stock         int                 `json:"stock"`
	Featured      bool                `json:"featured"`
	ShippingFee   decimal.NullDecimal `json:"shippingFee"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortName      SortOrder = "name"
)

type ListOptions struct {
	Category     Category
	Search       string
	FeaturedOnly bool
	InStockOnly  bool
	Sort         SortOrder
	Limit        int
	Page         int
}

type Input struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice decimal.NullDecimal
	Category      Category
	Images        []string
	Sizes         []Size
	Colors        []string
	Stock         int
	Featured      bool
	ShippingFee   decimal.NullDecimal
}
