package rest

import (
	"net/http"
	"strings"

	"sheenclassics/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type productRequest struct {
	Name          string              `json:"name" validate:"required"`
	Description   string              `json:"description" validate:"required"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	Category      string              `json:"category" validate:"required,category"`
	Images        []string            `json:"images"`
	Sizes         []string            `json:"sizes" validate:"dive,size"`
	Colors        []string            `json:"colors"`
	Stock         int                 `json:"stock" validate:"min=0"`
	Featured      bool                `json:"featured"`
	ShippingFee   decimal.NullDecimal `json:"shippingFee"`
}

func (r productRequest) input() product.Input {
	sizes := make([]product.Size, 0, len(r.Sizes))
	for _, s := range r.Sizes {
		sizes = append(sizes, product.Size(s))
	}

	return product.Input{
		Name:          strings.TrimSpace(r.Name),
		Description:   strings.TrimSpace(r.Description),
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Category:      product.Category(r.Category),
		Images:        r.Images,
		Sizes:         sizes,
		Colors:        r.Colors,
		Stock:         r.Stock,
		Featured:      r.Featured,
		ShippingFee:   r.ShippingFee,
	}
}

type productQuery struct {
	Category string `form:"category" validate:"omitempty,category"`
	Search   string `form:"search"`
	Featured bool   `form:"featured"`
	InStock  bool   `form:"inStock"`
	Sort     string `form:"sort" validate:"omitempty,oneof=newest price_asc price_desc name"`
	Limit    int    `form:"limit" validate:"gte=0"`
	Page     int    `form:"page" validate:"gte=0"`
}

func (q productQuery) toListOptions() product.ListOptions {
	return product.ListOptions{
		Category:     product.Category(q.Category),
		Search:       strings.TrimSpace(q.Search),
		FeaturedOnly: q.Featured,
		InStockOnly:  q.InStock,
		Sort:         product.SortOrder(q.Sort),
		Limit:        q.Limit,
		Page:         q.Page,
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *handler) listProducts(c *gin.Context) {
	var q productQuery
	if !bindQuery(c, &q, h.validate) {
		return
	}

	products, err := h.Products.List(c.Request.Context(), q.toListOptions())
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"products": products})
}

func (h *handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.Products.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"product": p})
}

func (h *handler) adminListProducts(c *gin.Context) {
	var q productQuery
	if !bindQuery(c, &q, h.validate) {
		return
	}

	ctx := c.Request.Context()
	products, err := h.Products.List(ctx, q.toListOptions())
	if err != nil {
		failErr(c, err)
		return
	}

	total, err := h.Products.Count(ctx)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"products": products, "total": total})
}

func (h *handler) createProduct(c *gin.Context) {
	var req productRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	p, err := h.Products.Create(c.Request.Context(), req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "Product added successfully", "product": p})
}

func (h *handler) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req productRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	p, err := h.Products.Update(c.Request.Context(), id, req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Product updated successfully", "product": p})
}

func (h *handler) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Products.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
