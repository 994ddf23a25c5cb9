package rest

import (
	"net/http"

	"sheenclassics/internal/cart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type updateCartRequest struct {
	ItemID   string `json:"itemId" validate:"required,uuid"`
	Quantity int    `json:"quantity"`
}

type cartItemRequest struct {
	ItemID string `json:"itemId" validate:"required,uuid"`
}

type productRef struct {
	ProductID string `json:"productId" validate:"required,uuid"`
}

func (h *handler) getCart(c *gin.Context) {
	view, err := h.Carts.View(c.Request.Context(), cartKey(c))
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"cart": view})
}

func (h *handler) addToCart(c *gin.Context) {
	var req addToCartRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	updated, err := h.Carts.AddItem(c.Request.Context(), cartKey(c), cart.AddItemInput{
		ProductID: uuid.MustParse(req.ProductID),
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Added to cart", "cart": updated})
}

func (h *handler) updateCartItem(c *gin.Context) {
	var req updateCartRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	updated, err := h.Carts.UpdateItem(c.Request.Context(), cartKey(c), uuid.MustParse(req.ItemID), req.Quantity)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Cart updated", "cart": updated})
}

func (h *handler) removeCartItem(c *gin.Context) {
	var req cartItemRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	updated, err := h.Carts.RemoveItem(c.Request.Context(), cartKey(c), uuid.MustParse(req.ItemID))
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Item removed from cart", "cart": updated})
}

func (h *handler) getWishlist(c *gin.Context) {
	view, err := h.Wishlists.View(c.Request.Context(), cartKey(c))
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"wishlist": view})
}

func (h *handler) addToWishlist(c *gin.Context) {
	var req productRef
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	if err := h.Wishlists.Add(c.Request.Context(), cartKey(c), uuid.MustParse(req.ProductID)); err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Added to wishlist"})
}

func (h *handler) removeFromWishlist(c *gin.Context) {
	var req productRef
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	if err := h.Wishlists.Remove(c.Request.Context(), cartKey(c), uuid.MustParse(req.ProductID)); err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Removed from wishlist"})
}
