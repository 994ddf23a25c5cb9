package rest

import (
	"net/http"

	"sheenclassics/internal/order"

	"github.com/gin-gonic/gin"
)

type applyCouponRequest struct {
	CouponCode string `json:"couponCode" validate:"required"`
}

type createOrderRequest struct {
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
	CouponCode      string                `json:"couponCode"`
	PaymentMethod   string                `json:"paymentMethod"`
	WhatsAppNumber  string                `json:"whatsappNumber"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *handler) orderSummary(c *gin.Context) {
	summary, err := h.Orders.GetOrderSummary(c.Request.Context(), cartKey(c))
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"summary": summary})
}

func (h *handler) applyCoupon(c *gin.Context) {
	var req applyCouponRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	res, err := h.Orders.ApplyCoupon(c.Request.Context(), cartKey(c), req.CouponCode)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message":        res.Message,
		"code":           res.Code,
		"subtotal":       res.Subtotal,
		"discount":       res.Discount,
		"deliveryCharge": res.DeliveryCharge,
		"total":          res.Total,
	})
}

func (h *handler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	o, err := h.Orders.CreateOrder(c.Request.Context(), actor(c), order.CreateOrderInput{
		ShippingAddress: req.ShippingAddress,
		CouponCode:      req.CouponCode,
		PaymentMethod:   req.PaymentMethod,
		ContactNumber:   req.WhatsAppNumber,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{
		"message":     "Order placed successfully",
		"orderId":     o.ID,
		"orderNumber": o.OrderNumber,
		"order":       o,
	})
}

func (h *handler) myOrders(c *gin.Context) {
	a := actor(c)
	orders, err := h.Orders.ListUserOrders(c.Request.Context(), a.UserID)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"orders": orders})
}

func (h *handler) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	o, err := h.Orders.GetOrder(c.Request.Context(), id, actor(c))
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"order": o})
}

func (h *handler) cancelOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	o, err := h.Orders.CancelOrder(c.Request.Context(), id, actor(c))
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": o})
}

type orderQuery struct {
	Status string `form:"status"`
	UserID uint   `form:"userId"`
	Limit  int    `form:"limit" validate:"gte=0"`
	Page   int    `form:"page" validate:"gte=0"`
}

func (h *handler) adminListOrders(c *gin.Context) {
	var q orderQuery
	if !bindQuery(c, &q, h.validate) {
		return
	}

	orders, err := h.Orders.ListOrders(c.Request.Context(), order.ListOptions{
		UserID: q.UserID,
		Status: order.Status(q.Status),
		Limit:  q.Limit,
		Page:   q.Page,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"orders": orders})
}

func (h *handler) updateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	o, err := h.Orders.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Order status updated", "order": o})
}
