package rest

import (
	"net/http"
	"strings"
	"time"

	"sheenclassics/internal/coupon"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type couponRequest struct {
	Code          string              `json:"code" validate:"required"`
	DiscountType  string              `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue decimal.Decimal     `json:"discountValue"`
	MinPurchase   decimal.Decimal     `json:"minPurchase"`
	MaxDiscount   decimal.NullDecimal `json:"maxDiscount"`
	ValidFrom     time.Time           `json:"validFrom"`
	ValidUntil    time.Time           `json:"validUntil"`
	UsageLimit    *int                `json:"usageLimit"`
}

func (h *handler) dashboard(c *gin.Context) {
	d, err := h.Admin.Dashboard(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"dashboard": d})
}

func (h *handler) listCoupons(c *gin.Context) {
	coupons, err := h.Coupons.List(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"coupons": coupons})
}

func (h *handler) createCoupon(c *gin.Context) {
	var req couponRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	cp, err := h.Coupons.Create(c.Request.Context(), coupon.CreateCouponInput{
		Code:          strings.TrimSpace(req.Code),
		DiscountType:  coupon.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		MinPurchase:   req.MinPurchase,
		MaxDiscount:   req.MaxDiscount,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
		UsageLimit:    req.UsageLimit,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "Coupon created successfully", "coupon": cp})
}

func (h *handler) adminUsers(c *gin.Context) {
	overview, err := h.Admin.Users(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"users":           overview.Customers,
		"total":           overview.Total,
		"activeCustomers": overview.ActiveCustomers,
	})
}
