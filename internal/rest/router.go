package rest

import (
	"net/http"

	"sheenclassics/internal/admin"
	"sheenclassics/internal/cart"
	"sheenclassics/internal/coupon"
	"sheenclassics/internal/order"
	"sheenclassics/internal/product"
	"sheenclassics/internal/user"
	"sheenclassics/internal/utils"
	"sheenclassics/internal/wishlist"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// SessionDestroyer ends the anonymous session bound to a request.
type SessionDestroyer interface {
	Destroy(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Users     user.Service
	Products  product.Service
	Carts     cart.Service
	Wishlists wishlist.Service
	Orders    order.Service
	Coupons   coupon.Service
	Admin     admin.Service
	Sessions  SessionDestroyer

	SecureCookies bool
}

type handler struct {
	Deps
	validate *validatorv10.Validate
}

// NewRouter builds the JSON API. Authentication, sessions and rate limiting
// run as net/http middleware around it, so handlers read identity from the
// request context.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	h := &handler{Deps: d, validate: NewValidator()}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
	}

	products := r.Group("/products")
	{
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
	}

	carts := r.Group("/cart")
	{
		carts.GET("", h.getCart)
		carts.POST("/add", h.addToCart)
		carts.PUT("/update", h.updateCartItem)
		carts.DELETE("/remove", h.removeCartItem)
	}

	wl := r.Group("/wishlist")
	{
		wl.GET("", h.getWishlist)
		wl.POST("/add", h.addToWishlist)
		wl.DELETE("/remove", h.removeFromWishlist)
	}

	orders := r.Group("/orders")
	{
		orders.GET("/summary", h.orderSummary)
		orders.POST("/apply-coupon", h.applyCoupon)
		orders.POST("/create", h.createOrder)
		orders.GET("/my-orders", requireAuth, h.myOrders)
		orders.GET("/:id", requireAuth, h.getOrder)
		orders.POST("/:id/cancel", h.cancelOrder)
	}

	account := r.Group("/account")
	{
		account.GET("", h.getAccount)
		account.POST("/update", requireAuth, h.updateAccount)
	}

	adm := r.Group("/admin", requireAuth, requireAdmin)
	{
		adm.GET("/dashboard", h.dashboard)

		adm.GET("/products", h.adminListProducts)
		adm.GET("/products/:id", h.getProduct)
		adm.POST("/products", h.createProduct)
		adm.PUT("/products/:id", h.updateProduct)
		adm.DELETE("/products/:id", h.deleteProduct)

		adm.GET("/orders", h.adminListOrders)
		adm.PUT("/orders/:id/status", h.updateOrderStatus)

		adm.GET("/coupons", h.listCoupons)
		adm.POST("/coupons/add", h.createCoupon)

		adm.GET("/users", h.adminUsers)
	}

	return r
}

func requireAuth(c *gin.Context) {
	if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
		fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	c.Next()
}

func requireAdmin(c *gin.Context) {
	if !utils.IsAdminFromContext(c.Request.Context()) {
		fail(c, http.StatusForbidden, "Admin access required")
		return
	}
	c.Next()
}

// cartKey scopes cart and wishlist calls: the logged-in user, else the
// anonymous session.
func cartKey(c *gin.Context) cart.Key {
	ctx := c.Request.Context()
	if id, ok := utils.GetUserIDFromContext(ctx); ok {
		return cart.Key{UserID: id}
	}
	return cart.Key{SessionID: utils.GetSessionIDFromContext(ctx)}
}

func actor(c *gin.Context) order.Actor {
	return order.ActorFromContext(c.Request.Context())
}
