package rest

import (
	"net/http"

	"sheenclassics/internal/cart"
	"sheenclassics/internal/coupon"
	"sheenclassics/internal/logger"
	"sheenclassics/internal/order"
	"sheenclassics/internal/product"
	"sheenclassics/internal/user"
	"sheenclassics/internal/wishlist"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

const msgInternal = "Something went wrong, please try again"

func respond(c *gin.Context, status int, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(status, payload)
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// sentinelStatus maps domain sentinels to HTTP statuses. The sentinel text is
// what the client sees.
var sentinelStatus = []struct {
	err    error
	status int
}{
	// -- Authentication --
	{user.ErrInvalidCredentials, http.StatusUnauthorized},

	// -- Not Found --
	{user.ErrUserNotFound, http.StatusNotFound},
	{product.ErrProductNotFound, http.StatusNotFound},
	{cart.ErrProductNotFound, http.StatusNotFound},
	{cart.ErrCartItemNotFound, http.StatusNotFound},
	{wishlist.ErrProductNotFound, http.StatusNotFound},
	{wishlist.ErrNotInWishlist, http.StatusNotFound},
	{coupon.ErrCouponNotFound, http.StatusNotFound},

	// -- Conflicts --
	{user.ErrEmailExists, http.StatusConflict},
	{wishlist.ErrAlreadyInWishlist, http.StatusConflict},
	{coupon.ErrCouponCodeExists, http.StatusConflict},
	{product.ErrStockExhausted, http.StatusConflict},

	// -- Validation & Input --
	{user.ErrNameRequired, http.StatusBadRequest},
	{user.ErrInvalidEmail, http.StatusBadRequest},
	{user.ErrPasswordTooShort, http.StatusBadRequest},
	{cart.ErrMissingCartKey, http.StatusBadRequest},
	{cart.ErrInvalidQuantity, http.StatusBadRequest},
	{cart.ErrInvalidSize, http.StatusBadRequest},
	{wishlist.ErrMissingKey, http.StatusBadRequest},
	{product.ErrNameRequired, http.StatusUnprocessableEntity},
	{product.ErrDescriptionRequired, http.StatusUnprocessableEntity},
	{product.ErrInvalidPrice, http.StatusUnprocessableEntity},
	{product.ErrInvalidCategory, http.StatusUnprocessableEntity},
	{product.ErrInvalidSize, http.StatusUnprocessableEntity},
	{product.ErrInvalidStock, http.StatusUnprocessableEntity},
	{product.ErrInvalidShippingFee, http.StatusUnprocessableEntity},
	{coupon.ErrCodeRequired, http.StatusUnprocessableEntity},
	{coupon.ErrInvalidDiscountType, http.StatusUnprocessableEntity},
	{coupon.ErrInvalidDiscountValue, http.StatusUnprocessableEntity},
	{coupon.ErrPercentageTooLarge, http.StatusUnprocessableEntity},
	{coupon.ErrInvalidMinPurchase, http.StatusUnprocessableEntity},
	{coupon.ErrInvalidValidityWindow, http.StatusUnprocessableEntity},
	{coupon.ErrInvalidUsageLimit, http.StatusUnprocessableEntity},
}

var orderKindStatus = []struct {
	kind   error
	status int
}{
	{order.ErrNotAuthenticated, http.StatusUnauthorized},
	{order.ErrUnauthorized, http.StatusForbidden},
	{order.ErrOrderNotFound, http.StatusNotFound},
	{order.ErrEmptyCart, http.StatusBadRequest},
	{order.ErrUnsupportedPaymentMethod, http.StatusBadRequest},
	{order.ErrInvalidContactNumber, http.StatusBadRequest},
	{order.ErrInvalidStatus, http.StatusBadRequest},
	{order.ErrProductUnavailable, http.StatusConflict},
	{order.ErrInsufficientStock, http.StatusConflict},
	{order.ErrInvalidStatusTransition, http.StatusConflict},
	{order.ErrPersistenceFailure, http.StatusInternalServerError},
}

// classify turns a service error into a status and a client-safe message.
func classify(err error) (int, string) {
	var oe *order.Error
	if errors.As(err, &oe) {
		for _, k := range orderKindStatus {
			if errors.Is(oe.Kind, k.kind) {
				return k.status, oe.Message
			}
		}
		return http.StatusInternalServerError, oe.Message
	}

	var rej *coupon.Rejection
	if errors.As(err, &rej) {
		return http.StatusBadRequest, rej.Message
	}

	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return s.status, s.err.Error()
		}
	}

	return http.StatusInternalServerError, msgInternal
}

func failErr(c *gin.Context, err error) {
	status, message := classify(err)

	log := logger.FromCtx(c.Request.Context()).With(
		zap.String("layer", "handler"),
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
	)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Debug("request rejected", zap.Error(err))
	}

	fail(c, status, message)
}
