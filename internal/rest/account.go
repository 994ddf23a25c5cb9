package rest

import (
	"net/http"

	"sheenclassics/internal/auth"
	"sheenclassics/internal/cart"
	"sheenclassics/internal/logger"
	"sheenclassics/internal/user"
	"sheenclassics/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateAccountRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (h *handler) register(c *gin.Context) {
	var req registerRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	token, u, err := h.Users.Register(c.Request.Context(), user.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		failErr(c, err)
		return
	}

	h.signIn(c, token, u)
	respond(c, http.StatusCreated, gin.H{"token": token, "user": u})
}

func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	token, u, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}

	h.signIn(c, token, u)
	respond(c, http.StatusOK, gin.H{"token": token, "user": u})
}

// signIn sets the access cookie and folds whatever the visitor collected
// anonymously into the account. Merge failures never block the login.
func (h *handler) signIn(c *gin.Context, token string, u *user.User) {
	auth.SetAccessTokenCookie(c.Writer, token, user.TokenTTL, h.SecureCookies)

	ctx := c.Request.Context()
	sid := utils.GetSessionIDFromContext(ctx)
	if sid == "" {
		return
	}

	from := cart.Key{SessionID: sid}
	into := cart.Key{UserID: u.ID}
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "handler"),
		zap.String("method", "signIn"),
		zap.Uint("user_id", u.ID),
	)

	if err := h.Carts.Merge(ctx, from, into); err != nil {
		log.Warn("failed to merge session cart", zap.Error(err))
	}
	if err := h.Wishlists.Merge(ctx, from, into); err != nil {
		log.Warn("failed to merge session wishlist", zap.Error(err))
	}
}

func (h *handler) logout(c *gin.Context) {
	if h.Sessions != nil {
		h.Sessions.Destroy(c.Writer, c.Request)
	}
	auth.ClearAccessTokenCookie(c.Writer, h.SecureCookies)
	respond(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// getAccount shows what the visitor has collected. Anonymous visitors only
// see their cart and wishlist.
func (h *handler) getAccount(c *gin.Context) {
	ctx := c.Request.Context()
	key := cartKey(c)

	cartView, err := h.Carts.View(ctx, key)
	if err != nil {
		failErr(c, err)
		return
	}
	wishlistView, err := h.Wishlists.View(ctx, key)
	if err != nil {
		failErr(c, err)
		return
	}

	payload := gin.H{"cart": cartView, "wishlist": wishlistView}

	if id, ok := utils.GetUserIDFromContext(ctx); ok {
		u, err := h.Users.GetByID(ctx, id)
		if err != nil {
			failErr(c, err)
			return
		}
		orders, err := h.Orders.ListUserOrders(ctx, id)
		if err != nil {
			failErr(c, err)
			return
		}
		payload["user"] = u
		payload["orders"] = orders
	}

	respond(c, http.StatusOK, payload)
}

func (h *handler) updateAccount(c *gin.Context) {
	var req updateAccountRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	ctx := c.Request.Context()
	id, _ := utils.GetUserIDFromContext(ctx)

	u, err := h.Users.UpdateProfile(ctx, id, user.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
		Address: user.Address{
			Street:  req.Street,
			City:    req.City,
			State:   req.State,
			ZipCode: req.ZipCode,
			Country: req.Country,
		},
	})
	if err != nil {
		failErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Profile updated successfully", "user": u})
}
