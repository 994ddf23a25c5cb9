package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"sheenclassics/internal/config"
	"sheenclassics/internal/logger"
	"sheenclassics/internal/middleware"
	"sheenclassics/internal/rest"
	"sheenclassics/internal/session"
	"sheenclassics/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct{}

func (stubStore) Create(context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (stubStore) Touch(context.Context, string) (bool, error) {
	return true, nil
}

func (stubStore) Delete(context.Context, string) error {
	return nil
}

func newTestHandler() http.Handler {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{CORSOrigin: "https://sheenclassics.pk"}
	sessions := session.NewManager(stubStore{}, session.DefaultTTL, false)
	router := rest.NewRouter(rest.Deps{Sessions: sessions})
	return setupHandler(cfg, router, sessions, middleware.NewRateLimiter(""))
}

func TestSetupHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	h := newTestHandler()

	t.Run("Health Check", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://sheenclassics.pk")
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "ok")
		assert.NotEmpty(t, rr.Header().Get(logger.RequestIDHeader))
		assert.Equal(t, "https://sheenclassics.pk", rr.Header().Get("Access-Control-Allow-Origin"))

		var sid *http.Cookie
		for _, c := range rr.Result().Cookies() {
			if c.Name == session.CookieName {
				sid = c
			}
		}
		require.NotNil(t, sid, "anonymous visitors get a session cookie")
	})

	t.Run("Preflight stops at CORS", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/orders/create", nil)
		req.Header.Set("Origin", "https://sheenclassics.pk")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Invalid token is rejected before routing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/account", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid or expired token")
	})

	t.Run("Customer token reaches router but not admin area", func(t *testing.T) {
		token, err := user.GenerateJWT(11, user.RoleUser, "ayesha@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Anonymous order history needs login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders/my-orders", nil)
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
