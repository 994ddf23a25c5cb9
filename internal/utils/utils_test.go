package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and getters", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), 100, "user@example.com", "USER")

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, uint(100), id)
		assert.Equal(t, "user@example.com", GetUserEmailFromContext(ctx))
		assert.Equal(t, "USER", GetUserRoleFromContext(ctx))
		assert.False(t, IsAdminFromContext(ctx))
	})

	t.Run("Admin role", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), 1, "admin@example.com", "ADMIN")
		assert.True(t, IsAdminFromContext(ctx))
	})

	t.Run("Empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
		assert.False(t, IsAdminFromContext(context.Background()))
	})

	t.Run("Zero user id is anonymous", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), 0, "ghost@example.com", "ADMIN")

		_, ok := IdentityFromContext(ctx)
		assert.False(t, ok)
		assert.False(t, IsAdminFromContext(ctx))
	})

	t.Run("Identity", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), 7, "owner@example.com", "ADMIN")

		ident, ok := IdentityFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, Identity{UserID: 7, Email: "owner@example.com", Role: "ADMIN"}, ident)
		assert.True(t, ident.IsAdmin())
	})
}

func TestSessionContext(t *testing.T) {
	assert.Equal(t, "", GetSessionIDFromContext(context.Background()))

	ctx := WithSessionID(context.Background(), "sid-1")
	assert.Equal(t, "sid-1", GetSessionIDFromContext(ctx))
}

func TestIsInternalRequest(t *testing.T) {
	assert.False(t, IsInternalRequest(context.Background()))
	assert.True(t, IsInternalRequest(WithInternalRequest(context.Background())))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCode("  save10 "))
	assert.Equal(t, "", NormalizeCode(""))
}

func TestPtrHelpers(t *testing.T) {
	assert.Equal(t, "", PtrString(nil))
	assert.Equal(t, "x", PtrString(StrPtr("x")))
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "Too Many Requests", http.StatusTooManyRequests)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Too Many Requests", body["message"])
}
