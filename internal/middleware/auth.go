package middleware

import (
	"net/http"

	"sheenclassics/internal/auth"
	"sheenclassics/internal/logger"
	"sheenclassics/internal/user"
	"sheenclassics/internal/utils"

	"go.uber.org/zap"
)

// AuthMiddleware attaches the caller's identity when a token is present.
// Requests without a token pass through as anonymous; a token that fails to
// verify is rejected, and a bad cookie is cleared so the browser recovers.
func AuthMiddleware(secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := user.ParseJWT(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Info("rejected access token",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				if c, cerr := r.Cookie(auth.AccessTokenCookie); cerr == nil && c.Value == tokenStr {
					auth.ClearAccessTokenCookie(w, secureCookies)
				}
				utils.WriteJSONError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
