package middleware

import (
	"net/http"

	"sheenclassics/internal/logger"

	"github.com/rs/cors"
)

// CORS allows the storefront front-end at origin to call the API with
// credentials. Preflight requests are answered here and never reach the
// router.
func CORS(origin string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:       []string{"Content-Type", "Authorization", logger.RequestIDHeader},
		ExposedHeaders:       []string{logger.RequestIDHeader},
		OptionsSuccessStatus: http.StatusNoContent,
	})
	return c.Handler
}
