package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sheenclassics/internal/admin"
	"sheenclassics/internal/cart"
	"sheenclassics/internal/config"
	"sheenclassics/internal/coupon"
	"sheenclassics/internal/db"
	"sheenclassics/internal/logger"
	"sheenclassics/internal/metrics"
	"sheenclassics/internal/middleware"
	"sheenclassics/internal/order"
	"sheenclassics/internal/product"
	"sheenclassics/internal/rest"
	"sheenclassics/internal/session"
	"sheenclassics/internal/user"
	"sheenclassics/internal/wishlist"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	// Prices go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database := db.InitDB(cfg)
	defer database.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, sessions will not survive restarts", zap.Error(err))
	}

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	userSvc := user.NewService(user.NewRepository(database))

	cartSvc := cart.NewService(cart.NewRepository(database), productRepo)
	wishlistSvc := wishlist.NewService(wishlist.NewRepository(database), productRepo)

	couponRepo := coupon.NewRepository(database)
	couponSvc := coupon.NewService(couponRepo)

	counters := metrics.NewOrderCounters()
	orderSvc := order.NewService(
		order.NewRepository(database),
		cartSvc,
		productRepo,
		coupon.NewValidator(couponRepo),
		couponRepo,
		counters,
	)

	adminSvc := admin.NewService(productSvc, orderSvc, userSvc, counters)

	sessions := session.NewManager(session.NewRedisStore(rdb, cfg.SessionTTL), cfg.SessionTTL, cfg.IsProduction())

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	go limiter.Run(ctx)

	router := rest.NewRouter(rest.Deps{
		Users:         userSvc,
		Products:      productSvc,
		Carts:         cartSvc,
		Wishlists:     wishlistSvc,
		Orders:        orderSvc,
		Coupons:       couponSvc,
		Admin:         adminSvc,
		Sessions:      sessions,
		SecureCookies: cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           setupHandler(cfg, router, sessions, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// setupHandler wraps the router with the net/http middleware stack. The first
// middleware listed runs first.
func setupHandler(cfg *config.Config, router http.Handler, sessions *session.Manager, limiter *middleware.RateLimiter) http.Handler {
	return middleware.Chain(router,
		middleware.CORS(cfg.CORSOrigin),
		logger.RequestIDMiddleware,
		middleware.AuthMiddleware(cfg.IsProduction()),
		sessions.Middleware,
		middleware.LoggingMiddleware,
		limiter.Middleware,
	)
}
