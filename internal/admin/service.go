package admin

import (
	"context"

	"sheenclassics/internal/logger"
	"sheenclassics/internal/metrics"
	"sheenclassics/internal/order"
	"sheenclassics/internal/user"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const RecentOrderCount = 10

type ProductCounter interface {
	Count(ctx context.Context) (int, error)
}

type OrderReader interface {
	Stats(ctx context.Context) (order.Stats, error)
	RecentOrders(ctx context.Context, n int) ([]*order.Order, error)
}

type CustomerReader interface {
	ListCustomers(ctx context.Context) ([]*user.User, error)
	CountCustomers(ctx context.Context) (int, error)
}

type Dashboard struct {
	ProductCount  int                   `json:"productCount"`
	OrderCount    int                   `json:"orderCount"`
	CustomerCount int                   `json:"customerCount"`
	Revenue       decimal.Decimal       `json:"revenue"`
	RecentOrders  []*order.Order        `json:"recentOrders"`
	Counters      metrics.OrderSnapshot `json:"counters"`
}

type UsersOverview struct {
	Customers       []*user.User `json:"customers"`
	Total           int          `json:"total"`
	ActiveCustomers int          `json:"activeCustomers"`
}

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Users(ctx context.Context) (*UsersOverview, error)
}

type service struct {
	products  ProductCounter
	orders    OrderReader
	customers CustomerReader
	counters  *metrics.OrderCounters
}

func NewService(products ProductCounter, orders OrderReader, customers CustomerReader, counters *metrics.OrderCounters) Service {
	if counters == nil {
		counters = &metrics.OrderCounters{}
	}
	return &service{products: products, orders: orders, customers: customers, counters: counters}
}

// Dashboard gathers the back-office headline numbers. The reads are
// independent and run concurrently; any failure fails the whole page.
func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdminDashboard"),
	)

	var (
		d     = &Dashboard{Counters: s.counters.Snapshot()}
		stats order.Stats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.products.Count(gctx)
		if err != nil {
			return errors.Wrap(err, "count products")
		}
		d.ProductCount = n
		return nil
	})
	g.Go(func() error {
		st, err := s.orders.Stats(gctx)
		if err != nil {
			return errors.Wrap(err, "order stats")
		}
		stats = st
		return nil
	})
	g.Go(func() error {
		n, err := s.customers.CountCustomers(gctx)
		if err != nil {
			return errors.Wrap(err, "count customers")
		}
		d.CustomerCount = n
		return nil
	})
	g.Go(func() error {
		recent, err := s.orders.RecentOrders(gctx, RecentOrderCount)
		if err != nil {
			return errors.Wrap(err, "recent orders")
		}
		d.RecentOrders = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("failed to build dashboard", zap.Error(err))
		return nil, err
	}

	d.OrderCount = stats.OrderCount
	d.Revenue = stats.Revenue
	return d, nil
}

// Users lists customers newest first with the number of them who hold at
// least one non-cancelled order.
func (s *service) Users(ctx context.Context) (*UsersOverview, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list customers", zap.Error(err))
		return nil, errors.Wrap(err, "list customers")
	}

	stats, err := s.orders.Stats(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load order stats", zap.Error(err))
		return nil, errors.Wrap(err, "order stats")
	}

	return &UsersOverview{
		Customers:       customers,
		Total:           len(customers),
		ActiveCustomers: stats.ActiveCustomers,
	}, nil
}
