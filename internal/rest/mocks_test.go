package rest

import (
	"context"
	"net/http"

	"sheenclassics/internal/admin"
	"sheenclassics/internal/cart"
	"sheenclassics/internal/coupon"
	"sheenclassics/internal/order"
	"sheenclassics/internal/product"
	"sheenclassics/internal/user"
	"sheenclassics/internal/wishlist"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---
// Each mock embeds its interface; methods a test never expects stay nil.

type MockUserService struct {
	mock.Mock
	user.Service
}

func (m *MockUserService) Register(ctx context.Context, input user.RegisterInput) (string, *user.User, error) {
	args := m.Called(ctx, input)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

func (m *MockUserService) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockProductService struct {
	mock.Mock
	product.Service
}

func (m *MockProductService) List(ctx context.Context, opts product.ListOptions) ([]*product.Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, input product.Input) (*product.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCartService struct {
	mock.Mock
	cart.Service
}

func (m *MockCartService) View(ctx context.Context, key cart.Key) (*cart.View, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.View), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, key cart.Key, input cart.AddItemInput) (*cart.Cart, error) {
	args := m.Called(ctx, key, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Merge(ctx context.Context, from, into cart.Key) error {
	return m.Called(ctx, from, into).Error(0)
}

type MockWishlistService struct {
	mock.Mock
	wishlist.Service
}

func (m *MockWishlistService) View(ctx context.Context, key wishlist.Key) (*wishlist.View, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wishlist.View), args.Error(1)
}

func (m *MockWishlistService) Add(ctx context.Context, key wishlist.Key, productID uuid.UUID) error {
	return m.Called(ctx, key, productID).Error(0)
}

func (m *MockWishlistService) Merge(ctx context.Context, from, into wishlist.Key) error {
	return m.Called(ctx, from, into).Error(0)
}

type MockOrderService struct {
	mock.Mock
	order.Service
}

func (m *MockOrderService) ApplyCoupon(ctx context.Context, key cart.Key, code string) (*order.CouponResult, error) {
	args := m.Called(ctx, key, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.CouponResult), args.Error(1)
}

func (m *MockOrderService) CreateOrder(ctx context.Context, actor order.Actor, input order.CreateOrderInput) (*order.Order, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, id uuid.UUID, actor order.Actor) (*order.Order, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*order.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListUserOrders(ctx context.Context, userID uint) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, opts order.ListOptions) ([]*order.Order, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCouponService struct {
	mock.Mock
	coupon.Service
}

func (m *MockCouponService) Create(ctx context.Context, input coupon.CreateCouponInput) (*coupon.Coupon, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

type MockAdminService struct {
	mock.Mock
	admin.Service
}

func (m *MockAdminService) Dashboard(ctx context.Context) (*admin.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.Dashboard), args.Error(1)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Destroy(w http.ResponseWriter, r *http.Request) {
	m.Called(w, r)
}
