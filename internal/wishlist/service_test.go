package wishlist

import (
	"context"
	"testing"

	"sheenclassics/internal/product"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindID(ctx context.Context, key Key) (uuid.UUID, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, key Key) (uuid.UUID, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRepository) Entries(ctx context.Context, wishlistID uuid.UUID) ([]Entry, error) {
	args := m.Called(ctx, wishlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entry), args.Error(1)
}

func (m *MockRepository) AddProduct(ctx context.Context, wishlistID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, wishlistID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) RemoveProduct(ctx context.Context, wishlistID, productID uuid.UUID) error {
	return m.Called(ctx, wishlistID, productID).Error(0)
}

func (m *MockRepository) MoveAll(ctx context.Context, fromID, toID uuid.UUID) error {
	return m.Called(ctx, fromID, toID).Error(0)
}

type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductReader) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*product.Product), args.Error(1)
}

var (
	userKey    = Key{UserID: 3}
	sessionKey = Key{SessionID: "anon"}
)

func TestService_Add(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	wishlistID := uuid.New()

	t.Run("creates wishlist lazily", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductReader)
		products.On("GetByID", ctx, productID).Return(&product.Product{ID: productID}, nil)
		repo.On("FindID", ctx, sessionKey).Return(uuid.Nil, ErrWishlistNotFound)
		repo.On("Create", ctx, sessionKey).Return(wishlistID, nil)
		repo.On("AddProduct", ctx, wishlistID, productID).Return(true, nil)

		require.NoError(t, NewService(repo, products).Add(ctx, sessionKey, productID))
		repo.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductReader)
		products.On("GetByID", ctx, productID).Return(&product.Product{ID: productID}, nil)
		repo.On("FindID", ctx, userKey).Return(wishlistID, nil)
		repo.On("AddProduct", ctx, wishlistID, productID).Return(false, nil)

		assert.ErrorIs(t, NewService(repo, products).Add(ctx, userKey, productID), ErrAlreadyInWishlist)
	})

	t.Run("unknown product", func(t *testing.T) {
		products := new(MockProductReader)
		products.On("GetByID", ctx, productID).Return(nil, product.ErrProductNotFound)

		err := NewService(new(MockRepository), products).Add(ctx, userKey, productID)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_View(t *testing.T) {
	ctx := context.Background()
	wishlistID := uuid.New()
	kept, gone := uuid.New(), uuid.New()

	repo := new(MockRepository)
	products := new(MockProductReader)
	repo.On("FindID", ctx, userKey).Return(wishlistID, nil)
	repo.On("Entries", ctx, wishlistID).Return([]Entry{{ProductID: kept}, {ProductID: gone}}, nil)
	products.On("GetByIDs", ctx, []uuid.UUID{kept, gone}).
		Return(map[uuid.UUID]*product.Product{kept: {ID: kept, Name: "Dupatta"}}, nil)

	view, err := NewService(repo, products).View(ctx, userKey)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "Dupatta", view.Items[0].Product.Name)
	assert.True(t, view.Items[1].ProductNotFound)
}

func TestService_View_NoWishlist(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("FindID", ctx, sessionKey).Return(uuid.Nil, ErrWishlistNotFound)

	view, err := NewService(repo, new(MockProductReader)).View(ctx, sessionKey)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("FindID", ctx, sessionKey).Return(uuid.Nil, ErrWishlistNotFound)

	err := NewService(repo, new(MockProductReader)).Remove(ctx, sessionKey, uuid.New())
	assert.ErrorIs(t, err, ErrNotInWishlist)
}

func TestService_Merge(t *testing.T) {
	ctx := context.Background()
	fromID, toID := uuid.New(), uuid.New()

	repo := new(MockRepository)
	repo.On("FindID", ctx, sessionKey).Return(fromID, nil)
	repo.On("FindID", ctx, userKey).Return(uuid.Nil, ErrWishlistNotFound)
	repo.On("Create", ctx, userKey).Return(toID, nil)
	repo.On("MoveAll", ctx, fromID, toID).Return(nil)

	require.NoError(t, NewService(repo, new(MockProductReader)).Merge(ctx, sessionKey, userKey))
	repo.AssertExpectations(t)
}
