package product

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

func validInput() Input {
	return Input{
		Name:        "  Embroidered Kurta ",
		Description: "Cotton, hand finished",
		Price:       decimal.NewFromInt(3500),
		Category:    CategoryMen,
		Sizes:       []Size{SizeM, SizeL},
		Colors:      []string{"Navy", " ", "White "},
		Stock:       10,
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success applies defaults", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*product.Product")).Return(nil)

		p, err := NewService(repo).Create(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, "Embroidered Kurta", p.Name)
		assert.Equal(t, []string{"Navy", "White"}, p.Colors)
		assert.Equal(t, []string{}, p.Images)
		require.True(t, p.ShippingFee.Valid)
		assert.True(t, decimal.NewFromInt(250).Equal(p.ShippingFee.Decimal))
		repo.AssertExpectations(t)
	})

	invalid := []struct {
		name   string
		mutate func(in *Input)
		want   error
	}{
		{"blank name", func(in *Input) { in.Name = " " }, ErrNameRequired},
		{"blank description", func(in *Input) { in.Description = "" }, ErrDescriptionRequired},
		{"negative price", func(in *Input) { in.Price = decimal.NewFromInt(-1) }, ErrInvalidPrice},
		{"negative original price", func(in *Input) {
			in.OriginalPrice = decimal.NewNullDecimal(decimal.NewFromInt(-5))
		}, ErrInvalidPrice},
		{"unknown category", func(in *Input) { in.Category = "Unisex" }, ErrInvalidCategory},
		{"unknown size", func(in *Input) { in.Sizes = []Size{"XXXL"} }, ErrInvalidSize},
		{"negative stock", func(in *Input) { in.Stock = -1 }, ErrInvalidStock},
		{"negative fee", func(in *Input) {
			in.ShippingFee = decimal.NewNullDecimal(decimal.NewFromInt(-1))
		}, ErrInvalidShippingFee},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			in := validInput()
			tt.mutate(&in)

			_, err := NewService(repo).Create(ctx, in)
			assert.ErrorIs(t, err, tt.want)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("explicit zero fee kept", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.Anything).Return(nil)
		in := validInput()
		in.ShippingFee = decimal.NewNullDecimal(decimal.Zero)

		p, err := NewService(repo).Create(ctx, in)
		require.NoError(t, err)
		assert.True(t, p.ShippingFee.Decimal.IsZero())
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Update", ctx, mock.MatchedBy(func(p *Product) bool { return p.ID == id })).
			Return(ErrProductNotFound)

		_, err := NewService(repo).Update(ctx, id, validInput())
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes paging", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("List", ctx, ListOptions{Search: "lawn", Limit: 100, Page: 1}).
			Return([]*Product{}, nil)

		_, err := NewService(repo).List(ctx, ListOptions{Search: " lawn ", Limit: 500})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		repo := new(MockRepository)

		_, err := NewService(repo).List(ctx, ListOptions{Category: "Pets"})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("List", ctx, mock.Anything).Return(nil, errors.New("db error"))

		_, err := NewService(repo).List(ctx, ListOptions{})
		assert.Error(t, err)
	})
}
