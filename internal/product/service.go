package product

import (
	"context"
	"strings"
	"time"

	"sheenclassics/internal/logger"
	"sheenclassics/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, input Input) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()

	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	opts.Search = strings.TrimSpace(opts.Search)

	if opts.Category != "" && !opts.Category.Valid() {
		return nil, ErrInvalidCategory
	}

	products, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	log.Debug("list products success",
		zap.Int("count", len(products)),
		zap.Duration("duration", time.Since(start)),
	)
	return products, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *service) Create(ctx context.Context, input Input) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	if err := normalizeInput(&input); err != nil {
		log.Info("invalid product input", zap.Error(err))
		return nil, err
	}

	p := &Product{}
	applyInput(p, input)

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID.String()))
	return p, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.String("product_id", id.String()),
	)

	if err := normalizeInput(&input); err != nil {
		log.Info("invalid product input", zap.Error(err))
		return nil, err
	}

	p := &Product{ID: id}
	applyInput(p, input)

	if err := s.repo.Update(ctx, p); err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	log.Info("product updated")
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.FromCtx(ctx).Error("failed to delete product",
			zap.String("product_id", id.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func normalizeInput(in *Input) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(in.Description) == "" {
		return ErrDescriptionRequired
	}
	if in.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if in.OriginalPrice.Valid && in.OriginalPrice.Decimal.IsNegative() {
		return ErrInvalidPrice
	}
	if !in.Category.Valid() {
		return ErrInvalidCategory
	}
	if in.Sizes == nil {
		in.Sizes = []Size{}
	}
	for _, size := range in.Sizes {
		if !size.Valid() {
			return ErrInvalidSize
		}
	}
	if in.Stock < 0 {
		return ErrInvalidStock
	}
	if !in.ShippingFee.Valid {
		in.ShippingFee = decimal.NewNullDecimal(pricing.DefaultShippingFee)
	} else if in.ShippingFee.Decimal.IsNegative() {
		return ErrInvalidShippingFee
	}

	in.Colors = compact(in.Colors)
	in.Images = compact(in.Images)
	return nil
}

// compact trims entries and drops blanks, keeping order.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func applyInput(p *Product, in Input) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.OriginalPrice = in.OriginalPrice
	p.Category = in.Category
	p.Images = in.Images
	p.Sizes = in.Sizes
	p.Colors = in.Colors
	p.Stock = in.Stock
	p.Featured = in.Featured
	p.ShippingFee = in.ShippingFee
}
