package wishlist

import (
	"context"

	"sheenclassics/internal/cart"
	"sheenclassics/internal/logger"
	"sheenclassics/internal/product"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	View(ctx context.Context, key Key) (*View, error)
	Add(ctx context.Context, key Key, productID uuid.UUID) error
	Remove(ctx context.Context, key Key, productID uuid.UUID) error
	Merge(ctx context.Context, from, into Key) error
}

type service struct {
	repo     Repository
	products cart.ProductReader
}

func NewService(repo Repository, products cart.ProductReader) Service {
	return &service{repo: repo, products: products}
}

func (s *service) View(ctx context.Context, key Key) (*View, error) {
	if key.IsZero() {
		return nil, ErrMissingKey
	}

	view := &View{Items: []Line{}}

	id, err := s.repo.FindID(ctx, key)
	if errors.Is(err, ErrWishlistNotFound) {
		return view, nil
	}
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.Entries(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return view, nil
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "resolve wishlist products")
	}

	for _, e := range entries {
		line := Line{Entry: e}
		if p, ok := products[e.ProductID]; ok {
			line.Product = p
		} else {
			line.ProductNotFound = true
		}
		view.Items = append(view.Items, line)
	}
	return view, nil
}

// Add puts a product on the wishlist. Adding it twice is reported with
// ErrAlreadyInWishlist and changes nothing.
func (s *service) Add(ctx context.Context, key Key, productID uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToWishlist"),
		zap.String("wishlist_key", key.String()),
		zap.String("product_id", productID.String()),
	)

	if key.IsZero() {
		return ErrMissingKey
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	id, err := s.repo.FindID(ctx, key)
	if errors.Is(err, ErrWishlistNotFound) {
		id, err = s.repo.Create(ctx, key)
	}
	if err != nil {
		log.Error("failed to load wishlist", zap.Error(err))
		return err
	}

	added, err := s.repo.AddProduct(ctx, id, productID)
	if err != nil {
		log.Error("failed to add wishlist item", zap.Error(err))
		return err
	}
	if !added {
		return ErrAlreadyInWishlist
	}
	return nil
}

func (s *service) Remove(ctx context.Context, key Key, productID uuid.UUID) error {
	if key.IsZero() {
		return ErrMissingKey
	}

	id, err := s.repo.FindID(ctx, key)
	if errors.Is(err, ErrWishlistNotFound) {
		return ErrNotInWishlist
	}
	if err != nil {
		return err
	}
	return s.repo.RemoveProduct(ctx, id, productID)
}

func (s *service) Merge(ctx context.Context, from, into Key) error {
	if from.IsZero() || into.IsZero() || from == into {
		return nil
	}

	fromID, err := s.repo.FindID(ctx, from)
	if errors.Is(err, ErrWishlistNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	toID, err := s.repo.FindID(ctx, into)
	if errors.Is(err, ErrWishlistNotFound) {
		toID, err = s.repo.Create(ctx, into)
	}
	if err != nil {
		return err
	}

	return s.repo.MoveAll(ctx, fromID, toID)
}
