package cart

import (
	"context"
	"slices"
	"strings"

	"sheenclassics/internal/logger"
	"sheenclassics/internal/product"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductReader is the slice of the catalogue the cart needs.
type ProductReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*product.Product, error)
}

type Service interface {
	Get(ctx context.Context, key Key) (*Cart, error)
	View(ctx context.Context, key Key) (*View, error)
	AddItem(ctx context.Context, key Key, input AddItemInput) (*Cart, error)
	UpdateItem(ctx context.Context, key Key, itemID uuid.UUID, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, key Key, itemID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, key Key) error
	Merge(ctx context.Context, from, into Key) error
}

type service struct {
	repo     Repository
	products ProductReader
}

func NewService(repo Repository, products ProductReader) Service {
	return &service{repo: repo, products: products}
}

// Get returns the cart for key. A key with no stored cart yields an empty,
// unsaved cart.
func (s *service) Get(ctx context.Context, key Key) (*Cart, error) {
	if key.IsZero() {
		return nil, ErrMissingCartKey
	}

	c, err := s.repo.FindCart(ctx, key)
	if errors.Is(err, ErrCartNotFound) {
		return &Cart{Items: []Item{}}, nil
	}
	return c, err
}

// View joins the cart with current product data. Lines whose product is gone
// are flagged, not dropped, and contribute nothing to the subtotal.
func (s *service) View(ctx context.Context, key Key) (*View, error) {
	c, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	view := &View{Lines: []Line{}, Subtotal: decimal.Zero}
	if c.IsEmpty() {
		return view, nil
	}

	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "resolve cart products")
	}

	for _, it := range c.Items {
		line := Line{Item: it, LineTotal: decimal.Zero}
		view.ItemCount += it.Quantity

		p, ok := products[it.ProductID]
		if !ok {
			line.ProductNotFound = true
			view.Lines = append(view.Lines, line)
			continue
		}

		line.Product = p
		line.StockWarning = it.Quantity > p.Stock
		line.LineTotal = p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		view.Subtotal = view.Subtotal.Add(line.LineTotal)
		view.Lines = append(view.Lines, line)
	}

	return view, nil
}

func (s *service) AddItem(ctx context.Context, key Key, input AddItemInput) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.String("cart_key", key.String()),
		zap.String("product_id", input.ProductID.String()),
	)

	if key.IsZero() {
		return nil, ErrMissingCartKey
	}
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	input.Size = strings.TrimSpace(input.Size)
	input.Color = strings.TrimSpace(input.Color)

	p, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		log.Error("failed to load product", zap.Error(err))
		return nil, err
	}

	if input.Size != "" && len(p.Sizes) > 0 && !slices.Contains(p.Sizes, product.Size(input.Size)) {
		return nil, ErrInvalidSize
	}

	c, err := s.findOrCreate(ctx, key)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, err
	}

	if err := s.addLine(ctx, c, Item{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    input.Quantity,
		Size:        input.Size,
		Color:       input.Color,
	}); err != nil {
		log.Error("failed to add cart item", zap.Error(err))
		return nil, err
	}

	log.Info("item added to cart", zap.Int("quantity", input.Quantity))
	return c, nil
}

// addLine merges it into an existing line with the same product, size and
// color, or appends it. c is updated in place.
func (s *service) addLine(ctx context.Context, c *Cart, it Item) error {
	if existing := c.find(it.ProductID, it.Size, it.Color); existing != nil {
		qty := existing.Quantity + it.Quantity
		if err := s.repo.UpdateItemQuantity(ctx, c.ID, existing.ID, qty); err != nil {
			return err
		}
		existing.Quantity = qty
		return nil
	}

	if err := s.repo.InsertItem(ctx, c.ID, &it); err != nil {
		return err
	}
	c.Items = append(c.Items, it)
	return nil
}

func (s *service) findOrCreate(ctx context.Context, key Key) (*Cart, error) {
	c, err := s.repo.FindCart(ctx, key)
	if errors.Is(err, ErrCartNotFound) {
		return s.repo.CreateCart(ctx, key)
	}
	return c, err
}

// UpdateItem sets a line's quantity. Anything below 1 removes the line.
func (s *service) UpdateItem(ctx context.Context, key Key, itemID uuid.UUID, quantity int) (*Cart, error) {
	if quantity < 1 {
		return s.RemoveItem(ctx, key, itemID)
	}

	c, err := s.existing(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateItemQuantity(ctx, c.ID, itemID, quantity); err != nil {
		return nil, err
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
		}
	}
	return c, nil
}

func (s *service) RemoveItem(ctx context.Context, key Key, itemID uuid.UUID) (*Cart, error) {
	c, err := s.existing(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteItem(ctx, c.ID, itemID); err != nil {
		return nil, err
	}
	c.Items = slices.DeleteFunc(c.Items, func(it Item) bool { return it.ID == itemID })
	return c, nil
}

// existing loads a stored cart; a missing cart means the item cannot exist.
func (s *service) existing(ctx context.Context, key Key) (*Cart, error) {
	if key.IsZero() {
		return nil, ErrMissingCartKey
	}
	c, err := s.repo.FindCart(ctx, key)
	if errors.Is(err, ErrCartNotFound) {
		return nil, ErrCartItemNotFound
	}
	return c, err
}

func (s *service) Clear(ctx context.Context, key Key) error {
	c, err := s.repo.FindCart(ctx, key)
	if errors.Is(err, ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.repo.ClearItems(ctx, c.ID)
}

// Merge moves every line of the from cart into the into cart using the same
// rule as AddItem, then empties from. Used when an anonymous visitor logs in.
func (s *service) Merge(ctx context.Context, from, into Key) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "MergeCart"),
		zap.String("from", from.String()),
		zap.String("into", into.String()),
	)

	if from.IsZero() || into.IsZero() || from == into {
		return nil
	}

	src, err := s.repo.FindCart(ctx, from)
	if errors.Is(err, ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if src.IsEmpty() {
		return nil
	}

	dst, err := s.findOrCreate(ctx, into)
	if err != nil {
		return err
	}

	for _, it := range src.Items {
		if err := s.addLine(ctx, dst, it); err != nil {
			log.Error("failed to merge cart line", zap.String("item_id", it.ID.String()), zap.Error(err))
			return err
		}
	}

	if err := s.repo.ClearItems(ctx, src.ID); err != nil {
		return err
	}

	log.Info("anonymous cart merged", zap.Int("lines", len(src.Items)))
	return nil
}
