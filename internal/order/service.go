package order

import (
	"context"
	"time"

	"sheenclassics/internal/cart"
	"sheenclassics/internal/coupon"
	"sheenclassics/internal/logger"
	"sheenclassics/internal/metrics"
	"sheenclassics/internal/pricing"
	"sheenclassics/internal/product"
	"sheenclassics/internal/utils"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartStore is what checkout needs from the cart.
type CartStore interface {
	Get(ctx context.Context, key cart.Key) (*cart.Cart, error)
	View(ctx context.Context, key cart.Key) (*cart.View, error)
	Clear(ctx context.Context, key cart.Key) error
}

// ProductStore is what checkout and cancellation need from the catalogue.
type ProductStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
}

type CouponValidator interface {
	Evaluate(ctx context.Context, code string, subtotal decimal.Decimal) (*coupon.Coupon, decimal.Decimal, error)
}

type CouponUsage interface {
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

type Service interface {
	GetOrderSummary(ctx context.Context, key cart.Key) (*Summary, error)
	ApplyCoupon(ctx context.Context, key cart.Key, code string) (*CouponResult, error)
	CreateOrder(ctx context.Context, actor Actor, input CreateOrderInput) (*Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID, actor Actor) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error)
	GetOrder(ctx context.Context, id uuid.UUID, actor Actor) (*Order, error)
	ListUserOrders(ctx context.Context, userID uint) ([]*Order, error)
	ListOrders(ctx context.Context, opts ListOptions) ([]*Order, error)
	RecentOrders(ctx context.Context, n int) ([]*Order, error)
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	repo        Repository
	carts       CartStore
	products    ProductStore
	coupons     CouponValidator
	couponUsage CouponUsage
	counters    *metrics.OrderCounters
	now         func() time.Time
	orderNumber func() string
}

func NewService(
	repo Repository,
	carts CartStore,
	products ProductStore,
	coupons CouponValidator,
	couponUsage CouponUsage,
	counters *metrics.OrderCounters,
) Service {
	if counters == nil {
		counters = &metrics.OrderCounters{}
	}
	return &service{
		repo:        repo,
		carts:       carts,
		products:    products,
		coupons:     coupons,
		couponUsage: couponUsage,
		counters:    counters,
		now:         time.Now,
		orderNumber: utils.GenerateOrderNumber,
	}
}

// ActorFromContext builds the actor from the identity the auth middleware
// stored on ctx.
func ActorFromContext(ctx context.Context) Actor {
	id, _ := utils.GetUserIDFromContext(ctx)
	return Actor{UserID: id, IsAdmin: utils.IsAdminFromContext(ctx)}
}

// viewLines turns a cart view into pricing lines. Lines whose product is gone
// are priced at zero but still charge the fallback shipping fee.
func viewLines(view *cart.View) []pricing.Line {
	lines := make([]pricing.Line, 0, len(view.Lines))
	for _, l := range view.Lines {
		line := pricing.Line{UnitPrice: decimal.Zero, Quantity: l.Quantity}
		if l.Product != nil {
			line.UnitPrice = l.Product.Price
			line.ShippingFee = l.Product.ShippingFee
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *service) loadView(ctx context.Context, key cart.Key, failMsg string) (*cart.View, error) {
	if key.IsZero() {
		return nil, newError(ErrEmptyCart, msgEmptyCart)
	}
	view, err := s.carts.View(ctx, key)
	if err != nil {
		return nil, persistenceFailure(failMsg, err)
	}
	if len(view.Lines) == 0 {
		return nil, newError(ErrEmptyCart, msgEmptyCart)
	}
	return view, nil
}

// GetOrderSummary prices the cart at current product prices with no discount.
func (s *service) GetOrderSummary(ctx context.Context, key cart.Key) (*Summary, error) {
	view, err := s.loadView(ctx, key, msgSummaryFailed)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Items:     view.Lines,
		Breakdown: pricing.Calculate(viewLines(view), decimal.Zero),
	}, nil
}

// ApplyCoupon previews a coupon against the cart. It never records usage.
func (s *service) ApplyCoupon(ctx context.Context, key cart.Key, code string) (*CouponResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ApplyCoupon"),
		zap.String("cart_key", key.String()),
	)

	view, err := s.loadView(ctx, key, msgApplyCouponFailed)
	if err != nil {
		return nil, err
	}

	lines := viewLines(view)
	subtotal := pricing.Subtotal(lines)

	c, discount, err := s.coupons.Evaluate(ctx, code, subtotal)
	if err != nil {
		var rej *coupon.Rejection
		if errors.As(err, &rej) {
			return nil, rej
		}
		log.Error("failed to evaluate coupon", zap.Error(err))
		return nil, persistenceFailure(msgApplyCouponFailed, err)
	}

	return &CouponResult{
		Code:      c.Code,
		Message:   msgCouponApplied,
		Breakdown: pricing.Calculate(lines, discount),
	}, nil
}

// CreateOrder turns the actor's cart into an order. Every check runs before
// the first write. The writes that follow (coupon usage, order, stock, cart)
// are independent; a failure part way leaves the earlier ones in place.
func (s *service) CreateOrder(ctx context.Context, actor Actor, input CreateOrderInput) (*Order, error) {
	timer := metrics.StartTimer()
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Uint("user_id", actor.UserID),
	)

	if actor.UserID == 0 {
		return nil, newError(ErrNotAuthenticated, msgNotAuthenticated)
	}
	key := cart.Key{UserID: actor.UserID}

	c, err := s.carts.Get(ctx, key)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, persistenceFailure(msgCreateFailed, err)
	}
	if c.IsEmpty() {
		return nil, newError(ErrEmptyCart, msgEmptyCart)
	}

	// Re-read every product. This is a plain check-then-write: two checkouts
	// racing for the last units can both pass.
	items := make([]Item, 0, len(c.Items))
	lines := make([]pricing.Line, 0, len(c.Items))
	for _, ci := range c.Items {
		p, err := s.products.GetByID(ctx, ci.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrProductNotFound) {
				s.counters.Rejected.Inc()
				return nil, newError(ErrProductUnavailable, "Product \"%s\" is no longer available", ci.ProductName)
			}
			log.Error("failed to load product", zap.String("product_id", ci.ProductID.String()), zap.Error(err))
			return nil, persistenceFailure(msgCreateFailed, err)
		}

		if ci.Quantity > p.Stock {
			s.counters.Rejected.Inc()
			return nil, newError(ErrInsufficientStock, "Only %d items available for \"%s\"", p.Stock, p.Name)
		}

		items = append(items, Item{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    ci.Quantity,
			Price:       p.Price,
			Size:        ci.Size,
			Color:       ci.Color,
		})
		lines = append(lines, pricing.Line{
			UnitPrice:   p.Price,
			Quantity:    ci.Quantity,
			ShippingFee: p.ShippingFee,
		})
	}

	subtotal := pricing.Subtotal(lines)

	var (
		applied    *coupon.Coupon
		discount   = decimal.Zero
		couponCode *string
	)
	if code := utils.NormalizeCode(input.CouponCode); code != "" {
		couponCode = &code
		applied, discount, err = s.coupons.Evaluate(ctx, code, subtotal)
		if err != nil {
			var rej *coupon.Rejection
			if !errors.As(err, &rej) {
				log.Error("failed to evaluate coupon", zap.Error(err))
				return nil, persistenceFailure(msgCreateFailed, err)
			}
			// A coupon that no longer applies is dropped, not reported.
			log.Info("coupon not applied", zap.String("code", code), zap.String("reason", rej.Message))
			applied, discount = nil, decimal.Zero
		}
	}

	breakdown := pricing.Calculate(lines, discount)

	details, err := checkPayment(input.PaymentMethod, input.ContactNumber)
	if err != nil {
		s.counters.Rejected.Inc()
		return nil, err
	}

	if applied != nil {
		if err := s.couponUsage.IncrementUsage(ctx, applied.ID); err != nil {
			log.Error("failed to record coupon usage", zap.String("code", applied.Code), zap.Error(err))
			return nil, persistenceFailure(msgCreateFailed, err)
		}
	}

	now := s.now()
	o := &Order{
		OrderNumber:     s.orderNumber(),
		UserID:          actor.UserID,
		Items:           items,
		Subtotal:        breakdown.Subtotal,
		Discount:        breakdown.Discount,
		DeliveryCharge:  breakdown.DeliveryCharge,
		CouponCode:      couponCode,
		Total:           breakdown.Total,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   PaymentWhatsApp,
		PaymentDetails:  details,
		Status:          StatusPending,
		StatusHistory: []StatusEntry{
			{Status: StatusPending, Timestamp: now, Note: "Order placed"},
		},
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, persistenceFailure(msgCreateFailed, err)
	}

	for _, it := range o.Items {
		err := s.products.AdjustStock(ctx, it.ProductID, -it.Quantity)
		if errors.Is(err, product.ErrProductNotFound) {
			log.Warn("product deleted before stock update", zap.String("product_id", it.ProductID.String()))
			continue
		}
		if err != nil {
			log.Error("failed to decrement stock",
				zap.String("order_id", o.ID.String()),
				zap.String("product_id", it.ProductID.String()),
				zap.Error(err),
			)
			return nil, persistenceFailure(msgCreateFailed, err)
		}
	}

	if err := s.carts.Clear(ctx, key); err != nil {
		log.Error("failed to clear cart", zap.String("order_id", o.ID.String()), zap.Error(err))
		return nil, persistenceFailure(msgCreateFailed, err)
	}

	s.counters.Placed.Inc()
	log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
		zap.String("total", o.Total.String()),
		zap.Duration("duration", timer.Duration()),
	)
	return o, nil
}

// CancelOrder restores stock and moves the order to cancelled. Only the owner
// or an admin may cancel, and only while pending or processing.
func (s *service) CancelOrder(ctx context.Context, id uuid.UUID, actor Actor) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelOrder"),
		zap.String("order_id", id.String()),
	)

	if actor.UserID == 0 {
		return nil, newError(ErrNotAuthenticated, msgNotAuthenticated)
	}

	o, err := s.load(ctx, id, msgCancelFailed)
	if err != nil {
		return nil, err
	}

	if !actor.owns(o) && !actor.IsAdmin {
		return nil, newError(ErrUnauthorized, msgUnauthorized)
	}

	if !o.Status.Cancellable() {
		return nil, newError(ErrInvalidStatusTransition, "Cannot cancel order with status: %s", o.Status)
	}

	for _, it := range o.Items {
		err := s.products.AdjustStock(ctx, it.ProductID, it.Quantity)
		if errors.Is(err, product.ErrProductNotFound) {
			log.Warn("product deleted, stock not restored", zap.String("product_id", it.ProductID.String()))
			continue
		}
		if err != nil {
			log.Error("failed to restore stock", zap.String("product_id", it.ProductID.String()), zap.Error(err))
			return nil, persistenceFailure(msgCancelFailed, err)
		}
	}

	note := "Cancelled by customer"
	if !actor.owns(o) {
		note = "Cancelled by admin"
	}
	entry := StatusEntry{Status: StatusCancelled, Timestamp: s.now(), Note: note}

	if err := s.repo.UpdateStatus(ctx, o.ID, StatusCancelled, &entry); err != nil {
		log.Error("failed to mark order cancelled", zap.Error(err))
		return nil, persistenceFailure(msgCancelFailed, err)
	}

	o.Status = StatusCancelled
	o.StatusHistory = append(o.StatusHistory, entry)
	s.counters.Cancelled.Inc()

	log.Info("order cancelled", zap.Uint("actor_id", actor.UserID))
	return o, nil
}

// UpdateOrderStatus is the admin override: any known status may be set. A
// history entry is written only when the status actually changes.
func (s *service) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", id.String()),
		zap.String("status", status),
	)

	next := Status(status)
	if !next.Valid() {
		return nil, newError(ErrInvalidStatus, msgInvalidStatus)
	}

	o, err := s.load(ctx, id, msgStatusFailed)
	if err != nil {
		return nil, err
	}

	if o.Status == next {
		return o, nil
	}

	entry := StatusEntry{Status: next, Timestamp: s.now(), Note: "Status updated by admin"}
	if err := s.repo.UpdateStatus(ctx, o.ID, next, &entry); err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return nil, persistenceFailure(msgStatusFailed, err)
	}

	o.Status = next
	o.StatusHistory = append(o.StatusHistory, entry)
	s.counters.StatusChanges.Inc()

	log.Info("order status updated")
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID, actor Actor) (*Order, error) {
	if actor.UserID == 0 {
		return nil, newError(ErrNotAuthenticated, msgNotAuthenticated)
	}

	o, err := s.load(ctx, id, "Failed to load order")
	if err != nil {
		return nil, err
	}

	if !actor.owns(o) && !actor.IsAdmin {
		return nil, newError(ErrUnauthorized, "You do not have permission to view this order")
	}
	return o, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID, failMsg string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, newError(ErrOrderNotFound, msgOrderNotFound)
		}
		logger.FromCtx(ctx).Error("failed to load order", zap.String("order_id", id.String()), zap.Error(err))
		return nil, persistenceFailure(failMsg, err)
	}
	return o, nil
}

func (s *service) ListUserOrders(ctx context.Context, userID uint) ([]*Order, error) {
	if userID == 0 {
		return nil, newError(ErrNotAuthenticated, msgNotAuthenticated)
	}
	return s.repo.List(ctx, ListOptions{UserID: userID})
}

func (s *service) ListOrders(ctx context.Context, opts ListOptions) ([]*Order, error) {
	if opts.Status != "" && !opts.Status.Valid() {
		return nil, newError(ErrInvalidStatus, msgInvalidStatus)
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	return s.repo.List(ctx, opts)
}

func (s *service) RecentOrders(ctx context.Context, n int) ([]*Order, error) {
	return s.repo.List(ctx, ListOptions{Limit: n})
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}
