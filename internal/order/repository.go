package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"sheenclassics/internal/logger"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, opts ListOptions) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, entry *StatusEntry) error
	Stats(ctx context.Context) (Stats, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, order_number, user_id, subtotal, discount, delivery_charge,
	coupon_code, total, shipping_address, payment_method, payment_details,
	status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o              Order
		couponCode     sql.NullString
		paymentMethod  sql.NullString
		address        []byte
		paymentDetails []byte
	)
	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID,
		&o.Subtotal,
		&o.Discount,
		&o.DeliveryCharge,
		&couponCode,
		&o.Total,
		&address,
		&paymentMethod,
		&paymentDetails,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if couponCode.Valid {
		o.CouponCode = &couponCode.String
	}
	o.PaymentMethod = PaymentMethod(paymentMethod.String)

	// Orders placed before payment details or addresses were recorded carry
	// NULL here; they still load.
	if len(address) > 0 {
		if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
			return nil, errors.Wrap(err, "decode shipping address")
		}
	}
	if len(paymentDetails) > 0 {
		if err := json.Unmarshal(paymentDetails, &o.PaymentDetails); err != nil {
			return nil, errors.Wrap(err, "decode payment details")
		}
	}

	o.Items = []Item{}
	o.StatusHistory = []StatusEntry{}
	return &o, nil
}

// Create writes the order, its items and the first history entry in one
// transaction. Stock and cart changes are not part of it.
func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("order_number", o.OrderNumber),
		zap.Int("item_count", len(o.Items)),
	)

	address, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return err
	}
	paymentDetails, err := json.Marshal(o.PaymentDetails)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, user_id, subtotal, discount, delivery_charge,
			coupon_code, total, shipping_address, payment_method, payment_details, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, created_at, updated_at
	`,
		o.OrderNumber,
		o.UserID,
		o.Subtotal,
		o.Discount,
		o.DeliveryCharge,
		o.CouponCode,
		o.Total,
		address,
		o.PaymentMethod,
		paymentDetails,
		o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, product_name, quantity, price, size, color, position
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id
		`,
			o.ID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.Price,
			item.Size,
			item.Color,
			i,
		).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err),
			)
			return err
		}
	}

	for _, entry := range o.StatusHistory {
		if err := insertHistory(ctx, tx, o.ID, entry); err != nil {
			log.Error("failed to insert status history", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order persisted", zap.String("order_id", o.ID.String()))
	return nil
}

func insertHistory(ctx context.Context, tx *sql.Tx, orderID uuid.UUID, entry StatusEntry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, status, note, created_at)
		VALUES ($1, $2, $3, $4)
	`, orderID, entry.Status, entry.Note, entry.Timestamp)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := r.loadChildren(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List returns orders newest first, optionally for one user or status.
func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
	)

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE 1=1
	`
	args := []any{}
	argIndex := 1

	if opts.UserID != 0 {
		query += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, opts.UserID)
		argIndex++
	}

	if opts.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, opts.Status)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if opts.Limit > 0 {
		offset := 0
		if opts.Page > 1 {
			offset = (opts.Page - 1) * opts.Limit
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, opts.Limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	if err := r.loadChildren(ctx, orders); err != nil {
		log.Error("failed to load order children", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

// loadChildren fills items and history for a page of orders with one query
// each.
func (r *repository) loadChildren(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID.String())
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, price, size, color
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, position
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it      Item
			orderID uuid.UUID
		)
		if err := rows.Scan(
			&it.ID,
			&orderID,
			&it.ProductID,
			&it.ProductName,
			&it.Quantity,
			&it.Price,
			&it.Size,
			&it.Color,
		); err != nil {
			return err
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	hrows, err := r.db.QueryContext(ctx, `
		SELECT order_id, status, note, created_at
		FROM order_status_history
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, created_at, id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer hrows.Close()

	for hrows.Next() {
		var (
			entry   StatusEntry
			orderID uuid.UUID
		)
		if err := hrows.Scan(&orderID, &entry.Status, &entry.Note, &entry.Timestamp); err != nil {
			return err
		}
		if o, ok := byID[orderID]; ok {
			o.StatusHistory = append(o.StatusHistory, entry)
		}
	}
	return hrows.Err()
}

// UpdateStatus sets the status and, when entry is non-nil, appends it to the
// history in the same transaction. Only status columns are written, so rows
// missing newer fields are updated as they are.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, entry *StatusEntry) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", id.String()),
		zap.String("status", string(status)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	if entry != nil {
		if err := insertHistory(ctx, tx, id, *entry); err != nil {
			log.Error("failed to insert status history", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) Stats(ctx context.Context) (Stats, error) {
	var (
		s       Stats
		revenue decimal.NullDecimal
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			SUM(total) FILTER (WHERE status <> 'cancelled'),
			COUNT(DISTINCT user_id) FILTER (WHERE status <> 'cancelled')
		FROM orders
	`).Scan(&s.OrderCount, &revenue, &s.ActiveCustomers)
	if err != nil {
		return Stats{}, err
	}

	s.Revenue = decimal.Zero
	if revenue.Valid {
		s.Revenue = revenue.Decimal
	}
	return s, nil
}
