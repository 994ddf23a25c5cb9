package cart

import (
	"context"
	"database/sql"

	"sheenclassics/internal/logger"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	FindCart(ctx context.Context, key Key) (*Cart, error)
	CreateCart(ctx context.Context, key Key) (*Cart, error)
	InsertItem(ctx context.Context, cartID uuid.UUID, item *Item) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// ownerClause picks the column the key is matched on.
func ownerClause(key Key) (string, any) {
	if key.IsUser() {
		return "user_id = $1", key.UserID
	}
	return "session_id = $1", key.SessionID
}

func (r *repository) FindCart(ctx context.Context, key Key) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "FindCart"),
		zap.String("cart_key", key.String()),
	)

	clause, arg := ownerClause(key)

	var (
		c         Cart
		userID    sql.NullInt64
		sessionID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, session_id, created_at, updated_at
		FROM carts
		WHERE `+clause, arg).
		Scan(&c.ID, &userID, &sessionID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		log.Error("failed to query cart", zap.Error(err))
		return nil, err
	}

	if userID.Valid {
		uid := uint(userID.Int64)
		c.UserID = &uid
	}
	if sessionID.Valid {
		c.SessionID = &sessionID.String
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, product_name, quantity, size, color, added_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY added_at ASC, id ASC
	`, c.ID)
	if err != nil {
		log.Error("failed to query cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	c.Items = []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID,
			&it.ProductID,
			&it.ProductName,
			&it.Quantity,
			&it.Size,
			&it.Color,
			&it.AddedAt,
		); err != nil {
			log.Error("failed to scan cart item", zap.Error(err))
			return nil, err
		}
		c.Items = append(c.Items, it)
	}

	return &c, rows.Err()
}

// CreateCart inserts an empty cart for key. A concurrent request that created
// the same cart first wins; its row is returned instead.
func (r *repository) CreateCart(ctx context.Context, key Key) (*Cart, error) {
	var (
		userID    sql.NullInt64
		sessionID sql.NullString
	)
	if key.IsUser() {
		userID = sql.NullInt64{Int64: int64(key.UserID), Valid: true}
	} else {
		sessionID = sql.NullString{String: key.SessionID, Valid: true}
	}

	c := Cart{Items: []Item{}}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id, session_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, userID, sessionID).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return r.FindCart(ctx, key)
		}
		return nil, err
	}

	if userID.Valid {
		uid := key.UserID
		c.UserID = &uid
	} else {
		sid := key.SessionID
		c.SessionID = &sid
	}
	return &c, nil
}

func (r *repository) InsertItem(ctx context.Context, cartID uuid.UUID, item *Item) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, product_name, quantity, size, color)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, added_at
	`,
		cartID,
		item.ProductID,
		item.ProductName,
		item.Quantity,
		item.Size,
		item.Color,
	).Scan(&item.ID, &item.AddedAt)
	if err != nil {
		return err
	}
	return r.touch(ctx, cartID)
}

func (r *repository) UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = $1
		WHERE id = $2 AND cart_id = $3
	`, quantity, itemID, cartID)
	if err != nil {
		return err
	}
	if err := expectAffected(res); err != nil {
		return err
	}
	return r.touch(ctx, cartID)
}

func (r *repository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE id = $1 AND cart_id = $2
	`, itemID, cartID)
	if err != nil {
		return err
	}
	if err := expectAffected(res); err != nil {
		return err
	}
	return r.touch(ctx, cartID)
}

// ClearItems empties the cart; the cart row itself is kept.
func (r *repository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	return r.touch(ctx, cartID)
}

func (r *repository) touch(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID)
	return err
}

func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}
