package wishlist

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
	FindID(ctx context.Context, key Key) (uuid.UUID, error)
	Create(ctx context.Context, key Key) (uuid.UUID, error)
	Entries(ctx context.Context, wishlistID uuid.UUID) ([]Entry, error)
	AddProduct(ctx context.Context, wishlistID, productID uuid.UUID) (bool, error)
	RemoveProduct(ctx context.Context, wishlistID, productID uuid.UUID) error
	MoveAll(ctx context.Context, fromID, toID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func ownerClause(key Key) (string, any) {
	if key.IsUser() {
		return "user_id = $1", key.UserID
	}
	return "session_id = $1", key.SessionID
}

func (r *repository) FindID(ctx context.Context, key Key) (uuid.UUID, error) {
	clause, arg := ownerClause(key)

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, `SELECT id FROM wishlists WHERE `+clause, arg).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrWishlistNotFound
	}
	return id, err
}

func (r *repository) Create(ctx context.Context, key Key) (uuid.UUID, error) {
	var (
		userID    sql.NullInt64
		sessionID sql.NullString
	)
	if key.IsUser() {
		userID = sql.NullInt64{Int64: int64(key.UserID), Valid: true}
	} else {
		sessionID = sql.NullString{String: key.SessionID, Valid: true}
	}

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO wishlists (user_id, session_id)
		VALUES ($1, $2)
		RETURNING id
	`, userID, sessionID).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return r.FindID(ctx, key)
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repository) Entries(ctx context.Context, wishlistID uuid.UUID) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, added_at
		FROM wishlist_items
		WHERE wishlist_id = $1
		ORDER BY added_at ASC
	`, wishlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ProductID, &e.AddedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddProduct reports whether the product was newly added.
func (r *repository) AddProduct(ctx context.Context, wishlistID, productID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (wishlist_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (wishlist_id, product_id) DO NOTHING
	`, wishlistID, productID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) RemoveProduct(ctx context.Context, wishlistID, productID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM wishlist_items
		WHERE wishlist_id = $1 AND product_id = $2
	`, wishlistID, productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotInWishlist
	}
	return nil
}

// MoveAll copies every entry of fromID into toID, skipping duplicates, and
// empties fromID in one transaction.
func (r *repository) MoveAll(ctx context.Context, fromID, toID uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "MoveWishlist"),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO wishlist_items (wishlist_id, product_id, added_at)
		SELECT $2, product_id, added_at
		FROM wishlist_items
		WHERE wishlist_id = $1
		ON CONFLICT (wishlist_id, product_id) DO NOTHING
	`, fromID, toID); err != nil {
		log.Error("failed to copy wishlist items", zap.Error(err))
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM wishlist_items WHERE wishlist_id = $1`, fromID); err != nil {
		log.Error("failed to empty source wishlist", zap.Error(err))
		return err
	}

	return tx.Commit()
}
