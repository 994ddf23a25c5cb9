package product

import (
	"context"
	"database/sql"
	"fmt"

	"sheenclassics/internal/logger"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, name, description, price, original_price, category,
	images, sizes, colors, stock, featured, shipping_fee,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p      Product
		images []string
		sizes  []string
		colors []string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.OriginalPrice,
		&p.Category,
		pq.Array(&images),
		pq.Array(&sizes),
		pq.Array(&colors),
		&p.Stock,
		&p.Featured,
		&p.ShippingFee,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Images = nonNil(images)
	p.Colors = nonNil(colors)
	p.Sizes = make([]Size, 0, len(sizes))
	for _, s := range sizes {
		p.Sizes = append(p.Sizes, Size(s))
	}
	return &p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func sizeStrings(sizes []Size) []string {
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, string(s))
	}
	return out
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetByIDs resolves a batch of product references. Ids with no row are simply
// absent from the result.
func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error) {
	result := make(map[uuid.UUID]*Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = ANY($1::uuid[])
	`, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result[p.ID] = p
	}

	return result, rows.Err()
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE 1=1
	`
	args := []any{}
	argIndex := 1

	if opts.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, opts.Category)
		argIndex++
	}

	if opts.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+opts.Search+"%")
		argIndex++
	}

	if opts.FeaturedOnly {
		query += " AND featured = TRUE"
	}

	if opts.InStockOnly {
		query += " AND stock > 0"
	}

	switch opts.Sort {
	case SortPriceAsc:
		query += " ORDER BY price ASC, created_at DESC"
	case SortPriceDesc:
		query += " ORDER BY price DESC, created_at DESC"
	case SortName:
		query += " ORDER BY name ASC"
	default:
		query += " ORDER BY created_at DESC"
	}

	if opts.Limit > 0 {
		offset := 0
		if opts.Page > 1 {
			offset = (opts.Page - 1) * opts.Limit
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, opts.Limit, offset)
	}

	log.Debug("executing list products query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	return products, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO products (
			name, description, price, original_price, category,
			images, sizes, colors, stock, featured, shipping_fee
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, created_at, updated_at
	`,
		p.Name,
		p.Description,
		p.Price,
		p.OriginalPrice,
		p.Category,
		pq.Array(nonNil(p.Images)),
		pq.Array(sizeStrings(p.Sizes)),
		pq.Array(nonNil(p.Colors)),
		p.Stock,
		p.Featured,
		p.ShippingFee,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, original_price = $4,
			category = $5, images = $6, sizes = $7, colors = $8,
			stock = $9, featured = $10, shipping_fee = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING created_at, updated_at
	`,
		p.Name,
		p.Description,
		p.Price,
		p.OriginalPrice,
		p.Category,
		pq.Array(nonNil(p.Images)),
		pq.Array(sizeStrings(p.Sizes)),
		pq.Array(nonNil(p.Colors)),
		p.Stock,
		p.Featured,
		p.ShippingFee,
		p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// AdjustStock adds delta (negative to decrement) to a product's stock in a
// single statement. The table's CHECK (stock >= 0) rejects oversells that
// slip past the caller's read-then-write check.
func (r *repository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2
	`, delta, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgCheckViolation {
			return ErrStockExhausted
		}
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
