package coupon

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
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context) ([]*Coupon, error)
	Create(ctx context.Context, c *Coupon) error
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const couponColumns = `
	id, code, discount_type, discount_value, min_purchase, max_discount,
	valid_from, valid_until, usage_limit, used_count, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoupon(row rowScanner) (*Coupon, error) {
	var (
		c          Coupon
		usageLimit sql.NullInt64
	)
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.DiscountType,
		&c.DiscountValue,
		&c.MinPurchase,
		&c.MaxDiscount,
		&c.ValidFrom,
		&c.ValidUntil,
		&usageLimit,
		&c.UsedCount,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if usageLimit.Valid {
		limit := int(usageLimit.Int64)
		c.UsageLimit = &limit
	}
	return &c, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Coupon, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+couponColumns+`
		FROM coupons
		WHERE code = $1
	`, code)

	c, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *repository) List(ctx context.Context) ([]*Coupon, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListCoupons"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+couponColumns+`
		FROM coupons
		ORDER BY created_at DESC
	`)
	if err != nil {
		log.Error("failed to query coupons", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var coupons []*Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			log.Error("failed to scan coupon", zap.Error(err))
			return nil, err
		}
		coupons = append(coupons, c)
	}

	return coupons, rows.Err()
}

func (r *repository) Create(ctx context.Context, c *Coupon) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCoupon"),
		zap.String("code", c.Code),
	)

	var usageLimit sql.NullInt64
	if c.UsageLimit != nil {
		usageLimit = sql.NullInt64{Int64: int64(*c.UsageLimit), Valid: true}
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO coupons (
			code, discount_type, discount_value, min_purchase, max_discount,
			valid_from, valid_until, usage_limit, used_count
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,0)
		RETURNING id, used_count, created_at
	`,
		c.Code,
		c.DiscountType,
		c.DiscountValue,
		c.MinPurchase,
		c.MaxDiscount,
		c.ValidFrom,
		c.ValidUntil,
		usageLimit,
	).Scan(&c.ID, &c.UsedCount, &c.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			log.Info("coupon code already exists")
			return ErrCouponCodeExists
		}
		log.Error("failed to insert coupon", zap.Error(err))
		return err
	}

	return nil
}

// IncrementUsage bumps used_count by one. It does not re-check the usage
// limit; callers validate first.
func (r *repository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE coupons
		SET used_count = used_count + 1
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponNotFound
	}
	return nil
}
