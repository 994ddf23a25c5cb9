package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sheenclassics/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*User, error)
	List(ctx context.Context, opts ListOptions) ([]*User, error)
	Count(ctx context.Context, opts ListOptions) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `
	id, name, email, password, phone,
	address_street, address_city, address_state, address_zip_code, address_country,
	role, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.Phone,
		&u.Address.Street,
		&u.Address.City,
		&u.Address.State,
		&u.Address.ZipCode,
		&u.Address.Country,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts u and fills its id, role and creation time. Emails are
// stored lower-cased.
func (r *repository) Create(ctx context.Context, u *User) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateUser"),
	)

	u.Email = strings.ToLower(u.Email)
	if u.Role == "" {
		u.Role = RoleUser
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Name, u.Email, u.Password, u.Role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == PgUniqueViolation {
			log.Info("email already registered", zap.String("email", u.Email))
			return ErrEmailExists
		}
		log.Error("db: failed to insert user", zap.String("email", u.Email), zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, strings.ToLower(email))

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// UpdateProfile overwrites name, phone and address.
func (r *repository) UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.Uint("user_id", id),
	)

	row := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET name = $2,
			phone = $3,
			address_street = $4,
			address_city = $5,
			address_state = $6,
			address_zip_code = $7,
			address_country = $8
		WHERE id = $1
		RETURNING `+userColumns,
		id,
		input.Name,
		input.Phone,
		input.Address.Street,
		input.Address.City,
		input.Address.State,
		input.Address.ZipCode,
		input.Address.Country,
	)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}

	log.Info("profile updated successfully")
	return u, nil
}

func filterByRole(query string, opts ListOptions) (string, []any) {
	args := []any{}
	if opts.Role != "" {
		query += fmt.Sprintf(" AND role = $%d", len(args)+1)
		args = append(args, opts.Role)
	}
	return query, args
}

// List returns users newest first.
func (r *repository) List(ctx context.Context, opts ListOptions) ([]*User, error) {
	query, args := filterByRole(`
		SELECT `+userColumns+`
		FROM users
		WHERE 1=1
	`, opts)
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *repository) Count(ctx context.Context, opts ListOptions) (int, error) {
	query, args := filterByRole(`SELECT COUNT(*) FROM users WHERE 1=1`, opts)

	var n int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}
