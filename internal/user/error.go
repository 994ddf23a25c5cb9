package user

import "errors"

var (
	// -- Validation & Input --
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidEmail     = errors.New("a valid email is required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	// -- Authentication --
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrJWTSecretMissing   = errors.New("JWT_SECRET is not set")
	ErrInvalidToken       = errors.New("invalid token")

	// -- Resource State --
	ErrEmailExists  = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

const (
	PgUniqueViolation = "23505"
	MinPasswordLength = 6
)
