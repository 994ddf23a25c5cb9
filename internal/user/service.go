package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"sheenclassics/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (string, *User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*User, error)
	CreateAdmin(ctx context.Context, input RegisterInput) (*User, error)
	ListCustomers(ctx context.Context) ([]*User, error)
	CountCustomers(ctx context.Context) (int, error)
	List(ctx context.Context) ([]*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateRegistration(input *RegisterInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.Name == "" {
		return ErrNameRequired
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return ErrInvalidEmail
	}
	if len(input.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func (s *service) create(ctx context.Context, input RegisterInput, role Role) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateUser"),
		zap.String("role", string(role)),
	)

	if err := validateRegistration(&input); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{Name: input.Name, Email: input.Email, Password: hashed, Role: role}
	if err := s.repo.Create(ctx, u); err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.String("email", input.Email), zap.Error(err))
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (string, *User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.create(ctx, input, RoleUser)
	if err != nil {
		return "", nil, err
	}

	token, err := GenerateJWT(u.ID, u.Role, u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("register service completed", zap.Uint("user_id", u.ID))
	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("email not found")
			return "", nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user", zap.Error(err))
		return "", nil, err
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("password not match", zap.Uint("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Role, u.Email)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	return s.repo.UpdateProfile(ctx, id, input)
}

// CreateAdmin is used by the admin tool; admins are never self-registered.
func (s *service) CreateAdmin(ctx context.Context, input RegisterInput) (*User, error) {
	return s.create(ctx, input, RoleAdmin)
}

func (s *service) ListCustomers(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx, ListOptions{Role: RoleUser})
}

func (s *service) CountCustomers(ctx context.Context) (int, error) {
	return s.repo.Count(ctx, ListOptions{Role: RoleUser})
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx, ListOptions{})
}
