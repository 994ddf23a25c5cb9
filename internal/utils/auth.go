package utils

import "context"

// Identity is the authenticated caller as verified from the access token.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == adminRole
}

// SetUserContext stores the verified caller on ctx. Only the auth middleware
// calls it.
func SetUserContext(ctx context.Context, id uint, email string, role string) context.Context {
	return context.WithValue(ctx, identityKey, Identity{UserID: id, Email: email, Role: role})
}

// IdentityFromContext returns the caller, or false for anonymous requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok && ident.UserID != 0
}

func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	ident, ok := IdentityFromContext(ctx)
	return ident.UserID, ok
}

func GetUserEmailFromContext(ctx context.Context) string {
	ident, _ := IdentityFromContext(ctx)
	return ident.Email
}

func GetUserRoleFromContext(ctx context.Context) string {
	ident, _ := IdentityFromContext(ctx)
	return ident.Role
}

func IsAdminFromContext(ctx context.Context) bool {
	ident, ok := IdentityFromContext(ctx)
	return ok && ident.IsAdmin()
}
