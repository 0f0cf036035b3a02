package ports

import "context"

// AuthService covers signup and login for both namespaces. Each call
// returns a role-scoped token on success.
type AuthService interface {
	SignupAdmin(ctx context.Context, username, password string) (string, error)
	LoginAdmin(ctx context.Context, username, password string) (string, error)
	SignupUser(ctx context.Context, username, password string) (string, error)
	LoginUser(ctx context.Context, username, password string) (string, error)
}
