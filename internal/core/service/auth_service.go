package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/learnly/course-market/internal/core/domain"
	"github.com/learnly/course-market/internal/core/ports"
	"github.com/learnly/course-market/internal/pkg/metrics"
)

// AuthService implements signup and login for the two disjoint
// credential namespaces. Passwords are stored as bcrypt hashes and
// compared with bcrypt only; plaintext never reaches a repository.
type AuthService struct {
	admins ports.AdminRepository
	users  ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(admins ports.AdminRepository, users ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{admins: admins, users: users, tokens: tokens, logger: logger}
}

func (s *AuthService) SignupAdmin(ctx context.Context, username, password string) (string, error) {
	hash, err := hashCredentials(username, password)
	if err != nil {
		return "", err
	}

	admin := &domain.Admin{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return "", err
	}

	metrics.SignupsTotal.WithLabelValues(domain.RoleAdmin).Inc()
	s.logger.Info().Str("username", username).Msg("admin created")

	return s.tokens.Issue(username, domain.RoleAdmin)
}

func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidInput
	}

	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Issue(username, domain.RoleAdmin)
}

func (s *AuthService) SignupUser(ctx context.Context, username, password string) (string, error) {
	hash, err := hashCredentials(username, password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		Username:         username,
		PasswordHash:     hash,
		PurchasedCourses: []string{},
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	metrics.SignupsTotal.WithLabelValues(domain.RoleUser).Inc()
	s.logger.Info().Str("username", username).Msg("user created")

	return s.tokens.Issue(username, domain.RoleUser)
}

func (s *AuthService) LoginUser(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidInput
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Issue(username, domain.RoleUser)
}

func hashCredentials(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
