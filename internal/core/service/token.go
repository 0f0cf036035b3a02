package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/learnly/course-market/internal/core/domain"
)

const defaultTokenTTL = time.Hour

type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenService signs and verifies HS256 JWTs. Each role has its own
// secret; the secret is always selected from the role argument, never
// from anything inside the token, so a user token claiming to be an
// admin still fails signature verification.
type TokenService struct {
	adminSecret []byte
	userSecret  []byte
	tokenTTL    time.Duration
}

func NewTokenService(adminSecret, userSecret string, tokenTTL time.Duration) *TokenService {
	if tokenTTL == 0 {
		tokenTTL = defaultTokenTTL
	}
	return &TokenService{
		adminSecret: []byte(adminSecret),
		userSecret:  []byte(userSecret),
		tokenTTL:    tokenTTL,
	}
}

// Issue returns a signed token for username, scoped to role, expiring
// tokenTTL from now.
func (s *TokenService) Issue(username, role string) (string, error) {
	secret, err := s.secretFor(role)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Username: username,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify checks token against the secret of role and returns the
// embedded username. Expiry is reported distinctly from signature or
// parse failures so the caller can answer 401 vs 403 correctly.
func (s *TokenService) Verify(token, role string) (string, error) {
	secret, err := s.secretFor(role)
	if err != nil {
		return "", err
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", domain.ErrTokenMalformed
		default:
			return "", domain.ErrTokenInvalid
		}
	}
	if !parsed.Valid || claims.Username == "" {
		return "", domain.ErrTokenInvalid
	}

	return claims.Username, nil
}

func (s *TokenService) secretFor(role string) ([]byte, error) {
	switch role {
	case domain.RoleAdmin:
		return s.adminSecret, nil
	case domain.RoleUser:
		return s.userSecret, nil
	default:
		return nil, fmt.Errorf("unknown token role %q", role)
	}
}
