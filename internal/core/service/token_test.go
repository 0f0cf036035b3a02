package service

import (
	"errors"
	"testing"
	"time"

	"github.com/learnly/course-market/internal/core/domain"
)

func newTestTokens() *TokenService {
	return NewTokenService("admin-secret", "user-secret", time.Hour)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTestTokens()

	for _, role := range []string{domain.RoleAdmin, domain.RoleUser} {
		token, err := svc.Issue("alice", role)
		if err != nil {
			t.Fatalf("Issue(%s) returned error: %v", role, err)
		}
		username, err := svc.Verify(token, role)
		if err != nil {
			t.Fatalf("Verify(%s) returned error: %v", role, err)
		}
		if username != "alice" {
			t.Fatalf("expected username alice, got %q", username)
		}
	}
}

func TestTokenService_RoleSeparation(t *testing.T) {
	svc := newTestTokens()

	adminToken, err := svc.Issue("alice", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	if _, err := svc.Verify(adminToken, domain.RoleUser); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("admin token verified against user secret: err=%v", err)
	}

	userToken, err := svc.Issue("bob", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue user token: %v", err)
	}
	if _, err := svc.Verify(userToken, domain.RoleAdmin); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("user token verified against admin secret: err=%v", err)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("admin-secret", "user-secret", -time.Minute)

	token, err := svc.Issue("alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := svc.Verify(token, domain.RoleUser); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := newTestTokens()

	for _, raw := range []string{"", "garbage", "a.b"} {
		if _, err := svc.Verify(raw, domain.RoleUser); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("Verify(%q): expected ErrTokenMalformed, got %v", raw, err)
		}
	}
}

func TestTokenService_TamperedDistinctFromExpired(t *testing.T) {
	svc := newTestTokens()
	other := NewTokenService("other-admin", "other-user", time.Hour)

	token, err := other.Issue("alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	_, err = svc.Verify(token, domain.RoleUser)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("invalid signature must not be reported as expiry")
	}
}

func TestTokenService_UnknownRole(t *testing.T) {
	svc := newTestTokens()

	if _, err := svc.Issue("alice", "root"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if _, err := svc.Verify("whatever", "root"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}
