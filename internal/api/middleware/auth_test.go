package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/learnly/course-market/internal/core/domain"
	"github.com/learnly/course-market/internal/core/service"
)

func invoke(t *testing.T, tokens *service.TokenService, path, authHeader string) (*echo.HTTPError, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := Auth(tokens)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	if err == nil {
		return nil, c, called
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he, c, called
}

func TestAuth_ValidAdminToken(t *testing.T) {
	tokens := service.NewTokenService("admin-secret", "user-secret", time.Hour)
	token, err := tokens.Issue("alice", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	he, c, called := invoke(t, tokens, "/admin/courses", "Bearer "+token)
	if he != nil {
		t.Fatalf("unexpected error: %v", he)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if c.Get("username") != "alice" {
		t.Fatalf("username not injected")
	}
	if c.Get("role") != domain.RoleAdmin {
		t.Fatalf("role not injected")
	}
}

func TestAuth_ValidUserToken(t *testing.T) {
	tokens := service.NewTokenService("admin-secret", "user-secret", time.Hour)
	token, err := tokens.Issue("bob", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	he, c, called := invoke(t, tokens, "/users/courses", "Bearer "+token)
	if he != nil || !called {
		t.Fatalf("expected pass, err=%v called=%v", he, called)
	}
	if c.Get("role") != domain.RoleUser {
		t.Fatalf("role not injected")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	tokens := service.NewTokenService("admin-secret", "user-secret", time.Hour)

	he, _, called := invoke(t, tokens, "/users/courses", "")
	if called {
		t.Fatalf("next must not be called")
	}
	if he == nil || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", he)
	}
}

func TestAuth_MissingTokenSegment(t *testing.T) {
	tokens := service.NewTokenService("admin-secret", "user-secret", time.Hour)

	for _, header := range []string{"Bearer", "Bearer ", "Token abc"} {
		he, _, called := invoke(t, tokens, "/users/courses", header)
		if called {
			t.Fatalf("next must not be called for %q", header)
		}
		if he == nil || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, he)
		}
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := service.NewTokenService("admin-secret", "user-secret", -time.Minute)
	token, err := expired.Issue("bob", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tokens := service.NewTokenService("admin-secret", "user-secret", time.Hour)
	he, _, _ := invoke(t, tokens, "/users/courses", "Bearer "+token)
	if he == nil || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %v", he)
	}
	if he.Message != "token expired" {
		t.Fatalf("expected expiry message, got %v", he.Message)
	}
}

// A user token presented on an admin path is verified against the
// admin secret and must fail with 403, regardless of what the token
// claims.
func TestAuth_WrongRoleToken(t *testing.T) {
	tokens := service.NewTokenService("admin-secret", "user-secret", time.Hour)
	userToken, err := tokens.Issue("bob", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	he, _, called := invoke(t, tokens, "/admin/courses", "Bearer "+userToken)
	if called {
		t.Fatalf("next must not be called")
	}
	if he == nil || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", he)
	}
}

func TestAuth_TamperedToken(t *testing.T) {
	other := service.NewTokenService("evil-admin", "evil-user", time.Hour)
	token, err := other.Issue("bob", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tokens := service.NewTokenService("admin-secret", "user-secret", time.Hour)
	he, _, _ := invoke(t, tokens, "/users/courses", "Bearer "+token)
	if he == nil || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for tampered token, got %v", he)
	}
}
