package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/learnly/course-market/internal/core/domain"
)

func invokeRequireRole(t *testing.T, role string, allowed ...string) (error, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	called := false
	err := RequireRole(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return err, called
}

func TestRequireRole_Allowed(t *testing.T) {
	err, called := invokeRequireRole(t, domain.RoleAdmin, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireRole_WrongRole(t *testing.T) {
	err, called := invokeRequireRole(t, domain.RoleUser, domain.RoleAdmin)
	if called {
		t.Fatalf("next must not be called")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRequireRole_MissingRole(t *testing.T) {
	err, called := invokeRequireRole(t, "", domain.RoleUser)
	if called {
		t.Fatalf("next must not be called")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}
