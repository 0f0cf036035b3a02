package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/learnly/course-market/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*domain.Admin
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.admins[admin.Username]; exists {
		return domain.ErrAdminExists
	}
	clone := *admin
	r.admins[admin.Username] = &clone
	return nil
}

func (r *stubAdminRepo) FindByUsername(_ context.Context, username string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *a
	return &clone, nil
}

// stubUserRepo mirrors the real Mongo repository: AddPurchasedCourse
// is a single conditional update guarded by the mutex, so the
// concurrency tests exercise the same atomicity contract.
type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.PurchasedCourses = append([]string{}, u.PurchasedCourses...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	r.users[user.Username] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) AddPurchasedCourse(_ context.Context, username, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.HasPurchased(courseID) {
		return domain.ErrAlreadyPurchased
	}
	u.PurchasedCourses = append(u.PurchasedCourses, courseID)
	return nil
}

func newTestAuthService() (*AuthService, *stubAdminRepo, *stubUserRepo) {
	admins := newStubAdminRepo()
	users := newStubUserRepo()
	tokens := NewTokenService("admin-secret", "user-secret", time.Hour)
	return NewAuthService(admins, users, tokens, zerolog.Nop()), admins, users
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAuthService_SignupAdmin_Success(t *testing.T) {
	svc, admins, _ := newTestAuthService()

	token, err := svc.SignupAdmin(context.Background(), "alice", "pass123")
	if err != nil {
		t.Fatalf("SignupAdmin returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	stored := admins.admins["alice"]
	if stored == nil {
		t.Fatalf("admin not persisted")
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_SignupAdmin_Duplicate(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.SignupAdmin(context.Background(), "alice", "pass"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.SignupAdmin(context.Background(), "alice", "other"); !errors.Is(err, domain.ErrAdminExists) {
		t.Fatalf("expected ErrAdminExists, got %v", err)
	}
}

func TestAuthService_SignupUser_Duplicate(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.SignupUser(context.Background(), "bob", "pass"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.SignupUser(context.Background(), "bob", "pass"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.SignupAdmin(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.SignupUser(context.Background(), "bob", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_DisjointNamespaces(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.SignupAdmin(context.Background(), "sam", "adminpass"); err != nil {
		t.Fatalf("admin signup failed: %v", err)
	}
	// Same username in the user namespace is not a conflict.
	if _, err := svc.SignupUser(context.Background(), "sam", "userpass"); err != nil {
		t.Fatalf("user signup with shared username failed: %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newTestAuthService()
	tokens := NewTokenService("admin-secret", "user-secret", time.Hour)

	if _, err := svc.SignupUser(context.Background(), "carol", "s3cret"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, err := svc.LoginUser(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	username, err := tokens.Verify(token, domain.RoleUser)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if username != "carol" {
		t.Fatalf("expected carol, got %q", username)
	}

	if _, err := svc.LoginUser(context.Background(), "carol", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.LoginUser(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := svc.LoginAdmin(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
