package ports

import (
	"context"

	"github.com/learnly/course-market/internal/core/domain"
)

// AdminRepository persists catalog administrators.
type AdminRepository interface {
	// Create inserts a new admin. Returns domain.ErrAdminExists when the
	// username is already taken.
	Create(ctx context.Context, admin *domain.Admin) error
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

// UserRepository persists marketplace users and their purchases.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username is already taken.
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// AddPurchasedCourse appends courseID to the user's purchased set as a
	// single conditional document update: the write only matches when the
	// course is not yet in the set. Returns domain.ErrAlreadyPurchased when
	// the condition fails, which is how a concurrent duplicate purchase
	// loses the race without a second read.
	AddPurchasedCourse(ctx context.Context, username, courseID string) error
}

// CourseUpdate is a partial patch: nil fields are left untouched.
type CourseUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	ImageLink   *string
	Published   *bool
}

// CourseRepository persists catalog courses.
type CourseRepository interface {
	Insert(ctx context.Context, course *domain.Course) error
	FindByID(ctx context.Context, courseID string) (*domain.Course, error)
	// FindPublishedByID retrieves a course only if it is currently
	// published; unpublished and missing ids both yield
	// domain.ErrCourseUnavailable.
	FindPublishedByID(ctx context.Context, courseID string) (*domain.Course, error)
	FindByIDs(ctx context.Context, courseIDs []string) ([]domain.Course, error)
	List(ctx context.Context, publishedOnly bool) ([]domain.Course, error)
	// Update applies the non-nil fields of patch and returns the
	// post-update record, or domain.ErrCourseNotFound.
	Update(ctx context.Context, courseID string, patch CourseUpdate) (*domain.Course, error)
	Delete(ctx context.Context, courseID string) error
}
