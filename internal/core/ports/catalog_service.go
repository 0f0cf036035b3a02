package ports

import (
	"context"

	"github.com/learnly/course-market/internal/core/domain"
)

// CreateCourseInput carries the fields for a new course. Published is
// optional and defaults to false (a draft is not purchasable until an
// admin publishes it).
type CreateCourseInput struct {
	Title       string
	Description string
	Price       float64
	ImageLink   string
	Published   *bool
}

// CatalogService defines the admin-gated CRUD surface plus the
// published-only listing used by the user catalog.
type CatalogService interface {
	CreateCourse(ctx context.Context, input CreateCourseInput) (string, error)
	ListCourses(ctx context.Context, publishedOnly bool) ([]domain.Course, error)
	GetCourse(ctx context.Context, courseID string) (*domain.Course, error)
	UpdateCourse(ctx context.Context, courseID string, patch CourseUpdate) (*domain.Course, error)
	DeleteCourse(ctx context.Context, courseID string) error
}

// CatalogCache is a best-effort cache for the published listing.
// A (nil, nil) Get is a miss; cache failures must never break reads.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Course, error)
	Set(ctx context.Context, courses []domain.Course) error
	Invalidate(ctx context.Context) error
}
