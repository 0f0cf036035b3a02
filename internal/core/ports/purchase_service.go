package ports

import (
	"context"

	"github.com/learnly/course-market/internal/core/domain"
)

// PurchaseResult is returned after a successful purchase.
type PurchaseResult struct {
	CourseID string
	// PurchasedCourses is the user's full owned-course id list after the
	// purchase was persisted.
	PurchasedCourses []string
}

// PurchaseService coordinates course purchases and the owned-course
// listing for a user.
type PurchaseService interface {
	Purchase(ctx context.Context, username, courseID string) (*PurchaseResult, error)
	ListPurchased(ctx context.Context, username string) ([]domain.Course, error)
}
