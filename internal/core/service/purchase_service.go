package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/learnly/course-market/internal/core/domain"
	"github.com/learnly/course-market/internal/core/ports"
	"github.com/learnly/course-market/internal/pkg/metrics"
)

// PurchaseService is the purchase coordinator. The ordering below is
// load-bearing: user lookup, then a published-constrained course
// lookup against current state, then the membership fast-path, then a
// single conditional append. The append itself re-checks membership
// inside the storage layer, which is what closes the window between
// two concurrent purchases of the same course.
type PurchaseService struct {
	users   ports.UserRepository
	courses ports.CourseRepository
	logger  zerolog.Logger
}

func NewPurchaseService(users ports.UserRepository, courses ports.CourseRepository, logger zerolog.Logger) *PurchaseService {
	return &PurchaseService{users: users, courses: courses, logger: logger}
}

func (s *PurchaseService) Purchase(ctx context.Context, username, courseID string) (*ports.PurchaseResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, s.countFailure(err)
	}

	if _, err := s.courses.FindPublishedByID(ctx, courseID); err != nil {
		return nil, s.countFailure(err)
	}

	if user.HasPurchased(courseID) {
		metrics.PurchasesTotal.WithLabelValues("conflict").Inc()
		return nil, domain.ErrAlreadyPurchased
	}

	if err := s.users.AddPurchasedCourse(ctx, username, courseID); err != nil {
		return nil, s.countFailure(err)
	}

	metrics.PurchasesTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", username).Str("course_id", courseID).Msg("course purchased")

	return &ports.PurchaseResult{
		CourseID:         courseID,
		PurchasedCourses: append(user.PurchasedCourses, courseID),
	}, nil
}

// ListPurchased resolves the user's owned course ids against the
// catalog. Ids whose course has since been deleted are skipped rather
// than surfaced as errors; ownership records are never garbage
// collected.
func (s *PurchaseService) ListPurchased(ctx context.Context, username string) ([]domain.Course, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(user.PurchasedCourses) == 0 {
		return []domain.Course{}, nil
	}
	return s.courses.FindByIDs(ctx, user.PurchasedCourses)
}

func (s *PurchaseService) countFailure(err error) error {
	switch {
	case errors.Is(err, domain.ErrAlreadyPurchased):
		metrics.PurchasesTotal.WithLabelValues("conflict").Inc()
	case errors.Is(err, domain.ErrCourseUnavailable), errors.Is(err, domain.ErrUserNotFound):
		metrics.PurchasesTotal.WithLabelValues("unavailable").Inc()
	default:
		metrics.PurchasesTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Msg("purchase failed")
	}
	return err
}
