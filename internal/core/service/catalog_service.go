package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/learnly/course-market/internal/core/domain"
	"github.com/learnly/course-market/internal/core/ports"
	"github.com/learnly/course-market/internal/pkg/metrics"
)

// CatalogService implements admin course CRUD and the published-only
// listing users see. Course ids are random UUIDs so that concurrent
// creates can never collide, unlike wall-clock derived ids.
//
// The published listing reads through an optional cache; the cache is
// best-effort and Mongo stays authoritative, so every cache failure
// degrades to a direct repository read.
type CatalogService struct {
	repo   ports.CourseRepository
	cache  ports.CatalogCache
	logger zerolog.Logger
}

// NewCatalogService creates a CatalogService. cache may be nil, in
// which case all listings go straight to the repository.
func NewCatalogService(repo ports.CourseRepository, cache ports.CatalogCache, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, logger: logger}
}

func (s *CatalogService) CreateCourse(ctx context.Context, input ports.CreateCourseInput) (string, error) {
	if input.Title == "" {
		return "", domain.ErrInvalidInput
	}

	published := false
	if input.Published != nil {
		published = *input.Published
	}

	now := time.Now().UTC()
	course := &domain.Course{
		CourseID:    uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		ImageLink:   input.ImageLink,
		Published:   published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, course); err != nil {
		s.logger.Error().Err(err).Msg("failed to create course")
		return "", err
	}

	metrics.CoursesCreatedTotal.Inc()
	s.logger.Info().Str("course_id", course.CourseID).Str("title", course.Title).Msg("course created")
	s.invalidateCache(ctx)

	return course.CourseID, nil
}

func (s *CatalogService) ListCourses(ctx context.Context, publishedOnly bool) ([]domain.Course, error) {
	if publishedOnly && s.cache != nil {
		if cached, err := s.cache.Get(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("catalog cache read failed")
		} else if cached != nil {
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	courses, err := s.repo.List(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}

	if publishedOnly && s.cache != nil {
		if err := s.cache.Set(ctx, courses); err != nil {
			s.logger.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return courses, nil
}

func (s *CatalogService) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	return s.repo.FindByID(ctx, courseID)
}

func (s *CatalogService) UpdateCourse(ctx context.Context, courseID string, patch ports.CourseUpdate) (*domain.Course, error) {
	course, err := s.repo.Update(ctx, courseID, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("course_id", courseID).Msg("course updated")
	s.invalidateCache(ctx)
	return course, nil
}

func (s *CatalogService) DeleteCourse(ctx context.Context, courseID string) error {
	if err := s.repo.Delete(ctx, courseID); err != nil {
		return err
	}

	s.logger.Info().Str("course_id", courseID).Msg("course deleted")
	s.invalidateCache(ctx)
	return nil
}

func (s *CatalogService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
