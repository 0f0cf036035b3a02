package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/learnly/course-market/internal/core/domain"
	"github.com/learnly/course-market/internal/core/ports"
)

const courseCollection = "courses"

// CourseRepository persists catalog courses. Courses are addressed by
// the server-generated course_id, never by the Mongo _id.
type CourseRepository struct {
	coll *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{coll: db.Collection(courseCollection)}
}

func (r *CourseRepository) Insert(ctx context.Context, course *domain.Course) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, course); err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (r *CourseRepository) FindByID(ctx context.Context, courseID string) (*domain.Course, error) {
	return r.findOne(ctx, bson.M{"course_id": courseID}, domain.ErrCourseNotFound)
}

// FindPublishedByID constrains the lookup to published courses so the
// purchase path always checks availability against current state.
func (r *CourseRepository) FindPublishedByID(ctx context.Context, courseID string) (*domain.Course, error) {
	return r.findOne(ctx, bson.M{"course_id": courseID, "published": true}, domain.ErrCourseUnavailable)
}

func (r *CourseRepository) findOne(ctx context.Context, filter bson.M, notFound error) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var course domain.Course
	if err := r.coll.FindOne(ctx, filter).Decode(&course); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &course, nil
}

func (r *CourseRepository) FindByIDs(ctx context.Context, courseIDs []string) ([]domain.Course, error) {
	return r.findMany(ctx, bson.M{"course_id": bson.M{"$in": courseIDs}})
}

func (r *CourseRepository) List(ctx context.Context, publishedOnly bool) ([]domain.Course, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}
	return r.findMany(ctx, filter)
}

func (r *CourseRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}

	courses := []domain.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}
	return courses, nil
}

// Update applies the non-nil patch fields atomically and returns the
// post-update document.
func (r *CourseRepository) Update(ctx context.Context, courseID string, patch ports.CourseUpdate) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.ImageLink != nil {
		set["image_link"] = *patch.ImageLink
	}
	if patch.Published != nil {
		set["published"] = *patch.Published
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var course domain.Course
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"course_id": courseID}, bson.M{"$set": set}, opts).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return &course, nil
}

func (r *CourseRepository) Delete(ctx context.Context, courseID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"course_id": courseID})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// EnsureIndexes creates the unique course_id index and the published
// index backing the user listing.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "course_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "published", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
