package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/learnly/course-market/internal/core/domain"
)

const userCollection = "users"

// UserRepository persists marketplace users and their purchased-course
// sets.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(userCollection)}
}

type mongoUser struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Username         string             `bson:"username"`
	PasswordHash     string             `bson:"password_hash"`
	PurchasedCourses []string           `bson:"purchased_courses"`
	CreatedAt        int64              `bson:"created_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Username:         user.Username,
		PasswordHash:     user.PasswordHash,
		PurchasedCourses: []string{},
		CreatedAt:        user.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	purchased := mu.PurchasedCourses
	if purchased == nil {
		purchased = []string{}
	}

	return &domain.User{
		ID:               mu.ID.Hex(),
		Username:         mu.Username,
		PasswordHash:     mu.PasswordHash,
		PurchasedCourses: purchased,
		CreatedAt:        unixToTime(mu.CreatedAt),
	}, nil
}

// AddPurchasedCourse appends courseID to the user's set with a single
// conditional update: the filter only matches while the course is
// absent from purchased_courses, so two concurrent purchases of the
// same course can never both modify the document. A zero match for a
// user the caller has already loaded therefore means the course is in
// the set.
func (r *UserRepository) AddPurchasedCourse(ctx context.Context, username, courseID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"username":          username,
		"purchased_courses": bson.M{"$ne": courseID},
	}
	update := bson.M{"$addToSet": bson.M{"purchased_courses": courseID}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("add purchased course: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAlreadyPurchased
	}
	return nil
}

// EnsureIndexes creates the unique username index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
