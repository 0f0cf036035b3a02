package domain

import (
	"errors"
	"time"
)

// Course is the catalog aggregate. CourseID is server-generated and
// unique; only published courses are visible to (and purchasable by)
// users, while admins always see the full catalog.
type Course struct {
	CourseID    string    `json:"courseId" bson:"course_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	ImageLink   string    `json:"imageLink" bson:"image_link"`
	Published   bool      `json:"published" bson:"published"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminExists        = errors.New("admin already exists")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseUnavailable  = errors.New("course not found or not available for purchase")
	ErrAlreadyPurchased   = errors.New("course already purchased")

	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("invalid token")
)
