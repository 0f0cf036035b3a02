package handler

import "github.com/learnly/course-market/internal/core/domain"

// errorResponse is the standard error envelope returned on all
// 4xx/5xx responses (rendered by the central error handler).
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createCourseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageLink   string  `json:"imageLink"`
	Published   *bool   `json:"published"`
}

// updateCourseRequest is a partial patch: absent fields leave the
// stored value untouched.
type updateCourseRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageLink   *string  `json:"imageLink"`
	Published   *bool    `json:"published"`
}

// --- Response types ---

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type createCourseResponse struct {
	Message  string `json:"message"`
	CourseID string `json:"courseId"`
}

type courseListResponse struct {
	Message string          `json:"message,omitempty"`
	Courses []domain.Course `json:"courses"`
}

type courseResponse struct {
	Message string         `json:"message"`
	Course  *domain.Course `json:"course"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type purchaseResponse struct {
	Message          string   `json:"message"`
	CourseID         string   `json:"courseId"`
	PurchasedCourses []string `json:"purchasedCourses"`
}

type purchasedCoursesResponse struct {
	PurchasedCourses []domain.Course `json:"purchasedCourses"`
}
