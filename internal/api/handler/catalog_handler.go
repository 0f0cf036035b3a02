package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnly/course-market/internal/core/ports"
)

// CatalogHandler serves the admin-gated course CRUD surface.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Create handles POST /admin/courses.
//
// @Summary      Create a course
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course details"
// @Success      201   {object}  createCourseResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/courses [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	courseID, err := h.catalog.CreateCourse(c.Request().Context(), ports.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageLink:   req.ImageLink,
		Published:   req.Published,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createCourseResponse{
		Message:  "Course created successfully",
		CourseID: courseID,
	})
}

// ListAll handles GET /admin/courses. Admins see every course
// regardless of published state.
//
// @Summary      List all courses
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  courseListResponse
// @Router       /admin/courses [get]
func (h *CatalogHandler) ListAll(c echo.Context) error {
	courses, err := h.catalog.ListCourses(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courseListResponse{
		Message: "Successfully retrieved all courses",
		Courses: courses,
	})
}

// Get handles GET /admin/courses/:courseId.
//
// @Summary      Get one course
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string  true  "Course id"
// @Success      200       {object}  domain.Course
// @Failure      404       {object}  errorResponse
// @Router       /admin/courses/{courseId} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	course, err := h.catalog.GetCourse(c.Request().Context(), c.Param("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Update handles PUT /admin/courses/:courseId with a partial patch.
//
// @Summary      Update a course
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string               true  "Course id"
// @Param        body      body      updateCourseRequest  true  "Fields to update"
// @Success      200       {object}  courseResponse
// @Failure      404       {object}  errorResponse
// @Router       /admin/courses/{courseId} [put]
func (h *CatalogHandler) Update(c echo.Context) error {
	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	course, err := h.catalog.UpdateCourse(c.Request().Context(), c.Param("courseId"), ports.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageLink:   req.ImageLink,
		Published:   req.Published,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, courseResponse{
		Message: "Course updated successfully",
		Course:  course,
	})
}

// Delete handles DELETE /admin/courses/:courseId.
//
// @Summary      Delete a course
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string  true  "Course id"
// @Success      200       {object}  messageResponse
// @Failure      404       {object}  errorResponse
// @Router       /admin/courses/{courseId} [delete]
func (h *CatalogHandler) Delete(c echo.Context) error {
	if err := h.catalog.DeleteCourse(c.Request().Context(), c.Param("courseId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Course deleted successfully"})
}
