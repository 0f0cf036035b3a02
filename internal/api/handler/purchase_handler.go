package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnly/course-market/internal/core/ports"
)

// PurchaseHandler serves the user-facing catalog and purchase routes.
type PurchaseHandler struct {
	catalog   ports.CatalogService
	purchases ports.PurchaseService
}

func NewPurchaseHandler(catalog ports.CatalogService, purchases ports.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{catalog: catalog, purchases: purchases}
}

// ListPublished handles GET /users/courses. Users only ever see
// published courses.
//
// @Summary      List published courses
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  courseListResponse
// @Router       /users/courses [get]
func (h *PurchaseHandler) ListPublished(c echo.Context) error {
	courses, err := h.catalog.ListCourses(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courseListResponse{Courses: courses})
}

// Purchase handles POST /users/courses/:courseId.
//
// @Summary      Purchase a course
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string  true  "Course id"
// @Success      200       {object}  purchaseResponse
// @Failure      404       {object}  errorResponse
// @Failure      409       {object}  errorResponse
// @Router       /users/courses/{courseId} [post]
func (h *PurchaseHandler) Purchase(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	result, err := h.purchases.Purchase(c.Request().Context(), username, c.Param("courseId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, purchaseResponse{
		Message:          "Course purchased successfully",
		CourseID:         result.CourseID,
		PurchasedCourses: result.PurchasedCourses,
	})
}

// ListPurchased handles GET /users/purchasedCourses.
//
// @Summary      List purchased courses
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  purchasedCoursesResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/purchasedCourses [get]
func (h *PurchaseHandler) ListPurchased(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	courses, err := h.purchases.ListPurchased(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, purchasedCoursesResponse{PurchasedCourses: courses})
}

// ctxUsername extracts the identity injected by the Auth middleware.
// An empty value means the route was registered without the middleware
// and the request must not proceed.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
