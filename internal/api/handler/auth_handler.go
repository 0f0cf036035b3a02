package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnly/course-market/internal/core/ports"
)

// AuthHandler serves signup and login for both the admin and user
// namespaces. Error-to-status mapping lives in the central HTTP error
// handler; handlers only return domain errors.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AdminSignup creates a new admin account.
//
// @Summary      Register a new admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Admin credentials"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/signup [post]
func (h *AuthHandler) AdminSignup(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	token, err := h.authService.SignupAdmin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tokenResponse{Message: "Admin created successfully", Token: token})
}

// AdminLogin authenticates an admin and returns a token.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Admin credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  errorResponse
// @Router       /admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	token, err := h.authService.LoginAdmin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Message: "Logged in successfully", Token: token})
}

// UserSignup creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "User credentials"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/signup [post]
func (h *AuthHandler) UserSignup(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	token, err := h.authService.SignupUser(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tokenResponse{Message: "User created successfully", Token: token})
}

// UserLogin authenticates a user and returns a token.
//
// @Summary      User login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "User credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  errorResponse
// @Router       /users/login [post]
func (h *AuthHandler) UserLogin(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	token, err := h.authService.LoginUser(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Message: "Logged in successfully", Token: token})
}

func bindCredentials(c echo.Context) (*credentialsRequest, error) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &req, nil
}
