package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/divyandj/pdfchat-api/internal/core/domain"
	"github.com/divyandj/pdfchat-api/internal/core/ports"
)

// AuthHandler handles signup and login. The 4xx/5xx wire messages here are a
// contract with the shipped frontend and must not be reworded.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates a new user account.
//
// @Summary      Sign up a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Email and password"
// @Success      201   {object}  messageOnlyResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if _, err := h.authService.Signup(c.Request().Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Signup failed. Please try again."})
	}

	return c.JSON(http.StatusCreated, messageOnlyResponse{Message: "User created successfully"})
}

// Login verifies credentials and returns a bearer token.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Email and password"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Login failed. Please try again."})
	}

	return c.JSON(http.StatusOK, loginResponse{Message: "Login successful", Token: token})
}
