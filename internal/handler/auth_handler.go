package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"apoteka/internal/auth"
	apperrors "apoteka/internal/errors"
	"apoteka/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Username  string `json:"username" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse represents a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register godoc
// @Summary Register a new customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		switch err {
		case service.ErrUsernameTaken, service.ErrEmailTaken:
			return echo.NewHTTPError(http.StatusConflict, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "ALREADY_REGISTERED",
			})
		default:
			return httpError(err)
		}
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Authenticate and receive an access token
// @Description Sets the access_token cookie and returns the bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_CREDENTIALS",
			})
		}
		return httpError(err)
	}

	auth.SetTokenCookie(c, token, h.authService.TokenTTL())
	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Logout godoc
// @Summary Log out
// @Description Clears the access_token cookie. The token itself stays
// @Description valid until it expires; there is no server-side revocation.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	auth.ClearTokenCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "successfully logged out"})
}
