package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"apoteka/internal/auth"
	apperrors "apoteka/internal/errors"
	"apoteka/internal/model"
	"apoteka/internal/service"
)

// UserHandler handles profile and technician management.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// PasswordUpdateRequest carries an old/new password pair.
type PasswordUpdateRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// UpdateProfileRequest represents a profile update; absent fields are untouched.
type UpdateProfileRequest struct {
	FirstName    *string                `json:"first_name"`
	LastName     *string                `json:"last_name"`
	Email        *string                `json:"email" validate:"omitempty,email"`
	Address      *string                `json:"address"`
	Phone        *string                `json:"phone"`
	PasswordData *PasswordUpdateRequest `json:"password_data"`
}

// CreateTechnicianRequest represents a new technician account.
type CreateTechnicianRequest struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Username  string  `json:"username" validate:"required,min=3"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	Status    *string `json:"status" validate:"omitempty,oneof=active on_leave vacation"`
}

// UpdateStatusRequest represents a technician status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active on_leave vacation"`
}

// Me godoc
// @Summary Current user profile
// @Tags users
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return httpError(apperrors.ErrUnauthorized)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update current user profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile changes"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return httpError(apperrors.ErrUnauthorized)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	input := service.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Address:   req.Address,
		Phone:     req.Phone,
	}
	if req.PasswordData != nil {
		input.PasswordData = &service.PasswordUpdate{
			OldPassword: req.PasswordData.OldPassword,
			NewPassword: req.PasswordData.NewPassword,
		}
	}

	updated, err := h.userService.UpdateProfile(c.Request().Context(), user.ID, input)
	if err != nil {
		switch err {
		case service.ErrEmailTaken, service.ErrWrongPassword:
			return badRequest(err.Error(), "PROFILE_UPDATE_REJECTED")
		default:
			return httpError(err)
		}
	}
	return c.JSON(http.StatusOK, updated)
}

// ListTechnicians godoc
// @Summary List technicians
// @Tags technicians
// @Produce json
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /technicians [get]
func (h *UserHandler) ListTechnicians(c echo.Context) error {
	technicians, err := h.userService.ListTechnicians(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, technicians)
}

// CreateTechnician godoc
// @Summary Create a technician account
// @Tags technicians
// @Accept json
// @Produce json
// @Param request body CreateTechnicianRequest true "Technician data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /technicians [post]
func (h *UserHandler) CreateTechnician(c echo.Context) error {
	var req CreateTechnicianRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	input := service.TechnicianInput{
		RegisterInput: service.RegisterInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Username:  req.Username,
			Email:     req.Email,
			Password:  req.Password,
		},
	}
	if req.Status != nil {
		status := model.EmployeeStatus(*req.Status)
		input.Status = &status
	}

	technician, err := h.userService.CreateTechnician(c.Request().Context(), input)
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
	return c.JSON(http.StatusCreated, technician)
}

// UpdateTechnicianStatus godoc
// @Summary Update a technician's employee status
// @Tags technicians
// @Accept json
// @Produce json
// @Param id path int true "Technician ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /technicians/{id}/status [put]
func (h *UserHandler) UpdateTechnicianStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	technician, err := h.userService.UpdateTechnicianStatus(
		c.Request().Context(), id, model.EmployeeStatus(req.Status))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, technician)
}
