package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"apoteka/internal/model"
	"apoteka/internal/service"
)

// LookupHandler handles the medicine type and supplier lookup tables.
type LookupHandler struct {
	lookupService service.LookupService
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(lookupService service.LookupService) *LookupHandler {
	return &LookupHandler{lookupService: lookupService}
}

// MedicineTypeRequest represents a medicine type.
type MedicineTypeRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateMedicineTypeRequest represents partial medicine type changes.
type UpdateMedicineTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// SupplierRequest represents a supplier.
type SupplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// UpdateSupplierRequest represents partial supplier changes.
type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

// ListMedicineTypes godoc
// @Summary List medicine types
// @Tags lookups
// @Produce json
// @Success 200 {array} model.MedicineType
// @Router /medicine-types [get]
func (h *LookupHandler) ListMedicineTypes(c echo.Context) error {
	types, err := h.lookupService.ListMedicineTypes(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, types)
}

// CreateMedicineType godoc
// @Summary Create a medicine type
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body MedicineTypeRequest true "Medicine type"
// @Success 201 {object} model.MedicineType
// @Failure 400 {object} errors.ErrorResponse
// @Router /medicine-types [post]
func (h *LookupHandler) CreateMedicineType(c echo.Context) error {
	var req MedicineTypeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	mt, err := h.lookupService.CreateMedicineType(c.Request().Context(), &model.MedicineType{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, mt)
}

// UpdateMedicineType godoc
// @Summary Update a medicine type
// @Tags lookups
// @Accept json
// @Produce json
// @Param id path int true "Medicine type ID"
// @Param request body UpdateMedicineTypeRequest true "Changes"
// @Success 200 {object} model.MedicineType
// @Failure 404 {object} errors.ErrorResponse
// @Router /medicine-types/{id} [put]
func (h *LookupHandler) UpdateMedicineType(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateMedicineTypeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	mt, err := h.lookupService.UpdateMedicineType(c.Request().Context(), id, req.Name, req.Description)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, mt)
}

// DeleteMedicineType godoc
// @Summary Delete a medicine type
// @Tags lookups
// @Produce json
// @Param id path int true "Medicine type ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /medicine-types/{id} [delete]
func (h *LookupHandler) DeleteMedicineType(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.lookupService.DeleteMedicineType(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "medicine type deleted successfully"})
}

// ListSuppliers godoc
// @Summary List suppliers
// @Tags lookups
// @Produce json
// @Success 200 {array} model.Supplier
// @Router /suppliers [get]
func (h *LookupHandler) ListSuppliers(c echo.Context) error {
	suppliers, err := h.lookupService.ListSuppliers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, suppliers)
}

// CreateSupplier godoc
// @Summary Create a supplier
// @Tags lookups
// @Accept json
// @Produce json
// @Param request body SupplierRequest true "Supplier"
// @Success 201 {object} model.Supplier
// @Failure 400 {object} errors.ErrorResponse
// @Router /suppliers [post]
func (h *LookupHandler) CreateSupplier(c echo.Context) error {
	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	supplier, err := h.lookupService.CreateSupplier(c.Request().Context(), &model.Supplier{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, supplier)
}

// UpdateSupplier godoc
// @Summary Update a supplier
// @Tags lookups
// @Accept json
// @Produce json
// @Param id path int true "Supplier ID"
// @Param request body UpdateSupplierRequest true "Changes"
// @Success 200 {object} model.Supplier
// @Failure 404 {object} errors.ErrorResponse
// @Router /suppliers/{id} [put]
func (h *LookupHandler) UpdateSupplier(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateSupplierRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	supplier, err := h.lookupService.UpdateSupplier(c.Request().Context(), id, service.UpdateSupplierInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier godoc
// @Summary Delete a supplier
// @Tags lookups
// @Produce json
// @Param id path int true "Supplier ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /suppliers/{id} [delete]
func (h *LookupHandler) DeleteSupplier(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.lookupService.DeleteSupplier(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "supplier deleted successfully"})
}
