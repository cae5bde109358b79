package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"apoteka/internal/service"
)

// MedicineHandler handles inventory endpoints.
type MedicineHandler struct {
	medicineService service.MedicineService
}

// NewMedicineHandler creates a new medicine handler.
func NewMedicineHandler(medicineService service.MedicineService) *MedicineHandler {
	return &MedicineHandler{medicineService: medicineService}
}

// CreateMedicineRequest represents a new medicine record.
type CreateMedicineRequest struct {
	Name           string          `json:"name" validate:"required"`
	Description    string          `json:"description"`
	Manufacturer   string          `json:"manufacturer"`
	DosageForm     string          `json:"dosage_form"`
	Strength       string          `json:"strength"`
	Quantity       int             `json:"quantity" validate:"gte=0"`
	ExpirationDate string          `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	Price          decimal.Decimal `json:"price"`
	TypeID         uint            `json:"type_id" validate:"required"`
	SupplierID     *uint           `json:"supplier_id"`
	ImagePath      string          `json:"image_path"`
}

// UpdateMedicineRequest represents partial changes to a medicine.
type UpdateMedicineRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Manufacturer   *string          `json:"manufacturer"`
	DosageForm     *string          `json:"dosage_form"`
	Strength       *string          `json:"strength"`
	ExpirationDate *string          `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	Price          *decimal.Decimal `json:"price"`
	TypeID         *uint            `json:"type_id"`
	SupplierID     *uint            `json:"supplier_id"`
	ImagePath      *string          `json:"image_path"`
}

// AdjustQuantityRequest represents a signed stock adjustment.
type AdjustQuantityRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

// AdjustQuantityResponse reports the quantity after an adjustment.
type AdjustQuantityResponse struct {
	MedicineID  uint `json:"medicine_id"`
	NewQuantity int  `json:"new_quantity"`
}

// List godoc
// @Summary List all medicines
// @Tags medicine
// @Produce json
// @Success 200 {array} model.Medicine
// @Failure 401 {object} errors.ErrorResponse
// @Router /medicine [get]
func (h *MedicineHandler) List(c echo.Context) error {
	medicines, err := h.medicineService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, medicines)
}

// Get godoc
// @Summary Get a medicine by id
// @Tags medicine
// @Produce json
// @Param id path int true "Medicine ID"
// @Success 200 {object} model.Medicine
// @Failure 404 {object} errors.ErrorResponse
// @Router /medicine/{id} [get]
func (h *MedicineHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	medicine, err := h.medicineService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, medicine)
}

// Create godoc
// @Summary Add a medicine
// @Tags medicine
// @Accept json
// @Produce json
// @Param request body CreateMedicineRequest true "Medicine data"
// @Success 201 {object} model.Medicine
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /medicine [post]
func (h *MedicineHandler) Create(c echo.Context) error {
	var req CreateMedicineRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	expiration, err := parseDate(req.ExpirationDate)
	if err != nil {
		return err
	}

	medicine, err := h.medicineService.Create(c.Request().Context(), service.CreateMedicineInput{
		Name:           req.Name,
		Description:    req.Description,
		Manufacturer:   req.Manufacturer,
		DosageForm:     req.DosageForm,
		Strength:       req.Strength,
		Quantity:       req.Quantity,
		ExpirationDate: expiration,
		Price:          req.Price,
		TypeID:         req.TypeID,
		SupplierID:     req.SupplierID,
		ImagePath:      req.ImagePath,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, medicine)
}

// Update godoc
// @Summary Update a medicine
// @Description Partial update; quantity changes go through the adjust endpoint.
// @Tags medicine
// @Accept json
// @Produce json
// @Param id path int true "Medicine ID"
// @Param request body UpdateMedicineRequest true "Changes"
// @Success 200 {object} model.Medicine
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /medicine/{id} [put]
func (h *MedicineHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateMedicineRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	input := service.UpdateMedicineInput{
		Name:         req.Name,
		Description:  req.Description,
		Manufacturer: req.Manufacturer,
		DosageForm:   req.DosageForm,
		Strength:     req.Strength,
		Price:        req.Price,
		TypeID:       req.TypeID,
		SupplierID:   req.SupplierID,
		ImagePath:    req.ImagePath,
	}
	if req.ExpirationDate != nil {
		expiration, err := parseDate(*req.ExpirationDate)
		if err != nil {
			return err
		}
		input.ExpirationDate = expiration
	}

	medicine, err := h.medicineService.Update(c.Request().Context(), id, input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, medicine)
}

// Delete godoc
// @Summary Delete a medicine
// @Tags medicine
// @Produce json
// @Param id path int true "Medicine ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /medicine/{id} [delete]
func (h *MedicineHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.medicineService.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "medicine deleted successfully"})
}

// AdjustQuantity godoc
// @Summary Adjust stock for a medicine
// @Description Applies a signed delta and appends a stock log entry atomically.
// @Tags medicine
// @Accept json
// @Produce json
// @Param id path int true "Medicine ID"
// @Param request body AdjustQuantityRequest true "Adjustment"
// @Success 200 {object} AdjustQuantityResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /medicine/{id}/adjust [post]
func (h *MedicineHandler) AdjustQuantity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req AdjustQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	newQuantity, err := h.medicineService.AdjustQuantity(c.Request().Context(), id, req.Delta, req.Reason)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, AdjustQuantityResponse{
		MedicineID:  id,
		NewQuantity: newQuantity,
	})
}

// ExpiringSoon godoc
// @Summary List medicines expiring within 90 days
// @Tags medicine
// @Produce json
// @Success 200 {array} model.Medicine
// @Router /medicine/expiring-soon [get]
func (h *MedicineHandler) ExpiringSoon(c echo.Context) error {
	medicines, err := h.medicineService.ExpiringSoon(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, medicines)
}

// StockHistory godoc
// @Summary Stock audit trail for a medicine
// @Tags medicine
// @Produce json
// @Param id path int true "Medicine ID"
// @Success 200 {array} model.StockLog
// @Failure 404 {object} errors.ErrorResponse
// @Router /medicine/{id}/stock-log [get]
func (h *MedicineHandler) StockHistory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	entries, err := h.medicineService.StockHistory(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entries)
}
