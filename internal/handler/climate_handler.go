package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"apoteka/internal/service"
)

// ClimateHandler handles storage-room temperature/humidity readings.
type ClimateHandler struct {
	climateService service.ClimateService
}

// NewClimateHandler creates a new climate handler.
func NewClimateHandler(climateService service.ClimateService) *ClimateHandler {
	return &ClimateHandler{climateService: climateService}
}

// ClimateReadingRequest represents a temperature/humidity reading.
type ClimateReadingRequest struct {
	Temperature float64 `json:"temperature" validate:"required"`
	Humidity    float64 `json:"humidity" validate:"required,gte=0,lte=100"`
}

// Record godoc
// @Summary Record a temperature/humidity reading
// @Tags climate
// @Accept json
// @Produce json
// @Param request body ClimateReadingRequest true "Reading"
// @Success 201 {object} model.TemperatureHumidityLog
// @Failure 400 {object} errors.ErrorResponse
// @Router /temperature-humidity [post]
func (h *ClimateHandler) Record(c echo.Context) error {
	var req ClimateReadingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	entry, err := h.climateService.Record(c.Request().Context(), req.Temperature, req.Humidity)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// Get godoc
// @Summary Get a reading by id
// @Tags climate
// @Produce json
// @Param id path int true "Reading ID"
// @Success 200 {object} model.TemperatureHumidityLog
// @Failure 404 {object} errors.ErrorResponse
// @Router /temperature-humidity/{id} [get]
func (h *ClimateHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	entry, err := h.climateService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// List godoc
// @Summary List readings, newest first
// @Tags climate
// @Produce json
// @Success 200 {array} model.TemperatureHumidityLog
// @Router /temperature-humidity [get]
func (h *ClimateHandler) List(c echo.Context) error {
	entries, err := h.climateService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// Update godoc
// @Summary Correct a reading
// @Tags climate
// @Accept json
// @Produce json
// @Param id path int true "Reading ID"
// @Param request body ClimateReadingRequest true "Corrected reading"
// @Success 200 {object} model.TemperatureHumidityLog
// @Failure 404 {object} errors.ErrorResponse
// @Router /temperature-humidity/{id} [put]
func (h *ClimateHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ClimateReadingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	entry, err := h.climateService.Update(c.Request().Context(), id, req.Temperature, req.Humidity)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete a reading
// @Tags climate
// @Produce json
// @Param id path int true "Reading ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /temperature-humidity/{id} [delete]
func (h *ClimateHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.climateService.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "reading deleted successfully"})
}
