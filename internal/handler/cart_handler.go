package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"apoteka/internal/auth"
	apperrors "apoteka/internal/errors"
	"apoteka/internal/service"
)

// CartHandler handles the shopping cart and checkout endpoints.
type CartHandler struct {
	cartService     service.CartService
	checkoutService service.CheckoutService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService, checkoutService service.CheckoutService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

// AddToCartRequest represents a cart addition.
type AddToCartRequest struct {
	MedicineID uint `json:"medicine_id" validate:"required"`
	Quantity   int  `json:"quantity" validate:"required,min=1"`
}

// Add godoc
// @Summary Add a medicine to the cart
// @Description Adding a medicine already in the cart increments its quantity.
// @Tags cart
// @Accept json
// @Produce json
// @Param request body AddToCartRequest true "Item"
// @Success 201 {object} model.CartItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /shopping-cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return httpError(apperrors.ErrUnauthorized)
	}

	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	item, err := h.cartService.AddItem(c.Request().Context(), user.ID, req.MedicineID, req.Quantity)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// List godoc
// @Summary List the current user's cart
// @Tags cart
// @Produce json
// @Success 200 {array} model.CartItem
// @Failure 401 {object} errors.ErrorResponse
// @Router /shopping-cart [get]
func (h *CartHandler) List(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return httpError(apperrors.ErrUnauthorized)
	}
	items, err := h.cartService.ListItems(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Remove godoc
// @Summary Remove an item from the cart
// @Tags cart
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /shopping-cart/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return httpError(apperrors.ErrUnauthorized)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.cartService.RemoveItem(c.Request().Context(), user.ID, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "item removed from cart"})
}

// Checkout godoc
// @Summary Check out the current user's cart
// @Description Commits every cart line against inventory in one transaction.
// @Description If any line cannot be satisfied, nothing changes.
// @Tags cart
// @Produce json
// @Success 200 {object} service.CheckoutResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /shopping-cart/checkout [post]
func (h *CartHandler) Checkout(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return httpError(apperrors.ErrUnauthorized)
	}
	result, err := h.checkoutService.Checkout(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}
