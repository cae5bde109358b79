package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is returned for any authentication failure. It is
	// deliberately uninformative: missing cookie, bad signature, expired
	// token and unknown subject all surface the same way.
	ErrUnauthorized = stderrors.New("unauthorized")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = stderrors.New("user not found")
	// ErrMedicineNotFound is returned when a medicine is not found.
	ErrMedicineNotFound = stderrors.New("medicine not found")
	// ErrMedicineTypeNotFound is returned when a medicine type is not found.
	ErrMedicineTypeNotFound = stderrors.New("medicine type not found")
	// ErrSupplierNotFound is returned when a supplier is not found.
	ErrSupplierNotFound = stderrors.New("supplier not found")
	// ErrCartItemNotFound is returned when a cart item does not exist or
	// does not belong to the requesting user.
	ErrCartItemNotFound = stderrors.New("cart item not found")
	// ErrTaskNotFound is returned when a task is not found.
	ErrTaskNotFound = stderrors.New("task not found")
	// ErrLogEntryNotFound is returned when a temperature/humidity log is not found.
	ErrLogEntryNotFound = stderrors.New("log entry not found")
	// ErrNotificationNotFound is returned when a notification does not
	// exist or belongs to another user.
	ErrNotificationNotFound = stderrors.New("notification not found")
	// ErrEmptyCart is returned when checkout is attempted on an empty cart.
	ErrEmptyCart = stderrors.New("cart is empty")
	// ErrInvalidQuantity is returned when a quantity is zero or negative.
	ErrInvalidQuantity = stderrors.New("invalid quantity")
)

// InsufficientStockError is returned when a decrement would take a
// medicine's quantity below zero. It names the medicine and the
// quantity still available so the client can adjust the cart.
type InsufficientStockError struct {
	Medicine  string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s, available: %d", e.Medicine, e.Available)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var stock *InsufficientStockError
	if stderrors.As(err, &stock) {
		return NewHTTPError(http.StatusBadRequest, stock.Error(), "INSUFFICIENT_STOCK")
	}

	switch {
	case stderrors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case stderrors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case stderrors.Is(err, ErrMedicineNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MEDICINE_NOT_FOUND")
	case stderrors.Is(err, ErrMedicineTypeNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MEDICINE_TYPE_NOT_FOUND")
	case stderrors.Is(err, ErrSupplierNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SUPPLIER_NOT_FOUND")
	case stderrors.Is(err, ErrCartItemNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CART_ITEM_NOT_FOUND")
	case stderrors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case stderrors.Is(err, ErrLogEntryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "LOG_ENTRY_NOT_FOUND")
	case stderrors.Is(err, ErrNotificationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOTIFICATION_NOT_FOUND")
	case stderrors.Is(err, ErrEmptyCart):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMPTY_CART")
	case stderrors.Is(err, ErrInvalidQuantity):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_QUANTITY")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
