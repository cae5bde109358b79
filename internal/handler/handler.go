package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "apoteka/internal/errors"
)

// dateLayout is the wire format for date-only fields.
const dateLayout = "2006-01-02"

// httpError converts a domain error into the standard error envelope.
func httpError(err error) error {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// badRequest returns a 400 with the given message.
func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// pathID parses the named path parameter as an unsigned integer id.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, badRequest("invalid "+name, "INVALID_ID")
	}
	return uint(id), nil
}

// parseDate parses an optional YYYY-MM-DD string.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, badRequest("date must be YYYY-MM-DD", "INVALID_DATE")
	}
	return &t, nil
}
