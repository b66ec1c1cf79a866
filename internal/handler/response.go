package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bikerental/internal/repository"
	"bikerental/internal/service"
)

// timeFormat is how timestamps are rendered in responses.
const timeFormat = "2006-01-02 15:04:05"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidClientID),
		errors.Is(err, service.ErrInvalidBikeID),
		errors.Is(err, service.ErrInvalidRentalID),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrInvalidDiscount),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidDocument),
		errors.Is(err, service.ErrInvalidModel),
		errors.Is(err, service.ErrInvalidSerial),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidBikeType),
		errors.Is(err, service.ErrInvalidBikeStatus),
		errors.Is(err, service.ErrZeroPrice),
		errors.Is(err, service.ErrUnknownReportKind),
		errors.Is(err, service.ErrUnknownReportFormat),
		errors.Is(err, service.ErrInvalidDateRange):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrBikeNotAvailable),
		errors.Is(err, service.ErrBikeRented),
		errors.Is(err, service.ErrRentalNotActive),
		errors.Is(err, service.ErrRentalBusy),
		errors.Is(err, service.ErrDuplicateSerial),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
