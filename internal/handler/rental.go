package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bikerental/internal/domain"
	"bikerental/internal/service"
)

// RentalHandler handles HTTP requests for rentals.
type RentalHandler struct {
	rentalService  *service.RentalService
	pricingService *service.PricingService
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(rentalService *service.RentalService, pricingService *service.PricingService) *RentalHandler {
	return &RentalHandler{
		rentalService:  rentalService,
		pricingService: pricingService,
	}
}

// CreateRentalRequest is the HTTP request body for creating a rental.
type CreateRentalRequest struct {
	ClientID        string  `json:"client_id" binding:"required"`
	BikeID          string  `json:"bike_id" binding:"required"`
	StartTime       string  `json:"start_time"`
	DurationHours   int     `json:"duration_hours" binding:"required"`
	DiscountPercent float64 `json:"discount_percent"`
	PaymentMethod   string  `json:"payment_method" binding:"required"`
}

// RentalResponse is the HTTP response for rental operations.
type RentalResponse struct {
	RentalID        string  `json:"rental_id"`
	ClientID        string  `json:"client_id"`
	BikeID          string  `json:"bike_id"`
	StartTime       string  `json:"start_time"`
	ExpectedEnd     string  `json:"expected_end"`
	EndTime         string  `json:"end_time,omitempty"`
	DurationHours   int     `json:"duration_hours"`
	Status          string  `json:"status"`
	BaseCost        float64 `json:"base_cost"`
	PenaltyCost     float64 `json:"penalty_cost"`
	TotalCost       float64 `json:"total_cost"`
	DiscountPercent float64 `json:"discount_percent"`
}

func toRentalResponse(rental *domain.Rental) RentalResponse {
	response := RentalResponse{
		RentalID:        rental.ID,
		ClientID:        rental.ClientID,
		BikeID:          rental.BikeID,
		StartTime:       rental.StartTime.Format(timeFormat),
		ExpectedEnd:     rental.ExpectedEnd().Format(timeFormat),
		DurationHours:   rental.DurationHours,
		Status:          string(rental.Status),
		BaseCost:        rental.BaseCost,
		PenaltyCost:     rental.PenaltyCost,
		TotalCost:       rental.TotalCost,
		DiscountPercent: rental.DiscountPercent,
	}
	if !rental.EndTime.IsZero() {
		response.EndTime = rental.EndTime.Format(timeFormat)
	}

	return response
}

// Create handles POST /v1/rentals
func (h *RentalHandler) Create(c *gin.Context) {
	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var start time.Time
	if req.StartTime != "" {
		var err error
		start, err = time.ParseInLocation(timeFormat, req.StartTime, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_time must use format " + timeFormat})
			return
		}
	}

	rental, err := h.rentalService.Create(c.Request.Context(), service.CreateRentalRequest{
		ClientID:        req.ClientID,
		BikeID:          req.BikeID,
		StartTime:       start,
		DurationHours:   req.DurationHours,
		DiscountPercent: req.DiscountPercent,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRentalResponse(rental))
}

// Get handles GET /v1/rentals/:id
func (h *RentalHandler) Get(c *gin.Context) {
	rental, err := h.rentalService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRentalResponse(rental))
}

// GetActive handles GET /v1/rentals/active
func (h *RentalHandler) GetActive(c *gin.Context) {
	rentals, err := h.rentalService.GetActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		response = append(response, toRentalResponse(rental))
	}

	respondJSON(c, http.StatusOK, response)
}

// Complete handles POST /v1/rentals/:id/complete
func (h *RentalHandler) Complete(c *gin.Context) {
	rental, err := h.rentalService.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRentalResponse(rental))
}

// ExtendRentalRequest is the HTTP request body for extending a rental.
type ExtendRentalRequest struct {
	AdditionalHours int `json:"additional_hours" binding:"required"`
}

// Extend handles POST /v1/rentals/:id/extend
func (h *RentalHandler) Extend(c *gin.Context) {
	var req ExtendRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	rental, err := h.rentalService.Extend(c.Request.Context(), c.Param("id"), req.AdditionalHours)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRentalResponse(rental))
}

// Cancel handles DELETE /v1/rentals/:id
func (h *RentalHandler) Cancel(c *gin.Context) {
	if err := h.rentalService.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// QuoteRequest is the HTTP request body for a price quote.
type QuoteRequest struct {
	BikeID          string  `json:"bike_id" binding:"required"`
	DurationHours   int     `json:"duration_hours" binding:"required"`
	DiscountPercent float64 `json:"discount_percent"`
}

// QuoteResponse is the HTTP response for a price quote.
type QuoteResponse struct {
	BikeID          string  `json:"bike_id"`
	DurationHours   int     `json:"duration_hours"`
	DiscountPercent float64 `json:"discount_percent"`
	Price           float64 `json:"price"`
}

// Quote handles POST /v1/rentals/quote
func (h *RentalHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if req.DurationHours < service.MinRentalHours || req.DurationHours > service.MaxRentalHours {
		respondError(c, service.ErrInvalidDuration)
		return
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > service.MaxDiscountPercent {
		respondError(c, service.ErrInvalidDiscount)
		return
	}

	price, err := h.pricingService.Quote(c.Request.Context(), req.BikeID, req.DurationHours, req.DiscountPercent)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, QuoteResponse{
		BikeID:          req.BikeID,
		DurationHours:   req.DurationHours,
		DiscountPercent: req.DiscountPercent,
		Price:           price,
	})
}
