package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
	"bikerental/internal/service"
)

// BikeHandler handles HTTP requests for bikes.
type BikeHandler struct {
	bikeService *service.BikeService
}

// NewBikeHandler creates a new BikeHandler.
func NewBikeHandler(bikeService *service.BikeService) *BikeHandler {
	return &BikeHandler{bikeService: bikeService}
}

// BikeRequest is the HTTP request body for creating or updating a bike.
type BikeRequest struct {
	Model        string  `json:"model" binding:"required"`
	SerialNumber string  `json:"serial_number" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	PricePerHour float64 `json:"price_per_hour" binding:"required"`
}

// BikeResponse is the HTTP response for bike operations.
type BikeResponse struct {
	ID           string  `json:"id"`
	Model        string  `json:"model"`
	SerialNumber string  `json:"serial_number"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	PricePerHour float64 `json:"price_per_hour"`
}

func toBikeResponse(bike *domain.Bike) BikeResponse {
	return BikeResponse{
		ID:           bike.ID,
		Model:        bike.Model,
		SerialNumber: bike.SerialNumber,
		Type:         string(bike.Type),
		Status:       string(bike.Status),
		PricePerHour: bike.PricePerHour,
	}
}

// Create handles POST /v1/bikes
func (h *BikeHandler) Create(c *gin.Context) {
	var req BikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	bike, err := h.bikeService.Register(c.Request.Context(), service.RegisterBikeRequest{
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Type:         domain.BikeType(req.Type),
		PricePerHour: req.PricePerHour,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBikeResponse(bike))
}

// Update handles PUT /v1/bikes/:id
func (h *BikeHandler) Update(c *gin.Context) {
	var req BikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	bike, err := h.bikeService.Update(c.Request.Context(), service.UpdateBikeRequest{
		BikeID:       c.Param("id"),
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Type:         domain.BikeType(req.Type),
		PricePerHour: req.PricePerHour,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBikeResponse(bike))
}

// StatusRequest is the HTTP request body for a bike status change.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeStatus handles POST /v1/bikes/:id/status
func (h *BikeHandler) ChangeStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.bikeService.ChangeStatus(c.Request.Context(), c.Param("id"), domain.BikeStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAll handles GET /v1/bikes. Optional query parameters: ?q= substring
// match over model and serial, ?type= and ?status= exact filters,
// ?available=true shortcut.
func (h *BikeHandler) GetAll(c *gin.Context) {
	var (
		bikes []*domain.Bike
		err   error
	)

	query := c.Query("q")
	bikeType := c.Query("type")
	status := c.Query("status")

	switch {
	case c.Query("available") == "true":
		bikes, err = h.bikeService.GetAvailable(c.Request.Context())
	case query != "" || bikeType != "" || status != "":
		bikes, err = h.bikeService.Search(c.Request.Context(), repository.BikeFilter{
			Query:  query,
			Type:   domain.BikeType(bikeType),
			Status: domain.BikeStatus(status),
		})
	default:
		bikes, err = h.bikeService.GetAll(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BikeResponse, 0, len(bikes))
	for _, bike := range bikes {
		response = append(response, toBikeResponse(bike))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetAvailable handles GET /v1/bikes/available
func (h *BikeHandler) GetAvailable(c *gin.Context) {
	bikes, err := h.bikeService.GetAvailable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BikeResponse, 0, len(bikes))
	for _, bike := range bikes {
		response = append(response, toBikeResponse(bike))
	}

	respondJSON(c, http.StatusOK, response)
}

// Delete handles DELETE /v1/bikes/:id
func (h *BikeHandler) Delete(c *gin.Context) {
	if err := h.bikeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
