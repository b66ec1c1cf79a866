package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bikerental/internal/domain"
	"bikerental/internal/service"
)

// ClientHandler handles HTTP requests for clients.
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// ClientRequest is the HTTP request body for creating or updating a client.
type ClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Document string `json:"document" binding:"required"`
}

// ClientResponse is the HTTP response for client operations.
type ClientResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Document  string `json:"document"`
	CreatedAt string `json:"created_at"`
}

func toClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Phone:     client.Phone,
		Email:     client.Email,
		Document:  client.Document,
		CreatedAt: client.CreatedAt.Format(timeFormat),
	}
}

// Create handles POST /v1/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	client, err := h.clientService.Register(c.Request.Context(), service.RegisterClientRequest{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Document: req.Document,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toClientResponse(client))
}

// Update handles PUT /v1/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), service.UpdateClientRequest{
		ClientID: c.Param("id"),
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Document: req.Document,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toClientResponse(client))
}

// Get handles GET /v1/clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.clientService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toClientResponse(client))
}

// GetAll handles GET /v1/clients. An optional ?q= query switches to
// substring search over name, phone and email.
func (h *ClientHandler) GetAll(c *gin.Context) {
	clients, err := h.clientService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ClientResponse, 0, len(clients))
	for _, client := range clients {
		response = append(response, toClientResponse(client))
	}

	respondJSON(c, http.StatusOK, response)
}

// Delete handles DELETE /v1/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.clientService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RentalHistoryResponse is one entry of a client's rental history.
type RentalHistoryResponse struct {
	RentalID      string  `json:"rental_id"`
	BikeModel     string  `json:"bike_model"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time,omitempty"`
	DurationHours int     `json:"duration_hours"`
	Status        string  `json:"status"`
	TotalCost     float64 `json:"total_cost"`
}

// History handles GET /v1/clients/:id/history
func (h *ClientHandler) History(c *gin.Context) {
	entries, err := h.clientService.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RentalHistoryResponse, 0, len(entries))
	for _, e := range entries {
		r := RentalHistoryResponse{
			RentalID:      e.ID,
			BikeModel:     e.BikeModel,
			StartTime:     e.StartTime.Format(timeFormat),
			DurationHours: e.DurationHours,
			Status:        string(e.Status),
			TotalCost:     e.TotalCost,
		}
		if !e.EndTime.IsZero() {
			r.EndTime = e.EndTime.Format(timeFormat)
		}
		response = append(response, r)
	}

	respondJSON(c, http.StatusOK, response)
}
