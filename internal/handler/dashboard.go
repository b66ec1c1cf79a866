package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bikerental/internal/service"
)

// DashboardHandler handles HTTP requests for the dashboard.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardResponse is the HTTP response for dashboard statistics.
type DashboardResponse struct {
	AvailableBikes int     `json:"available_bikes"`
	ActiveRentals  int     `json:"active_rentals"`
	Clients        int     `json:"clients"`
	IncomeToday    float64 `json:"income_today"`
}

// Get handles GET /v1/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, DashboardResponse{
		AvailableBikes: stats.AvailableBikes,
		ActiveRentals:  stats.ActiveRentals,
		Clients:        stats.Clients,
		IncomeToday:    stats.IncomeToday,
	})
}
