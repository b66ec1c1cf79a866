package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bikerental/internal/service"
)

const dateFormat = "2006-01-02"

// ReportHandler handles HTTP requests for report exports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportRequest is the HTTP request body for generating a report.
type ReportRequest struct {
	Kind      string `json:"kind" binding:"required"`
	Format    string `json:"format" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// ReportResponse is the HTTP response for a generated report.
type ReportResponse struct {
	Kind     string `json:"kind"`
	Format   string `json:"format"`
	FilePath string `json:"file_path,omitempty"`
	RowCount int    `json:"row_count"`
	Message  string `json:"message"`
}

// Generate handles POST /v1/reports
func (h *ReportHandler) Generate(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	start, err := time.ParseInLocation(dateFormat, req.StartDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date must use format " + dateFormat})
		return
	}
	end, err := time.ParseInLocation(dateFormat, req.EndDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date must use format " + dateFormat})
		return
	}

	result, err := h.reportService.Generate(
		c.Request.Context(),
		service.ReportKind(req.Kind),
		service.ReportFormat(req.Format),
		start,
		end,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ReportResponse{
		Kind:     string(result.Kind),
		Format:   string(result.Format),
		FilePath: result.FilePath,
		RowCount: result.RowCount,
		Message:  result.Message,
	})
}
