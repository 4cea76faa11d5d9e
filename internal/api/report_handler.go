package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"society-backend-go/internal/core"
	"society-backend-go/internal/db"
)

// ReportHandler handles the admin report and dashboard endpoints.
type ReportHandler struct {
	reportService    core.ReportService
	occupancyService core.OccupancyService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs core.ReportService, occ core.OccupancyService) *ReportHandler {
	return &ReportHandler{reportService: rs, occupancyService: occ}
}

func mapReportErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidReportType):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidReportType.Error()})
	case errors.Is(err, db.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Data store is temporarily unavailable"})
	default:
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// GenerateReport handles GET /reports/:reportType
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	reportType := core.ReportType(c.Param("reportType"))

	report, err := h.reportService.GenerateReport(c.Request.Context(), reportType)
	if err != nil {
		mapReportErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetDashboardStats handles GET /dashboard/stats
func (h *ReportHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.reportService.DashboardStats(c.Request.Context())
	if err != nil {
		mapReportErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetOccupancyDrift handles GET /dashboard/drift, the on-demand report of
// flats whose stored status disagrees with the derived occupancy.
func (h *ReportHandler) GetOccupancyDrift(c *gin.Context) {
	drifts, err := h.occupancyService.ReconcileOccupancy(c.Request.Context())
	if err != nil {
		mapReportErrorToStatus(c, err)
		return
	}
	if drifts == nil {
		drifts = []core.OccupancyDrift{}
	}
	c.JSON(http.StatusOK, drifts)
}
