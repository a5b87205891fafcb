package handler

import (
	"strconv"

	"github.com/Shrey0428/ExoticBill/internal/application/service"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles back-office report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard handles the overview
// @Summary Dashboard
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param days query int false "Days in the daily revenue series"
// @Success 200 {object} response.APIResponse
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	dashboard, err := h.reportService.Dashboard(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", dashboard)
}

// Rankings handles the employee leaderboard
func (h *ReportHandler) Rankings(c *gin.Context) {
	metric, ok := enum.ParseRankMetric(c.Query("metric"))
	if !ok {
		response.Error(c, apperror.NewFieldError("metric", "Use revenue, commission or bills"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	ranked, err := h.reportService.RankEmployees(c.Request.Context(), metric, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rankings retrieved successfully", gin.H{
		"metric":    metric,
		"employees": ranked,
	})
}

// Hoods handles per-hood totals
func (h *ReportHandler) Hoods(c *gin.Context) {
	hoods, err := h.reportService.HoodSummaries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Hood summaries retrieved successfully", hoods)
}
