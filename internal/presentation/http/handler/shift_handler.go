package handler

import (
	"net/http"

	"github.com/Shrey0428/ExoticBill/internal/application/service"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/request"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ShiftHandler handles clock-in and clock-out HTTP requests
type ShiftHandler struct {
	shiftService *service.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// ClockIn handles opening a shift
func (h *ShiftHandler) ClockIn(c *gin.Context) {
	var req request.ShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	shift, err := h.shiftService.ClockIn(c.Request.Context(), req.EmployeeCID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Clocked in successfully", shift)
}

// ClockOut handles closing the open shift
func (h *ShiftHandler) ClockOut(c *gin.Context) {
	var req request.ShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	output, err := h.shiftService.ClockOut(c.Request.Context(), req.EmployeeCID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Clocked out successfully", output)
}

// List handles listing shifts, optionally for one employee
func (h *ShiftHandler) List(c *gin.Context) {
	result, err := h.shiftService.ListShifts(c.Request.Context(), c.Query("employee_cid"), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Shifts retrieved successfully", result)
}

// Open handles listing shifts that have not been closed
func (h *ShiftHandler) Open(c *gin.Context) {
	shifts, err := h.shiftService.OpenShifts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Open shifts retrieved successfully", shifts)
}
