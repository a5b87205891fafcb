package handler

import (
	"github.com/Shrey0428/ExoticBill/internal/application/service"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/request"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// HoodHandler handles hood HTTP requests
type HoodHandler struct {
	hoodService *service.HoodService
}

// NewHoodHandler creates a new hood handler
func NewHoodHandler(hoodService *service.HoodService) *HoodHandler {
	return &HoodHandler{hoodService: hoodService}
}

// List handles listing hoods
func (h *HoodHandler) List(c *gin.Context) {
	hoods, err := h.hoodService.ListHoods(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Hoods retrieved successfully", hoods)
}

// Create handles creating a hood
func (h *HoodHandler) Create(c *gin.Context) {
	var req request.CreateHoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	hood, err := h.hoodService.CreateHood(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Hood created successfully", hood)
}

// Delete handles removing a hood; its members move to the default hood
func (h *HoodHandler) Delete(c *gin.Context) {
	if err := h.hoodService.DeleteHood(c.Request.Context(), c.Param("name")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Hood deleted successfully", nil)
}
