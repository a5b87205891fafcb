package handler

import (
	"github.com/Shrey0428/ExoticBill/internal/application/service"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/request"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// LoyaltyHandler handles loyalty point HTTP requests
type LoyaltyHandler struct {
	loyaltyService *service.LoyaltyService
}

// NewLoyaltyHandler creates a new loyalty handler
func NewLoyaltyHandler(loyaltyService *service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltyService: loyaltyService}
}

// Get handles reading a customer's balance. A customer who never earned points has zero.
func (h *LoyaltyHandler) Get(c *gin.Context) {
	customerCID := c.Param("customer_cid")

	account, err := h.loyaltyService.GetAccount(c.Request.Context(), customerCID)
	if err != nil {
		response.Error(c, err)
		return
	}

	var points int64
	if account != nil {
		points = account.Points
	}

	response.OK(c, "Loyalty balance retrieved successfully", gin.H{
		"customer_cid": customerCID,
		"points":       points,
		"account":      account,
	})
}

// History handles listing a customer's point movements
func (h *LoyaltyHandler) History(c *gin.Context) {
	history, err := h.loyaltyService.History(c.Request.Context(), c.Param("customer_cid"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Loyalty history retrieved successfully", history)
}

// Adjust handles a manual balance change
func (h *LoyaltyHandler) Adjust(c *gin.Context) {
	principal := GetPrincipal(c)
	if principal == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	account, err := h.loyaltyService.AdjustPoints(c.Request.Context(), &service.AdjustPointsInput{
		CustomerCID: c.Param("customer_cid"),
		Delta:       req.Delta,
		Reason:      req.Reason + " (by " + principal.Username + ")",
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Loyalty balance adjusted successfully", account)
}
