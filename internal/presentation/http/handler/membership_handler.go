package handler

import (
	"github.com/Shrey0428/ExoticBill/internal/application/service"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/request"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// MembershipHandler handles membership HTTP requests
type MembershipHandler struct {
	membershipService *service.MembershipService
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(membershipService *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// Upsert handles selling or granting a membership
// @Summary Sell membership
// @Description Replace the customer's membership; paid tiers also record a MEMBERSHIP bill
// @Tags memberships
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.UpsertMembershipRequest true "Membership"
// @Success 201 {object} response.APIResponse
// @Router /memberships [post]
func (h *MembershipHandler) Upsert(c *gin.Context) {
	var req request.UpsertMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tier, ok := enum.ParseMembershipTier(req.Tier)
	if !ok {
		response.Error(c, apperror.NewFieldError("tier", "Unknown membership tier"))
		return
	}

	output, err := h.membershipService.UpsertMembership(c.Request.Context(), &service.UpsertMembershipInput{
		CustomerCID: req.CustomerCID,
		Tier:        tier,
		SellerCID:   req.SellerCID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Membership saved successfully", output)
}

// Check handles a membership lookup; an absent membership is not an error
func (h *MembershipHandler) Check(c *gin.Context) {
	customerCID := c.Param("customer_cid")

	status, err := h.membershipService.CheckMembership(c.Request.Context(), customerCID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if status == nil {
		response.OK(c, "No active membership", gin.H{
			"customer_cid": customerCID,
			"active":       false,
		})
		return
	}

	response.OK(c, "Membership retrieved successfully", gin.H{
		"active":     true,
		"membership": status,
	})
}

// ListActive handles listing every active membership
func (h *MembershipHandler) ListActive(c *gin.Context) {
	memberships, err := h.membershipService.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Memberships retrieved successfully", memberships)
}

// History handles listing a customer's archived memberships
func (h *MembershipHandler) History(c *gin.Context) {
	history, err := h.membershipService.History(c.Request.Context(), c.Param("customer_cid"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Membership history retrieved successfully", history)
}

// Sweep archives expired memberships on demand
func (h *MembershipHandler) Sweep(c *gin.Context) {
	archived, err := h.membershipService.SweepExpired(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expired memberships archived", gin.H{"archived": archived})
}
