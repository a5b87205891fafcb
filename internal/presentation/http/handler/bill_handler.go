package handler

import (
	"net/http"
	"strings"

	"github.com/Shrey0428/ExoticBill/internal/application/service"
	"github.com/Shrey0428/ExoticBill/internal/domain/billing"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/request"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// BillHandler handles sales and ledger HTTP requests
type BillHandler struct {
	billingService *service.BillingService
	billService    *service.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billingService *service.BillingService, billService *service.BillService) *BillHandler {
	return &BillHandler{
		billingService: billingService,
		billService:    billService,
	}
}

// Record handles recording a sale
// @Summary Record bill
// @Description Price a sale, apply any membership discount and append it to the ledger
// @Tags bills
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body request.RecordBillRequest true "Sale"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /bills [post]
func (h *BillHandler) Record(c *gin.Context) {
	input, ok := h.bindSale(c)
	if !ok {
		return
	}

	output, err := h.billingService.RecordBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill recorded successfully", output)
}

// Quote prices a sale without recording it
func (h *BillHandler) Quote(c *gin.Context) {
	input, ok := h.bindSale(c)
	if !ok {
		return
	}

	priced, err := h.billingService.Quote(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill priced successfully", priced)
}

func (h *BillHandler) bindSale(c *gin.Context) (*service.RecordBillInput, bool) {
	var req request.RecordBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}

	bt, ok := enum.ParseBillingType(req.BillingType)
	if !ok {
		response.Error(c, apperror.NewFieldError("billing_type", "Unknown billing type"))
		return nil, false
	}
	// membership sales also create the membership, so they go through /memberships
	if bt == enum.BillingTypeMembership {
		response.Error(c, apperror.NewFieldError("billing_type", "Use /memberships to sell a membership"))
		return nil, false
	}

	items := make([]billing.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, billing.LineItem{Name: strings.TrimSpace(it.Name), Qty: it.Qty})
	}

	return &service.RecordBillInput{
		EmployeeCID:   req.EmployeeCID,
		CustomerCID:   req.CustomerCID,
		BillingType:   bt,
		Items:         items,
		BaseAmount:    req.BaseAmount,
		RepairVariant: enum.RepairVariant(strings.ToUpper(strings.TrimSpace(req.RepairVariant))),
		PartsCount:    req.PartsCount,
	}, true
}

// Get handles fetching a single bill
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// List handles filtered, paginated ledger queries
// @Summary List bills
// @Tags bills
// @Security BearerAuth
// @Produce json
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Param billing_type query string false "Billing type"
// @Param employee_cid query string false "Employee CID substring"
// @Param customer_cid query string false "Customer CID substring"
// @Success 200 {object} response.APIResponse
// @Router /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	filter, err := billFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.billService.QueryBills(c.Request.Context(), filter, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Bills retrieved successfully", result)
}

// ListDeleted handles listing the deleted-bill audit trail
func (h *BillHandler) ListDeleted(c *gin.Context) {
	result, err := h.billService.ListDeleted(c.Request.Context(), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Deleted bills retrieved successfully", result)
}

// Delete handles an audited bill delete
// @Summary Delete bill
// @Description Move a bill into the audit table, recording who removed it and why
// @Tags bills
// @Security BearerAuth
// @Accept json
// @Param id path int true "Bill ID"
// @Param request body request.DeleteBillRequest true "Reason"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	principal := GetPrincipal(c)
	if principal == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req request.DeleteBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	deleted, err := h.billService.DeleteBill(c.Request.Context(), &service.DeleteBillInput{
		ID:        id,
		DeletedBy: principal.Username,
		Reason:    req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill deleted successfully", deleted)
}
