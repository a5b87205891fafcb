package handler

import (
	"github.com/Shrey0428/ExoticBill/internal/application/service"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer lookups. Customers are identified by CID only.
type CustomerHandler struct {
	billService   *service.BillService
	reportService *service.ReportService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(billService *service.BillService, reportService *service.ReportService) *CustomerHandler {
	return &CustomerHandler{
		billService:   billService,
		reportService: reportService,
	}
}

// Bills handles listing a customer's bills, newest first
func (h *CustomerHandler) Bills(c *gin.Context) {
	bills, err := h.billService.ListForCustomer(c.Request.Context(), c.Param("cid"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bills retrieved successfully", bills)
}

// History handles the combined bills, membership and loyalty view of a customer
func (h *CustomerHandler) History(c *gin.Context) {
	history, err := h.reportService.CustomerHistory(c.Request.Context(), c.Param("cid"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer history retrieved successfully", history)
}
