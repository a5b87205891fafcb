package handler

import (
	"github.com/Shrey0428/ExoticBill/internal/application/service"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// PrintReceipt prints the receipt of a bill.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	receipt, err := h.printerService.PrintBillReceipt(c.Request.Context(), id)
	if err != nil {
		// the receipt was built but the printer failed; return it so the till can show it
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}
