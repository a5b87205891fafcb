package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Shrey0428/ExoticBill/internal/application/service"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler streams ledger extracts as files
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// BillsCSV handles a CSV export of the filtered ledger
// @Summary Export bills as CSV
// @Tags exports
// @Security BearerAuth
// @Produce text/csv
// @Success 200 {file} file
// @Router /exports/bills.csv [get]
func (h *ExportHandler) BillsCSV(c *gin.Context) {
	filter, err := billFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var buf bytes.Buffer
	rows, err := h.exportService.ExportCSV(c.Request.Context(), &buf, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendFile(c, "bills.csv", "text/csv; charset=utf-8", rows, buf.Bytes())
}

// BillsXLSX handles a spreadsheet export of the filtered ledger
func (h *ExportHandler) BillsXLSX(c *gin.Context) {
	filter, err := billFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var buf bytes.Buffer
	rows, err := h.exportService.ExportXLSX(c.Request.Context(), &buf, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendFile(c, "bills.xlsx", xlsxContentType, rows, buf.Bytes())
}

func sendFile(c *gin.Context, name, contentType string, rows int, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("X-Export-Rows", strconv.Itoa(rows))
	c.Data(http.StatusOK, contentType, data)
}
