package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bills"

var exportHeader = []string{
	"ID", "Employee CID", "Customer CID", "Billing Type", "Details",
	"Total Amount", "Timestamp", "Commission", "Tax",
}

// ExportService writes filtered ledger extracts as CSV or XLSX
type ExportService struct {
	billRepo repository.BillRepository
	loc      *time.Location
}

// NewExportService creates a new export service; timestamps are written in loc
func NewExportService(billRepo repository.BillRepository, loc *time.Location) *ExportService {
	return &ExportService{billRepo: billRepo, loc: loc}
}

// ExportCSV writes every bill matching filter to w, oldest first
func (s *ExportService) ExportCSV(ctx context.Context, w io.Writer, filter repository.BillFilter) (int, error) {
	bills, err := s.billRepo.QueryAll(ctx, filter)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, err
	}
	for i := range bills {
		if err := cw.Write(s.record(&bills[i])); err != nil {
			return i, err
		}
	}
	cw.Flush()
	return len(bills), cw.Error()
}

// ExportXLSX writes every bill matching filter to w as a single-sheet workbook
func (s *ExportService) ExportXLSX(ctx context.Context, w io.Writer, filter repository.BillFilter) (int, error) {
	bills, err := s.billRepo.QueryAll(ctx, filter)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return 0, err
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return 0, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, err
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return 0, err
	}

	for i := range bills {
		b := &bills[i]
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return i, err
		}
		row := []interface{}{
			b.ID,
			b.EmployeeCID,
			b.CustomerCID,
			b.BillingType.String(),
			b.Details,
			b.TotalAmount.InexactFloat64(),
			b.BilledAt.In(s.loc).Format(time.DateTime),
			b.Commission.InexactFloat64(),
			b.Tax.InexactFloat64(),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return i, err
		}
	}

	if err := f.SetColWidth(exportSheet, "B", "C", 16); err != nil {
		return 0, err
	}
	if err := f.SetColWidth(exportSheet, "E", "E", 48); err != nil {
		return 0, err
	}
	if err := f.SetColWidth(exportSheet, "G", "G", 20); err != nil {
		return 0, err
	}

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}
	return len(bills), nil
}

func (s *ExportService) record(b *entity.Bill) []string {
	return []string{
		strconv.FormatUint(uint64(b.ID), 10),
		b.EmployeeCID,
		b.CustomerCID,
		b.BillingType.String(),
		b.Details,
		b.TotalAmount.StringFixed(2),
		b.BilledAt.In(s.loc).Format(time.DateTime),
		b.Commission.StringFixed(4),
		b.Tax.StringFixed(4),
	}
}
