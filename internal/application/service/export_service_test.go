package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/xuri/excelize/v2"
)

func seedExportLedger(t *testing.T) *testLedger {
	t.Helper()
	l := newTestLedger(testNow)
	seedBill(t, l, entity.Bill{
		EmployeeCID: "EMP-1",
		CustomerCID: "CUST-1",
		BillingType: enum.BillingTypeItems,
		Details:     "Repair Kit×2, NOS×1",
		TotalAmount: d("2300"),
		BilledAt:    testNow,
		Commission:  d("575"),
		Tax:         d("28.75"),
	})
	seedBill(t, l, entity.Bill{
		EmployeeCID: "EMP-2",
		CustomerCID: "CUST-2",
		BillingType: enum.BillingTypeUpgrades,
		Details:     "Base Upgrade: $100.00",
		TotalAmount: d("150"),
		BilledAt:    testNow.Add(time.Hour),
	})
	return l
}

func TestExportCSV(t *testing.T) {
	l := seedExportLedger(t)
	svc := NewExportService(l.bills, time.UTC)

	var buf bytes.Buffer
	n, err := svc.ExportCSV(context.Background(), &buf, repository.BillFilter{})
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	if n != 2 {
		t.Errorf("exported %d rows, want 2", n)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header plus 2", len(records))
	}
	if records[0][0] != "ID" || records[0][8] != "Tax" {
		t.Errorf("unexpected header %v", records[0])
	}
	want := []string{"1", "EMP-1", "CUST-1", "ITEMS", "Repair Kit×2, NOS×1", "2300.00", "2026-03-14 18:30:00", "575.0000", "28.7500"}
	for i, v := range want {
		if records[1][i] != v {
			t.Errorf("column %d = %q, want %q", i, records[1][i], v)
		}
	}
}

func TestExportCSVFiltered(t *testing.T) {
	l := seedExportLedger(t)
	svc := NewExportService(l.bills, time.UTC)

	var buf bytes.Buffer
	n, err := svc.ExportCSV(context.Background(), &buf, repository.BillFilter{BillingType: enum.BillingTypeUpgrades})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("exported %d rows, want 1", n)
	}
}

func TestExportXLSX(t *testing.T) {
	l := seedExportLedger(t)
	svc := NewExportService(l.bills, time.UTC)

	var buf bytes.Buffer
	n, err := svc.ExportXLSX(context.Background(), &buf, repository.BillFilter{})
	if err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}
	if n != 2 {
		t.Errorf("exported %d rows, want 2", n)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("export is not a workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][1] != "Employee CID" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][4] != "Repair Kit×2, NOS×1" || rows[2][3] != "UPGRADES" {
		t.Errorf("unexpected data rows %v", rows[1:])
	}
}
