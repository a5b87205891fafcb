package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Shrey0428/ExoticBill/internal/domain/billing"
	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
)

type capturePrinter struct {
	jobs [][]byte
	err  error
}

func (p *capturePrinter) Print(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *capturePrinter) Close() error      { return nil }
func (p *capturePrinter) IsConnected() bool { return p.err == nil }

func newPrinterFixture(p *capturePrinter) (*PrinterService, *fakeBillRepo) {
	bills := newFakeBillRepo()
	svc := NewPrinterService(p, bills, newFakeEmployeeRepo(manager), billing.DefaultRateCard(), PrinterOptions{
		Type:     "network",
		ShopName: "Exotic Autos",
		Width:    32,
	})
	return svc, bills
}

func TestBuildReceiptItems(t *testing.T) {
	svc, _ := newPrinterFixture(&capturePrinter{})

	r := svc.BuildReceipt(&entity.Bill{
		ID:          12,
		CustomerCID: "CUST-1",
		BillingType: enum.BillingTypeItems,
		Details:     "Repair Kit×2, NOS×1",
		TotalAmount: d("2300"),
		BilledAt:    testNow,
	}, "Ava")

	if r.BillNo != "BILL-000012" || r.Date != "2026-03-14 18:30" {
		t.Errorf("unexpected header fields %+v", r)
	}
	if len(r.Lines) != 2 {
		t.Fatalf("lines = %+v", r.Lines)
	}
	if r.Lines[0].Name != "Repair Kit" || r.Lines[0].Quantity != 2 || r.Lines[0].Total != "800.00" {
		t.Errorf("unexpected first line %+v", r.Lines[0])
	}
	if r.Points != 4 || r.Total != "2300.00" {
		t.Errorf("points/total = %d/%s", r.Points, r.Total)
	}
}

func TestBuildReceiptDiscountAndMembership(t *testing.T) {
	svc, _ := newPrinterFixture(&capturePrinter{})

	r := svc.BuildReceipt(&entity.Bill{
		ID:          1,
		BillingType: enum.BillingTypeRepair,
		Details:     "Advanced Repair: 8 × $125 | Tier3 membership discount: 50%",
		TotalAmount: d("500"),
		BilledAt:    testNow,
	}, "Ava")
	if r.Discount != "Tier3 membership discount: 50%" {
		t.Errorf("discount = %q", r.Discount)
	}
	if len(r.Lines) != 1 || r.Lines[0].Name != "Advanced Repair: 8 × $125" {
		t.Errorf("unexpected lines %+v", r.Lines)
	}

	m := svc.BuildReceipt(&entity.Bill{
		ID:          2,
		BillingType: enum.BillingTypeMembership,
		Details:     "Membership: Tier3",
		TotalAmount: d("6000"),
		BilledAt:    testNow,
	}, "Ava")
	if m.Points != 0 {
		t.Errorf("membership receipts show no points, got %d", m.Points)
	}
}

func TestPrintBillReceipt(t *testing.T) {
	p := &capturePrinter{}
	svc, bills := newPrinterFixture(p)
	bill := &entity.Bill{EmployeeCID: "EMP-1", CustomerCID: "CUST-1", BillingType: enum.BillingTypeItems, Details: "Repair Kit×2", TotalAmount: d("800"), BilledAt: testNow}
	_ = bills.Create(context.Background(), bill)

	r, err := svc.PrintBillReceipt(context.Background(), bill.ID)
	if err != nil {
		t.Fatalf("PrintBillReceipt() error = %v", err)
	}
	if r.Employee != "Ava Stone (EMP-1)" {
		t.Errorf("employee = %q", r.Employee)
	}
	if len(p.jobs) != 1 {
		t.Fatalf("print jobs = %d, want 1", len(p.jobs))
	}
	for _, want := range []string{"Exotic Autos", "BILL-000001", "2x Repair Kit", "TOTAL:", "800.00"} {
		if !bytes.Contains(p.jobs[0], []byte(want)) {
			t.Errorf("receipt missing %q", want)
		}
	}
	if bytes.ContainsRune(p.jobs[0], '×') {
		t.Error("receipt bytes should be folded to ASCII")
	}
}

func TestPrintBillReceiptPrinterFailure(t *testing.T) {
	svc, bills := newPrinterFixture(&capturePrinter{err: errors.New("paper out")})
	bill := &entity.Bill{EmployeeCID: "EMP-1", CustomerCID: "CUST-1", BillingType: enum.BillingTypeUpgrades, TotalAmount: d("150"), BilledAt: testNow}
	_ = bills.Create(context.Background(), bill)

	r, err := svc.PrintBillReceipt(context.Background(), bill.ID)
	if err == nil {
		t.Fatal("expected the printer error")
	}
	if r == nil {
		t.Error("the receipt should still be returned")
	}

	if _, err := svc.PrintBillReceipt(context.Background(), 404); errorCode(err) != http.StatusNotFound {
		t.Errorf("unknown bill: got %v", err)
	}
	if svc.GetStatus().Connected {
		t.Error("failing printer reported connected")
	}
}
