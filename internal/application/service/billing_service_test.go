package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/billing"
	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	manager  = entity.Employee{CID: "EMP-1", Name: "Ava Stone", Rank: enum.RankManager, Hood: entity.UnassignedHood}
	mechanic = entity.Employee{CID: "EMP-2", Name: "Ben Ortiz", Rank: enum.RankMechanic, Hood: entity.UnassignedHood}
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func errorCode(err error) int {
	return apperror.GetAppError(err).Code
}

func TestRecordBillItems(t *testing.T) {
	l := newTestLedger(testNow, manager)

	out, err := l.billing.RecordBill(context.Background(), &RecordBillInput{
		EmployeeCID: " EMP-1 ",
		CustomerCID: "CUST-9",
		BillingType: enum.BillingTypeItems,
		Items: []billing.LineItem{
			{Name: "Repair Kit", Qty: 2},
			{Name: "NOS", Qty: 1},
		},
	})
	if err != nil {
		t.Fatalf("RecordBill() error = %v", err)
	}

	bill := out.Bill
	if bill.ID == 0 {
		t.Fatal("bill was not assigned an id")
	}
	if bill.EmployeeCID != "EMP-1" {
		t.Errorf("employee CID not trimmed: %q", bill.EmployeeCID)
	}
	if !bill.TotalAmount.Equal(d("2300")) {
		t.Errorf("total = %s, want 2300", bill.TotalAmount)
	}
	if bill.Details != "Repair Kit×2, NOS×1" {
		t.Errorf("details = %q", bill.Details)
	}
	if !bill.Commission.Equal(d("575")) || !bill.Tax.Equal(d("28.75")) {
		t.Errorf("commission/tax = %s/%s, want 575/28.75", bill.Commission, bill.Tax)
	}
	if !bill.BilledAt.Equal(testNow) {
		t.Errorf("billed at %v, want %v", bill.BilledAt, testNow)
	}

	if out.PointsAwarded != 4 {
		t.Errorf("points awarded = %d, want 4", out.PointsAwarded)
	}
	account, _ := l.loyaltyRepo.GetAccount(context.Background(), "CUST-9")
	if account == nil || account.Points != 4 {
		t.Errorf("loyalty balance = %+v, want 4 points", account)
	}
	if len(l.loyaltyRepo.history) != 1 || *l.loyaltyRepo.history[0].BillID != bill.ID {
		t.Errorf("loyalty history should reference the bill, got %+v", l.loyaltyRepo.history)
	}

	if l.cache.purges != 1 {
		t.Errorf("report cache purged %d times, want 1", l.cache.purges)
	}
}

func TestRecordBillAppliesActiveMembershipDiscount(t *testing.T) {
	l := newTestLedger(testNow, mechanic)
	l.memberships.active["CUST-1"] = entity.Membership{
		CustomerCID: "CUST-1",
		Tier:        enum.MembershipTierThree,
		ActivatedAt: testNow.Add(-48 * time.Hour),
	}

	out, err := l.billing.RecordBill(context.Background(), &RecordBillInput{
		EmployeeCID:   "EMP-2",
		CustomerCID:   "CUST-1",
		BillingType:   enum.BillingTypeRepair,
		RepairVariant: enum.RepairVariantAdvanced,
		PartsCount:    8,
	})
	if err != nil {
		t.Fatalf("RecordBill() error = %v", err)
	}

	if !out.Bill.TotalAmount.Equal(d("500")) {
		t.Errorf("total = %s, want 500", out.Bill.TotalAmount)
	}
	if want := "Advanced Repair: 8 × $125 | Tier3 membership discount: 50%"; out.Bill.Details != want {
		t.Errorf("details = %q, want %q", out.Bill.Details, want)
	}
	if out.DiscountTier != enum.MembershipTierThree || !out.Subtotal.Equal(d("1000")) {
		t.Errorf("unexpected discount info %+v", out)
	}
	if !out.Bill.Commission.Equal(d("75")) || !out.Bill.Tax.Equal(d("3.75")) {
		t.Errorf("commission/tax = %s/%s, want 75/3.75", out.Bill.Commission, out.Bill.Tax)
	}
	if out.PointsAwarded != 1 {
		t.Errorf("points = %d, want 1", out.PointsAwarded)
	}
}

func TestRecordBillIgnoresLapsedMembership(t *testing.T) {
	l := newTestLedger(testNow, mechanic)
	l.memberships.active["CUST-1"] = entity.Membership{
		CustomerCID: "CUST-1",
		Tier:        enum.MembershipTierThree,
		ActivatedAt: testNow.Add(-8 * 24 * time.Hour),
	}

	out, err := l.billing.RecordBill(context.Background(), &RecordBillInput{
		EmployeeCID: "EMP-2",
		CustomerCID: "CUST-1",
		BillingType: enum.BillingTypeRepair,
		BaseAmount:  d("100"),
	})
	if err != nil {
		t.Fatalf("RecordBill() error = %v", err)
	}
	if !out.Bill.TotalAmount.Equal(d("550")) {
		t.Errorf("total = %s, want undiscounted 550", out.Bill.TotalAmount)
	}
	if out.DiscountTier != "" {
		t.Errorf("lapsed membership should not discount, got tier %s", out.DiscountTier)
	}
}

func TestRecordBillDoesNotDiscountUpgrades(t *testing.T) {
	l := newTestLedger(testNow, mechanic)
	l.memberships.active["CUST-1"] = entity.Membership{
		CustomerCID: "CUST-1",
		Tier:        enum.MembershipTierThree,
		ActivatedAt: testNow,
	}

	out, err := l.billing.RecordBill(context.Background(), &RecordBillInput{
		EmployeeCID: "EMP-2",
		CustomerCID: "CUST-1",
		BillingType: enum.BillingTypeUpgrades,
		BaseAmount:  d("1000"),
	})
	if err != nil {
		t.Fatalf("RecordBill() error = %v", err)
	}
	if !out.Bill.TotalAmount.Equal(d("1500")) {
		t.Errorf("total = %s, want 1500", out.Bill.TotalAmount)
	}
	if !out.Bill.Commission.IsZero() || !out.Bill.Tax.IsZero() {
		t.Errorf("upgrades are commission exempt, got %s/%s", out.Bill.Commission, out.Bill.Tax)
	}
}

func TestRecordBillUnknownEmployeeUsesLowestRate(t *testing.T) {
	l := newTestLedger(testNow)

	out, err := l.billing.RecordBill(context.Background(), &RecordBillInput{
		EmployeeCID: "GHOST",
		CustomerCID: "CUST-1",
		BillingType: enum.BillingTypeCustomization,
		BaseAmount:  d("100"),
	})
	if err != nil {
		t.Fatalf("RecordBill() error = %v", err)
	}
	if !out.Bill.Commission.Equal(d("20")) {
		t.Errorf("commission = %s, want 20 at the trainee rate", out.Bill.Commission)
	}
}

func TestRecordBillRejectsWithoutWriting(t *testing.T) {
	tests := []struct {
		name  string
		input RecordBillInput
		code  int
	}{
		{
			name:  "zero amount",
			input: RecordBillInput{EmployeeCID: "EMP-1", CustomerCID: "CUST-1", BillingType: enum.BillingTypeUpgrades, BaseAmount: decimal.Zero},
			code:  http.StatusUnprocessableEntity,
		},
		{
			name:  "empty basket",
			input: RecordBillInput{EmployeeCID: "EMP-1", CustomerCID: "CUST-1", BillingType: enum.BillingTypeItems},
			code:  http.StatusUnprocessableEntity,
		},
		{
			name:  "blank customer",
			input: RecordBillInput{EmployeeCID: "EMP-1", CustomerCID: "  ", BillingType: enum.BillingTypeUpgrades, BaseAmount: d("10")},
			code:  http.StatusUnprocessableEntity,
		},
		{
			name:  "blank employee",
			input: RecordBillInput{CustomerCID: "CUST-1", BillingType: enum.BillingTypeUpgrades, BaseAmount: d("10")},
			code:  http.StatusUnprocessableEntity,
		},
		{
			name:  "unknown item",
			input: RecordBillInput{EmployeeCID: "EMP-1", CustomerCID: "CUST-1", BillingType: enum.BillingTypeItems, Items: []billing.LineItem{{Name: "Turbo", Qty: 1}}},
			code:  http.StatusUnprocessableEntity,
		},
		{
			name:  "negative base",
			input: RecordBillInput{EmployeeCID: "EMP-1", CustomerCID: "CUST-1", BillingType: enum.BillingTypeCustomization, BaseAmount: d("-5")},
			code:  http.StatusUnprocessableEntity,
		},
		{
			name:  "unknown type",
			input: RecordBillInput{EmployeeCID: "EMP-1", CustomerCID: "CUST-1", BillingType: "TIPS", BaseAmount: d("5")},
			code:  http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(testNow, manager)
			input := tt.input

			_, err := l.billing.RecordBill(context.Background(), &input)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errorCode(err); got != tt.code {
				t.Errorf("status = %d, want %d", got, tt.code)
			}
			if len(l.bills.bills) != 0 {
				t.Errorf("rejected bill was written: %+v", l.bills.bills)
			}
			if l.cache.purges != 0 {
				t.Error("rejected bill should not purge the report cache")
			}
		})
	}
}

func TestRecordBillPropagatesStoreFailure(t *testing.T) {
	l := newTestLedger(testNow, manager)
	l.bills.createErr = errors.New("connection reset")

	_, err := l.billing.RecordBill(context.Background(), &RecordBillInput{
		EmployeeCID: "EMP-1",
		CustomerCID: "CUST-1",
		BillingType: enum.BillingTypeUpgrades,
		BaseAmount:  d("100"),
	})
	if err == nil {
		t.Fatal("expected the store failure to surface")
	}
	if errorCode(err) != http.StatusInternalServerError {
		t.Errorf("store failures should map to 500, got %d", errorCode(err))
	}
	if len(l.loyaltyRepo.history) != 0 {
		t.Error("no points should be awarded for an unwritten bill")
	}
}

func TestQuoteDoesNotWrite(t *testing.T) {
	l := newTestLedger(testNow, manager)

	priced, err := l.billing.Quote(context.Background(), &RecordBillInput{
		EmployeeCID: "EMP-1",
		CustomerCID: "CUST-1",
		BillingType: enum.BillingTypeCustomization,
		BaseAmount:  d("250"),
	})
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if !priced.Final.Equal(d("500")) {
		t.Errorf("final = %s, want 500", priced.Final)
	}
	if len(l.bills.bills) != 0 || l.tx.calls != 0 {
		t.Error("Quote must not write")
	}
}
