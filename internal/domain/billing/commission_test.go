package billing

import (
	"errors"
	"testing"

	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
)

func TestCommissionStandard(t *testing.T) {
	card := DefaultRateCard()

	s := card.Commission(CommissionInput{
		Amount:      d("200"),
		BillingType: enum.BillingTypeCustomization,
		Rank:        enum.RankManager,
	})
	if !s.Commission.Equal(d("50")) {
		t.Errorf("expected commission 50, got %s", s.Commission)
	}
	if !s.Tax.Equal(d("2.5")) {
		t.Errorf("expected tax 2.5, got %s", s.Tax)
	}
	if s.Exempt {
		t.Error("customization should not be exempt")
	}
}

func TestCommissionUnknownRankUsesLowestRate(t *testing.T) {
	card := DefaultRateCard()

	for _, rank := range []enum.Rank{"", "Janitor"} {
		s := card.Commission(CommissionInput{Amount: d("1000"), BillingType: enum.BillingTypeRepair, Rank: rank})
		if !s.Commission.Equal(d("100")) {
			t.Errorf("rank %q: expected commission 100, got %s", rank, s.Commission)
		}
	}
}

func TestCommissionExemptions(t *testing.T) {
	card := DefaultRateCard()

	tests := []struct {
		name    string
		bt      enum.BillingType
		details string
		lines   []LineItem
		exempt  bool
	}{
		{name: "membership", bt: enum.BillingTypeMembership, details: "Membership: Tier3", exempt: true},
		{name: "upgrades", bt: enum.BillingTypeUpgrades, details: "Base Upgrade: $10.00", exempt: true},
		{name: "nos only", bt: enum.BillingTypeItems, details: "NOS×1", exempt: true},
		{name: "nos and harness", bt: enum.BillingTypeItems, details: "NOS×2, Harness×1", exempt: true},
		{name: "mixed basket", bt: enum.BillingTypeItems, details: "NOS×1, Repair Kit×2", exempt: false},
		{name: "spaced separator", bt: enum.BillingTypeItems, details: "NOS × 1", exempt: true},
		{name: "malformed details", bt: enum.BillingTypeItems, details: "NOS and stuff", exempt: false},
		{name: "structured lines win", bt: enum.BillingTypeItems, details: "garbage", lines: []LineItem{{Name: "Harness", Qty: 1}}, exempt: true},
		{name: "structured mixed", bt: enum.BillingTypeItems, details: "NOS×1", lines: []LineItem{{Name: "NOS", Qty: 1}, {Name: "Car Wax", Qty: 1}}, exempt: false},
		{name: "repair", bt: enum.BillingTypeRepair, details: "NOS×1", exempt: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := card.Commission(CommissionInput{
				Amount:      d("1500"),
				BillingType: tt.bt,
				Details:     tt.details,
				Lines:       tt.lines,
				Rank:        enum.RankOwner,
			})
			if s.Exempt != tt.exempt {
				t.Fatalf("expected exempt=%v, got %v", tt.exempt, s.Exempt)
			}
			if tt.exempt && (!s.Commission.IsZero() || !s.Tax.IsZero()) {
				t.Errorf("exempt bill earned %s/%s", s.Commission, s.Tax)
			}
			if !tt.exempt && (!s.Commission.IsPositive() || !s.Tax.IsPositive()) {
				t.Errorf("commissionable bill earned %s/%s", s.Commission, s.Tax)
			}
		})
	}
}

func TestCommissionSubCentAmounts(t *testing.T) {
	card := DefaultRateCard()

	tests := []struct {
		amount     string
		commission string
		tax        string
	}{
		{amount: "0.01", commission: "0", tax: "0"},
		{amount: "0.099", commission: "0", tax: "0"},
		{amount: "0.1", commission: "0.01", tax: "0.0005"},
		{amount: "0.5", commission: "0.05", tax: "0.0025"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			s := card.Commission(CommissionInput{Amount: d(tt.amount), BillingType: enum.BillingTypeRepair, Rank: enum.RankTrainee})
			if !s.Commission.Equal(d(tt.commission)) || !s.Tax.Equal(d(tt.tax)) {
				t.Errorf("got %s/%s, want %s/%s", s.Commission, s.Tax, tt.commission, tt.tax)
			}
			if !s.Tax.Equal(s.Commission.Mul(card.TaxRate).Round(4)) {
				t.Errorf("tax %s is not commission %s at the tax rate", s.Tax, s.Commission)
			}
		})
	}
}

func TestParseDetails(t *testing.T) {
	lines, err := ParseDetails("NOS×1, Repair Kit×2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[1].Name != "Repair Kit" || lines[1].Qty != 2 {
		t.Errorf("unexpected lines %+v", lines)
	}

	for _, bad := range []string{"", "NOS", "×2", "NOS×many"} {
		if _, err := ParseDetails(bad); !errors.Is(err, ErrMalformedDetails) {
			t.Errorf("%q: expected ErrMalformedDetails, got %v", bad, err)
		}
	}
}

func TestPoints(t *testing.T) {
	card := DefaultRateCard()

	tests := []struct {
		amount string
		want   int64
	}{
		{"1299.99", 2},
		{"499", 0},
		{"500", 1},
		{"0", 0},
		{"-700", 0},
	}
	for _, tt := range tests {
		if got := card.Points(d(tt.amount)); got != tt.want {
			t.Errorf("Points(%s) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}
