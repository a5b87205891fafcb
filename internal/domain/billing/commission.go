package billing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ErrMalformedDetails is returned when a details string is not an item basket
var ErrMalformedDetails = errors.New("malformed item details")

// CommissionInput is everything the commission rules look at
type CommissionInput struct {
	Amount      decimal.Decimal
	BillingType enum.BillingType
	Details     string
	// Lines is preferred over Details when set
	Lines []LineItem
	Rank  enum.Rank
}

// Split is the commission earned on a bill and the tax owed on it
type Split struct {
	Commission decimal.Decimal `json:"commission"`
	Tax        decimal.Decimal `json:"tax"`
	Exempt     bool            `json:"exempt"`
}

// minCommission is one cent; anything smaller is not paid out
var minCommission = decimal.New(1, -2)

// Commission derives the commission and tax-on-commission of a bill.
// Commission under one cent is dropped together with its tax.
func (c *RateCard) Commission(in CommissionInput) Split {
	if c.isExempt(in) {
		return Split{Commission: decimal.Zero, Tax: decimal.Zero, Exempt: true}
	}

	commission := in.Amount.Mul(c.CommissionRate(in.Rank)).Round(4)
	if commission.LessThan(minCommission) {
		return Split{Commission: decimal.Zero, Tax: decimal.Zero}
	}
	return Split{Commission: commission, Tax: commission.Mul(c.TaxRate).Round(4)}
}

func (c *RateCard) isExempt(in CommissionInput) bool {
	switch in.BillingType {
	case enum.BillingTypeUpgrades, enum.BillingTypeMembership:
		return true
	case enum.BillingTypeItems:
		lines := in.Lines
		if lines == nil {
			parsed, err := ParseDetails(in.Details)
			if err != nil {
				return false
			}
			lines = parsed
		}
		if len(lines) == 0 {
			return false
		}
		for _, line := range lines {
			item, ok := c.Item(line.Name)
			if !ok || item.Commissionable {
				return false
			}
		}
		return true
	}
	return false
}

// ParseDetails recovers the basket from an ITEMS details string such as "NOS×1, Repair Kit×2"
func ParseDetails(details string) ([]LineItem, error) {
	if strings.TrimSpace(details) == "" {
		return nil, ErrMalformedDetails
	}

	tokens := strings.Split(details, ",")
	lines := make([]LineItem, 0, len(tokens))
	for _, token := range tokens {
		name, qtyStr, ok := strings.Cut(token, ItemQtySeparator)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedDetails, token)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedDetails, token)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedDetails, token)
		}
		lines = append(lines, LineItem{Name: name, Qty: qty})
	}
	return lines, nil
}
