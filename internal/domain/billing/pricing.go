package billing

import (
	"fmt"
	"strings"

	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ItemQtySeparator joins an item name and its quantity in bill details
const ItemQtySeparator = "×"

// LineItem is one entry of an ITEMS basket
type LineItem struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

func (l LineItem) String() string {
	return fmt.Sprintf("%s%s%d", l.Name, ItemQtySeparator, l.Qty)
}

// PriceInput carries the raw inputs of every billing type; each type reads only its own fields
type PriceInput struct {
	Items         []LineItem
	BaseAmount    decimal.Decimal
	RepairVariant enum.RepairVariant
	PartsCount    int
	Tier          enum.MembershipTier
}

// Quote is the pre-discount result of pricing a bill
type Quote struct {
	BillingType enum.BillingType `json:"billing_type"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	Details     string           `json:"details"`
	Lines       []LineItem       `json:"lines,omitempty"`
}

// Price computes the subtotal and details string of a bill.
// Inputs are trusted: callers validate quantities and amounts beforehand.
func (c *RateCard) Price(bt enum.BillingType, in PriceInput) Quote {
	q := Quote{BillingType: bt, Subtotal: decimal.Zero}

	switch bt {
	case enum.BillingTypeItems:
		tokens := make([]string, 0, len(in.Items))
		for _, line := range in.Items {
			if line.Qty <= 0 {
				continue
			}
			item, ok := c.Item(line.Name)
			if !ok {
				continue
			}
			q.Subtotal = q.Subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
			q.Lines = append(q.Lines, line)
			tokens = append(tokens, line.String())
		}
		q.Details = strings.Join(tokens, ", ")

	case enum.BillingTypeUpgrades:
		q.Subtotal = in.BaseAmount.Mul(c.UpgradeMultiplier)
		q.Details = fmt.Sprintf("Base Upgrade: $%s", in.BaseAmount.StringFixed(2))

	case enum.BillingTypeRepair:
		if in.RepairVariant == enum.RepairVariantAdvanced {
			q.Subtotal = c.RepairPartCost.Mul(decimal.NewFromInt(int64(in.PartsCount)))
			q.Details = fmt.Sprintf("Advanced Repair: %d × $%s", in.PartsCount, c.RepairPartCost.String())
		} else {
			q.Subtotal = in.BaseAmount.Add(c.RepairLabor)
			q.Details = fmt.Sprintf("Normal Repair: $%s + $%s labor", in.BaseAmount.StringFixed(2), c.RepairLabor.String())
		}

	case enum.BillingTypeCustomization:
		q.Subtotal = in.BaseAmount.Mul(c.CustomizationMultiplier)
		q.Details = fmt.Sprintf("Customization: Base $%s × %s", in.BaseAmount.StringFixed(2), c.CustomizationMultiplier.String())

	case enum.BillingTypeMembership:
		price, _ := c.MembershipPrice(in.Tier)
		q.Subtotal = price
		q.Details = fmt.Sprintf("Membership: %s", in.Tier)
	}

	return q
}
