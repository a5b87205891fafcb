package billing

import (
	"fmt"

	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Priced is a quote after the membership discount has been applied
type Priced struct {
	Quote
	Tier     enum.MembershipTier `json:"tier,omitempty"`
	Fraction decimal.Decimal     `json:"discount_fraction"`
	Final    decimal.Decimal     `json:"final"`
}

// ApplyDiscount discounts q once by the fraction tier grants on its billing type.
// An empty tier means the customer has no active membership.
func (c *RateCard) ApplyDiscount(q Quote, tier enum.MembershipTier) Priced {
	fraction := decimal.Zero
	if tier != "" {
		fraction = c.DiscountFraction(tier, q.BillingType)
	}

	p := Priced{
		Quote:    q,
		Tier:     tier,
		Fraction: fraction,
		Final:    q.Subtotal.Mul(decimal.NewFromInt(1).Sub(fraction)).Round(2),
	}
	if fraction.IsPositive() {
		pct := fraction.Mul(decimal.NewFromInt(100))
		p.Details = fmt.Sprintf("%s | %s membership discount: %s%%", q.Details, tier, pct.String())
	}
	return p
}
