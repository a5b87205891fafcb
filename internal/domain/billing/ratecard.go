// Package billing holds the shop's pricing, discount, commission and loyalty rules.
// Every rule reads its numbers from a RateCard so the tables can be tuned without code changes.
package billing

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MembershipWindow is how long a membership stays active after purchase
const MembershipWindow = 7 * 24 * time.Hour

// ItemPrice is one row of the ITEMS price table
type ItemPrice struct {
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Commissionable bool            `json:"commissionable"`
}

// RankRate maps an employee rank to its commission fraction
type RankRate struct {
	Rank enum.Rank       `json:"rank"`
	Rate decimal.Decimal `json:"rate"`
}

// RateCard is the complete set of lookup tables used to price a bill
type RateCard struct {
	Items                   []ItemPrice                                                  `json:"items"`
	UpgradeMultiplier       decimal.Decimal                                              `json:"upgrade_multiplier"`
	RepairLabor             decimal.Decimal                                              `json:"repair_labor"`
	RepairPartCost          decimal.Decimal                                              `json:"repair_part_cost"`
	CustomizationMultiplier decimal.Decimal                                              `json:"customization_multiplier"`
	MembershipPrices        map[enum.MembershipTier]decimal.Decimal                      `json:"membership_prices"`
	Discounts               map[enum.MembershipTier]map[enum.BillingType]decimal.Decimal `json:"discounts"`
	Ranks                   []RankRate                                                   `json:"ranks"` // lowest rank first
	TaxRate                 decimal.Decimal                                              `json:"tax_rate"`
	PointsDivisor           decimal.Decimal                                              `json:"points_divisor"`
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultRateCard returns the shop's standard tables
func DefaultRateCard() *RateCard {
	return &RateCard{
		Items: []ItemPrice{
			{Name: "Repair Kit", Price: dec("400"), Commissionable: true},
			{Name: "Car Wax", Price: dec("2000"), Commissionable: true},
			{Name: "NOS", Price: dec("1500"), Commissionable: false},
			{Name: "Adv Lockpick", Price: dec("400"), Commissionable: true},
			{Name: "Lockpick", Price: dec("250"), Commissionable: true},
			{Name: "Wash Kit", Price: dec("300"), Commissionable: true},
			{Name: "Harness", Price: dec("12000"), Commissionable: false},
		},
		UpgradeMultiplier:       dec("1.5"),
		RepairLabor:             dec("450"),
		RepairPartCost:          dec("125"),
		CustomizationMultiplier: dec("2"),
		MembershipPrices: map[enum.MembershipTier]decimal.Decimal{
			enum.MembershipTierOne:   dec("2000"),
			enum.MembershipTierTwo:   dec("4000"),
			enum.MembershipTierThree: dec("6000"),
			enum.MembershipTierComp:  decimal.Zero,
		},
		Discounts: map[enum.MembershipTier]map[enum.BillingType]decimal.Decimal{
			enum.MembershipTierOne: {
				enum.BillingTypeRepair:        dec("0.20"),
				enum.BillingTypeCustomization: dec("0.10"),
			},
			enum.MembershipTierTwo: {
				enum.BillingTypeRepair:        dec("0.35"),
				enum.BillingTypeCustomization: dec("0.20"),
			},
			enum.MembershipTierThree: {
				enum.BillingTypeRepair:        dec("0.50"),
				enum.BillingTypeCustomization: dec("0.30"),
			},
			enum.MembershipTierComp: {
				enum.BillingTypeRepair:        decimal.Zero,
				enum.BillingTypeCustomization: decimal.Zero,
			},
		},
		Ranks: []RankRate{
			{Rank: enum.RankTrainee, Rate: dec("0.10")},
			{Rank: enum.RankMechanic, Rate: dec("0.15")},
			{Rank: enum.RankSeniorMechanic, Rate: dec("0.20")},
			{Rank: enum.RankManager, Rate: dec("0.25")},
			{Rank: enum.RankCoOwner, Rate: dec("0.50")},
			{Rank: enum.RankOwner, Rate: dec("0.70")},
		},
		TaxRate:       dec("0.05"),
		PointsDivisor: dec("500"),
	}
}

type rateCardFile struct {
	Items []struct {
		Name           string  `yaml:"name"`
		Price          float64 `yaml:"price"`
		Commissionable *bool   `yaml:"commissionable"`
	} `yaml:"items"`
	UpgradeMultiplier       *float64                      `yaml:"upgrade_multiplier"`
	RepairLabor             *float64                      `yaml:"repair_labor"`
	RepairPartCost          *float64                      `yaml:"repair_part_cost"`
	CustomizationMultiplier *float64                      `yaml:"customization_multiplier"`
	MembershipPrices        map[string]float64            `yaml:"membership_prices"`
	Discounts               map[string]map[string]float64 `yaml:"discounts"`
	Ranks                   []struct {
		Name string  `yaml:"name"`
		Rate float64 `yaml:"rate"`
	} `yaml:"ranks"`
	TaxRate       *float64 `yaml:"tax_rate"`
	PointsDivisor *float64 `yaml:"points_divisor"`
}

// LoadRateCard overlays the YAML file at path onto the default tables.
// An empty path or a missing file yields the defaults.
func LoadRateCard(path string) (*RateCard, error) {
	card := DefaultRateCard()
	if path == "" {
		return card, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return card, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rate card %s: %w", path, err)
	}

	if err := card.overlay(data); err != nil {
		return nil, fmt.Errorf("parse rate card %s: %w", path, err)
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}
	return card, nil
}

func (c *RateCard) overlay(data []byte) error {
	var f rateCardFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}

	if len(f.Items) > 0 {
		c.Items = make([]ItemPrice, 0, len(f.Items))
		for _, it := range f.Items {
			commissionable := true
			if it.Commissionable != nil {
				commissionable = *it.Commissionable
			}
			c.Items = append(c.Items, ItemPrice{
				Name:           strings.TrimSpace(it.Name),
				Price:          decimal.NewFromFloat(it.Price),
				Commissionable: commissionable,
			})
		}
	}

	setIf := func(dst *decimal.Decimal, v *float64) {
		if v != nil {
			*dst = decimal.NewFromFloat(*v)
		}
	}
	setIf(&c.UpgradeMultiplier, f.UpgradeMultiplier)
	setIf(&c.RepairLabor, f.RepairLabor)
	setIf(&c.RepairPartCost, f.RepairPartCost)
	setIf(&c.CustomizationMultiplier, f.CustomizationMultiplier)
	setIf(&c.TaxRate, f.TaxRate)
	setIf(&c.PointsDivisor, f.PointsDivisor)

	for name, price := range f.MembershipPrices {
		tier, ok := enum.ParseMembershipTier(name)
		if !ok {
			return fmt.Errorf("unknown membership tier %q", name)
		}
		c.MembershipPrices[tier] = decimal.NewFromFloat(price)
	}

	for name, byType := range f.Discounts {
		tier, ok := enum.ParseMembershipTier(name)
		if !ok {
			return fmt.Errorf("unknown membership tier %q", name)
		}
		fractions := make(map[enum.BillingType]decimal.Decimal, len(byType))
		for typeName, fraction := range byType {
			bt, ok := enum.ParseBillingType(typeName)
			if !ok {
				return fmt.Errorf("unknown billing type %q", typeName)
			}
			fractions[bt] = decimal.NewFromFloat(fraction)
		}
		c.Discounts[tier] = fractions
	}

	if len(f.Ranks) > 0 {
		c.Ranks = make([]RankRate, 0, len(f.Ranks))
		for _, r := range f.Ranks {
			c.Ranks = append(c.Ranks, RankRate{
				Rank: enum.Rank(r.Name).Normalize(),
				Rate: decimal.NewFromFloat(r.Rate),
			})
		}
	}
	return nil
}

// Validate checks the tables for values that would break billing
func (c *RateCard) Validate() error {
	one := decimal.NewFromInt(1)

	if len(c.Items) == 0 {
		return errors.New("rate card: item table is empty")
	}
	seen := make(map[string]bool, len(c.Items))
	for _, it := range c.Items {
		if it.Name == "" {
			return errors.New("rate card: item with empty name")
		}
		if seen[it.Name] {
			return fmt.Errorf("rate card: duplicate item %q", it.Name)
		}
		seen[it.Name] = true
		if it.Price.IsNegative() {
			return fmt.Errorf("rate card: item %q has a negative price", it.Name)
		}
	}

	for name, v := range map[string]decimal.Decimal{
		"upgrade_multiplier":       c.UpgradeMultiplier,
		"repair_labor":             c.RepairLabor,
		"repair_part_cost":         c.RepairPartCost,
		"customization_multiplier": c.CustomizationMultiplier,
	} {
		if v.IsNegative() {
			return fmt.Errorf("rate card: %s must not be negative", name)
		}
	}
	if c.TaxRate.IsNegative() || c.TaxRate.GreaterThan(one) {
		return errors.New("rate card: tax_rate must be between 0 and 1")
	}
	if !c.PointsDivisor.IsPositive() {
		return errors.New("rate card: points_divisor must be positive")
	}

	if len(c.Ranks) == 0 {
		return errors.New("rate card: rank table is empty")
	}
	ranks := make(map[enum.Rank]bool, len(c.Ranks))
	for _, r := range c.Ranks {
		if r.Rank == "" {
			return errors.New("rate card: rank with empty name")
		}
		if ranks[r.Rank] {
			return fmt.Errorf("rate card: duplicate rank %q", r.Rank)
		}
		ranks[r.Rank] = true
		if r.Rate.IsNegative() || r.Rate.GreaterThan(one) {
			return fmt.Errorf("rate card: rank %q rate must be between 0 and 1", r.Rank)
		}
	}

	for tier, price := range c.MembershipPrices {
		if price.IsNegative() {
			return fmt.Errorf("rate card: tier %s has a negative price", tier)
		}
		if tier == enum.MembershipTierComp && !price.IsZero() {
			return errors.New("rate card: Comp tier cannot have a price")
		}
	}

	for tier, byType := range c.Discounts {
		for bt, fraction := range byType {
			if bt != enum.BillingTypeRepair && bt != enum.BillingTypeCustomization {
				return fmt.Errorf("rate card: %s bills cannot be discounted", bt)
			}
			if fraction.IsNegative() || fraction.GreaterThanOrEqual(one) {
				return fmt.Errorf("rate card: %s discount for %s must be in [0, 1)", tier, bt)
			}
			if tier == enum.MembershipTierComp && !fraction.IsZero() {
				return errors.New("rate card: Comp tier cannot discount")
			}
		}
	}
	return nil
}

// Item returns the price row for name
func (c *RateCard) Item(name string) (ItemPrice, bool) {
	for _, it := range c.Items {
		if it.Name == name {
			return it, true
		}
	}
	return ItemPrice{}, false
}

// HasRank reports whether rank is present in the commission table
func (c *RateCard) HasRank(rank enum.Rank) bool {
	for _, r := range c.Ranks {
		if r.Rank == rank {
			return true
		}
	}
	return false
}

// LowestRank is the default rank for new employees
func (c *RateCard) LowestRank() enum.Rank {
	return c.Ranks[0].Rank
}

// CommissionRate returns the rate for rank, falling back to the lowest rank's rate
func (c *RateCard) CommissionRate(rank enum.Rank) decimal.Decimal {
	for _, r := range c.Ranks {
		if r.Rank == rank {
			return r.Rate
		}
	}
	return c.Ranks[0].Rate
}

// MembershipPrice returns the tier's price and whether buying it produces a bill
func (c *RateCard) MembershipPrice(tier enum.MembershipTier) (decimal.Decimal, bool) {
	price, ok := c.MembershipPrices[tier]
	if !ok {
		return decimal.Zero, false
	}
	return price, price.IsPositive()
}

// DiscountFraction looks up the discount a tier grants on a billing type.
// Anything absent from the table is not discounted.
func (c *RateCard) DiscountFraction(tier enum.MembershipTier, bt enum.BillingType) decimal.Decimal {
	byType, ok := c.Discounts[tier]
	if !ok {
		return decimal.Zero
	}
	fraction, ok := byType[bt]
	if !ok {
		return decimal.Zero
	}
	return fraction
}
